package onboarding

import "docconnect/internal/domain/entity"

// Stage is one step of the doctor onboarding progression.
type Stage string

const (
	StagePatient                    Stage = "patient"
	StageDoctorAwaitingCredentials  Stage = "doctor_awaiting_credentials"
	StageDoctorUnderReview          Stage = "doctor_under_review"
	StageDoctorApprovedNeedsProfile Stage = "doctor_approved_needs_profile"
	StageDoctorAwaitingCall         Stage = "doctor_awaiting_call"
	StageDoctorVerified             Stage = "doctor_verified"
	StageDoctorRejected             Stage = "doctor_rejected"
)

// Stages lists every stage in classification order.
var Stages = []Stage{
	StagePatient,
	StageDoctorAwaitingCredentials,
	StageDoctorUnderReview,
	StageDoctorApprovedNeedsProfile,
	StageDoctorAwaitingCall,
	StageDoctorVerified,
	StageDoctorRejected,
}

type rule struct {
	stage   Stage
	matches func(user *entity.UserProfile, doctor *entity.DoctorProfile) bool
}

// rules are evaluated top to bottom; the first match wins. The rows are also
// mutually exclusive on their own, which the tests rely on.
var rules = []rule{
	{StagePatient, func(u *entity.UserProfile, _ *entity.DoctorProfile) bool {
		return !u.IsDoctor()
	}},
	{StageDoctorAwaitingCredentials, func(u *entity.UserProfile, d *entity.DoctorProfile) bool {
		return u.IsDoctor() && isPending(u) && !d.HasSubmittedCredentials()
	}},
	{StageDoctorUnderReview, func(u *entity.UserProfile, d *entity.DoctorProfile) bool {
		return u.IsDoctor() && isPending(u) && d.HasSubmittedCredentials() && !d.ManualVerificationRequired
	}},
	{StageDoctorApprovedNeedsProfile, func(u *entity.UserProfile, d *entity.DoctorProfile) bool {
		return u.IsDoctor() && isPending(u) && d.HasSubmittedCredentials() && d.ManualVerificationRequired && !u.HasUsername()
	}},
	{StageDoctorAwaitingCall, func(u *entity.UserProfile, d *entity.DoctorProfile) bool {
		return u.IsDoctor() && isPending(u) && d.HasSubmittedCredentials() && d.ManualVerificationRequired && u.HasUsername()
	}},
	{StageDoctorVerified, func(u *entity.UserProfile, _ *entity.DoctorProfile) bool {
		return u.IsDoctor() && u.VerificationStatus == entity.VerificationVerified
	}},
	{StageDoctorRejected, func(u *entity.UserProfile, _ *entity.DoctorProfile) bool {
		return u.IsDoctor() && u.VerificationStatus == entity.VerificationRejected
	}},
}

// isPending treats a missing or unknown status as pending.
func isPending(u *entity.UserProfile) bool {
	return u.VerificationStatus != entity.VerificationVerified && u.VerificationStatus != entity.VerificationRejected
}

// Classify assigns exactly one stage to a profile pair. doctor may be nil.
func Classify(user *entity.UserProfile, doctor *entity.DoctorProfile) Stage {
	for _, r := range rules {
		if r.matches(user, doctor) {
			return r.stage
		}
	}
	// unreachable: the pending rows cover every doctor that is neither verified nor rejected
	return StageDoctorAwaitingCredentials
}

func (s Stage) IsDoctor() bool {
	return s != StagePatient && s != ""
}

// IsUnverifiedDoctor is true for every doctor stage except DoctorVerified.
func (s Stage) IsUnverifiedDoctor() bool {
	return s.IsDoctor() && s != StageDoctorVerified
}
