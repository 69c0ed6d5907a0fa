package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor is the public read model composed from a verified UserProfile and its DoctorProfile.
type Doctor struct {
	ID              uuid.UUID
	Name            string
	Username        string
	Email           string
	Specialization  string
	ExperienceYears int
	Bio             string
	ConsultationFee decimal.Decimal
	Availability    Availability
}

// NewDoctor composes the read model. It returns nil unless the profile is a verified doctor.
func NewDoctor(user *UserProfile, profile *DoctorProfile) *Doctor {
	if !user.IsVerifiedDoctor() {
		return nil
	}
	d := &Doctor{
		ID:       user.ID,
		Name:     user.DisplayName(),
		Username: user.Username,
		Email:    user.Email,
	}
	if profile != nil {
		if profile.FullName != "" {
			d.Name = profile.FullName
		}
		d.Specialization = profile.Specialization
		d.ExperienceYears = profile.ExperienceYears
		d.Bio = profile.Bio
		d.ConsultationFee = profile.ConsultationFee
		d.Availability = profile.Availability
	}
	return d
}
