package onboarding

// View is what the dashboard route renders.
type View string

const (
	ViewPatientDashboard View = "patient_dashboard"
	ViewDoctorDashboard  View = "doctor_dashboard"
	ViewInterstitial     View = "interstitial"
)

// Action is the single call to action on an interstitial.
type Action string

const (
	ActionSubmitCredentials        Action = "Submit Credentials"
	ActionCompleteProfile          Action = "Complete Profile"
	ActionScheduleVerificationCall Action = "Schedule Verification Call"
	ActionLogOut                   Action = "Log Out"
)

type ViewDecision struct {
	View          View   `json:"view"`
	Title         string `json:"title,omitempty"`
	Message       string `json:"message,omitempty"`
	PrimaryAction Action `json:"primary_action,omitempty"`
	ActionRoute   string `json:"action_route,omitempty"`
	// Redirect is set for stages that push the doctor to the next step
	// instead of rendering in place.
	Redirect string `json:"redirect,omitempty"`
}

// SelectView maps a stage to its view.
func SelectView(stage Stage) ViewDecision {
	switch stage {
	case StagePatient:
		return ViewDecision{View: ViewPatientDashboard}
	case StageDoctorVerified:
		return ViewDecision{View: ViewDoctorDashboard}
	case StageDoctorAwaitingCredentials:
		return ViewDecision{
			View:          ViewInterstitial,
			Title:         "Submit Your Credentials",
			Message:       "Submit your medical council registration to start verification.",
			PrimaryAction: ActionSubmitCredentials,
			ActionRoute:   RouteVerifyCredentials,
			Redirect:      RouteVerifyCredentials,
		}
	case StageDoctorUnderReview:
		return ViewDecision{
			View:          ViewInterstitial,
			Title:         "Verification Pending",
			Message:       "Your credentials are being reviewed by our team. We will notify you once the review is complete.",
			PrimaryAction: ActionLogOut,
		}
	case StageDoctorApprovedNeedsProfile:
		return ViewDecision{
			View:          ViewInterstitial,
			Title:         "Credentials Approved",
			Message:       "Complete your professional profile to continue.",
			PrimaryAction: ActionCompleteProfile,
			ActionRoute:   RouteCompleteProfile,
			Redirect:      RouteCompleteProfile,
		}
	case StageDoctorAwaitingCall:
		return ViewDecision{
			View:          ViewInterstitial,
			Title:         "Final Step: Verification Call",
			Message:       "Schedule a short video call with our team to finish verification.",
			PrimaryAction: ActionScheduleVerificationCall,
			ActionRoute:   RouteScheduleVerificationCall,
		}
	case StageDoctorRejected:
		return ViewDecision{
			View:          ViewInterstitial,
			Title:         "Verification Unsuccessful",
			Message:       "We could not verify your credentials. Contact support for details.",
			PrimaryAction: ActionLogOut,
		}
	default:
		return ViewDecision{View: ViewInterstitial, PrimaryAction: ActionLogOut}
	}
}
