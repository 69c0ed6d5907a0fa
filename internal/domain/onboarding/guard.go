package onboarding

import "docconnect/internal/domain/entity"

// Outcome of the session guard.
type Outcome string

const (
	OutcomeUnauthenticated   Outcome = "unauthenticated"
	OutcomeEmailUnverified   Outcome = "email_unverified"
	OutcomeProfileIncomplete Outcome = "profile_incomplete"
	OutcomeReady             Outcome = "ready"
)

// GuardInput carries everything the guard looks at. Identity is nil when the
// request is anonymous; LookupErr is the error of the profile read, if any.
type GuardInput struct {
	Identity                 *entity.Identity
	Profile                  *entity.UserProfile
	LookupErr                error
	RequireEmailVerification bool
}

// Guard decides whether the requester may proceed to classification.
// Email confirmation is checked before the profile read; a failed profile
// read is then handled like a missing identity.
func Guard(in GuardInput) Outcome {
	if in.Identity == nil {
		return OutcomeUnauthenticated
	}
	if in.RequireEmailVerification && in.Identity.RequiresEmailConfirmation() && !in.Identity.EmailVerified {
		return OutcomeEmailUnverified
	}
	if in.LookupErr != nil {
		return OutcomeUnauthenticated
	}
	if !in.Profile.HasRole() {
		return OutcomeProfileIncomplete
	}
	return OutcomeReady
}

// Redirect is the route an outcome sends the requester to; empty for OutcomeReady.
func (o Outcome) Redirect() string {
	switch o {
	case OutcomeUnauthenticated:
		return RouteLogin
	case OutcomeEmailUnverified:
		return RouteVerifyEmail
	case OutcomeProfileIncomplete:
		return RouteCompleteProfile
	default:
		return ""
	}
}
