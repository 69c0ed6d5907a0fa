package onboarding

import "docconnect/internal/domain/entity"

// RouteDecision says whether a ready user may open a route.
type RouteDecision struct {
	Allowed  bool
	Redirect string
	Reason   string
}

// onboardingRoute is the self-service route each unverified stage may also open.
var onboardingRoute = map[Stage]string{
	StageDoctorAwaitingCredentials:  RouteVerifyCredentials,
	StageDoctorApprovedNeedsProfile: RouteCompleteProfile,
	StageDoctorAwaitingCall:         RouteScheduleVerificationCall,
}

// Authorize applies role and stage restrictions to a route for a ready user.
func Authorize(route string, user *entity.UserProfile, stage Stage) RouteDecision {
	base := BaseRoute(route)

	if base == RouteAdmin {
		if user.IsAdmin() {
			return RouteDecision{Allowed: true}
		}
		return RouteDecision{Redirect: RouteDashboard, Reason: "admin only"}
	}

	if stage.IsUnverifiedDoctor() {
		if pendingDoctorRoutes[base] || onboardingRoute[stage] == base {
			return RouteDecision{Allowed: true}
		}
		return RouteDecision{Redirect: RouteDashboard, Reason: "doctor not verified"}
	}

	if doctorOnlyRoutes[base] && stage != StageDoctorVerified {
		return RouteDecision{Redirect: RouteDashboard, Reason: "doctor only"}
	}

	return RouteDecision{Allowed: true}
}
