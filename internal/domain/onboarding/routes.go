package onboarding

import (
	"path"
	"strings"
)

// Logical client routes.
const (
	RouteLogin                    = "/login"
	RouteSignup                   = "/signup"
	RouteVerifyEmail              = "/verify-email"
	RouteCompleteProfile          = "/complete-profile"
	RouteVerifyCredentials        = "/verify-credentials"
	RouteDashboard                = "/dashboard"
	RouteDoctors                  = "/doctors"
	RouteBook                     = "/book"
	RouteAppointments             = "/appointments"
	RouteConsultations            = "/consultations"
	RouteConsultation             = "/consultation"
	RoutePatients                 = "/patients"
	RouteAvailability             = "/availability"
	RouteScheduleVerificationCall = "/schedule-verification-call"
	RouteSettings                 = "/settings"
	RouteHelp                     = "/help"
	RouteScan                     = "/scan"
	RouteAdmin                    = "/admin"
)

var publicRoutes = map[string]bool{
	RouteLogin:  true,
	RouteSignup: true,
}

// pendingDoctorRoutes are reachable by every doctor who is not verified yet.
var pendingDoctorRoutes = map[string]bool{
	RouteDashboard: true,
	RouteSettings:  true,
	RouteHelp:      true,
}

var doctorOnlyRoutes = map[string]bool{
	RoutePatients:     true,
	RouteAvailability: true,
}

// NormalizeRoute cleans a requested route into "/segment[/...]" form.
func NormalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" {
		return RouteDashboard
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return path.Clean(route)
}

// BaseRoute returns the first segment of a normalized route, e.g. "/doctors/42" -> "/doctors".
func BaseRoute(route string) string {
	route = NormalizeRoute(route)
	if i := strings.Index(route[1:], "/"); i >= 0 {
		return route[:i+1]
	}
	return route
}

func IsPublicRoute(route string) bool {
	return publicRoutes[BaseRoute(route)]
}
