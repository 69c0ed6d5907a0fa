package onboarding

import "docconnect/internal/domain/entity"

// Decision is the full navigation answer for one requested route.
type Decision struct {
	Route    string        `json:"route"`
	Outcome  Outcome       `json:"outcome"`
	Stage    Stage         `json:"stage,omitempty"`
	View     *ViewDecision `json:"view,omitempty"`
	Allowed  bool          `json:"allowed"`
	Redirect string        `json:"redirect,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// Resolve runs guard, classifier, view selector and route access in order.
// A redirect to the route being requested is turned into an in-place render.
func Resolve(route string, in GuardInput, doctor *entity.DoctorProfile) Decision {
	route = NormalizeRoute(route)
	d := Decision{Route: route, Outcome: Guard(in)}

	if d.Outcome != OutcomeReady {
		if IsPublicRoute(route) {
			d.Allowed = true
			return d
		}
		d.Redirect = d.Outcome.Redirect()
		d.Reason = string(d.Outcome)
		return finalize(d)
	}

	d.Stage = Classify(in.Profile, doctor)
	view := SelectView(d.Stage)
	d.View = &view

	if BaseRoute(route) == RouteDashboard && view.Redirect != "" {
		d.Redirect = view.Redirect
		d.Reason = string(d.Stage)
		return finalize(d)
	}

	access := Authorize(route, in.Profile, d.Stage)
	d.Allowed = access.Allowed
	d.Redirect = access.Redirect
	d.Reason = access.Reason
	return finalize(d)
}

func finalize(d Decision) Decision {
	if d.Redirect != "" && BaseRoute(d.Redirect) == BaseRoute(d.Route) {
		d.Redirect = ""
		d.Allowed = true
	}
	return d
}
