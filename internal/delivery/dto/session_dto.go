package dto

// NavigationDecision tells the client whether a logical route may render and,
// if not, where to go instead.
type NavigationDecision struct {
	Route    string        `json:"route"`
	Outcome  string        `json:"outcome"`
	Stage    string        `json:"stage,omitempty"`
	Allowed  bool          `json:"allowed"`
	Redirect string        `json:"redirect,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	View     *ViewResponse `json:"view,omitempty"`
}

type ViewResponse struct {
	View          string `json:"view"`
	Title         string `json:"title,omitempty"`
	Message       string `json:"message,omitempty"`
	PrimaryAction string `json:"primary_action,omitempty"`
	ActionRoute   string `json:"action_route,omitempty"`
	Redirect      string `json:"redirect,omitempty"`
}
