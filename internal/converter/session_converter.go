package converter

import (
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/onboarding"
)

// DecisionToResponse converts a resolver Decision to NavigationDecision DTO
func DecisionToResponse(decision onboarding.Decision) dto.NavigationDecision {
	response := dto.NavigationDecision{
		Route:    decision.Route,
		Outcome:  string(decision.Outcome),
		Stage:    string(decision.Stage),
		Allowed:  decision.Allowed,
		Redirect: decision.Redirect,
		Reason:   decision.Reason,
	}

	if v := decision.View; v != nil {
		response.View = &dto.ViewResponse{
			View:          string(v.View),
			Title:         v.Title,
			Message:       v.Message,
			PrimaryAction: string(v.PrimaryAction),
			ActionRoute:   v.ActionRoute,
			Redirect:      v.Redirect,
		}
	}

	return response
}
