package handler

import (
	"net/http"

	"docconnect/internal/converter"
	"docconnect/internal/delivery/http/middleware"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"

	"github.com/google/uuid"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase) *SessionHandler {
	return &SessionHandler{sessionUsecase: sessionUsecase}
}

// Resolve reports what the client should show for a logical route
// @Summary Resolve navigation
// @Description Runs the onboarding guard for route and returns the decision, including the interstitial view for doctors still in onboarding.
// @Tags Session
// @Produce json
// @Param route query string true "Logical route, e.g. /dashboard"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /session/resolve [get]
func (h *SessionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Query().Get("route")
	if route == "" {
		response.Error(w, http.StatusBadRequest, "route is required", nil)
		return
	}

	var identityID *uuid.UUID
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		identityID = &id
	}

	session, err := h.sessionUsecase.Resolve(r.Context(), identityID, route)
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "Request cancelled", nil)
		return
	}

	response.Success(w, http.StatusOK, "Navigation resolved", converter.DecisionToResponse(session.Decision))
}

// sessionUserID returns the caller resolved by the navigation guard.
func sessionUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || session.UserID() == uuid.Nil {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, false
	}
	return session.UserID(), true
}

// pathUUID parses a uuid path variable, answering 400 with message when it is malformed.
func pathUUID(w http.ResponseWriter, raw, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(w, http.StatusBadRequest, message, nil)
		return uuid.Nil, false
	}
	return id, true
}
