package middleware

import (
	"context"
	"net/http"

	"docconnect/internal/converter"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"

	"github.com/google/uuid"
)

const sessionKey contextKey = "session"

// NavigationMiddleware runs the session resolver in front of guarded
// endpoints, so every API call obeys the same decision the client uses to
// pick a screen.
type NavigationMiddleware struct {
	sessionUsecase usecase.SessionUsecase
}

func NewNavigationMiddleware(sessionUsecase usecase.SessionUsecase) *NavigationMiddleware {
	return &NavigationMiddleware{sessionUsecase: sessionUsecase}
}

// Guard resolves route for the caller. Allowed requests continue with the
// session in their context. Anonymous callers get 401; every other redirect
// is a 303 whose Location is the logical route to show instead.
func (m *NavigationMiddleware) Guard(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identityID *uuid.UUID
			if id, ok := GetUserIDFromContext(r.Context()); ok {
				identityID = &id
			}

			session, err := m.sessionUsecase.Resolve(r.Context(), identityID, route)
			if err != nil {
				// the client went away
				response.Error(w, http.StatusServiceUnavailable, "Request cancelled", nil)
				return
			}

			decision := session.Decision
			if !decision.Allowed {
				data := converter.DecisionToResponse(decision)
				if decision.Outcome == onboarding.OutcomeUnauthenticated {
					response.Redirect(w, http.StatusUnauthorized, decision.Redirect, "Authentication required", data)
					return
				}
				response.Redirect(w, http.StatusSeeOther, decision.Redirect, "Redirect to "+decision.Redirect, data)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// WithSession binds a resolved session to ctx.
func WithSession(ctx context.Context, session *usecase.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext returns the session resolved by Guard.
func GetSessionFromContext(ctx context.Context) (*usecase.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*usecase.Session)
	return session, ok && session != nil
}
