package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"docconnect/internal/delivery/http/middleware"
	"docconnect/internal/domain/entity"
	"docconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
	Meta    *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// asUser attaches a resolved session for id, as the navigation guard would.
func asUser(r *http.Request, id uuid.UUID, role entity.Role) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), &usecase.Session{
		Identity: &entity.Identity{ID: id},
		Profile:  &entity.UserProfile{ID: id, Role: role},
	}))
}

func withVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}
