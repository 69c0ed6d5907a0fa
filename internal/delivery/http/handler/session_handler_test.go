package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/delivery/http/middleware"
	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"
	"docconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSessionUsecase struct {
	mock.Mock
}

func (m *mockSessionUsecase) Resolve(ctx context.Context, identityID *uuid.UUID, route string) (*usecase.Session, error) {
	args := m.Called(ctx, identityID, route)
	if v := args.Get(0); v != nil {
		return v.(*usecase.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestResolve_RouteRequired(t *testing.T) {
	h := NewSessionHandler(&mockSessionUsecase{})
	rec := httptest.NewRecorder()
	h.Resolve(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session/resolve", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve_UnderReviewDoctor(t *testing.T) {
	userID := uuid.New()
	sessions := &mockSessionUsecase{}
	sessions.On("Resolve", mock.Anything, &userID, "/dashboard").Return(&usecase.Session{
		Identity: &entity.Identity{ID: userID},
		Decision: onboarding.Decision{
			Route:   onboarding.RouteDashboard,
			Outcome: onboarding.OutcomeReady,
			Stage:   onboarding.StageDoctorUnderReview,
			Allowed: true,
			View:    &onboarding.ViewDecision{View: onboarding.ViewInterstitial, Title: "Verification in progress"},
		},
	}, nil)
	h := NewSessionHandler(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/resolve?route=/dashboard", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var decision dto.NavigationDecision
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &decision))
	assert.True(t, decision.Allowed)
	assert.Equal(t, string(onboarding.StageDoctorUnderReview), decision.Stage)
	require.NotNil(t, decision.View)
	assert.Equal(t, string(onboarding.ViewInterstitial), decision.View.View)
}

func TestResolve_Anonymous(t *testing.T) {
	sessions := &mockSessionUsecase{}
	sessions.On("Resolve", mock.Anything, (*uuid.UUID)(nil), "/book/42").Return(&usecase.Session{
		Decision: onboarding.Decision{
			Route:    "/book/42",
			Outcome:  onboarding.OutcomeUnauthenticated,
			Redirect: onboarding.RouteLogin,
		},
	}, nil)
	h := NewSessionHandler(sessions)

	rec := httptest.NewRecorder()
	h.Resolve(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session/resolve?route=/book/42", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var decision dto.NavigationDecision
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &decision))
	assert.False(t, decision.Allowed)
	assert.Equal(t, onboarding.RouteLogin, decision.Redirect)
}
