package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/availability"
	"docconnect/internal/domain/entity"
	"docconnect/internal/usecase"
	"docconnect/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAvailabilityUsecase struct {
	mock.Mock
}

func (m *mockAvailabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	args := m.Called(ctx, doctorID)
	if v := args.Get(0); v != nil {
		return v.(*dto.AvailabilityResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAvailabilityUsecase) GenerateSlots(ctx context.Context, req *dto.GenerateSlotsRequest) (*dto.DaySlotsResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.DaySlotsResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAvailabilityUsecase) SaveDay(ctx context.Context, doctorID uuid.UUID, date string, req *dto.SaveSlotsRequest) (*dto.DaySlotsResponse, error) {
	args := m.Called(ctx, doctorID, date, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.DaySlotsResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAvailabilityUsecase) RemoveSlot(ctx context.Context, doctorID uuid.UUID, date, slot string) (*dto.DaySlotsResponse, error) {
	args := m.Called(ctx, doctorID, date, slot)
	if v := args.Get(0); v != nil {
		return v.(*dto.DaySlotsResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGenerateSlots(t *testing.T) {
	req := &dto.GenerateSlotsRequest{Date: "2026-11-02", StartTime: "09:00", EndTime: "10:00", DurationMinutes: 30}

	t.Run("preview", func(t *testing.T) {
		uc := &mockAvailabilityUsecase{}
		uc.On("GenerateSlots", mock.Anything, req).Return(&dto.DaySlotsResponse{Date: "2026-11-02", Slots: []string{"09:00", "09:30"}}, nil)
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.GenerateSlots(rec, httptest.NewRequest(http.MethodPost, "/api/v1/availability/generate",
			strings.NewReader(`{"date":"2026-11-02","start_time":"09:00","end_time":"10:00","duration_minutes":30}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"date":"2026-11-02","slots":["09:00","09:30"]}`, string(decodeEnvelope(t, rec).Data))
	})

	t.Run("end before start", func(t *testing.T) {
		uc := &mockAvailabilityUsecase{}
		uc.On("GenerateSlots", mock.Anything, mock.Anything).Return(nil, availability.ErrInvalidRange)
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.GenerateSlots(rec, httptest.NewRequest(http.MethodPost, "/api/v1/availability/generate",
			strings.NewReader(`{"date":"2026-11-02","start_time":"10:00","end_time":"09:00","duration_minutes":30}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, availability.ErrInvalidRange.Error(), decodeEnvelope(t, rec).Message)
	})

	t.Run("duration out of range", func(t *testing.T) {
		h := NewAvailabilityHandler(&mockAvailabilityUsecase{}, validator.NewValidator())

		rec := httptest.NewRecorder()
		h.GenerateSlots(rec, httptest.NewRequest(http.MethodPost, "/api/v1/availability/generate",
			strings.NewReader(`{"date":"2026-11-02","start_time":"09:00","end_time":"10:00","duration_minutes":0}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeEnvelope(t, rec).Error, "DurationMinutes")
	})
}

func TestSaveDay(t *testing.T) {
	doctorID := uuid.New()
	vars := map[string]string{"date": "2026-11-02"}

	t.Run("saved", func(t *testing.T) {
		uc := &mockAvailabilityUsecase{}
		uc.On("SaveDay", mock.Anything, doctorID, "2026-11-02", &dto.SaveSlotsRequest{Slots: []string{"10:00", "09:00"}}).
			Return(&dto.DaySlotsResponse{Date: "2026-11-02", Slots: []string{"09:00", "10:00"}}, nil)
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/2026-11-02", strings.NewReader(`{"slots":["10:00","09:00"]}`))
		rec := httptest.NewRecorder()
		h.SaveDay(rec, withVars(asUser(req, doctorID, entity.RoleDoctor), vars))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad slot", func(t *testing.T) {
		h := NewAvailabilityHandler(&mockAvailabilityUsecase{}, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/2026-11-02", strings.NewReader(`{"slots":["25:00"]}`))
		rec := httptest.NewRecorder()
		h.SaveDay(rec, withVars(asUser(req, doctorID, entity.RoleDoctor), vars))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unpadded slot", func(t *testing.T) {
		uc := &mockAvailabilityUsecase{}
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/2026-11-02", strings.NewReader(`{"slots":["17:00","9:00","09:00"]}`))
		rec := httptest.NewRecorder()
		h.SaveDay(rec, withVars(asUser(req, doctorID, entity.RoleDoctor), vars))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "SaveDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad date", func(t *testing.T) {
		uc := &mockAvailabilityUsecase{}
		uc.On("SaveDay", mock.Anything, doctorID, "tomorrow", mock.Anything).Return(nil, usecase.ErrInvalidDate)
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/tomorrow", strings.NewReader(`{"slots":[]}`))
		rec := httptest.NewRecorder()
		h.SaveDay(rec, withVars(asUser(req, doctorID, entity.RoleDoctor), map[string]string{"date": "tomorrow"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("write refused", func(t *testing.T) {
		uc := &mockAvailabilityUsecase{}
		uc.On("SaveDay", mock.Anything, doctorID, "2026-11-02", mock.Anything).Return(nil, usecase.ErrPermissionDenied)
		h := NewAvailabilityHandler(uc, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPut, "/api/v1/availability/2026-11-02", strings.NewReader(`{"slots":["09:00"]}`))
		rec := httptest.NewRecorder()
		h.SaveDay(rec, withVars(asUser(req, doctorID, entity.RoleDoctor), vars))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRemoveSlot(t *testing.T) {
	doctorID := uuid.New()
	vars := map[string]string{"date": "2026-11-02", "time": "09:00"}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"removed", nil, http.StatusOK},
		{"missing slot", usecase.ErrSlotNotFound, http.StatusNotFound},
		{"store failure", fmt.Errorf("write: %w", context.DeadlineExceeded), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAvailabilityUsecase{}
			var resp *dto.DaySlotsResponse
			if tt.err == nil {
				resp = &dto.DaySlotsResponse{Date: "2026-11-02", Slots: []string{}}
			}
			uc.On("RemoveSlot", mock.Anything, doctorID, "2026-11-02", "09:00").Return(resp, tt.err)
			h := NewAvailabilityHandler(uc, validator.NewValidator())

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/availability/2026-11-02/09:00", nil)
			rec := httptest.NewRecorder()
			h.RemoveSlot(rec, withVars(asUser(req, doctorID, entity.RoleDoctor), vars))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
