package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
	"docconnect/internal/infrastructure/llm"
	"docconnect/internal/usecase"
	"docconnect/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, userID uuid.UUID) (*dto.AppointmentGroupsResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*dto.AppointmentGroupsResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentUsecase) ListConsultations(ctx context.Context, userID uuid.UUID) (*dto.ConsultationListResponse, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*dto.ConsultationListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentUsecase) GetConsultation(ctx context.Context, userID uuid.UUID, appointmentID string) (*dto.ConsultationResponse, error) {
	args := m.Called(ctx, userID, appointmentID)
	if v := args.Get(0); v != nil {
		return v.(*dto.ConsultationResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentUsecase) Summarize(ctx context.Context, userID uuid.UUID, appointmentID string, req *dto.SummarizeRequest) (*dto.SummaryResponse, error) {
	args := m.Called(ctx, userID, appointmentID, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.SummaryResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentUsecase) Book(ctx context.Context, patientID, doctorID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.BookingResponse, error) {
	args := m.Called(ctx, patientID, doctorID, req)
	if v := args.Get(0); v != nil {
		return v.(*dto.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSummarize_ErrorMapping(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid transcript", llm.ErrInvalidTranscript, http.StatusBadRequest, "Invalid transcript provided."},
		{"model failure", fmt.Errorf("%w: status 500", llm.ErrSummaryFailed), http.StatusBadGateway, "Failed to summarize transcript."},
		{"not a participant", usecase.ErrAppointmentNotFound, http.StatusNotFound, "Consultation not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAppointmentUsecase{}
			uc.On("Summarize", mock.Anything, userID, "a1", &dto.SummarizeRequest{Transcript: "hi"}).Return(nil, tt.err)
			h := NewAppointmentHandler(uc, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/consultation/a1/summary", strings.NewReader(`{"transcript":"hi"}`))
			req = withVars(asUser(req, userID, entity.RolePatient), map[string]string{"id": "a1"})
			rec := httptest.NewRecorder()
			h.Summarize(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeEnvelope(t, rec).Message)
		})
	}
}

func TestSummarize_Success(t *testing.T) {
	userID := uuid.New()
	uc := &mockAppointmentUsecase{}
	uc.On("Summarize", mock.Anything, userID, "a1", mock.Anything).Return(&dto.SummaryResponse{Summary: "Follow up in two weeks."}, nil)
	h := NewAppointmentHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/consultation/a1/summary", strings.NewReader(`{"transcript":"Doctor: ..."}`))
	req = withVars(asUser(req, userID, entity.RoleDoctor), map[string]string{"id": "a1"})
	rec := httptest.NewRecorder()
	h.Summarize(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"summary":"Follow up in two weeks."}`, string(decodeEnvelope(t, rec).Data))
}

func TestBook(t *testing.T) {
	patientID, doctorID := uuid.New(), uuid.New()

	t.Run("invalid doctor id", func(t *testing.T) {
		h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/book/x", strings.NewReader(`{}`))
		req = withVars(asUser(req, patientID, entity.RolePatient), map[string]string{"id": "x"})
		rec := httptest.NewRecorder()
		h.Book(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid doctor ID", decodeEnvelope(t, rec).Message)
	})

	t.Run("validation", func(t *testing.T) {
		h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/book/"+doctorID.String(), strings.NewReader(`{"date":"2026-13-40","time":"9am"}`))
		req = withVars(asUser(req, patientID, entity.RolePatient), map[string]string{"id": doctorID.String()})
		rec := httptest.NewRecorder()
		h.Book(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, env.Error, "Date")
		assert.Contains(t, env.Error, "Time")
	})

	t.Run("slot taken", func(t *testing.T) {
		uc := &mockAppointmentUsecase{}
		body := &dto.BookAppointmentRequest{Date: "2026-11-02", Time: "10:00"}
		uc.On("Book", mock.Anything, patientID, doctorID, body).Return(nil, usecase.ErrSlotUnavailable)
		h := NewAppointmentHandler(uc, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/book/"+doctorID.String(), strings.NewReader(`{"date":"2026-11-02","time":"10:00"}`))
		req = withVars(asUser(req, patientID, entity.RolePatient), map[string]string{"id": doctorID.String()})
		rec := httptest.NewRecorder()
		h.Book(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("booked", func(t *testing.T) {
		uc := &mockAppointmentUsecase{}
		uc.On("Book", mock.Anything, patientID, doctorID, mock.Anything).Return(&dto.BookingResponse{
			DoctorID: doctorID, DoctorName: "Dr. Meera Shah", Date: "2026-11-02", Time: "10:00", Status: "pending",
		}, nil)
		h := NewAppointmentHandler(uc, validator.NewValidator())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/book/"+doctorID.String(), strings.NewReader(`{"date":"2026-11-02","time":"10:00"}`))
		req = withVars(asUser(req, patientID, entity.RolePatient), map[string]string{"id": doctorID.String()})
		rec := httptest.NewRecorder()
		h.Book(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestListAppointments_RequiresSession(t *testing.T) {
	h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())
	rec := httptest.NewRecorder()
	h.ListAppointments(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
