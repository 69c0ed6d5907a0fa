package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/infrastructure/llm"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
	"docconnect/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book requests an appointment with a verified doctor
// @Summary Book appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.BookAppointmentRequest true "Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /book/{id} [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID, ok := sessionUserID(w, r)
	if !ok {
		return
	}
	doctorID, ok := pathUUID(w, mux.Vars(r)["id"], "Invalid doctor ID")
	if !ok {
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.appointmentUsecase.Book(r.Context(), patientID, doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate, usecase.ErrDateInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSlotUnavailable:
			response.Conflict(w, "The selected time is not available")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment requested", booking)
}

// ListAppointments returns the caller's appointments grouped by status
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	groups, err := h.appointmentUsecase.ListAppointments(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", groups)
}

// ListConsultations returns the caller's completed appointments
// @Summary List consultations
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /consultations [get]
func (h *AppointmentHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	consultations, err := h.appointmentUsecase.ListConsultations(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

// GetConsultation returns one consultation with its transcript
// @Summary Get consultation
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /consultation/{id} [get]
func (h *AppointmentHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	consultation, err := h.appointmentUsecase.GetConsultation(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Consultation not found")
		default:
			response.InternalServerError(w, "Failed to get consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

// Summarize asks the language model for a summary of a consultation transcript
// @Summary Summarize consultation
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.SummarizeRequest true "Transcript"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /consultation/{id}/summary [post]
func (h *AppointmentHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	var req dto.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	summary, err := h.appointmentUsecase.Summarize(r.Context(), userID, mux.Vars(r)["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Consultation not found")
		case errors.Is(err, llm.ErrInvalidTranscript):
			response.Error(w, http.StatusBadRequest, "Invalid transcript provided.", nil)
		case errors.Is(err, llm.ErrSummaryFailed):
			response.Error(w, http.StatusBadGateway, "Failed to summarize transcript.", nil)
		default:
			response.InternalServerError(w, "Failed to summarize transcript.")
		}
		return
	}

	response.Success(w, http.StatusOK, "Summary generated", summary)
}
