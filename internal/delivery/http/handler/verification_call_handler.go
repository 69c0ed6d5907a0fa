package handler

import (
	"encoding/json"
	"net/http"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
	"docconnect/pkg/validator"
)

type VerificationCallHandler struct {
	verificationCallUsecase usecase.VerificationCallUsecase
	validator               *validator.CustomValidator
}

func NewVerificationCallHandler(verificationCallUsecase usecase.VerificationCallUsecase, validator *validator.CustomValidator) *VerificationCallHandler {
	return &VerificationCallHandler{
		verificationCallUsecase: verificationCallUsecase,
		validator:               validator,
	}
}

// GetSlots lists the bookable call times and any call already scheduled
// @Summary Verification call slots
// @Tags Verification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /verification-call/slots [get]
func (h *VerificationCallHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	slots, err := h.verificationCallUsecase.GetSlots(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get call slots")
		return
	}

	response.Success(w, http.StatusOK, "Call slots retrieved successfully", slots)
}

// Schedule books the manual verification call
// @Summary Schedule verification call
// @Tags Verification
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ScheduleVerificationCallRequest true "Schedule Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /verification-call [post]
func (h *VerificationCallHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	var req dto.ScheduleVerificationCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	call, err := h.verificationCallUsecase.Schedule(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCallSlot, usecase.ErrInvalidDate, usecase.ErrDateInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrVerificationCallNotAvailable:
			response.Conflict(w, "Verification call is not available at this stage")
		case usecase.ErrPermissionDenied:
			response.Forbidden(w, "You don't have permission to schedule a call")
		default:
			response.InternalServerError(w, "Failed to schedule verification call")
		}
		return
	}

	response.Success(w, http.StatusOK, "Verification call scheduled", call)
}
