package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/availability"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
	"docconnect/pkg/validator"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GetAvailability returns the calling doctor's saved slots by date
// @Summary Get own availability
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	result, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", result)
}

// GenerateSlots previews evenly spaced slots for a day. Nothing is saved.
// @Summary Generate slots
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateSlotsRequest true "Generate Slots Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /availability/generate [post]
func (h *AvailabilityHandler) GenerateSlots(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.availabilityUsecase.GenerateSlots(r.Context(), &req)
	if err != nil {
		if isSlotInputError(err) {
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.InternalServerError(w, "Failed to generate slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots generated", slots)
}

// SaveDay replaces the slots for one date. An empty list clears the date.
// @Summary Save a day's slots
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param request body dto.SaveSlotsRequest true "Slots"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /availability/{date} [put]
func (h *AvailabilityHandler) SaveDay(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	var req dto.SaveSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	day, err := h.availabilityUsecase.SaveDay(r.Context(), doctorID, mux.Vars(r)["date"], &req)
	if err != nil {
		switch {
		case isSlotInputError(err):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrPermissionDenied):
			response.Forbidden(w, "You don't have permission to update availability")
		default:
			response.InternalServerError(w, "Failed to save availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability saved", day)
}

// RemoveSlot deletes one slot from a date
// @Summary Remove a slot
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param time path string true "Slot (HH:MM)"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /availability/{date}/{time} [delete]
func (h *AvailabilityHandler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	day, err := h.availabilityUsecase.RemoveSlot(r.Context(), doctorID, vars["date"], vars["time"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrSlotNotFound):
			response.NotFound(w, "Slot not found")
		case errors.Is(err, usecase.ErrPermissionDenied):
			response.Forbidden(w, "You don't have permission to update availability")
		default:
			response.InternalServerError(w, "Failed to remove slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot removed", day)
}

func isSlotInputError(err error) bool {
	return errors.Is(err, usecase.ErrInvalidDate) ||
		errors.Is(err, availability.ErrInvalidTime) ||
		errors.Is(err, availability.ErrInvalidRange) ||
		errors.Is(err, availability.ErrInvalidDuration)
}
