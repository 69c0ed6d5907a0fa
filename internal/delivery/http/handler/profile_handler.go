package handler

import (
	"encoding/json"
	"net/http"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
	"docconnect/pkg/validator"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

// GetCompletion lists what the complete-profile form still needs
// @Summary Get profile completion
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /profile/complete [get]
func (h *ProfileHandler) GetCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	completion, err := h.profileUsecase.GetCompletion(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", completion)
}

// CompleteProfile sets the role and name, or a doctor's username and practice details
// @Summary Complete profile
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CompleteProfileRequest true "Complete Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /profile/complete [post]
func (h *ProfileHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	var req dto.CompleteProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.CompleteProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleRequired, usecase.ErrNameRequired, usecase.ErrUsernameRequired,
			usecase.ErrInvalidConsultationFee, usecase.ErrRoleChangeNotAllowed:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrPermissionDenied:
			response.Forbidden(w, "You don't have permission to update this profile")
		default:
			response.InternalServerError(w, "Failed to save profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile saved successfully", profile)
}

// GetSettings returns the editable profile
// @Summary Get settings
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /settings [get]
func (h *ProfileHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.profileUsecase.GetSettings(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to get settings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

// UpdateSettings updates name, username and practice details
// @Summary Update settings
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Update Settings Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /settings [put]
func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	settings, err := h.profileUsecase.UpdateSettings(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidConsultationFee:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrNotDoctor:
			response.Forbidden(w, "Only doctors can update professional details")
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrPermissionDenied:
			response.Forbidden(w, "You don't have permission to update this profile")
		default:
			response.InternalServerError(w, "Failed to update settings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Settings updated successfully", settings)
}
