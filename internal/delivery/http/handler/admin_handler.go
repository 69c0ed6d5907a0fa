package handler

import (
	"encoding/json"
	"net/http"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
	"docconnect/pkg/validator"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

// ListDoctors lists doctors for review
// @Summary List doctors (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, verified or rejected"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/doctors [get]
func (h *AdminHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.ListDoctors(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// ReviewDoctor approves, rejects or flags a doctor for a verification call
// @Summary Review doctor (admin)
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.ReviewDoctorRequest true "Review Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors/{id}/verification [put]
func (h *AdminHandler) ReviewDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := sessionUserID(w, r)
	if !ok {
		return
	}
	doctorID, ok := pathUUID(w, mux.Vars(r)["id"], "Invalid doctor ID")
	if !ok {
		return
	}

	var req dto.ReviewDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.adminUsecase.ReviewDoctor(r.Context(), adminID, doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmptyReview, usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrCredentialsMissing:
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case usecase.ErrPermissionDenied:
			response.Forbidden(w, "You don't have permission to review this doctor")
		default:
			response.InternalServerError(w, "Failed to review doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor reviewed successfully", doctor)
}
