package handler

import (
	"encoding/json"
	"net/http"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/delivery/http/middleware"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
	"docconnect/pkg/validator"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	validator        *validator.CustomValidator
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, validator *validator.CustomValidator) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		validator:        validator,
	}
}

// GetDashboard returns the role specific dashboard
// @Summary Get dashboard
// @Description Patients get their upcoming appointments. Verified doctors get today's schedule. Doctors still in onboarding get the interstitial view in the decision.
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 303 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.dashboardUsecase.GetDashboard(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// GetHelp returns the FAQ and support contact
// @Summary Help
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /help [get]
func (h *DashboardHandler) GetHelp(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Help retrieved successfully", h.dashboardUsecase.GetHelp(r.Context()))
}

// Scan maps a scanned QR code to a doctor route
// @Summary Scan a doctor QR code
// @Tags Dashboard
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ScanRequest true "Scan Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /scan [post]
func (h *DashboardHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req dto.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	target, err := h.dashboardUsecase.Scan(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidScanURL, usecase.ErrUnsupportedScanTarget:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to read scanned code")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scan resolved", target)
}
