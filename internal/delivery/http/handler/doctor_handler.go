package handler

import (
	"net/http"

	"docconnect/internal/usecase"
	"docconnect/pkg/response"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
	}
}

// Search lists verified doctors, split into the ones the caller has booked and the rest
// @Summary Search doctors
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param q query string false "Matches name or specialization"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	doctors, err := h.doctorUsecase.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor gets a verified doctor's public profile
// @Summary Get doctor by ID
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, mux.Vars(r)["id"], "Invalid doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetAvailability lists a doctor's open slots on one date
// @Summary Get doctor availability
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, mux.Vars(r)["id"], "Invalid doctor ID")
	if !ok {
		return
	}

	slots, err := h.doctorUsecase.GetAvailability(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}
