package handler

import (
	"net/http"

	"docconnect/internal/usecase"
	"docconnect/pkg/response"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
	}
}

// ListPatients lists everyone who has booked the calling doctor
// @Summary List patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param q query string false "Matches name or email"
// @Success 200 {object} response.Response
// @Failure 303 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	patients, err := h.patientUsecase.ListPatients(r.Context(), doctorID, r.URL.Query().Get("q"))
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// GetPatient returns one of the doctor's patients with appointment history
// @Summary Get patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), doctorID, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}
