package handler

import (
	"errors"
	"io"
	"net/http"

	"docconnect/internal/delivery/dto"
	"docconnect/internal/usecase"
	"docconnect/pkg/response"
	"docconnect/pkg/validator"
)

const licenseFormField = "license"

type CredentialHandler struct {
	credentialUsecase usecase.CredentialUsecase
	validator         *validator.CustomValidator
	maxUploadBytes    int64
}

func NewCredentialHandler(credentialUsecase usecase.CredentialUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *CredentialHandler {
	return &CredentialHandler{
		credentialUsecase: credentialUsecase,
		validator:         validator,
		maxUploadBytes:    maxUploadBytes,
	}
}

// Submit stores a doctor's registration details and queues the license upload
// @Summary Submit credentials
// @Description Multipart form with full_name, state_of_registration, medical_council_id and the license file. The doctor moves to under review immediately; the document uploads in the background.
// @Tags Credentials
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param full_name formData string true "Full name as registered"
// @Param state_of_registration formData string true "State medical council"
// @Param medical_council_id formData string true "Registration number"
// @Param license formData file true "License document (PDF, JPEG or PNG)"
// @Success 202 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 413 {object} response.Response
// @Router /credentials [post]
func (h *CredentialHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	// Leave room for the text fields around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "License document is too large", nil)
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	req := dto.SubmitCredentialsRequest{
		FullName:            r.FormValue("full_name"),
		StateOfRegistration: r.FormValue("state_of_registration"),
		MedicalCouncilID:    r.FormValue("medical_council_id"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	var file *dto.LicenseFile
	part, header, err := r.FormFile(licenseFormField)
	if err == nil {
		defer part.Close()
		data, err := io.ReadAll(part)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Failed to read license document", nil)
			return
		}
		file = &dto.LicenseFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	status, err := h.credentialUsecase.Submit(r.Context(), userID, &req, file)
	if err != nil {
		switch err {
		case usecase.ErrLicenseFileRequired, usecase.ErrUnsupportedLicenseType:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrLicenseFileTooLarge:
			response.Error(w, http.StatusRequestEntityTooLarge, "License document is too large", nil)
		case usecase.ErrCredentialsLocked:
			response.Conflict(w, "Credentials can no longer be changed")
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrPermissionDenied:
			response.Forbidden(w, "You don't have permission to submit credentials")
		default:
			response.InternalServerError(w, "Failed to submit credentials")
		}
		return
	}

	response.Success(w, http.StatusAccepted, "Credentials submitted for review", status)
}

// Status returns the doctor's verification progress
// @Summary Credential status
// @Tags Credentials
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /credentials/status [get]
func (h *CredentialHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUserID(w, r)
	if !ok {
		return
	}

	status, err := h.credentialUsecase.Status(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to get credential status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Credential status retrieved successfully", status)
}
