package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CompleteProfileRequest struct {
	Role      string `json:"role" validate:"omitempty,oneof=patient doctor"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Username  string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`

	// Professional details, accepted once credentials are approved.
	Specialization  string `json:"specialization" validate:"omitempty,max=100"`
	ExperienceYears *int   `json:"experience_years" validate:"omitempty,min=0,max=80"`
	Bio             string `json:"bio" validate:"omitempty,max=2000"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty,numeric"`
}

type UpdateSettingsRequest struct {
	FirstName       *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName        *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Username        *string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`
	Specialization  *string `json:"specialization" validate:"omitempty,max=100"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,min=0,max=80"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	ConsultationFee *string `json:"consultation_fee" validate:"omitempty,numeric"`
}

// Response DTOs

type UserProfileResponse struct {
	ID                 uuid.UUID `json:"id"`
	Role               string    `json:"role,omitempty"`
	FirstName          string    `json:"first_name,omitempty"`
	LastName           string    `json:"last_name,omitempty"`
	Username           string    `json:"username,omitempty"`
	Email              string    `json:"email,omitempty"`
	VerificationStatus string    `json:"verification_status,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type DoctorProfileResponse struct {
	FullName                   string          `json:"full_name,omitempty"`
	StateOfRegistration        string          `json:"state_of_registration,omitempty"`
	MedicalCouncilID           string          `json:"medical_council_id,omitempty"`
	LicenseDocument            string          `json:"license_document,omitempty"`
	LicenseUploadStatus        string          `json:"license_upload_status,omitempty"`
	ManualVerificationRequired bool            `json:"manual_verification_required"`
	Specialization             string          `json:"specialization,omitempty"`
	ExperienceYears            int             `json:"experience_years"`
	Bio                        string          `json:"bio,omitempty"`
	ConsultationFee            decimal.Decimal `json:"consultation_fee"`
	VerificationCallAt         *time.Time      `json:"verification_call_at,omitempty"`
}

// ProfileCompletionResponse lists what the complete-profile form still needs.
type ProfileCompletionResponse struct {
	Profile        *UserProfileResponse `json:"profile,omitempty"`
	Stage          string               `json:"stage,omitempty"`
	RequiredFields []string             `json:"required_fields"`
}

type SettingsResponse struct {
	Profile UserProfileResponse    `json:"profile"`
	Doctor  *DoctorProfileResponse `json:"doctor,omitempty"`
}
