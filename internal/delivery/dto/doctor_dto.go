package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Username        string          `json:"username,omitempty"`
	Email           string          `json:"email,omitempty"`
	Specialization  string          `json:"specialization,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	Bio             string          `json:"bio,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	AvailableDates  []string        `json:"available_dates"`
}

// DoctorSearchResponse splits results into doctors the patient has an
// appointment with and everyone else.
type DoctorSearchResponse struct {
	Connected []DoctorResponse `json:"connected"`
	Others    []DoctorResponse `json:"others"`
	Total     int              `json:"total"`
}

type DaySlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
