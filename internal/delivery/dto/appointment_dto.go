package dto

import "github.com/google/uuid"

// Request DTOs

type BookAppointmentRequest struct {
	Date string `json:"date" validate:"required,yyyymmdd"`
	Time string `json:"time" validate:"required,hhmm"`
}

type SummarizeRequest struct {
	Transcript string `json:"transcript"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          string `json:"id"`
	DoctorID    string `json:"doctor_id"`
	DoctorName  string `json:"doctor_name,omitempty"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

type AppointmentGroupsResponse struct {
	Upcoming  []AppointmentResponse `json:"upcoming"`
	Completed []AppointmentResponse `json:"completed"`
	Cancelled []AppointmentResponse `json:"cancelled"`
}

type ConsultationListResponse struct {
	Consultations []AppointmentResponse `json:"consultations"`
	Total         int                   `json:"total"`
}

type ConsultationResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Transcript  string              `json:"transcript"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type BookingResponse struct {
	DoctorID   uuid.UUID `json:"doctor_id"`
	DoctorName string    `json:"doctor_name"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     string    `json:"status"`
}
