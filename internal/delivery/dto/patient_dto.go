package dto

type PatientResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	LastAppointment  string `json:"last_appointment,omitempty"`
	AppointmentCount int    `json:"appointment_count"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type PatientDetailResponse struct {
	Patient PatientResponse       `json:"patient"`
	History []AppointmentResponse `json:"history"`
}
