package dto

type DashboardResponse struct {
	Decision NavigationDecision `json:"decision"`
	Patient  *PatientDashboard  `json:"patient,omitempty"`
	Doctor   *DoctorDashboard   `json:"doctor,omitempty"`
}

type PatientDashboard struct {
	Upcoming          []AppointmentResponse `json:"upcoming"`
	CompletedCount    int                   `json:"completed_count"`
	NextAppointmentID string                `json:"next_appointment_id,omitempty"`
}

type DoctorDashboard struct {
	Today             []AppointmentResponse `json:"today"`
	TotalAppointments int                   `json:"total_appointments"`
	UpcomingCount     int                   `json:"upcoming_count"`
	PatientCount      int                   `json:"patient_count"`
}
