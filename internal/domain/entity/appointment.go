package entity

import "sort"

// AppointmentStatus of a catalogue appointment.
type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "Upcoming"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// Appointment is read-only catalogue data; there are no lifecycle transitions.
type Appointment struct {
	ID          string            `json:"id"`
	DoctorID    string            `json:"doctorId"`
	PatientID   string            `json:"patientId"`
	PatientName string            `json:"patientName"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Status      AppointmentStatus `json:"status"`
}

func (a *Appointment) IsUpcoming() bool {
	return a.Status == AppointmentUpcoming
}

func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentCompleted
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// InvolvesUser reports whether the user is the doctor or the patient of the appointment.
func (a *Appointment) InvolvesUser(userID string) bool {
	return a.DoctorID == userID || a.PatientID == userID
}

// SortAppointmentsDesc orders by date then time, newest first.
func SortAppointmentsDesc(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}
		return appointments[i].Time > appointments[j].Time
	})
}
