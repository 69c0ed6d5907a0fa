package converter

import (
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment to AppointmentResponse DTO.
// doctorNames may be nil.
func AppointmentToResponse(appointment *entity.Appointment, doctorNames map[string]string) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:          appointment.ID,
		DoctorID:    appointment.DoctorID,
		DoctorName:  doctorNames[appointment.DoctorID],
		PatientID:   appointment.PatientID,
		PatientName: appointment.PatientName,
		Date:        appointment.Date,
		Time:        appointment.Time,
		Status:      string(appointment.Status),
	}
}

func AppointmentsToResponses(appointments []entity.Appointment, doctorNames map[string]string) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = AppointmentToResponse(&appointments[i], doctorNames)
	}
	return responses
}
