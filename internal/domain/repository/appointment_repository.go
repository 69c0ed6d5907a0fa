package repository

import (
	"context"

	"docconnect/internal/domain/entity"
)

// AppointmentRepository serves the read-only appointment catalogue.
type AppointmentRepository interface {
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error)
}
