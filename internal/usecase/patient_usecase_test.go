package usecase

import (
	"context"
	"testing"

	"docconnect/internal/domain/entity"
	"docconnect/internal/mocks"
	"docconnect/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPatientRoster(t *testing.T) {
	appointments := &mocks.AppointmentRepository{}
	users := &mocks.UserProfileRepository{}
	uc := NewPatientUsecase(logger.Discard(), appointments, users)

	doctorID, known := uuid.New(), uuid.New()
	appointments.On("FindByDoctorID", mock.Anything, doctorID.String()).Return([]entity.Appointment{
		{ID: "a1", DoctorID: doctorID.String(), PatientID: known.String(), PatientName: "Old Name", Date: "2026-10-01", Time: "09:00", Status: entity.AppointmentCompleted},
		{ID: "a2", DoctorID: doctorID.String(), PatientID: "legacy-1", PatientName: "Raj Patel", Date: "2026-10-03", Time: "09:00", Status: entity.AppointmentCompleted},
		{ID: "a3", DoctorID: doctorID.String(), PatientID: known.String(), PatientName: "Old Name", Date: "2026-11-04", Time: "10:00", Status: entity.AppointmentUpcoming},
	}, nil)
	users.On("FindByIDs", mock.Anything, []uuid.UUID{known}).Return([]entity.UserProfile{*patientProfile(known)}, nil)

	list, err := uc.ListPatients(context.Background(), doctorID, "")
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Ana Lopez", list.Patients[0].Name)
	assert.Equal(t, "ana@example.com", list.Patients[0].Email)
	assert.Equal(t, 2, list.Patients[0].AppointmentCount)
	assert.Equal(t, "2026-11-04", list.Patients[0].LastAppointment)
	assert.Equal(t, "Raj Patel", list.Patients[1].Name)

	list, err = uc.ListPatients(context.Background(), doctorID, "example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	detail, err := uc.GetPatient(context.Background(), doctorID, known.String())
	require.NoError(t, err)
	require.Len(t, detail.History, 2)
	assert.Equal(t, "a3", detail.History[0].ID)

	_, err = uc.GetPatient(context.Background(), doctorID, uuid.NewString())
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
