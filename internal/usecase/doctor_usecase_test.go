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

func TestDoctorSearch_SplitsConnectedDoctors(t *testing.T) {
	users := &mocks.UserProfileRepository{}
	doctors := &mocks.DoctorProfileRepository{}
	appointments := &mocks.AppointmentRepository{}
	uc := NewDoctorUsecase(logger.Discard(), users, doctors, appointments)

	patientID, cardio, derm := uuid.New(), uuid.New(), uuid.New()
	cardioUser := doctorProfile(cardio, entity.VerificationVerified, "cardio")
	dermUser := doctorProfile(derm, entity.VerificationVerified, "derm")
	dermUser.FirstName, dermUser.LastName = "Arjun", "Mehta"

	users.On("FindByRole", mock.Anything, entity.RoleDoctor, entity.VerificationVerified).Return([]entity.UserProfile{*cardioUser, *dermUser}, nil)
	doctors.On("FindByUserIDs", mock.Anything, []uuid.UUID{cardio, derm}).Return([]entity.DoctorProfile{
		{UserID: cardio, FullName: "Dr. Meera Shah", Specialization: "Cardiology"},
		{UserID: derm, Specialization: "Dermatology"},
	}, nil)
	appointments.On("FindByPatientID", mock.Anything, patientID.String()).Return([]entity.Appointment{
		{ID: "a1", DoctorID: cardio.String(), PatientID: patientID.String()},
	}, nil)

	resp, err := uc.Search(context.Background(), patientID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Connected, 1)
	assert.Equal(t, "Dr. Meera Shah", resp.Connected[0].Name)
	require.Len(t, resp.Others, 1)
	assert.Equal(t, "Arjun Mehta", resp.Others[0].Name)

	resp, err = uc.Search(context.Background(), patientID, "DERMA")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Empty(t, resp.Connected)
}

func TestDoctorGetAvailability(t *testing.T) {
	users := &mocks.UserProfileRepository{}
	doctors := &mocks.DoctorProfileRepository{}
	uc := NewDoctorUsecase(logger.Discard(), users, doctors, &mocks.AppointmentRepository{})

	id, pending := uuid.New(), uuid.New()
	profile := submittedCredentials(id, true)
	profile.Availability = entity.Availability{"2026-11-02": {"09:00", "09:30"}}
	users.On("FindByID", mock.Anything, id).Return(doctorProfile(id, entity.VerificationVerified, "drm"), nil)
	users.On("FindByID", mock.Anything, pending).Return(doctorProfile(pending, entity.VerificationPending, ""), nil)
	doctors.On("FindByUserID", mock.Anything, id).Return(profile, nil)

	resp, err := uc.GetAvailability(context.Background(), id, "2026-11-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Slots)

	resp, err = uc.GetAvailability(context.Background(), id, "2026-11-03")
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	_, err = uc.GetAvailability(context.Background(), id, "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.GetDoctor(context.Background(), pending)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
