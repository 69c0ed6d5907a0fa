package converter

import (
	"testing"
	"time"

	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/onboarding"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionToResponse(t *testing.T) {
	decision := onboarding.Resolve(onboarding.RouteDashboard, onboarding.GuardInput{
		Identity: &entity.Identity{ID: uuid.New(), SignInMethod: entity.SignInMethodGoogle},
		Profile:  &entity.UserProfile{Role: entity.RoleDoctor, VerificationStatus: entity.VerificationPending},
	}, nil)

	resp := DecisionToResponse(decision)

	assert.Equal(t, "ready", resp.Outcome)
	assert.Equal(t, "doctor_awaiting_credentials", resp.Stage)
	assert.Equal(t, onboarding.RouteVerifyCredentials, resp.Redirect)
	require.NotNil(t, resp.View)
	assert.Equal(t, "Submit Credentials", resp.View.PrimaryAction)
}

func TestDecisionToResponse_NoView(t *testing.T) {
	resp := DecisionToResponse(onboarding.Resolve("/doctors", onboarding.GuardInput{}, nil))

	assert.Equal(t, "unauthenticated", resp.Outcome)
	assert.Equal(t, onboarding.RouteLogin, resp.Redirect)
	assert.Nil(t, resp.View)
}

func TestDoctorToResponse(t *testing.T) {
	user := &entity.UserProfile{
		ID:                 uuid.New(),
		Role:               entity.RoleDoctor,
		FirstName:          "Ada",
		LastName:           "Okafor",
		VerificationStatus: entity.VerificationVerified,
	}
	profile := &entity.DoctorProfile{
		Specialization:  "Cardiologist",
		ConsultationFee: decimal.RequireFromString("45.50"),
		Availability: entity.Availability{
			"2024-08-16": {"09:00"},
			"2024-08-15": {"10:00"},
			"2024-08-17": {},
		},
	}

	resp := DoctorToResponse(entity.NewDoctor(user, profile))

	require.NotNil(t, resp)
	assert.Equal(t, "Ada Okafor", resp.Name)
	assert.Equal(t, []string{"2024-08-15", "2024-08-16"}, resp.AvailableDates)
	assert.True(t, resp.ConsultationFee.Equal(decimal.RequireFromString("45.5")))
	assert.Nil(t, DoctorToResponse(nil))
}

func TestAppointmentsToResponses(t *testing.T) {
	appointments := []entity.Appointment{
		{ID: "apt1", DoctorID: "d1", PatientID: "p1", PatientName: "Sam", Date: "2024-08-15", Time: "10:00", Status: entity.AppointmentUpcoming},
		{ID: "apt2", DoctorID: "d2", PatientID: "p1", PatientName: "Sam", Date: "2024-08-01", Time: "11:00", Status: entity.AppointmentCompleted},
	}

	resp := AppointmentsToResponses(appointments, map[string]string{"d1": "Dr. One"})

	require.Len(t, resp, 2)
	assert.Equal(t, "Dr. One", resp[0].DoctorName)
	assert.Empty(t, resp[1].DoctorName)
	assert.Equal(t, "Completed", resp[1].Status)
}

func TestUserProfileToResponse(t *testing.T) {
	now := time.Now()
	profile := &entity.UserProfile{ID: uuid.New(), Role: entity.RolePatient, FirstName: "Sam", CreatedAt: now}

	resp := UserProfileToResponse(profile)

	assert.Equal(t, "patient", resp.Role)
	assert.Equal(t, now, resp.CreatedAt)
	assert.Nil(t, UserProfileToResponse(nil))
	assert.Nil(t, IdentityToResponse(nil))
}
