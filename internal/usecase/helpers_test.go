package usecase

import (
	"docconnect/internal/domain/entity"
	"docconnect/internal/infrastructure/reporting"
	"docconnect/pkg/logger"

	"github.com/google/uuid"
)

func discardReporter() reporting.Reporter {
	return reporting.NewLogReporter(logger.Discard())
}

func patientProfile(id uuid.UUID) *entity.UserProfile {
	return &entity.UserProfile{ID: id, Role: entity.RolePatient, FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com"}
}

func doctorProfile(id uuid.UUID, status entity.VerificationStatus, username string) *entity.UserProfile {
	return &entity.UserProfile{
		ID:                 id,
		Role:               entity.RoleDoctor,
		FirstName:          "Meera",
		LastName:           "Shah",
		Username:           username,
		Email:              "meera@example.com",
		VerificationStatus: status,
	}
}

func submittedCredentials(id uuid.UUID, manual bool) *entity.DoctorProfile {
	return &entity.DoctorProfile{
		UserID:                     id,
		FullName:                   "Dr. Meera Shah",
		StateOfRegistration:        "Maharashtra",
		MedicalCouncilID:           "MCI-1234",
		ManualVerificationRequired: manual,
	}
}
