package converter

import (
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorProfileResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		FullName:                   profile.FullName,
		StateOfRegistration:        profile.StateOfRegistration,
		MedicalCouncilID:           profile.MedicalCouncilID,
		LicenseDocument:            profile.LicenseDocument,
		LicenseUploadStatus:        string(profile.LicenseUploadStatus),
		ManualVerificationRequired: profile.ManualVerificationRequired,
		Specialization:             profile.Specialization,
		ExperienceYears:            profile.ExperienceYears,
		Bio:                        profile.Bio,
		ConsultationFee:            profile.ConsultationFee,
		VerificationCallAt:         profile.VerificationCallAt,
	}
}

// DoctorToResponse converts the public Doctor read model to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Username:        doctor.Username,
		Email:           doctor.Email,
		Specialization:  doctor.Specialization,
		ExperienceYears: doctor.ExperienceYears,
		Bio:             doctor.Bio,
		ConsultationFee: doctor.ConsultationFee,
		AvailableDates:  doctor.Availability.Dates(),
	}
}

// DoctorsToResponses converts a slice of Doctor read models to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []*entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for _, doctor := range doctors {
		responses = append(responses, *DoctorToResponse(doctor))
	}
	return responses
}
