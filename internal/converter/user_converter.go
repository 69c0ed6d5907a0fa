package converter

import (
	"docconnect/internal/delivery/dto"
	"docconnect/internal/domain/entity"
)

// IdentityToResponse converts an Identity entity to IdentityResponse DTO
func IdentityToResponse(identity *entity.Identity) *dto.IdentityResponse {
	if identity == nil {
		return nil
	}

	return &dto.IdentityResponse{
		ID:            identity.ID,
		Email:         identity.Email,
		SignInMethod:  string(identity.SignInMethod),
		EmailVerified: identity.EmailVerified,
		CreatedAt:     identity.CreatedAt,
	}
}

// UserProfileToResponse converts a UserProfile entity to UserProfileResponse DTO
func UserProfileToResponse(profile *entity.UserProfile) *dto.UserProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.UserProfileResponse{
		ID:                 profile.ID,
		Role:               string(profile.Role),
		FirstName:          profile.FirstName,
		LastName:           profile.LastName,
		Username:           profile.Username,
		Email:              profile.Email,
		VerificationStatus: string(profile.VerificationStatus),
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
}
