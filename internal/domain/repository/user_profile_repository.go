package repository

import (
	"context"

	"docconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// UserProfileRepository reads return (nil, nil) when the document does not exist.
type UserProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.UserProfile, error)
	// FindByRole lists profiles with the role; an empty status matches any status.
	FindByRole(ctx context.Context, role entity.Role, status entity.VerificationStatus) ([]entity.UserProfile, error)
	// Merge creates the document if needed and overwrites only the given fields.
	Merge(ctx context.Context, id uuid.UUID, fields Fields) error
}
