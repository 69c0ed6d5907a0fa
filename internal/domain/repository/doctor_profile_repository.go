package repository

import (
	"context"

	"docconnect/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.DoctorProfile, error)
	Merge(ctx context.Context, userID uuid.UUID, fields Fields) error
}
