package repository

import (
	"context"

	"docconnect/internal/domain/entity"

	"github.com/google/uuid"
)

type IdentityRepository interface {
	Create(ctx context.Context, identity *entity.Identity) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error)
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)
	FindByProviderSubject(ctx context.Context, method entity.SignInMethod, subject string) (*entity.Identity, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
}
