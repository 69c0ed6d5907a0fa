package repository

import (
	"context"
	"errors"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) domainRepo.IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	return translate(conn(ctx, r.db).Create(identity).Error)
}

func (r *identityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Identity, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *identityRepository) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return r.first(conn(ctx, r.db).Where("LOWER(email) = LOWER(?)", email))
}

func (r *identityRepository) FindByProviderSubject(ctx context.Context, method entity.SignInMethod, subject string) (*entity.Identity, error) {
	return r.first(conn(ctx, r.db).Where("sign_in_method = ? AND provider_subject = ?", method, subject))
}

func (r *identityRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Model(&entity.Identity{}).Where("id = ?", id).Update("email_verified", true).Error)
}

func (r *identityRepository) first(query *gorm.DB) (*entity.Identity, error) {
	var identity entity.Identity
	err := query.First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}
