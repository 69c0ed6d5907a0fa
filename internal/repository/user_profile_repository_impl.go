package repository

import (
	"context"
	"errors"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) domainRepo.UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := conn(ctx, r.db).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userProfileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.UserProfile, error) {
	var profiles []entity.UserProfile
	if len(ids) == 0 {
		return profiles, nil
	}
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userProfileRepository) FindByRole(ctx context.Context, role entity.Role, status entity.VerificationStatus) ([]entity.UserProfile, error) {
	var profiles []entity.UserProfile
	query := conn(ctx, r.db).Where("role = ?", role)
	if status != "" {
		query = query.Where("verification_status = ?", status)
	}
	err := query.Order("created_at ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userProfileRepository) Merge(ctx context.Context, id uuid.UUID, fields domainRepo.Fields) error {
	return upsertFields(ctx, r.db, &entity.UserProfile{}, "id", id, fields)
}
