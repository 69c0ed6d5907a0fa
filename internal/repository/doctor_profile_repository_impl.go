package repository

import (
	"context"
	"errors"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct {
	db *gorm.DB
}

func NewDoctorProfileRepository(db *gorm.DB) domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{db: db}
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := conn(ctx, r.db).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	profile.MigrateLegacyCredentials()
	return &profile, nil
}

func (r *doctorProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	if len(userIDs) == 0 {
		return profiles, nil
	}
	if err := conn(ctx, r.db).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].MigrateLegacyCredentials()
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Merge(ctx context.Context, userID uuid.UUID, fields domainRepo.Fields) error {
	return upsertFields(ctx, r.db, &entity.DoctorProfile{}, "user_id", userID, fields)
}
