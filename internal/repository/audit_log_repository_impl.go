package repository

import (
	"context"

	"docconnect/internal/domain/entity"
	domainRepo "docconnect/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return conn(ctx, r.db).Create(log).Error
}

func (r *auditLogRepository) FindAll(ctx context.Context, action string, limit, offset int) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	scope := func() *gorm.DB {
		query := conn(ctx, r.db).Model(&entity.AuditLog{})
		if action != "" {
			query = query.Where("action = ?", action)
		}
		return query
	}
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := scope().Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
