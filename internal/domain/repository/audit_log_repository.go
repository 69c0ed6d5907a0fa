package repository

import (
	"context"

	"docconnect/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, action string, limit, offset int) ([]entity.AuditLog, int64, error)
}
