package service

import (
	"context"

	"docconnect/internal/domain/entity"
	"docconnect/internal/domain/repository"
	"docconnect/internal/infrastructure/monitoring"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService writes audit rows through the transaction bound to ctx, if any.
type AuditService interface {
	LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogEvent(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
	metrics   *monitoring.Metrics
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository, metrics *monitoring.Metrics) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
		metrics:   metrics,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.LogEvent(ctx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.LogEvent(ctx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) LogEvent(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		s.metrics.RecordAuditEvent(action, false)
		return err
	}

	s.metrics.RecordAuditEvent(action, true)
	return nil
}
