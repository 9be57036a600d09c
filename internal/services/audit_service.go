package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kusanyiko/internal/models/db_models"
	"kusanyiko/internal/repositories"
)

// RequestMeta carries the client facts every audited operation records.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type AuditServiceInterface interface {
	// Log appends best-effort: a failed write is logged and swallowed so it
	// never aborts the operation being audited.
	Log(ctx context.Context, accountID *uuid.UUID, action, resourceType, resourceID string, details map[string]interface{}, meta RequestMeta)

	ByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepository
	logger    *zap.Logger
}

func NewAuditService(auditRepo repositories.AuditRepository, logger *zap.Logger) AuditServiceInterface {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *AuditService) Log(ctx context.Context, accountID *uuid.UUID, action, resourceType, resourceID string, details map[string]interface{}, meta RequestMeta) {
	if details == nil {
		details = map[string]interface{}{}
	}

	entry := &db_models.AuditLog{
		AccountID:    accountID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	}

	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		s.logger.Error("audit log write failed",
			zap.String("action", action),
			zap.String("resource_type", resourceType),
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}
}

func (s *AuditService) ByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]db_models.AuditLog, error) {
	logs, err := s.auditRepo.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}
	return logs, nil
}
