package audit_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kusanyiko/internal/repositories"
	"kusanyiko/internal/services"
)

var Module = fx.Provide(
	provideAuditService, provideAuditRepo)

func provideAuditRepo(db *gorm.DB) repositories.AuditRepository {
	return repositories.NewAuditRepository(db)
}

func provideAuditService(auditRepo repositories.AuditRepository, logger *zap.Logger) services.AuditServiceInterface {
	return services.NewAuditService(auditRepo, logger)
}
