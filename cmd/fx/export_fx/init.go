package export_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kusanyiko/internal/repositories"
	"kusanyiko/internal/services"
)

var Module = fx.Provide(
	provideExportService, provideExportRepo)

func provideExportRepo(db *gorm.DB) repositories.ExportRepository {
	return repositories.NewExportRepository(db)
}

func provideExportService(
	memberRepo repositories.MemberRepository,
	accountRepo repositories.AccountRepository,
	auditRepo repositories.AuditRepository,
	exportRepo repositories.ExportRepository,
	logger *zap.Logger,
) services.ExportServiceInterface {
	return services.NewExportService(memberRepo, accountRepo, auditRepo, exportRepo, logger)
}
