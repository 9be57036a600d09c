package user_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"kusanyiko/internal/repositories"
	"kusanyiko/internal/services"
)

var Module = fx.Provide(provideUserService)

func provideUserService(
	accountRepo repositories.AccountRepository,
	memberRepo repositories.MemberRepository,
	auditService services.AuditServiceInterface,
	logger *zap.Logger,
) services.UserServiceInterface {
	return services.NewUserService(accountRepo, memberRepo, auditService, logger)
}
