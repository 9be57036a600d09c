package member_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kusanyiko/internal/repositories"
	"kusanyiko/internal/services"
)

var Module = fx.Provide(
	provideMemberService, provideMemberRepo)

func provideMemberRepo(db *gorm.DB) repositories.MemberRepository {
	return repositories.NewMemberRepository(db)
}

func provideMemberService(
	memberRepo repositories.MemberRepository,
	auditService services.AuditServiceInterface,
	logger *zap.Logger,
) services.MemberServiceInterface {
	return services.NewMemberService(memberRepo, auditService, logger)
}
