package stats_fx

import (
	"go.uber.org/fx"

	"kusanyiko/internal/repositories"
	"kusanyiko/internal/services"
)

var Module = fx.Provide(provideStatsService)

func provideStatsService(memberRepo repositories.MemberRepository) services.StatsServiceInterface {
	return services.NewStatsService(memberRepo)
}
