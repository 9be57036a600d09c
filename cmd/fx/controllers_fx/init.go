package controllers_fx

import (
	"go.uber.org/fx"

	"kusanyiko/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewMemberController),
	fx.Provide(controllers.NewStatsController),
	fx.Provide(controllers.NewExportController))
