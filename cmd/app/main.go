package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"kusanyiko/cmd/fx/account_fx"
	"kusanyiko/cmd/fx/audit_fx"
	"kusanyiko/cmd/fx/controllers_fx"
	"kusanyiko/cmd/fx/db_fx"
	"kusanyiko/cmd/fx/export_fx"
	"kusanyiko/cmd/fx/logger_fx"
	"kusanyiko/cmd/fx/mail_fx"
	"kusanyiko/cmd/fx/member_fx"
	"kusanyiko/cmd/fx/stats_fx"
	"kusanyiko/cmd/fx/user_fx"
	"kusanyiko/internal/api/controllers"
	"kusanyiko/internal/models/db_models"
	"kusanyiko/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		logger_fx.Module,
		db_fx.Module,
		mail_fx.Module,
		audit_fx.Module,
		account_fx.Module,
		member_fx.Module,
		user_fx.Module,
		stats_fx.Module,
		export_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8000"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	userController *controllers.UserController,
	memberController *controllers.MemberController,
	statsController *controllers.StatsController,
	exportController *controllers.ExportController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, userController, memberController, statsController, exportController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	userController *controllers.UserController,
	memberController *controllers.MemberController,
	statsController *controllers.StatsController,
	exportController *controllers.ExportController) {

	auth := r.Group("/auth")
	auth.POST("/signup", accountController.Signup)
	auth.POST("/login", accountController.Login)
	auth.POST("/token/refresh", accountController.Refresh)
	auth.POST("/forgot-password", accountController.ForgotPassword)
	auth.POST("/reset-password", accountController.ResetPassword)

	profile := auth.Group("/profile", middleware.JWTAuthMiddleware())
	profile.GET("", accountController.Profile)
	profile.PATCH("", accountController.UpdateProfile)

	members := r.Group("/members")
	members.GET("/search", memberController.PublicSearch)

	membersAuth := members.Group("", middleware.JWTAuthMiddleware())
	membersAuth.GET("", memberController.List)
	membersAuth.POST("", memberController.Create)
	membersAuth.GET("/export", memberController.Export)
	membersAuth.GET("/:id", memberController.Get)
	membersAuth.PUT("/:id", memberController.Update)
	membersAuth.DELETE("/:id", memberController.Delete)

	users := r.Group("/users", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(db_models.RoleAdmin))
	users.GET("", userController.List)
	users.POST("", userController.Create)
	users.GET("/stats", userController.Stats)
	users.GET("/:id", userController.Get)
	users.PUT("/:id", userController.Update)
	users.DELETE("/:id", userController.Delete)
	users.PATCH("/:id/status", userController.SetStatus)
	users.PATCH("/:id/role", userController.SetRole)
	users.GET("/:id/activity", userController.Activity)
	users.POST("/:id/reset_password", userController.ResetPassword)
	users.POST("/:id/unlock_account", userController.Unlock)

	analytics := r.Group("/analytics", middleware.JWTAuthMiddleware())
	analytics.GET("/admin", middleware.RoleMiddleware(db_models.RoleAdmin), statsController.AdminStats)
	analytics.GET("/registrant", statsController.RegistrantStats)

	exports := r.Group("/export", middleware.JWTAuthMiddleware())
	exports.POST("/members", exportController.Members)
	exports.POST("/analytics", exportController.Analytics)
	exports.POST("/user-activity", middleware.RoleMiddleware(db_models.RoleAdmin), exportController.UserActivity)
	exports.POST("/financial", exportController.Financial)
	exports.GET("/history", exportController.History)
}
