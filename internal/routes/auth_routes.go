package routes

import (
	"trainhub/internal/api/middleware"
	"trainhub/internal/config"
	"trainhub/internal/handlers"
	"trainhub/internal/passcode"
	"trainhub/internal/rbac"
	"trainhub/internal/session"
	"trainhub/internal/tasks"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, sessions *session.Manager, passcodes *passcode.Service, taskClient *tasks.TaskClient, guard *middleware.Guard) {
	authHandler := handlers.NewAuthHandler(db, sessions, passcodes, taskClient)

	base := e.Group("/api/v1")

	// Public auth routes group
	auth := base.Group("/auth")

	// Public routes (no auth required)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/trainee-login", authHandler.TraineeLogin)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected auth routes (require authentication)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, sessions)
	protectedAuth := auth.Group("")
	protectedAuth.Use(authMiddleware.Middleware())
	protectedAuth.GET("/me", authHandler.Me)
	protectedAuth.POST("/logout", authHandler.Logout)

	// Passcode management (staff holding manage_passcodes)
	passcodeGroup := base.Group("/passcodes")
	passcodeGroup.Use(authMiddleware.Middleware())
	passcodeGroup.Use(guard.RequireAll(rbac.PermManagePasscodes))
	passcodeGroup.POST("", authHandler.IssuePasscode)
	passcodeGroup.GET("", authHandler.ListPasscodes)
	passcodeGroup.POST("/sweep", authHandler.SweepPasscodes)
}
