package routes

import (
	"trainhub/internal/api/middleware"
	"trainhub/internal/handlers"
	"trainhub/internal/rbac"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupTrainingRoutes(api *echo.Group, db *gorm.DB, guard *middleware.Guard) {
	trainingHandler := handlers.NewTrainingHandler(db)

	training := api.Group("/training")

	assignments := training.Group("/assignments")
	assignments.Use(guard.RequireAll(rbac.PermManageTraining))
	assignments.POST("", trainingHandler.AssignModules)
	assignments.GET("/:email", trainingHandler.GetAssignment)

	completions := training.Group("/completions")
	completions.Use(guard.RequireAll(rbac.PermManageTraining))
	completions.POST("", trainingHandler.RecordCompletion)

	completionList := training.Group("")
	completionList.Use(guard.RequireAny(rbac.PermManageTraining, rbac.PermViewReports))
	completionList.GET("/completions", trainingHandler.ListCompletions)

	certificates := training.Group("/certificates")
	certificates.Use(guard.Authenticated())
	certificates.POST("/verify", trainingHandler.VerifyCertificate)

	// Onboarding sequence: the trainee walks their own steps
	onboardingGroup := api.Group("/onboarding")
	onboardingGroup.Use(guard.Authenticated())
	onboardingGroup.GET("/steps", trainingHandler.Steps)
	onboardingGroup.POST("/next", trainingHandler.Advance)
	onboardingGroup.POST("/previous", trainingHandler.Back)
}
