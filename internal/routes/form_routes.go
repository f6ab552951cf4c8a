package routes

import (
	"trainhub/internal/api/middleware"
	"trainhub/internal/handlers"
	"trainhub/internal/rbac"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupFormRoutes(api *echo.Group, db *gorm.DB, guard *middleware.Guard) {
	formHandler := handlers.NewFormHandler(db)

	forms := api.Group("/forms")
	forms.Use(guard.Authenticated())

	// Drafts: any authenticated caller, one draft per form kind
	forms.PUT("/:kind/draft", formHandler.SaveDraft)
	forms.GET("/:kind/draft", formHandler.GetDraft)

	// Onboarding form submissions
	forms.POST("/welcome-policy", formHandler.SubmitWelcomePolicy)
	forms.POST("/course-registration", formHandler.SubmitCourseRegistration)
	forms.POST("/medical-screening", formHandler.SubmitMedicalScreening)
	forms.POST("/bosiet", formHandler.SubmitBosiet)
	forms.POST("/fire-watch", formHandler.SubmitFireWatch)
	forms.POST("/cser", formHandler.SubmitCSER)
	forms.POST("/size", formHandler.SubmitSize)

	// Safety observation reports
	reports := forms.Group("")
	reports.Use(guard.RequireAny(rbac.PermSubmitUseeUact, rbac.PermViewUseeUact))
	reports.POST("/usee-uact", formHandler.SubmitUseeUact)
	reports.GET("/usee-uact", formHandler.ListUseeUact)

	// Medical data stays behind its own permission
	medical := forms.Group("")
	medical.Use(guard.RequireAll(rbac.PermViewMedicalData))
	medical.GET("/medical-screening", formHandler.ListMedicalScreenings)
}
