package routes

import (
	"trainhub/internal/api/middleware"
	"trainhub/internal/handlers"
	"trainhub/internal/rbac"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupRequestRoutes(api *echo.Group, db *gorm.DB, guard *middleware.Guard) {
	requestHandler := handlers.NewRequestHandler(db)

	requests := api.Group("/requests")
	requests.Use(guard.Authenticated())
	requests.POST("", requestHandler.Create)
	requests.GET("", requestHandler.List)

	review := requests.Group("")
	review.Use(guard.RequireAll(rbac.PermManageRequests))
	review.PUT("/:id/status", requestHandler.UpdateStatus)
}
