package routes

import (
	"trainhub/internal/api/middleware"
	"trainhub/internal/handlers"
	"trainhub/internal/rbac"
	"trainhub/internal/services"
	"trainhub/internal/tasks"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupEquipmentRoutes(api *echo.Group, db *gorm.DB, taskClient *tasks.TaskClient, guard *middleware.Guard) {
	equipmentHandler := handlers.NewEquipmentHandler(db, services.NewEquipmentService(db), taskClient)

	// Stock reporting
	stock := api.Group("/equipment")
	stock.Use(guard.RequireAll(rbac.PermManageEquipment))
	stock.GET("/low-stock", equipmentHandler.LowStock)
	stock.POST("/low-stock/check", equipmentHandler.CheckLowStock)

	// Requests: anyone logged in may file and list; review needs the
	// equipment permission
	requests := api.Group("/equipment-requests")
	requests.Use(guard.Authenticated())
	requests.POST("", equipmentHandler.CreateRequest)
	requests.GET("", equipmentHandler.ListRequests)

	review := requests.Group("")
	review.Use(guard.RequireAll(rbac.PermManageEquipment))
	review.PUT("/:id/status", equipmentHandler.UpdateRequestStatus)

	// Assignments
	assignments := api.Group("/equipment-assignments")
	assignments.Use(guard.RequireAll(rbac.PermManageEquipment))
	assignments.POST("", equipmentHandler.Assign)
	assignments.POST("/:id/return", equipmentHandler.Return)
}
