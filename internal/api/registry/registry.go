package registry

import (
	"github.com/labstack/echo/v4"

	"trainhub/internal/api/controllers"
	"trainhub/internal/api/middleware"
	"trainhub/internal/models"
	"trainhub/internal/rbac"
	"trainhub/internal/services"

	"gorm.io/gorm"
)

// RegisterCRUDRoutes wires generic CRUD endpoints for the models that need
// no handler logic beyond persistence. Anything with domain rules (passcodes,
// submissions, equipment stock, onboarding) lives in internal/handlers.
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB, guard *middleware.Guard) {
	// Users
	userService := services.NewBaseService(db, models.User{})
	userController := controllers.NewBaseController(userService)
	userGroup := g.Group("/users")
	userGroup.Use(guard.RequireAll(rbac.PermManageUsers))

	// @Summary List users
	// @Description Get a list of all users
	// @Accept json
	// @Produce json
	// @Success 200 {array} models.User
	// @Failure 401 {object} map[string]string "Unauthorized"
	// @Failure 403 {object} map[string]string "Forbidden"
	// @Router /api/v1/users [get]
	userGroup.GET("", userController.List)
	// @Summary Get user
	// @Description Get a user by ID
	// @Accept json
	// @Produce json
	// @Param id path string true "User ID"
	// @Success 200 {object} models.User
	// @Failure 404 {object} map[string]string "Not found"
	// @Router /api/v1/users/{id} [get]
	userGroup.GET("/:id", userController.Get)
	// @Summary Update user
	// @Description Update an existing user
	// @Accept json
	// @Produce json
	// @Param id path string true "User ID"
	// @Param user body models.User true "User object"
	// @Success 200 {object} models.User
	// @Router /api/v1/users/{id} [put]
	userGroup.PUT("/:id", userController.Update)
	// @Summary Delete user
	// @Description Delete a user
	// @Param id path string true "User ID"
	// @Success 204 "No content"
	// @Router /api/v1/users/{id} [delete]
	userGroup.DELETE("/:id", userController.Delete)

	// Equipment catalogue
	equipmentService := services.NewBaseService(db, models.Equipment{})
	equipmentController := controllers.NewBaseController(equipmentService)
	equipmentGroup := g.Group("/equipment")
	equipmentGroup.Use(guard.RequireAny(rbac.PermManageEquipment, rbac.PermViewReports))

	// @Summary List equipment
	// @Description Get the equipment catalogue
	// @Accept json
	// @Produce json
	// @Success 200 {array} models.Equipment
	// @Router /api/v1/equipment [get]
	equipmentGroup.GET("", equipmentController.List)
	// @Summary Get equipment
	// @Description Get an equipment item by ID
	// @Param id path string true "Equipment ID"
	// @Success 200 {object} models.Equipment
	// @Router /api/v1/equipment/{id} [get]
	equipmentGroup.GET("/:id", equipmentController.Get)

	equipmentWriteGroup := equipmentGroup.Group("")
	equipmentWriteGroup.Use(guard.RequireAll(rbac.PermManageEquipment))
	// @Summary Create equipment
	// @Description Add an item to the equipment catalogue
	// @Param equipment body models.Equipment true "Equipment object"
	// @Success 201 {object} models.Equipment
	// @Router /api/v1/equipment [post]
	equipmentWriteGroup.POST("", equipmentController.Create)
	// @Summary Update equipment
	// @Param id path string true "Equipment ID"
	// @Success 200 {object} models.Equipment
	// @Router /api/v1/equipment/{id} [put]
	equipmentWriteGroup.PUT("/:id", equipmentController.Update)
	// @Summary Delete equipment
	// @Param id path string true "Equipment ID"
	// @Success 204 "No content"
	// @Router /api/v1/equipment/{id} [delete]
	equipmentWriteGroup.DELETE("/:id", equipmentController.Delete)

	// Maintenance records
	maintenanceService := services.NewBaseService(db, models.MaintenanceRecord{})
	maintenanceController := controllers.NewBaseController(maintenanceService)
	maintenanceGroup := g.Group("/maintenance-records")
	maintenanceGroup.Use(guard.RequireAll(rbac.PermManageEquipment))
	maintenanceController.RegisterRoutes(maintenanceGroup, "")

	// Training sets (the catalogue of module bundles supervisors assign from)
	trainingSetService := services.NewBaseService(db, models.TrainingSet{})
	trainingSetController := controllers.NewBaseController(trainingSetService)
	trainingSetGroup := g.Group("/training-sets")
	trainingSetGroup.Use(guard.RequireAll(rbac.PermManageTraining))
	trainingSetController.RegisterRoutes(trainingSetGroup, "")

	// Trainee verifications
	verificationService := services.NewBaseService(db, models.TraineeVerification{})
	verificationController := controllers.NewBaseController(verificationService)
	verificationGroup := g.Group("/trainee-verifications")
	verificationGroup.Use(guard.RequireAll(rbac.PermManageTrainees))
	verificationController.RegisterRoutes(verificationGroup, "")

	// Files: listing and lookup only, uploads go through the upload handler.
	fileService := services.NewBaseService(db, models.File{})
	fileController := controllers.NewBaseController(fileService)
	fileGroup := g.Group("/files")
	fileGroup.Use(guard.Authenticated())
	// @Summary List files
	// @Description Get a list of files visible to the caller
	// @Success 200 {array} models.File
	// @Router /api/v1/files [get]
	fileGroup.GET("", fileController.List)
	// @Summary Get file
	// @Param id path string true "File ID"
	// @Success 200 {object} models.File
	// @Router /api/v1/files/{id} [get]
	fileGroup.GET("/:id", fileController.Get)
}
