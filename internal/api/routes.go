package api

import (
	"net/http"

	"trainhub/internal/api/middleware"
	"trainhub/internal/api/registry"
	"trainhub/internal/routes"

	_ "trainhub/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "TrainHub API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	api := s.echo.Group("/api/v1")
	auth := middleware.NewAuthMiddleware(s.config.JWT.Secret, s.sessions)
	api.Use(auth.Middleware())

	// Generic CRUD routes, each group behind its permission
	registry.RegisterCRUDRoutes(api, s.db, s.guard)

	routes.SetupFormRoutes(api, s.db, s.guard)
	routes.SetupTrainingRoutes(api, s.db, s.guard)
	routes.SetupEquipmentRoutes(api, s.db, s.tasks, s.guard)
	routes.SetupRequestRoutes(api, s.db, s.guard)
	routes.SetupUploadRoutes(api, s.config)
}
