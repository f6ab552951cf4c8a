package handlers

import (
	"net/http"
	"strings"

	"trainhub/internal/api/validator"
	"trainhub/internal/models"
	"trainhub/internal/rbac"
	"trainhub/internal/services"
	"trainhub/internal/tasks"
	"trainhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// EquipmentHandler exposes the stock-aware equipment operations. Plain
// catalogue CRUD goes through the generic registry routes instead.
type EquipmentHandler struct {
	db      *gorm.DB
	service *services.EquipmentService
	tasks   *tasks.TaskClient
	log     *logger.Logger
}

func NewEquipmentHandler(db *gorm.DB, service *services.EquipmentService, taskClient *tasks.TaskClient) *EquipmentHandler {
	return &EquipmentHandler{
		db:      db,
		service: service,
		tasks:   taskClient,
		log:     logger.New("EquipmentHandler"),
	}
}

// LowStock lists equipment below its stock threshold.
// @Summary List low-stock equipment
// @Tags equipment
// @Produce json
// @Success 200 {array} models.Equipment
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/equipment/low-stock [get]
func (h *EquipmentHandler) LowStock(c echo.Context) error {
	items, err := h.service.LowStock(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch low stock equipment"})
	}
	return c.JSON(http.StatusOK, items)
}

// CheckLowStock queues an immediate background stock check, the same one
// the scheduler runs twice a day.
// @Summary Queue a low-stock check
// @Tags equipment
// @Produce json
// @Success 202 {object} map[string]string "Check queued"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/equipment/low-stock/check [post]
func (h *EquipmentHandler) CheckLowStock(c echo.Context) error {
	if err := h.tasks.EnqueueLowStockCheck(); err != nil {
		h.log.Error("Failed to queue stock check", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to queue stock check"})
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "Stock check queued"})
}

// CreateRequest files an equipment request with its items.
// @Summary File an equipment request
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body models.EquipmentRequest true "Request with items"
// @Success 201 {object} models.EquipmentRequest
// @Failure 400 {object} map[string]string "Validation error or insufficient stock"
// @Router /api/v1/equipment-requests [post]
func (h *EquipmentHandler) CreateRequest(c echo.Context) error {
	var req models.EquipmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if role, _ := c.Get("role").(string); rbac.Role(role) == rbac.RoleTrainee {
		if email, _ := c.Get("email").(string); email != "" {
			req.RequesterEmail = email
		}
	}
	req.RequesterEmail = strings.ToLower(strings.TrimSpace(req.RequesterEmail))

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.service.CreateRequest(c.Request().Context(), &req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, req)
}

// ListRequests returns equipment requests; trainees see their own.
// @Summary List equipment requests
// @Tags equipment
// @Produce json
// @Success 200 {array} models.EquipmentRequest
// @Router /api/v1/equipment-requests [get]
func (h *EquipmentHandler) ListRequests(c echo.Context) error {
	query := h.db.Preload("Items").Preload("Items.Equipment").Order("created_at desc")
	if role, _ := c.Get("role").(string); rbac.Role(role) == rbac.RoleTrainee {
		email, _ := c.Get("email").(string)
		query = query.Where("requester_email = ?", strings.ToLower(email))
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.EquipmentRequest
	if err := query.Find(&requests).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch equipment requests"})
	}
	return c.JSON(http.StatusOK, requests)
}

// UpdateRequestStatus transitions an equipment request, adjusting stock
// when items are issued or returned.
// @Summary Update equipment request status
// @Tags equipment
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body validator.EquipmentStatusUpdate true "New status"
// @Success 200 {object} models.EquipmentRequest
// @Failure 400 {object} map[string]string "Invalid transition"
// @Router /api/v1/equipment-requests/{id}/status [put]
func (h *EquipmentHandler) UpdateRequestStatus(c echo.Context) error {
	id := c.Param("id")

	var req validator.EquipmentStatusUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	actor, _ := c.Get("email").(string)
	record, err := h.service.UpdateRequestStatus(c.Request().Context(), id, models.EquipmentRequestStatus(req.Status), actor)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Equipment request not found"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, record)
}

// Assign hands equipment to a trainee.
// @Summary Assign equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Param assignment body models.EquipmentAssignment true "Assignment"
// @Success 201 {object} models.EquipmentAssignment
// @Failure 400 {object} map[string]string "Validation error or insufficient stock"
// @Router /api/v1/equipment-assignments [post]
func (h *EquipmentHandler) Assign(c echo.Context) error {
	var assignment models.EquipmentAssignment
	if err := c.Bind(&assignment); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	assignment.AssigneeEmail = strings.ToLower(strings.TrimSpace(assignment.AssigneeEmail))
	if assignedBy, _ := c.Get("email").(string); assignedBy != "" {
		assignment.AssignedBy = assignedBy
	}

	if err := c.Validate(&assignment); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.service.Assign(c.Request().Context(), &assignment); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, assignment)
}

// Return closes an assignment and releases its stock.
// @Summary Return assigned equipment
// @Tags equipment
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.EquipmentAssignment
// @Failure 400 {object} map[string]string "Already returned"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/v1/equipment-assignments/{id}/return [post]
func (h *EquipmentHandler) Return(c echo.Context) error {
	assignment, err := h.service.Return(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Assignment not found"})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, assignment)
}
