package handlers

import (
	"net/http"
	"strings"
	"time"

	"trainhub/internal/api/validator"
	"trainhub/internal/events"
	"trainhub/internal/models"
	"trainhub/internal/rbac"
	"trainhub/internal/session"
	"trainhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RequestHandler owns trainee requests and complaints and their review
// lifecycle.
type RequestHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRequestHandler(db *gorm.DB) *RequestHandler {
	return &RequestHandler{db: db, log: logger.New("RequestHandler")}
}

// Create files a new request or complaint. It opens in OPEN status
// regardless of what the caller sends.
// @Summary File a request or complaint
// @Tags requests
// @Accept json
// @Produce json
// @Param request body models.RequestComplaint true "Request"
// @Success 201 {object} models.RequestComplaint
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	var req models.RequestComplaint
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if role, _ := c.Get("role").(string); rbac.Role(role) == rbac.RoleTrainee {
		if email, _ := c.Get("email").(string); email != "" {
			req.TraineeEmail = email
		}
	}
	req.TraineeEmail = strings.ToLower(strings.TrimSpace(req.TraineeEmail))
	req.Status = models.RequestStatusOpen
	req.ResolvedAt = nil
	req.ResolvedBy = ""

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.db.Create(&req).Error; err != nil {
		h.log.Error("Failed to create request", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create request"})
	}

	if sess, ok := c.Get("session").(*session.Session); ok && sess != nil {
		sess.Submit(session.FormRequestComplaint, toRecord(&req))
	}

	return c.JSON(http.StatusCreated, req)
}

// List returns requests and complaints. Trainees see only their own;
// reviewers see everything.
// @Summary List requests and complaints
// @Tags requests
// @Produce json
// @Success 200 {array} models.RequestComplaint
// @Router /api/v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	query := h.db.Order("created_at desc")
	if role, _ := c.Get("role").(string); rbac.Role(role) == rbac.RoleTrainee {
		email, _ := c.Get("email").(string)
		query = query.Where("trainee_email = ?", strings.ToLower(email))
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.RequestComplaint
	if err := query.Find(&requests).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch requests"})
	}
	return c.JSON(http.StatusOK, requests)
}

// UpdateStatus moves a request through its review lifecycle. The database
// write happens first; the reviewer's session mirror follows only on
// success.
// @Summary Update request status
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body validator.RequestStatusUpdate true "New status"
// @Success 200 {object} models.RequestComplaint
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Router /api/v1/requests/{id}/status [put]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")

	var req validator.RequestStatusUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var record models.RequestComplaint
	if err := h.db.First(&record, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Request not found"})
	}

	status := models.RequestStatus(req.Status)
	updates := map[string]interface{}{"status": status}
	if status == models.RequestStatusResolved {
		now := time.Now()
		resolvedBy, _ := c.Get("email").(string)
		updates["resolved_at"] = now
		updates["resolved_by"] = resolvedBy
		record.ResolvedAt = &now
		record.ResolvedBy = resolvedBy
	}

	if err := h.db.Model(&record).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update request"})
	}
	record.Status = status

	if sess, ok := c.Get("session").(*session.Session); ok && sess != nil {
		sess.UpdateRequestComplaintStatus(id, string(status))
	}

	events.Emit("request_complaints.updated", &record)

	return c.JSON(http.StatusOK, record)
}
