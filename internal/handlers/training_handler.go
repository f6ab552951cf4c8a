package handlers

import (
	"net/http"
	"strings"
	"time"

	"trainhub/internal/api/validator"
	"trainhub/internal/events"
	"trainhub/internal/models"
	"trainhub/internal/onboarding"
	"trainhub/internal/session"
	"trainhub/internal/utils/crypto"
	"trainhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// TrainingHandler owns module assignment, the onboarding step sequence and
// completion certificates.
type TrainingHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingHandler(db *gorm.DB) *TrainingHandler {
	return &TrainingHandler{db: db, log: logger.New("TrainingHandler")}
}

type CompletionRequest struct {
	TraineeEmail string `json:"traineeEmail" validate:"required,email"`
	Module       string `json:"module" validate:"required"`
}

type VerifyCertificateRequest struct {
	Certificate string `json:"certificate" validate:"required"`
}

// AssignModules replaces a trainee's assigned module set. The database row
// is the authority; the issuing staff member's session mirrors the result.
// @Summary Assign training modules
// @Description Replace the set of modules assigned to a trainee
// @Tags training
// @Accept json
// @Produce json
// @Param request body validator.AssignModulesRequest true "Assignment"
// @Success 200 {object} models.TrainingAssignment
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/training/assignments [post]
func (h *TrainingHandler) AssignModules(c echo.Context) error {
	var req validator.AssignModulesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	email := strings.ToLower(strings.TrimSpace(req.TraineeEmail))
	modulesJSON, err := models.ModulesToJSON(req.Modules)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid module list"})
	}

	assignedBy, _ := c.Get("email").(string)

	var assignment models.TrainingAssignment
	err = h.db.Where("trainee_email = ?", email).First(&assignment).Error
	switch {
	case err == nil:
		// Re-assignment replaces the whole set.
		if err := h.db.Model(&assignment).Updates(map[string]interface{}{
			"modules":     modulesJSON,
			"assigned_by": assignedBy,
		}).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update assignment"})
		}
		assignment.Modules = modulesJSON
		assignment.AssignedBy = assignedBy
	case err == gorm.ErrRecordNotFound:
		assignment = models.TrainingAssignment{
			TraineeEmail: email,
			Modules:      modulesJSON,
			AssignedBy:   assignedBy,
		}
		if err := h.db.Create(&assignment).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create assignment"})
		}
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to look up assignment"})
	}

	if sess, ok := c.Get("session").(*session.Session); ok && sess != nil {
		sess.AssignTrainingModules(email, req.Modules)
	}

	events.Emit("training_assignments.updated", &assignment)

	return c.JSON(http.StatusOK, assignment)
}

// GetAssignment returns the module set assigned to a trainee email.
// @Summary Get a trainee's assignment
// @Tags training
// @Produce json
// @Param email path string true "Trainee email"
// @Success 200 {object} models.TrainingAssignment
// @Failure 404 {object} map[string]string "No assignment"
// @Router /api/v1/training/assignments/{email} [get]
func (h *TrainingHandler) GetAssignment(c echo.Context) error {
	email := strings.ToLower(c.Param("email"))

	var assignment models.TrainingAssignment
	if err := h.db.Where("trainee_email = ?", email).First(&assignment).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No assignment for this trainee"})
	}
	return c.JSON(http.StatusOK, assignment)
}

// Steps returns the caller's onboarding sequence with the current cursor.
// The sequence is the fixed prefix, one step per assigned module in
// canonical order, then completion.
// @Summary Onboarding steps
// @Description Return the caller's onboarding step sequence and cursor
// @Tags training
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/onboarding/steps [get]
func (h *TrainingHandler) Steps(c echo.Context) error {
	sess, ok := c.Get("session").(*session.Session)
	if !ok || sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	steps := onboarding.Steps(h.assignedModules(c))
	cursor := sess.Cursor()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"steps":   steps,
		"cursor":  cursor,
		"current": onboarding.Current(steps, cursor),
	})
}

// Advance moves the caller's cursor one step forward, capped at the end.
// @Summary Advance onboarding
// @Tags training
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/onboarding/next [post]
func (h *TrainingHandler) Advance(c echo.Context) error {
	return h.moveCursor(c, func(steps []onboarding.Step, cursor int) int {
		return onboarding.Next(steps, cursor)
	})
}

// Back moves the caller's cursor one step backward, floored at the first
// step.
// @Summary Step back in onboarding
// @Tags training
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/onboarding/previous [post]
func (h *TrainingHandler) Back(c echo.Context) error {
	return h.moveCursor(c, func(steps []onboarding.Step, cursor int) int {
		return onboarding.Previous(cursor)
	})
}

func (h *TrainingHandler) moveCursor(c echo.Context, move func([]onboarding.Step, int) int) error {
	sess, ok := c.Get("session").(*session.Session)
	if !ok || sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	steps := onboarding.Steps(h.assignedModules(c))
	cursor := move(steps, sess.Cursor())
	sess.SetCursor(cursor)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"cursor":  cursor,
		"current": onboarding.Current(steps, cursor),
	})
}

// assignedModules resolves the caller's assigned modules from the database,
// falling back to the session mirror when no row exists yet.
func (h *TrainingHandler) assignedModules(c echo.Context) []string {
	email, _ := c.Get("email").(string)
	email = strings.ToLower(email)

	var assignment models.TrainingAssignment
	if err := h.db.Where("trainee_email = ?", email).First(&assignment).Error; err == nil {
		if modules, err := models.ModulesFromJSON(assignment.Modules); err == nil {
			return modules
		}
	}

	if sess, ok := c.Get("session").(*session.Session); ok && sess != nil {
		return sess.Assignments(email)
	}
	return nil
}

// RecordCompletion marks a module complete for a trainee and issues a
// signed certificate attesting it.
// @Summary Record a module completion
// @Description Mark a module complete and issue a signed certificate
// @Tags training
// @Accept json
// @Produce json
// @Param request body CompletionRequest true "Completion"
// @Success 201 {object} models.TrainingCompletion
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/training/completions [post]
func (h *TrainingHandler) RecordCompletion(c echo.Context) error {
	var req CompletionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	email := strings.ToLower(strings.TrimSpace(req.TraineeEmail))
	now := time.Now()

	certificate, err := crypto.SignCompletionCertificate(email, req.Module, now)
	if err != nil {
		h.log.Error("Failed to sign completion certificate", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to sign certificate"})
	}

	verifiedBy, _ := c.Get("email").(string)
	completion := models.TrainingCompletion{
		TraineeEmail: email,
		Module:       req.Module,
		CompletedAt:  &now,
		VerifiedBy:   verifiedBy,
		Certificate:  certificate,
	}

	if err := h.db.Create(&completion).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record completion"})
	}

	events.Emit("training_completions.created", &completion)

	return c.JSON(http.StatusCreated, completion)
}

// ListCompletions returns completions, optionally filtered by trainee.
// @Summary List module completions
// @Tags training
// @Produce json
// @Success 200 {array} models.TrainingCompletion
// @Router /api/v1/training/completions [get]
func (h *TrainingHandler) ListCompletions(c echo.Context) error {
	query := h.db.Order("created_at desc")
	if email := c.QueryParam("traineeEmail"); email != "" {
		query = query.Where("trainee_email = ?", strings.ToLower(email))
	}

	var completions []models.TrainingCompletion
	if err := query.Find(&completions).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch completions"})
	}
	return c.JSON(http.StatusOK, completions)
}

// VerifyCertificate checks a completion certificate's signature and returns
// its claims. Anyone holding the certificate can verify it.
// @Summary Verify a completion certificate
// @Tags training
// @Accept json
// @Produce json
// @Param request body VerifyCertificateRequest true "Certificate"
// @Success 200 {object} crypto.CertificateClaims
// @Failure 400 {object} map[string]string "Invalid certificate"
// @Router /api/v1/training/certificates/verify [post]
func (h *TrainingHandler) VerifyCertificate(c echo.Context) error {
	var req VerifyCertificateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	claims, err := crypto.VerifyCompletionCertificate(req.Certificate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid certificate"})
	}
	return c.JSON(http.StatusOK, claims)
}
