package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"trainhub/internal/models"
	"trainhub/internal/rbac"
	"trainhub/internal/session"
	"trainhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FormHandler owns onboarding form drafts and submissions. Drafts live in
// the session only; a submission is written to the database first and
// mirrored into the session once the write succeeds.
type FormHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFormHandler(db *gorm.DB) *FormHandler {
	return &FormHandler{db: db, log: logger.New("FormHandler")}
}

var draftKinds = map[string]session.FormKind{
	"welcome-policy":      session.FormWelcomePolicy,
	"course-registration": session.FormCourseRegistration,
	"medical-screening":   session.FormMedicalScreening,
	"bosiet":              session.FormBosiet,
	"fire-watch":          session.FormFireWatch,
	"cser":                session.FormCSER,
	"size":                session.FormSize,
	"usee-uact":           session.FormUseeUact,
	"request-complaint":   session.FormRequestComplaint,
}

// SaveDraft stores partial form input in the session, overwriting any
// previous draft for the same form. Drafts are never validated.
// @Summary Save a form draft
// @Description Store partial form input in the caller's session
// @Tags forms
// @Accept json
// @Produce json
// @Param kind path string true "Form kind"
// @Success 200 {object} map[string]string "Draft saved"
// @Failure 400 {object} map[string]string "Unknown form kind"
// @Router /api/v1/forms/{kind}/draft [put]
func (h *FormHandler) SaveDraft(c echo.Context) error {
	kind, ok := draftKinds[c.Param("kind")]
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown form kind"})
	}

	sess, ok := c.Get("session").(*session.Session)
	if !ok || sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	var draft session.Record
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	sess.SaveDraft(kind, draft)
	return c.JSON(http.StatusOK, map[string]string{"message": "Draft saved"})
}

// GetDraft returns the caller's draft for a form kind, or an empty object.
// @Summary Get a form draft
// @Description Return the caller's saved draft for a form
// @Tags forms
// @Produce json
// @Param kind path string true "Form kind"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Unknown form kind"
// @Router /api/v1/forms/{kind}/draft [get]
func (h *FormHandler) GetDraft(c echo.Context) error {
	kind, ok := draftKinds[c.Param("kind")]
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown form kind"})
	}

	sess, ok := c.Get("session").(*session.Session)
	if !ok || sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	draft := sess.Draft(kind)
	if draft == nil {
		draft = session.Record{}
	}
	return c.JSON(http.StatusOK, draft)
}

// SubmitWelcomePolicy records the welcome and policy acknowledgment.
// @Summary Submit welcome policy form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.WelcomePolicyForm true "Form"
// @Success 201 {object} models.WelcomePolicyForm
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/welcome-policy [post]
func (h *FormHandler) SubmitWelcomePolicy(c echo.Context) error {
	var form models.WelcomePolicyForm
	if err := h.bindForm(c, &form, &form.TraineeEmail); err != nil {
		return err
	}

	var existing models.WelcomePolicyForm
	err := h.db.Where("trainee_email = ?", form.TraineeEmail).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
	}
	return h.finishSubmit(c, session.FormWelcomePolicy, &form, err == nil)
}

// SubmitCourseRegistration records the course registration form.
// @Summary Submit course registration form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.CourseRegistrationForm true "Form"
// @Success 201 {object} models.CourseRegistrationForm
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/course-registration [post]
func (h *FormHandler) SubmitCourseRegistration(c echo.Context) error {
	var form models.CourseRegistrationForm
	if err := h.bindForm(c, &form, &form.TraineeEmail); err != nil {
		return err
	}

	var existing models.CourseRegistrationForm
	err := h.db.Where("trainee_email = ?", form.TraineeEmail).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
	}
	return h.finishSubmit(c, session.FormCourseRegistration, &form, err == nil)
}

// SubmitMedicalScreening records the medical screening questionnaire.
// @Summary Submit medical screening form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.MedicalScreeningForm true "Form"
// @Success 201 {object} models.MedicalScreeningForm
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/medical-screening [post]
func (h *FormHandler) SubmitMedicalScreening(c echo.Context) error {
	var form models.MedicalScreeningForm
	if err := h.bindForm(c, &form, &form.TraineeEmail); err != nil {
		return err
	}

	var existing models.MedicalScreeningForm
	err := h.db.Where("trainee_email = ?", form.TraineeEmail).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
	}
	return h.finishSubmit(c, session.FormMedicalScreening, &form, err == nil)
}

// SubmitBosiet records the BOSIET module form.
// @Summary Submit BOSIET form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.BosietForm true "Form"
// @Success 201 {object} models.BosietForm
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/bosiet [post]
func (h *FormHandler) SubmitBosiet(c echo.Context) error {
	var form models.BosietForm
	if err := h.bindForm(c, &form, &form.TraineeEmail); err != nil {
		return err
	}

	var existing models.BosietForm
	err := h.db.Where("trainee_email = ?", form.TraineeEmail).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
	}
	return h.finishSubmit(c, session.FormBosiet, &form, err == nil)
}

// SubmitFireWatch records the fire watch module form.
// @Summary Submit fire watch form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.FireWatchForm true "Form"
// @Success 201 {object} models.FireWatchForm
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/fire-watch [post]
func (h *FormHandler) SubmitFireWatch(c echo.Context) error {
	var form models.FireWatchForm
	if err := h.bindForm(c, &form, &form.TraineeEmail); err != nil {
		return err
	}

	var existing models.FireWatchForm
	err := h.db.Where("trainee_email = ?", form.TraineeEmail).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
	}
	return h.finishSubmit(c, session.FormFireWatch, &form, err == nil)
}

// SubmitCSER records the confined space entry and rescue form.
// @Summary Submit CSER form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.CSERForm true "Form"
// @Success 201 {object} models.CSERForm
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/cser [post]
func (h *FormHandler) SubmitCSER(c echo.Context) error {
	var form models.CSERForm
	if err := h.bindForm(c, &form, &form.TraineeEmail); err != nil {
		return err
	}

	var existing models.CSERForm
	err := h.db.Where("trainee_email = ?", form.TraineeEmail).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
	}
	return h.finishSubmit(c, session.FormCSER, &form, err == nil)
}

// SubmitSize records PPE sizing.
// @Summary Submit size form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.SizeForm true "Form"
// @Success 201 {object} models.SizeForm
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/size [post]
func (h *FormHandler) SubmitSize(c echo.Context) error {
	var form models.SizeForm
	if err := h.bindForm(c, &form, &form.TraineeEmail); err != nil {
		return err
	}

	var existing models.SizeForm
	err := h.db.Where("trainee_email = ?", form.TraineeEmail).First(&existing).Error
	if err == nil {
		form.ID = existing.ID
	}
	return h.finishSubmit(c, session.FormSize, &form, err == nil)
}

// SubmitUseeUact records a safety observation report. Unlike onboarding
// forms a reporter may file any number of these.
// @Summary Submit a safety observation report
// @Tags forms
// @Accept json
// @Produce json
// @Param form body models.UseeUactReport true "Report"
// @Success 201 {object} models.UseeUactReport
// @Failure 400 {object} map[string]string "Validation error"
// @Router /api/v1/forms/usee-uact [post]
func (h *FormHandler) SubmitUseeUact(c echo.Context) error {
	var form models.UseeUactReport
	if err := h.bindForm(c, &form, &form.ReporterEmail); err != nil {
		return err
	}

	return h.finishSubmit(c, session.FormUseeUact, &form, false)
}

// ListMedicalScreenings returns screening forms. Routing gates this behind
// the medical data permission; trainees never reach it.
// @Summary List medical screening forms
// @Tags forms
// @Produce json
// @Success 200 {array} models.MedicalScreeningForm
// @Router /api/v1/forms/medical-screening [get]
func (h *FormHandler) ListMedicalScreenings(c echo.Context) error {
	query := h.db.Order("created_at desc")
	if email := c.QueryParam("traineeEmail"); email != "" {
		query = query.Where("trainee_email = ?", strings.ToLower(email))
	}

	var forms []models.MedicalScreeningForm
	if err := query.Find(&forms).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch forms"})
	}
	return c.JSON(http.StatusOK, forms)
}

// ListUseeUact lists observation reports; trainees see their own.
// @Summary List safety observation reports
// @Tags forms
// @Produce json
// @Success 200 {array} models.UseeUactReport
// @Router /api/v1/forms/usee-uact [get]
func (h *FormHandler) ListUseeUact(c echo.Context) error {
	query := h.db.Order("created_at desc")
	if role, _ := c.Get("role").(string); rbac.Role(role) == rbac.RoleTrainee {
		email, _ := c.Get("email").(string)
		query = query.Where("reporter_email = ?", strings.ToLower(email))
	}

	var reports []models.UseeUactReport
	if err := query.Find(&reports).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch reports"})
	}
	return c.JSON(http.StatusOK, reports)
}

// bindForm binds and validates a submission and, for trainee callers,
// forces the owner email field to the session identity.
func (h *FormHandler) bindForm(c echo.Context, form interface{}, ownerEmail *string) error {
	if err := c.Bind(form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if role, _ := c.Get("role").(string); rbac.Role(role) == rbac.RoleTrainee {
		if email, _ := c.Get("email").(string); email != "" {
			*ownerEmail = email
		}
	}
	*ownerEmail = strings.ToLower(strings.TrimSpace(*ownerEmail))

	if err := c.Validate(form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return nil
}

// finishSubmit writes a submission to the database, then mirrors it into
// the session. Re-submitting a one-per-trainee form updates the existing
// row in place so a double click never duplicates it.
func (h *FormHandler) finishSubmit(c echo.Context, kind session.FormKind, form interface{}, exists bool) error {
	var err error
	if exists {
		err = h.db.Model(form).Updates(form).Error
	} else {
		err = h.db.Create(form).Error
	}
	if err != nil {
		h.log.Error("Failed to persist %s submission", err, kind)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save submission"})
	}

	if sess, ok := c.Get("session").(*session.Session); ok && sess != nil {
		sess.Submit(kind, toRecord(form))
	}

	status := http.StatusCreated
	if exists {
		status = http.StatusOK
	}
	return c.JSON(status, form)
}

// toRecord flattens a model into the session's record shape.
func toRecord(v interface{}) session.Record {
	data, err := json.Marshal(v)
	if err != nil {
		return session.Record{}
	}
	var rec session.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return session.Record{}
	}
	return rec
}
