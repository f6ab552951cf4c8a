package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"trainhub/internal/api/validator"
	"trainhub/internal/events"
	"trainhub/internal/models"
	"trainhub/internal/passcode"
	"trainhub/internal/rbac"
	"trainhub/internal/session"
	"trainhub/internal/tasks"
	"trainhub/internal/utils"
	"trainhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db        *gorm.DB
	sessions  *session.Manager
	passcodes *passcode.Service
	tasks     *tasks.TaskClient
	log       *logger.Logger
}

func NewAuthHandler(db *gorm.DB, sessions *session.Manager, passcodes *passcode.Service, taskClient *tasks.TaskClient) *AuthHandler {
	return &AuthHandler{
		db:        db,
		sessions:  sessions,
		passcodes: passcodes,
		tasks:     taskClient,
		log:       logger.New("AuthHandler"),
	}
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required,user_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register creates a staff account. Trainees never register; they enter
// through passcode login.
// @Summary Register a staff user
// @Description Register a new staff user with email, password, name and role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} map[string]string "Validation error or email exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	role := rbac.Role(req.Role)
	if role == rbac.RoleSuperAdmin {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cannot register with this role"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := h.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "User already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	user := models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	}

	events.Emit("users.created", &user)

	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login authenticates a staff user and opens a session.
// @Summary Login staff user
// @Description Authenticate a staff user and return token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "JWT token"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var user models.User
	if err := h.db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	authSession := &models.AuthSession{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Token:     token,
		Refresh:   refreshToken,
		IPAddress: utils.GetIPAddress(c.Request()),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	if err := h.db.Create(authSession).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record session"})
	}

	h.sessions.Create(token, session.AuthenticatedUser{
		Email: user.Email,
		Role:  user.Role,
		Name:  strings.TrimSpace(user.FirstName + " " + user.LastName),
	})

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// TraineeLogin consumes a passcode and opens a trainee session. Rejections
// carry distinct messages so the trainee knows whether to request a new code.
// @Summary Trainee passcode login
// @Description Authenticate a trainee with email and issued passcode
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.TraineeLoginRequest true "Trainee credentials"
// @Success 200 {object} map[string]string "JWT token"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid, used or expired passcode"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/trainee-login [post]
func (h *AuthHandler) TraineeLogin(c echo.Context) error {
	var req validator.TraineeLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	record, err := h.passcodes.Validate(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, passcode.ErrInvalid):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid passcode"})
		case errors.Is(err, passcode.ErrAlreadyUsed):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Passcode already used"})
		case errors.Is(err, passcode.ErrExpired):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Passcode expired"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to validate passcode"})
	}

	token, err := utils.GenerateTraineeJWT(record.TraineeEmail, record.Code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	authSession := &models.AuthSession{
		Email:     record.TraineeEmail,
		Role:      rbac.RoleTrainee,
		Token:     token,
		IPAddress: utils.GetIPAddress(c.Request()),
		UserAgent: c.Request().UserAgent(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	if err := h.db.Create(authSession).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record session"})
	}

	sess := h.sessions.Create(token, session.AuthenticatedUser{
		Email:    record.TraineeEmail,
		Role:     rbac.RoleTrainee,
		Passcode: record.Code,
	})
	sess.AddPasscode(toRecord(record))
	sess.MarkPasscodeUsed(record.ID)

	h.log.Success("Trainee %s logged in", record.TraineeEmail)

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// IssuePasscode generates a passcode for a trainee email.
// @Summary Issue a trainee passcode
// @Description Generate a single-use login code for a trainee email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.PasscodeIssueRequest true "Trainee email"
// @Success 201 {object} models.Passcode
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 429 {object} map[string]string "Too many codes issued"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/passcodes [post]
func (h *AuthHandler) IssuePasscode(c echo.Context) error {
	var req validator.PasscodeIssueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	issuedBy, _ := c.Get("userID").(string)
	record, err := h.passcodes.Generate(c.Request().Context(), req.TraineeEmail, issuedBy)
	if err != nil {
		if errors.Is(err, passcode.ErrRateLimited) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many passcodes issued for this email"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to issue passcode"})
	}

	if sess, ok := c.Get("session").(*session.Session); ok && sess != nil {
		sess.AddPasscode(toRecord(record))
	}

	return c.JSON(http.StatusCreated, record)
}

// SweepPasscodes queues an immediate sweep of lapsed passcodes, on top of
// the hourly scheduled one.
// @Summary Queue a passcode sweep
// @Description Queue an immediate background sweep of lapsed passcodes
// @Tags auth
// @Produce json
// @Success 202 {object} map[string]string "Sweep queued"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/passcodes/sweep [post]
func (h *AuthHandler) SweepPasscodes(c echo.Context) error {
	if err := h.tasks.EnqueuePasscodeSweep(); err != nil {
		h.log.Error("Failed to queue passcode sweep", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to queue sweep"})
	}
	return c.JSON(http.StatusAccepted, map[string]string{"message": "Sweep queued"})
}

// ListPasscodes returns issued passcodes, newest first.
// @Summary List passcodes
// @Description List issued passcodes with their status
// @Tags auth
// @Produce json
// @Success 200 {array} models.Passcode
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/passcodes [get]
func (h *AuthHandler) ListPasscodes(c echo.Context) error {
	query := h.db.Order("created_at desc")
	if email := c.QueryParam("traineeEmail"); email != "" {
		query = query.Where("LOWER(trainee_email) = ?", strings.ToLower(email))
	}

	var codes []models.Passcode
	if err := query.Find(&codes).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch passcodes"})
	}
	return c.JSON(http.StatusOK, codes)
}

// RefreshToken exchanges a refresh token for a new token pair.
// @Summary Refresh token
// @Description Exchange a refresh token for a fresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]string "JWT token"
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	claims, err := utils.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	var user models.User
	if err := h.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid refresh token"})
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}
	refreshToken, err := utils.GenerateRefreshToken(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	h.sessions.Create(token, session.AuthenticatedUser{
		Email: user.Email,
		Role:  user.Role,
		Name:  strings.TrimSpace(user.FirstName + " " + user.LastName),
	})

	return c.JSON(http.StatusOK, map[string]string{"token": token, "refresh_token": refreshToken})
}

// Me returns the caller's identity as the session sees it.
// @Summary Current user
// @Description Return the authenticated caller's identity
// @Tags auth
// @Produce json
// @Success 200 {object} session.AuthenticatedUser
// @Failure 401 {object} map[string]string "No session"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, ok := c.Get("session").(*session.Session)
	if !ok || sess == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	user := sess.User()
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	return c.JSON(http.StatusOK, user)
}

// Logout destroys the caller's session. The token is not re-usable after
// this; passcode logins need a fresh code to come back.
// @Summary Logout
// @Description Destroy the caller's session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token != "" {
		h.sessions.Destroy(token)
		h.db.Where("token = ?", token).Delete(&models.AuthSession{})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}
