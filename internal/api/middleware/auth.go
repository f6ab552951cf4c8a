package middleware

import (
	"net/http"
	"strings"

	"trainhub/internal/rbac"
	"trainhub/internal/session"
	"trainhub/internal/utils"
	"trainhub/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

var log = logger.New("auth_middleware")

type AuthMiddleware struct {
	jwtSecret string
	sessions  *session.Manager
}

func NewAuthMiddleware(jwtSecret string, sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		sessions:  sessions,
	}
}

// Middleware validates the bearer token and binds the caller's session
// into the request context.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := ExtractToken(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			claims, err := utils.ParseJWT(token)
			if err != nil {
				log.Error("Error parsing JWT token: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			sess := m.sessions.Get(token)
			if sess == nil {
				// Token is valid but the in-memory session is gone
				// (process restart); rebuild it from the claims.
				sess = m.sessions.Create(token, session.AuthenticatedUser{
					Email: claims.Email,
					Role:  rbac.Role(claims.Role),
				})
			}

			c.Set("token", token)
			c.Set("session", sess)
			c.Set("userID", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			c.Set("permissions", claims.Permissions)

			return next(c)
		}
	}
}

// ExtractToken pulls the bearer token out of the Authorization header.
func ExtractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
	}

	return tokenParts[1], nil
}

// GetSession Helper functions to get values from context
func GetSession(c echo.Context) *session.Session {
	if sess, ok := c.Get("session").(*session.Session); ok {
		return sess
	}
	return nil
}

func GetToken(c echo.Context) string {
	if token, ok := c.Get("token").(string); ok {
		return token
	}
	return ""
}

func GetUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

func GetUserEmail(c echo.Context) string {
	if email, ok := c.Get("email").(string); ok {
		return email
	}
	return ""
}

func GetUserRole(c echo.Context) rbac.Role {
	if role, ok := c.Get("role").(string); ok {
		return rbac.Role(role)
	}
	return ""
}

// HasPermission checks the caller's role against the static table.
func HasPermission(c echo.Context, perm rbac.Permission) bool {
	return rbac.HasPermission(GetUserRole(c), perm)
}
