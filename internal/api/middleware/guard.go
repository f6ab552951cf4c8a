package middleware

import (
	"net/http"
	"net/url"

	"trainhub/internal/config"
	"trainhub/internal/rbac"
	"trainhub/internal/session"

	"github.com/labstack/echo/v4"
)

// Guard is the route gate. For every request it resolves the caller's
// session fresh (nothing is cached), then lands on exactly one outcome:
// redirect to login, redirect to the unauthorized page, or pass through.
type Guard struct {
	sessions         *session.Manager
	loginPath        string
	unauthorizedPath string
}

func NewGuard(sessions *session.Manager, cfg config.AuthConfig) *Guard {
	return &Guard{
		sessions:         sessions,
		loginPath:        cfg.LoginPath,
		unauthorizedPath: cfg.UnauthorizedPath,
	}
}

// Protect gates a route. Every permission in required must hold; when
// requiredAny is non-empty at least one of it must hold as well.
func (g *Guard) Protect(required []rbac.Permission, requiredAny []rbac.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := g.currentUser(c)
			if user == nil {
				return g.redirectToLogin(c)
			}

			if !rbac.HasAllPermissions(user.Role, required) {
				return c.Redirect(http.StatusFound, g.unauthorizedPath)
			}
			if len(requiredAny) > 0 && !rbac.HasAnyPermission(user.Role, requiredAny) {
				return c.Redirect(http.StatusFound, g.unauthorizedPath)
			}

			return next(c)
		}
	}
}

// RequireAll gates a route on the caller holding every given permission.
func (g *Guard) RequireAll(perms ...rbac.Permission) echo.MiddlewareFunc {
	return g.Protect(perms, nil)
}

// RequireAny gates a route on the caller holding at least one of the
// given permissions.
func (g *Guard) RequireAny(perms ...rbac.Permission) echo.MiddlewareFunc {
	return g.Protect(nil, perms)
}

// Authenticated gates a route on a live session only.
func (g *Guard) Authenticated() echo.MiddlewareFunc {
	return g.Protect(nil, nil)
}

func (g *Guard) currentUser(c echo.Context) *session.AuthenticatedUser {
	// Prefer the session bound by the auth middleware.
	if sess := GetSession(c); sess != nil {
		return sess.User()
	}

	token, err := ExtractToken(c)
	if err != nil {
		return nil
	}
	sess := g.sessions.Get(token)
	if sess == nil {
		return nil
	}
	return sess.User()
}

// redirectToLogin sends the caller to the login page, carrying the
// originally requested location so login can return there.
func (g *Guard) redirectToLogin(c echo.Context) error {
	target := g.loginPath + "?next=" + url.QueryEscape(c.Request().RequestURI)
	return c.Redirect(http.StatusFound, target)
}
