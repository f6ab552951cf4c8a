package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"trainhub/internal/config"
	"trainhub/internal/rbac"
	"trainhub/internal/session"

	"github.com/labstack/echo/v4"
)

func newGuardFixture() (*Guard, *session.Manager) {
	sessions := session.NewManager()
	guard := NewGuard(sessions, config.LoadTestConfig().Auth)
	return guard, sessions
}

func runGuard(t *testing.T, guard *Guard, mw echo.MiddlewareFunc, target, token string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "granted")
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	return rec
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	guard, _ := newGuardFixture()

	rec := runGuard(t, guard, guard.RequireAll(rbac.PermViewReports), "/reports/monthly?year=2025", "")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if !strings.HasPrefix(loc, "/login?next=") {
		t.Fatalf("location = %q, want login redirect", loc)
	}
	next, err := url.QueryUnescape(strings.TrimPrefix(loc, "/login?next="))
	if err != nil || next != "/reports/monthly?year=2025" {
		t.Fatalf("next = %q, original location not preserved", next)
	}
}

func TestGuardRedirectsInsufficientRoleToUnauthorized(t *testing.T) {
	guard, sessions := newGuardFixture()
	sessions.Create("tok", session.AuthenticatedUser{Email: "n@x.com", Role: rbac.RoleNurse})

	rec := runGuard(t, guard, guard.RequireAll(rbac.PermManageEquipment), "/equipment", "tok")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/unauthorized" {
		t.Fatalf("location = %q, want /unauthorized (not login)", loc)
	}
}

func TestGuardAllowsAuthorizedRole(t *testing.T) {
	guard, sessions := newGuardFixture()
	sessions.Create("tok", session.AuthenticatedUser{Email: "om@x.com", Role: rbac.RoleOperationsManager})

	rec := runGuard(t, guard, guard.RequireAll(rbac.PermManageEquipment), "/equipment", "tok")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "granted" {
		t.Fatalf("body = %q, handler did not run", rec.Body.String())
	}
}

// A route with no explicit requirement admits any authenticated user.
func TestGuardNoRequirementsAdmitsAnyUser(t *testing.T) {
	guard, sessions := newGuardFixture()
	sessions.Create("tok", session.AuthenticatedUser{Email: "t@x.com", Role: rbac.RoleTrainee})

	rec := runGuard(t, guard, guard.Authenticated(), "/onboarding/steps", "tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGuardRequireAny(t *testing.T) {
	guard, sessions := newGuardFixture()
	sessions.Create("tok", session.AuthenticatedUser{Email: "d@x.com", Role: rbac.RoleDeskOfficer})

	mw := guard.RequireAny(rbac.PermManageRequests, rbac.PermAdminAccess)
	rec := runGuard(t, guard, mw, "/requests", "tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("desk officer holds manage_requests, status = %d", rec.Code)
	}

	sessions.Create("tok2", session.AuthenticatedUser{Email: "e@x.com", Role: rbac.RoleExecutive})
	rec = runGuard(t, guard, mw, "/requests", "tok2")
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/unauthorized" {
		t.Fatalf("executive holds neither permission, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

// Both lists are checked: holding the "all" set does not excuse missing
// the "any" set.
func TestGuardCombinedRequirements(t *testing.T) {
	guard, sessions := newGuardFixture()
	sessions.Create("tok", session.AuthenticatedUser{Email: "s@x.com", Role: rbac.RoleSafetyCoordinator})

	mw := guard.Protect(
		[]rbac.Permission{rbac.PermCreateSafetyForms},
		[]rbac.Permission{rbac.PermAdminAccess, rbac.PermManageUsers},
	)
	rec := runGuard(t, guard, mw, "/safety", "tok")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect to unauthorized", rec.Code)
	}
}

func TestGuardDestroyedSessionRedirectsToLogin(t *testing.T) {
	guard, sessions := newGuardFixture()
	sessions.Create("tok", session.AuthenticatedUser{Email: "t@x.com", Role: rbac.RoleTrainee})
	sessions.Destroy("tok")

	rec := runGuard(t, guard, guard.Authenticated(), "/onboarding/steps", "tok")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); !strings.HasPrefix(loc, "/login?next=") {
		t.Fatalf("location = %q, want login redirect", loc)
	}
}
