package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

func newGuardContext(t *testing.T, claims *domain.Claims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(claimsContextKey, *claims)
	}
	return c, rec
}

func TestRequirePermissions_Allowed(t *testing.T) {
	claims := domain.Claims{
		UserID:      "user-1",
		Roles:       []string{"editor"},
		Permissions: []string{domain.PermReadUsers},
	}
	c, rec := newGuardContext(t, &claims)

	called := false
	handler := RequirePermissions(domain.PermReadUsers)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got code %d", rec.Code)
	}
}

func TestRequirePermissions_OrSemantics(t *testing.T) {
	claims := domain.Claims{
		UserID:      "user-1",
		Roles:       []string{"editor"},
		Permissions: []string{domain.PermUpdateUser},
	}
	c, rec := newGuardContext(t, &claims)

	// Holding any one of the listed permissions is enough.
	handler := RequirePermissions(domain.PermReadUsers, domain.PermUpdateUser)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermissions_AdminBypass(t *testing.T) {
	claims := domain.Claims{
		UserID: "user-1",
		Roles:  []string{domain.AdminRole},
	}
	c, rec := newGuardContext(t, &claims)

	// No permissions at all, yet the admin role clears every guard.
	handler := RequirePermissions(domain.PermDeletePermission)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequirePermissions_Denied(t *testing.T) {
	claims := domain.Claims{
		UserID:      "user-1",
		Roles:       []string{"viewer"},
		Permissions: []string{domain.PermReadUsers},
	}
	c, _ := newGuardContext(t, &claims)

	handler := RequirePermissions(domain.PermDeleteUser)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequirePermissions_MissingClaims(t *testing.T) {
	c, _ := newGuardContext(t, nil)

	handler := RequirePermissions(domain.PermReadUsers)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequirePermissions_EmptyGuardDeniesNonAdmin(t *testing.T) {
	claims := domain.Claims{
		UserID:      "user-1",
		Roles:       []string{"viewer"},
		Permissions: []string{domain.PermReadUsers},
	}
	c, _ := newGuardContext(t, &claims)

	handler := RequirePermissions()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
