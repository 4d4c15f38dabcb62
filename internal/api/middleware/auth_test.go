package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

type stubVerifier struct {
	claims domain.Claims
	err    error
}

func (v stubVerifier) VerifyAccess(string) (domain.Claims, error) {
	return v.claims, v.err
}

type stubRevalidator struct {
	active   bool
	err      error
	askedFor string
}

func (r *stubRevalidator) Active(_ context.Context, userID string) (bool, error) {
	r.askedFor = userID
	return r.active, r.err
}

func newAuthContext(t *testing.T, withCookie bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "some-token"})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidCookie(t *testing.T) {
	claims := domain.Claims{UserID: "user-1", Username: "alice", Roles: []string{"editor"}}
	c, rec := newAuthContext(t, true)

	called := false
	handler := Auth(stubVerifier{claims: claims}, nil)(func(c echo.Context) error {
		called = true
		got, ok := ClaimsFrom(c)
		if !ok {
			t.Fatalf("claims not injected")
		}
		if got.UserID != "user-1" || got.Username != "alice" {
			t.Fatalf("unexpected claims: %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingCookie(t *testing.T) {
	c, _ := newAuthContext(t, false)

	handler := Auth(stubVerifier{}, nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	c, _ := newAuthContext(t, true)

	handler := Auth(stubVerifier{err: domain.ErrInvalidToken}, nil)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_RevalidatorRejectsDisabledPrincipal(t *testing.T) {
	claims := domain.Claims{UserID: "user-1", Username: "alice"}
	c, _ := newAuthContext(t, true)

	reval := &stubRevalidator{active: false}
	handler := Auth(stubVerifier{claims: claims}, reval)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if reval.askedFor != "user-1" {
		t.Fatalf("revalidator asked for %q", reval.askedFor)
	}
}

func TestAuth_RevalidatorAllowsActivePrincipal(t *testing.T) {
	claims := domain.Claims{UserID: "user-1", Username: "alice"}
	c, rec := newAuthContext(t, true)

	handler := Auth(stubVerifier{claims: claims}, &stubRevalidator{active: true})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_RevalidatorErrorFailsClosed(t *testing.T) {
	claims := domain.Claims{UserID: "user-1"}
	c, _ := newAuthContext(t, true)

	handler := Auth(stubVerifier{claims: claims}, &stubRevalidator{active: true, err: context.DeadlineExceeded})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
