package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/passport-hq/passport-api/internal/core/domain"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"role not found", domain.ErrRoleNotFound, http.StatusNotFound},
		{"permission not found", domain.ErrPermissionNotFound, http.StatusNotFound},
		{"user exists", domain.ErrUserExists, http.StatusBadRequest},
		{"role exists", domain.ErrRoleExists, http.StatusBadRequest},
		{"permission exists", domain.ErrPermissionExists, http.StatusBadRequest},
		{"reserved role", domain.ErrReservedRole, http.StatusBadRequest},
		{"protected user", domain.ErrProtectedUser, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Fatalf("missing error envelope: %s", rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_CredentialMessagesStayVague(t *testing.T) {
	rec := renderError(t, domain.ErrInvalidCredentials)
	body := rec.Body.String()
	if strings.Contains(body, "user") || strings.Contains(body, "password") {
		t.Fatalf("error message leaks detail: %s", body)
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec := renderError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "short and stout") {
		t.Fatalf("message lost: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_UnknownErrorHidesCause(t *testing.T) {
	rec := renderError(t, errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}
