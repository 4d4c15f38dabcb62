package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/api/metrics"
	"github.com/passport-hq/passport-api/internal/api/middleware"
	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// refreshCookiePath scopes the refresh-token cookie to the refresh endpoint
// so the long-lived token never travels with ordinary requests.
const refreshCookiePath = "/auth/refresh"

// CookiePolicy carries the deployment-dependent cookie attributes.
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
}

// AuditRecorder accepts audit events without blocking the request path.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

type AuthHandler struct {
	authService ports.AuthService
	verifier    middleware.TokenVerifier
	audit       AuditRecorder
	cookies     CookiePolicy
}

func NewAuthHandler(authService ports.AuthService, verifier middleware.TokenVerifier, audit AuditRecorder, cookies CookiePolicy) *AuthHandler {
	return &AuthHandler{authService: authService, verifier: verifier, audit: audit, cookies: cookies}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type identityResponse struct {
	Message string        `json:"message"`
	User    domain.Claims `json:"user"`
}

// Login authenticates a user and places the session cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, messageResponse{Message: "login successful"})
}

// Refresh rotates the session cookies from a valid refresh token.
//
// @Summary      Refresh session tokens
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	pair, _, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("refresh", "invalid").Inc()
		return err
	}
	metrics.TokenVerificationsTotal.WithLabelValues("refresh", "valid").Inc()

	h.setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, messageResponse{Message: "tokens refreshed"})
}

// Logout clears the session cookies. Idempotent: succeeds with or without
// an existing session. When a valid access token accompanies the request
// the logout is attributed in the audit trail.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if h.verifier != nil && h.audit != nil {
		if cookie, err := c.Cookie(middleware.AccessTokenCookie); err == nil && cookie.Value != "" {
			if claims, err := h.verifier.VerifyAccess(cookie.Value); err == nil {
				h.audit.Record(domain.AuditEvent{
					UserID:    claims.UserID,
					Username:  claims.Username,
					Action:    domain.AuditLoggedOut,
					CreatedAt: time.Now().UTC(),
				})
			}
		}
	}

	h.clearSessionCookies(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}

// Check returns the caller's decoded identity and claims.
//
// @Summary      Check authentication
// @Tags         auth
// @Produce      json
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{Message: "authenticated", User: claims})
}

func (h *AuthHandler) setSessionCookies(c echo.Context, pair ports.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(pair.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
	c.SetCookie(&http.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     refreshCookiePath,
		MaxAge:   int(pair.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
	c.SetCookie(&http.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
}
