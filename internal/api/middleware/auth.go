package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/api/metrics"
	"github.com/passport-hq/passport-api/internal/core/domain"
)

// Session cookie names. The access cookie is sent on every request; the
// refresh cookie is scoped to the refresh endpoint's path only.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

const claimsContextKey = "auth_claims"

// TokenVerifier decodes access tokens into claim-sets.
type TokenVerifier interface {
	VerifyAccess(token string) (domain.Claims, error)
}

// Revalidator reports whether a principal is still active. Used by the
// conservative guard variant to lock out disabled accounts before their
// tokens expire.
type Revalidator interface {
	Active(ctx context.Context, userID string) (bool, error)
}

// Auth validates the access-token cookie and injects the decoded claim-set
// into the request context. With a non-nil revalidator, structurally valid
// tokens of disabled principals are rejected as well.
//
// Every failure mode yields the same 401 so callers cannot probe whether a
// token was absent, expired or forged.
func Auth(verifier TokenVerifier, revalidator Revalidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims, err := verifier.VerifyAccess(cookie.Value)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("access", "invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("access", "valid").Inc()

			if revalidator != nil {
				active, err := revalidator.Active(c.Request().Context(), claims.UserID)
				if err != nil || !active {
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				}
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom extracts the claim-set stored by Auth.
func ClaimsFrom(c echo.Context) (domain.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(domain.Claims)
	return claims, ok
}
