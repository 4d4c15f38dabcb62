package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/api/metrics"
)

// RequirePermissions allows the request if the caller's claim-set holds any
// of the given permission names. A caller with the admin role bypasses the
// check entirely.
//
// Routes mounted without this middleware are public by explicit omission;
// there is no fallback behaviour hidden here.
func RequirePermissions(names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			if claims.IsAdmin() {
				metrics.AuthzDecisionsTotal.WithLabelValues("bypassed").Inc()
				return next(c)
			}

			if claims.HasAnyPermission(names...) {
				metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
				return next(c)
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("denied").Inc()
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}
