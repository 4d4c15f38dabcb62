package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/passport-hq/passport-api/internal/api/middleware"
	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/ports"
)

// ctxClaims extracts the claim-set injected by the Auth middleware and
// fast-fails with 401 when a guarded handler runs without it.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// listParams converts ?page=&limit=&search= query values into list
// parameters. Page numbering is 1-based.
func listParams(c echo.Context) ports.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return ports.ListParams{
		Skip:   (page - 1) * limit,
		Take:   limit,
		Search: c.QueryParam("search"),
	}
}
