package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/passport-hq/passport-api/internal/api/handler"
	"github.com/passport-hq/passport-api/internal/api/middleware"
	"github.com/passport-hq/passport-api/internal/core/domain"
	"github.com/passport-hq/passport-api/internal/core/service"
	"github.com/passport-hq/passport-api/internal/infrastructure/config"
	"github.com/passport-hq/passport-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/passport-hq/passport-api/internal/infrastructure/db/redis"
	"github.com/passport-hq/passport-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, audit service.AuditRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("passport"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)

	hasher := service.NewPasswordHasher()
	tokens := service.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := service.NewAuthService(userRepo, tokens, hasher, audit)
	userService := service.NewUserService(userRepo, roleRepo, hasher)
	roleService := service.NewRoleService(roleRepo, permRepo)
	permService := service.NewPermissionService(permRepo)

	var revalidator middleware.Revalidator
	if cfg.Guard.Revalidate {
		revalidator = redisinfra.NewPrincipalCache(rdb, userRepo, cfg.Guard.CacheTTL)
	}
	authed := middleware.Auth(tokens, revalidator)

	cookies := handler.CookiePolicy{
		Secure:   cfg.Cookie.Secure,
		SameSite: sameSite(cfg.Cookie.SameSite),
	}

	authHandler := handler.NewAuthHandler(authService, tokens, audit, cookies)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	permHandler := handler.NewPermissionHandler(permService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/check", authHandler.Check, authed)

	// --- User routes ---
	user := e.Group("/user", authed)
	user.POST("", userHandler.Create, middleware.RequirePermissions(domain.PermCreateUser))
	user.GET("", userHandler.List, middleware.RequirePermissions(domain.PermReadUsers))
	user.GET("/me", userHandler.Me)
	user.POST("/change-password", userHandler.ChangePassword, middleware.RequirePermissions(domain.PermChangeOwnPassword))
	user.POST("/set-roles/:id", userHandler.SetRoles, middleware.RequirePermissions(domain.PermManageUserRoles))
	user.GET("/:id", userHandler.Get, middleware.RequirePermissions(domain.PermReadUser))
	user.PATCH("/:id", userHandler.Update, middleware.RequirePermissions(domain.PermUpdateUser))
	user.DELETE("/:id", userHandler.Delete, middleware.RequirePermissions(domain.PermDeleteUser))

	// --- Role routes ---
	role := e.Group("/role", authed)
	role.POST("", roleHandler.Create, middleware.RequirePermissions(domain.PermCreateRole))
	role.GET("", roleHandler.List, middleware.RequirePermissions(domain.PermReadRoles))
	role.POST("/set-permissions/:name", roleHandler.SetPermissions, middleware.RequirePermissions(domain.PermManageRolePermissions))
	role.GET("/:id", roleHandler.Get, middleware.RequirePermissions(domain.PermReadRole))
	role.PATCH("/:id", roleHandler.Update, middleware.RequirePermissions(domain.PermUpdateRole))
	role.DELETE("/:id", roleHandler.Delete, middleware.RequirePermissions(domain.PermDeleteRole))

	// --- Permission routes ---
	perm := e.Group("/permission", authed)
	perm.POST("", permHandler.Create, middleware.RequirePermissions(domain.PermCreatePermission))
	perm.GET("", permHandler.List, middleware.RequirePermissions(domain.PermReadPermissions))
	perm.GET("/:id", permHandler.Get, middleware.RequirePermissions(domain.PermReadPermission))
	perm.PATCH("/:id", permHandler.Update, middleware.RequirePermissions(domain.PermUpdatePermission))
	perm.DELETE("/:id", permHandler.Delete, middleware.RequirePermissions(domain.PermDeletePermission))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

func sameSite(mode string) http.SameSite {
	switch mode {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
