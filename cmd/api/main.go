package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/passport-hq/passport-api/internal/api"
	"github.com/passport-hq/passport-api/internal/api/metrics"
	"github.com/passport-hq/passport-api/internal/core/service"
	"github.com/passport-hq/passport-api/internal/infrastructure/config"
	"github.com/passport-hq/passport-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/passport-hq/passport-api/internal/infrastructure/db/redis"
	"github.com/passport-hq/passport-api/internal/infrastructure/queue"
	"github.com/passport-hq/passport-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	// Redis backs the optional principal revalidation cache. Without that
	// guard variant a missing Redis only degrades the readiness probe.
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		if cfg.Guard.Revalidate {
			log.Fatal().Err(err).Msg("connect redis")
		}
		log.Warn().Err(err).Msg("redis unavailable, continuing without it")
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		}()
	}

	auditRepo := postgres.NewAuditRepository(pool)
	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)
	hasher := service.NewPasswordHasher()

	bootstrap := service.NewBootstrap(userRepo, roleRepo, permRepo, hasher, dispatcher, cfg.Bootstrap.AdminPassword, log)
	if err := bootstrap.Run(ctx); err != nil {
		metrics.BootstrapRunsTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("bootstrap incomplete, admin path may need repair")
	} else {
		metrics.BootstrapRunsTotal.WithLabelValues("ok").Inc()
		log.Info().Msg("bootstrap complete")
	}

	e := api.NewRouter(pool, rdb, cfg, dispatcher)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
		os.Exit(1)
	}
}
