// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/carterperez-dev/flightalerts/internal/admin"
	"github.com/carterperez-dev/flightalerts/internal/alert"
	"github.com/carterperez-dev/flightalerts/internal/core"
	"github.com/carterperez-dev/flightalerts/internal/health"
	"github.com/carterperez-dev/flightalerts/internal/middleware"
	"github.com/carterperez-dev/flightalerts/internal/server"
	"github.com/carterperez-dev/flightalerts/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

var healthPaths = map[string]struct{}{
	"/healthz": {},
	"/livez":   {},
	"/readyz":  {},
}

//nolint:funlen // bootstrap code is inherently verbose
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate || cmd.Bool("migrate") {
		applied, migrateErr := core.Migrate(ctx, db.DB)
		if migrateErr != nil {
			_ = db.Close() //nolint:errcheck // already failing
			return migrateErr
		}
		logger.Info("migrations applied", "count", applied)
	}

	var redis *core.Redis
	if cfg.Redis.URL != "" {
		redis, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			_ = db.Close() //nolint:errcheck // already failing
			return err
		}
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	} else {
		logger.Info("redis not configured, rate limiting is per instance")
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	alertRepo := alert.NewRepository(db.DB)
	alertSvc := alert.NewService(alertRepo, userSvc)
	alertHandler := alert.NewHandler(alertSvc)

	adminCfg := admin.HandlerConfig{
		Counter: admin.NewStore(db.DB),
		DBPing:  db.Ping,
		DBStats: db.Stats,
	}

	var healthHandler *health.Handler
	if redis != nil {
		healthHandler = health.NewHandler(db, redis)
		adminCfg.RedisPing = redis.Ping
	} else {
		healthHandler = health.NewHandler(db, nil)
	}

	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(redis.Raw(),
			middleware.RateLimitConfig{
				Limit: middleware.NewLimit(
					cfg.RateLimit.Requests,
					cfg.RateLimit.Burst,
					cfg.RateLimit.Window,
				),
				FailOpen: true,
				BypassFunc: func(r *http.Request) bool {
					_, ok := healthPaths[r.URL.Path]
					return ok
				},
			},
		)
		router.Use(rateLimiter.Handler)
	}
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	alertHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}
