// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Harmonia HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/harmonia/internal/api"
	"github.com/taibuivan/harmonia/internal/catalog/entity"
	"github.com/taibuivan/harmonia/internal/catalog/recording"
	"github.com/taibuivan/harmonia/internal/catalog/song"
	"github.com/taibuivan/harmonia/internal/catalog/work"
	"github.com/taibuivan/harmonia/internal/contracts/template"
	"github.com/taibuivan/harmonia/internal/contracts/terms"
	"github.com/taibuivan/harmonia/internal/deals/deliverable"
	"github.com/taibuivan/harmonia/internal/deals/distribution"
	"github.com/taibuivan/harmonia/internal/platform/config"
	"github.com/taibuivan/harmonia/internal/platform/constants"
	"github.com/taibuivan/harmonia/internal/platform/csrf"
	"github.com/taibuivan/harmonia/internal/platform/migration"
	pgstore "github.com/taibuivan/harmonia/internal/platform/postgres"
	redisstore "github.com/taibuivan/harmonia/internal/platform/redis"
	"github.com/taibuivan/harmonia/internal/platform/sec"
	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
	"github.com/taibuivan/harmonia/internal/users/account"
	"github.com/taibuivan/harmonia/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "harmonia"))
	slog.SetDefault(log)

	log.Info("[Harmonia] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "harmonia"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("split_enforce_total", cfg.SplitEnforceTotal),
	)

	// Root context for startup. A 30s deadline surfaces misconfiguration quickly.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Long-lived context for background workers (rate limiter cleanup).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	sealer, err := sec.NewSealer(cfg.SensitiveDataKey)
	must(log, err, "initialize sensitive data sealer")

	csrfService := csrf.NewService(csrf.NewRedisStore(rdb), cfg.CSRFTokenTTL)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewStaffRepository(pool), auth.NewAttemptLimiter(rdb), jwtSvc, log)
	accountService := account.NewService(account.NewPostgresRepository(pool), log)

	splitService := split.NewService(split.NewPostgresRepository(pool), cfg.SplitEnforceTotal, log)
	creditService := credit.NewService(credit.NewPostgresRepository(pool), log)

	entityService := entity.NewService(entity.NewPostgresRepository(pool), sealer, log)
	songService := song.NewService(song.NewPostgresRepository(pool), log)
	workService := work.NewService(work.NewPostgresRepository(pool), splitService, creditService, log)
	recordingService := recording.NewService(recording.NewPostgresRepository(pool), splitService, creditService, log)

	dealService := distribution.NewService(distribution.NewPostgresRepository(pool), log)
	deliverableService := deliverable.NewService(deliverable.NewPostgresRepository(pool), dealService, log)
	termsService := terms.NewService(terms.NewPostgresRepository(pool), dealService, log)
	templateService := template.NewService(template.NewPostgresRepository(pool), dealService, termsService, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.IsProduction()),
		Account:   account.NewHandler(accountService),
		CSRF:      csrf.NewHandler(csrfService, cfg.IsProduction()),

		Entities:   entity.NewHandler(entityService),
		Songs:      song.NewHandler(songService),
		Works:      work.NewHandler(workService),
		Recordings: recording.NewHandler(recordingService),

		Splits:  split.NewHandler(splitService),
		Credits: credit.NewHandler(creditService),

		Deals:        distribution.NewHandler(dealService),
		Deliverables: deliverable.NewHandler(deliverableService),
		Terms:        terms.NewHandler(termsService),
		Templates:    template.NewHandler(templateService),
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, csrfService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
