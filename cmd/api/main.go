// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

// Command api is the entry point for the Bayani HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Configure the content source (remote CMS with built-in fallback).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/bayaniph/bayani/internal/admin/flags"
	"github.com/bayaniph/bayani/internal/admin/wikiimport"
	"github.com/bayaniph/bayani/internal/api"
	"github.com/bayaniph/bayani/internal/content"
	"github.com/bayaniph/bayani/internal/content/contentful"
	"github.com/bayaniph/bayani/internal/content/remoteconfig"
	"github.com/bayaniph/bayani/internal/core/people"
	"github.com/bayaniph/bayani/internal/core/timeline"
	"github.com/bayaniph/bayani/internal/platform/config"
	"github.com/bayaniph/bayani/internal/platform/constants"
	"github.com/bayaniph/bayani/internal/platform/migration"
	pgstore "github.com/bayaniph/bayani/internal/platform/postgres"
	redisstore "github.com/bayaniph/bayani/internal/platform/redis"
	"github.com/bayaniph/bayani/internal/platform/sec"
	"github.com/bayaniph/bayani/internal/search/session"
	"github.com/bayaniph/bayani/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Bayani] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lifetime context for background workers (rate limiter cleanup, the
	// session janitor). Cancelled when main exits.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.Run(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Content Source ─────────────────────────────────────────────────
	// The catalogue lives in the remote CMS; credentials come either from a
	// config endpoint or statically from the environment. When neither
	// yields a working source, the resolver serves the built-in dataset.
	configCache := remoteconfig.NewCache(cfg.ContentConfigURL, nil)
	if cfg.HasStaticContentCredentials() {
		configCache.Prime(remoteconfig.Config{
			SpaceID:            cfg.ContentSpaceID,
			AccessToken:        cfg.ContentAccessToken,
			PreviewAccessToken: cfg.ContentPreviewTok,
			Environment:        cfg.ContentEnvironment,
		})
	}

	sourceFactory := func(ctx context.Context) (content.RemoteSource, error) {
		contentCfg, err := configCache.Get(ctx)
		if err != nil {
			return nil, err
		}
		return contentful.NewClient(contentCfg, nil), nil
	}

	resolver := content.NewResolver(sourceFactory, content.NewFallbackDataset(), log)

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pool.Ping(context.Background())
		},
		CheckCache: func() error {
			return rdb.Ping(context.Background()).Err()
		},
		CheckContentSource: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), constants.ConfigFetchTimeout)
			defer cancel()
			_, err := configCache.Get(ctx)
			return err
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userStore := auth.NewUserStore(pool)
	sessionStore := auth.NewSessionStore(pool)
	resetTokens := auth.NewResetTokenStore(rdb)
	verifyTokens := auth.NewVerificationTokenStore(rdb)
	authService := auth.NewService(userStore, sessionStore, resetTokens, verifyTokens, jwtSvc)
	authHandler := auth.NewHandler(authService)

	viewCounter := people.NewViewCounter(rdb)
	peopleService := people.NewService(resolver, viewCounter)
	peopleHandler := people.NewHandler(peopleService)

	timelineHandler := timeline.NewHandler(timeline.NewService(resolver))

	searchStore := session.NewStore(resolver, log)
	searchStore.StartJanitor(appCtx)
	searchHandler := session.NewHandler(searchStore)

	flagService := flags.NewService(flags.NewStore(pool), resolver)
	flagHandler := flags.NewHandler(flagService)

	importHandler := wikiimport.NewHandler(wikiimport.NewImporter(nil))

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		People:     peopleHandler,
		Timeline:   timelineHandler,
		Search:     searchHandler,
		Flags:      flagHandler,
		WikiImport: importHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
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
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
