// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

// Command gateway is the entry point for the municipality gateway server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (sessions, rating cache).
//  4. Construct the upstream API client.
//  5. Wire session manager and feature handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/ademarli/municipality-gateway/internal/admin"
	"github.com/ademarli/municipality-gateway/internal/agent"
	"github.com/ademarli/municipality-gateway/internal/api"
	"github.com/ademarli/municipality-gateway/internal/auth"
	"github.com/ademarli/municipality-gateway/internal/citizen"
	"github.com/ademarli/municipality-gateway/internal/feedback"
	"github.com/ademarli/municipality-gateway/internal/platform/config"
	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	redisstore "github.com/ademarli/municipality-gateway/internal/platform/redis"
	"github.com/ademarli/municipality-gateway/internal/public"
	"github.com/ademarli/municipality-gateway/internal/session"
	"github.com/ademarli/municipality-gateway/internal/upstream"
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

	log.Info("service_initializing")

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
		slog.String("upstream", cfg.UpstreamBaseURL),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Upstream Client ────────────────────────────────────────────────
	apiClient := upstream.NewClient(cfg.UpstreamBaseURL, log)

	// ── 5. Session Manager ────────────────────────────────────────────────
	tokenStore := session.NewRedisTokenStore(rdb)
	sessions := session.NewManager(tokenStore, cfg.SessionTTL, cfg.IsProduction(), log)

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckUpstream: func() error {
			return apiClient.Ping(context.Background())
		},
	}, log)

	// ── 7. Feature Wiring ─────────────────────────────────────────────────
	feedbackService := feedback.NewService(apiClient, rdb, log)
	publicService := public.NewService(apiClient, log)

	authService := auth.NewService(apiClient, sessions, log)
	citizenService := citizen.NewService(apiClient, feedbackService, log)
	agentService := agent.NewService(apiClient, log)
	adminService := admin.NewService(apiClient, publicService, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, sessions),
		Public:    public.NewHandler(publicService),
		Feedback:  feedback.NewHandler(feedbackService, sessions),
		Citizen:   citizen.NewHandler(citizenService, sessions),
		Agent:     agent.NewHandler(agentService, sessions),
		Admin:     admin.NewHandler(adminService, sessions),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, sessions, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
