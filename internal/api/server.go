// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
feature handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/gateway are allowed to import net/http server primitives.

The route tree mirrors the portal's navigation contract: /api/auth and
/api/public are open, /api/citizen requires the CITIZEN role, /api/agent
accepts AGENT or ADMIN, and /api/admin is ADMIN-only. The guards redirect
rather than 401 — they are navigation control, not API authentication.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ademarli/municipality-gateway/internal/admin"
	"github.com/ademarli/municipality-gateway/internal/agent"
	"github.com/ademarli/municipality-gateway/internal/auth"
	"github.com/ademarli/municipality-gateway/internal/citizen"
	"github.com/ademarli/municipality-gateway/internal/feedback"
	"github.com/ademarli/municipality-gateway/internal/platform/config"
	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/platform/middleware"
	"github.com/ademarli/municipality-gateway/internal/public"
	"github.com/ademarli/municipality-gateway/internal/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all feature-specific HTTP handler sets.
//
// # Usage
//
// New features add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles credential flows (login, register, logout, me).
	Auth *auth.Handler

	// Public handles the anonymous surface (feed, tracking, catalog).
	Public *public.Handler

	// Feedback handles rating submission and aggregates.
	Feedback *feedback.Handler

	// Citizen handles the citizen's own complaints and notifications.
	Citizen *citizen.Handler

	// Agent handles the staff complaint workbench.
	Agent *agent.Handler

	// Admin handles category, department, and membership management.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups behind their role guards.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions *session.Manager, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {

		// Open: credential flows.
		api.Route("/auth", h.Auth.RegisterRoutes)

		// Open, session-aware: the feed's rating widgets need to know
		// whether the browser is signed in, so the session is attached
		// without gating.
		api.Route("/public", func(r chi.Router) {
			r.Use(session.Attach(sessions))
			h.Public.RegisterRoutes(r)
			h.Feedback.RegisterPublicRoutes(r)
		})

		// Citizen surface.
		api.Route("/citizen", func(r chi.Router) {
			r.Use(session.RequireRoles(sessions, session.RoleCitizen))
			h.Citizen.RegisterRoutes(r)
			r.Route("/feedback", h.Feedback.RegisterCitizenRoutes)
		})

		// Staff workbench: admins may enter the agent surface too.
		api.Route("/agent", func(r chi.Router) {
			r.Use(session.RequireRoles(sessions, session.RoleAgent, session.RoleAdmin))
			h.Agent.RegisterRoutes(r)
		})

		// Administration.
		api.Route("/admin", func(r chi.Router) {
			r.Use(session.RequireRoles(sessions, session.RoleAdmin))
			h.Admin.RegisterRoutes(r)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
