// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bayaniph/bayani/internal/admin/flags"
	"github.com/bayaniph/bayani/internal/admin/wikiimport"
	"github.com/bayaniph/bayani/internal/core/people"
	"github.com/bayaniph/bayani/internal/core/timeline"
	"github.com/bayaniph/bayani/internal/platform/config"
	"github.com/bayaniph/bayani/internal/platform/constants"
	"github.com/bayaniph/bayani/internal/platform/middleware"
	"github.com/bayaniph/bayani/internal/search/session"
	"github.com/bayaniph/bayani/internal/users/auth"
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

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles accounts and sessions (login, register, refresh).
	Auth *auth.Handler

	// People handles the profile catalogue and categories.
	People *people.Handler

	// Timeline handles per-profile milestone listings.
	Timeline *timeline.Handler

	// Search handles live search sessions.
	Search *session.Handler

	// Flags handles community content moderation.
	Flags *flags.Handler

	// WikiImport handles admin profile drafting from Wikipedia.
	WikiImport *wikiimport.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Route("/people", func(pr chi.Router) {
			h.People.RegisterPeopleRoutes(pr)
			pr.Route("/{slug}/timeline", h.Timeline.RegisterRoutes)
		})
		api.Route("/categories", h.People.RegisterCategoryRoutes)

		api.Route("/search", func(sr chi.Router) {
			h.People.RegisterSearchRoutes(sr)
			sr.Route("/sessions", h.Search.RegisterRoutes)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/flags", h.Flags.Routes())
			admin.Mount("/wikiimport", h.WikiImport.Routes())
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
