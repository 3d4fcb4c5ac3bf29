// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
	"github.com/taibuivan/harmonia/internal/platform/middleware"
	"github.com/taibuivan/harmonia/internal/rights/credit"
	"github.com/taibuivan/harmonia/internal/rights/split"
	"github.com/taibuivan/harmonia/internal/users/account"
	"github.com/taibuivan/harmonia/internal/users/auth"
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
// New domains add a field here and a Mount line in [NewServer].
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when all deps are healthy.
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Account *account.Handler
	CSRF    *csrf.Handler

	// Catalog
	Entities   *entity.Handler
	Songs      *song.Handler
	Works      *work.Handler
	Recordings *recording.Handler

	// Rights
	Splits  *split.Handler
	Credits *credit.Handler

	// Deals and contracts
	Deals        *distribution.Handler
	Deliverables *deliverable.Handler
	Terms        *terms.Handler
	Templates    *template.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, csrfService *csrf.Service, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix. Every
	// unsafe cookie-authenticated request must carry a CSRF token.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/csrf", h.CSRF.Routes())

		api.Group(func(protected chi.Router) {
			protected.Use(csrf.Protect(csrfService))

			protected.Mount("/auth", h.Auth.Routes())
			protected.Mount("/account", h.Account.Routes())

			protected.Mount("/entities", h.Entities.Routes())
			protected.Mount("/songs", h.Songs.Routes())
			protected.Mount("/works", h.Works.Routes())
			protected.Mount("/recordings", h.Recordings.Routes())

			protected.Mount("/splits", h.Splits.Routes())
			protected.Mount("/credits", h.Credits.Routes())

			protected.Mount("/deals", h.Deals.Routes())
			protected.Mount("/deliverables", h.Deliverables.Routes())
			protected.Mount("/contracts", h.Terms.Routes())
			protected.Mount("/templates", h.Templates.Routes())
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

// Handler exposes the root router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
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
