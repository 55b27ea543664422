// Package server wires the HTTP router, middleware, API routes, WebSocket
// routes, and the embedded frontend.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace/internal/api/ws"
	"github.com/flowspace/flowspace/internal/config"
	"github.com/flowspace/flowspace/internal/server/middleware"
	"github.com/flowspace/flowspace/internal/service"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	tasks      *service.TaskService
	projects   *service.ProjectService
	wsHub      *ws.Hub // nil when Redis is not configured
	cfg        *config.Config
}

// New creates a Server with all routes wired. hub may be nil, which disables
// live board events. webAssets may be nil; when provided, the frontend build
// is served on all unmatched routes (embedded for single-binary
// distribution).
func New(ctx context.Context, cfg *config.Config, tasks *service.TaskService, projects *service.ProjectService, hub *ws.Hub, webAssets fs.FS) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	router.Use(middleware.RateLimitByIP(ctx, cfg.Server.RateLimit, cfg.Server.RateBurst))

	s := &Server{
		router:   router,
		tasks:    tasks,
		projects: projects,
		wsHub:    hub,
		cfg:      cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	router.Route("/api/v1", func(r chi.Router) {
		apiConfig := huma.DefaultConfig("FlowSpace API", "1.0.0")
		apiConfig.Servers = []*huma.Server{
			{URL: "/api/v1"},
		}
		api := humachi.New(r, apiConfig)
		registerAPIRoutes(api, tasks, projects, hub)
	})

	// WebSocket routes: live board events, only when Redis is configured.
	if hub != nil {
		router.Route("/ws", func(r chi.Router) {
			registerWSRoutes(r, hub)
		})
	}

	// Health check.
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Serve the embedded frontend on all unmatched routes. Must be the last
	// route registered so API/WS routes take priority.
	if webAssets != nil {
		router.NotFound(spaFileServer(webAssets).ServeHTTP)
		log.Info().Msg("embedded frontend enabled")
	}

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
