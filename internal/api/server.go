// Package api exposes the registration table and its derived metrics as a
// JSON API. It is consumed two ways: mounted under the dashboard UI to feed
// its charts, and standalone via cmd/api.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rinkmetrics/internal"
	"rinkmetrics/internal/loader"
	"rinkmetrics/internal/metrics"
)

// Server is the JSON API over the registration data
type Server struct {
	router   *chi.Mux
	store    *loader.Store
	engine   *metrics.Engine
	dataFile string
	logger   *internal.Logger
}

// NewServer creates a new API server backed by the given table store
func NewServer(store *loader.Store, dataFile string) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		store:    store,
		engine:   metrics.NewEngine(),
		dataFile: dataFile,
		logger:   internal.DefaultLogger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/registration/meta", s.handleMeta)
	s.router.Get("/api/registration/series", s.handleSeries)
	s.router.Get("/api/registration/growth", s.handleGrowth)
	s.router.Get("/api/registration/choropleth", s.handleChoropleth)
}

// Routes returns the router for mounting inside another server
func (s *Server) Routes() http.Handler {
	return s.router
}

// Start starts the standalone API server
func (s *Server) Start(addr string) error {
	s.logger.Info("[API] Listening on http://%s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("[API] Failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
