// Package server exposes the engine over an HTTP JSON API.
//
// Routes:
//
//	GET  /api/health     liveness and version
//	GET  /api/graph      current graph
//	POST /api/graph      import a graph document (atomic replace)
//	GET  /api/analytics  analytics report
//	POST /api/layout     run a layout algorithm
//	POST /api/cluster    run a clustering strategy
//	POST /api/filter     filter the graph (read-only)
//	POST /api/optimize   viewport culling and aggregation
//
// Engine error codes map onto HTTP statuses: validation failures are 400,
// missing resources 404, unsupported operations 422, everything else 500.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphscape/pkg/buildinfo"
	"github.com/matzehuels/graphscape/pkg/engine"
)

// Server wraps the engine with an HTTP API.
type Server struct {
	engine *engine.Engine
	logger *log.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. A nil logger silences request logging.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server around the given engine.
func New(e *engine.Engine, opts ...Option) *Server {
	s := &Server{engine: e}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/graph", s.handleGetGraph)
		r.Post("/graph", s.handleImportGraph)
		r.Get("/analytics", s.handleAnalytics)
		r.Post("/layout", s.handleLayout)
		r.Post("/cluster", s.handleCluster)
		r.Post("/filter", s.handleFilter)
		r.Post("/optimize", s.handleOptimize)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves the API on addr with sane timeouts.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	if s.logger != nil {
		s.logger.Info("serving API", "addr", addr, "version", buildinfo.Version)
	}
	return srv.ListenAndServe()
}

// requestLogger logs one line per request with status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.logger == nil {
			next.ServeHTTP(w, r)
			return
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start))
	})
}
