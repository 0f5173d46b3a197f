// Package api serves the compiler over HTTP for live editor previews.
//
// # Endpoints
//
//	GET    /healthz                liveness and catalog size
//	GET    /metrics                Prometheus metrics (when configured)
//	POST   /compile                compile an inline graph document
//	GET    /nodes                  node type catalog (?role=, ?family=, ?category=)
//	GET    /nodes/{type}           one node type with its default config
//	GET    /graphs                 stored graphs
//	GET    /graphs/{name}          stored graph document
//	PUT    /graphs/{name}          store a graph document
//	DELETE /graphs/{name}          remove a stored graph
//	POST   /graphs/{name}/compile  compile a stored graph
//
// Errors are JSON objects carrying the pkg/errors code, the message and the
// request id. Status codes follow errors.HTTPStatus.
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/visualencer/pkg/pipeline"
	"github.com/matzehuels/visualencer/pkg/storage"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 4 << 20

// Config wires a Server to its collaborators.
type Config struct {
	// Runner compiles graphs. Required.
	Runner *pipeline.Runner

	// Store backs the /graphs endpoints. Nil disables them (501).
	Store storage.Store

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	Logger       *log.Logger
	MaxBodyBytes int64
}

// Server is the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	store   storage.Store
	logger  *log.Logger
	maxBody int64
	router  chi.Router
}

// New builds a Server and its routes.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		runner:  cfg.Runner,
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxBody: cfg.MaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Post("/compile", s.handleCompile)

	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", s.handleListNodes)
		r.Get("/{type}", s.handleGetNode)
	})

	r.Route("/graphs", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Get("/", s.handleListGraphs)
		r.Get("/{name}", s.handleGetGraph)
		r.Put("/{name}", s.handlePutGraph)
		r.Delete("/{name}", s.handleDeleteGraph)
		r.Post("/{name}/compile", s.handleCompileGraph)
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
