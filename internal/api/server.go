// Package api serves the depflow pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz      liveness probe
//	GET  /version      build information
//	POST /v1/analyze   file facts in, laid out graph out
//	POST /v1/layout    saved graph in, re-laid out graph out
//	POST /v1/render    saved graph in, diagram bytes out
//
// Request bodies are JSON. Invalid input is answered with 400 and a body of
// the form {"code": "INVALID_NODE_ID", "message": "..."}; anything else that
// fails is a 500 with code INTERNAL_ERROR.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/depflow/pkg/pipeline"
)

const (
	// DefaultMaxBodyBytes limits request bodies when Options leaves it unset.
	DefaultMaxBodyBytes = 10 << 20

	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	MaxBodyBytes int64
}

// Server is the HTTP API over a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	router  chi.Router
}

// New creates a server. The runner's cache is shared by all requests.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		runner:  runner,
		logger:  logger.WithPrefix("api"),
		maxBody: opts.MaxBodyBytes,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
