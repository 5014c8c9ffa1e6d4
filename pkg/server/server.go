// Package server exposes the drawing pipeline over HTTP.
//
// # Endpoints
//
//	POST /api/v1/draw    {graph, positions?, layout?, options?} -> Vega-Lite spec
//	POST /api/v1/layout  {graph, layout?}                       -> positions
//	GET  /healthz                                               -> {"status":"ok"}
//
// Graphs use the node-link document of [graph.Document]. Options use the
// JSON form of [draw.Options] and replace the server's default style when
// present.
//
// Errors are returned as {"code": "...", "message": "..."} with a 4xx status
// for invalid input and 5xx for internal failures. Every response carries an
// X-Request-ID header.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netchart/pkg/cache"
	"github.com/matzehuels/netchart/pkg/pipeline"
)

// Server defaults.
const (
	// DefaultMaxBodyBytes limits request bodies.
	DefaultMaxBodyBytes = 10 << 20

	// KeyPrefix scopes cache keys written by the server.
	KeyPrefix = "api:"

	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Cache stores layouts and charts. Nil disables caching.
	Cache cache.Cache

	// Defaults apply to requests that leave layout or options unset.
	Defaults pipeline.Options

	// MaxBodyBytes limits request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	Logger *log.Logger
}

// Server is the HTTP API. It is safe for concurrent use.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	maxBody  int64
	logger   *log.Logger
	router   chi.Router
}

// New creates a Server. Cache keys are scoped with KeyPrefix so the server
// can share a backend with the CLI.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), KeyPrefix)

	s := &Server{
		runner:   pipeline.NewRunner(opts.Cache, keyer, opts.Logger),
		defaults: opts.Defaults,
		maxBody:  opts.MaxBodyBytes,
		logger:   opts.Logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/draw", s.handleDraw)
		r.Post("/layout", s.handleLayout)
	})

	s.router = r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
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
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the cache.
func (s *Server) Close() error {
	return s.runner.Close()
}
