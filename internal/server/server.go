// Package server implements the treelayout HTTP render service.
//
// Routes:
//
//	POST /v1/render   render a tree; the response body is the artifact
//	GET  /v1/drawers  list drawers with their formats and styles
//	GET  /healthz     liveness probe
//	GET  /metrics     Prometheus metrics (when configured)
//
// A render request is a JSON envelope holding the nested tree document and
// the pipeline options:
//
//	{"tree": {"label": "S", "children": [...]}, "options": {"drawer": "svg", "format": "png"}}
//
// An optional ?filename= query parameter adds a Content-Disposition header
// so browsers download the artifact under that name.
//
// Every response carries an X-Request-ID header, echoing the request's own
// when present.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treelayout/pkg/observability"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds the size of a render request.
const DefaultMaxBodyBytes = 1 << 20

// Config configures a [Server].
type Config struct {
	// Runner renders trees. Defaults to an uncached runner.
	Runner *pipeline.Runner

	// Log receives request logs. Defaults to a discard logger.
	Log *log.Logger

	// Hooks receives per-request events.
	Hooks observability.HTTPHooks

	// Metrics serves GET /metrics. Nil disables the route.
	Metrics http.Handler

	// MaxBodyBytes bounds request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Server is an http.Handler serving the render API.
type Server struct {
	Config Config
	router chi.Router
}

// New creates a Server with all routes mounted.
func New(cfg Config) *Server {
	if cfg.Log == nil {
		cfg.Log = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Log)
	}
	cfg.Hooks = observability.HTTPOrNoop(cfg.Hooks)
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{Config: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	if s.Config.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Config.Metrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/drawers", s.handleDrawers)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to ten seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()
	s.Config.Log.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.Config.Log.Info("server stopped")
	return nil
}
