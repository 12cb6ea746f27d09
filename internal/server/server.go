// Package server exposes the Wrapped pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                             liveness and build version
//	POST /api/wrapped                         generate from {"username": ...}
//	GET  /api/wrapped/{id}                    result metadata and sections
//	GET  /api/wrapped/{id}/report.json        full JSON report
//	GET  /api/wrapped/{id}/pages/{n}.png      one rendered page (1-based)
//
// Results live in an in-memory [Store]; a failed generation never touches it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wrapped/pkg/pipeline"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8080"

const (
	generateTimeout = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server serves generated Wrapped pages.
type Server struct {
	runner *pipeline.Runner
	store  *Store
	logger *log.Logger
	router chi.Router
}

// New creates a Server backed by runner.
func New(runner *pipeline.Runner, store *Store, logger *log.Logger) *Server {
	if store == nil {
		store = NewStore(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api/wrapped", func(r chi.Router) {
		r.Post("/", s.handleGenerate)
		r.Get("/{id}", s.handleResult)
		r.Get("/{id}/report.json", s.handleReport)
		r.Get("/{id}/pages/{n}.png", s.handlePage)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger logs one line per request through the charm logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
