// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the publication explorer as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/bioscience-explorer/internal/assistant"
	"github.com/pdiddy/bioscience-explorer/internal/corpus"
	"github.com/pdiddy/bioscience-explorer/internal/metrics"
	"github.com/pdiddy/bioscience-explorer/internal/stats"
	"github.com/pdiddy/bioscience-explorer/pkg/types"
)

const defaultShutdownTimeout = 5 * time.Second

// Server routes API requests to the corpus, filter, stats and assistant.
type Server struct {
	router   *chi.Mux
	corpus   *corpus.Store
	asker    *assistant.Asker
	logger   *slog.Logger
	metrics  *metrics.Metrics
	statOpts stats.Options
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics instruments requests and mounts /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithStatsOptions sets the top-N lengths for /api/stats.
func WithStatsOptions(o stats.Options) Option {
	return func(s *Server) {
		s.statOpts = o
	}
}

// WithClock overrides the clock used for the default stats year.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New builds the router. asker may be nil, in which case questions are
// answered by the built-in table without delay.
func New(store *corpus.Store, asker *assistant.Asker, opts ...Option) *Server {
	if asker == nil {
		asker = assistant.NewAsker(nil, store, types.AssistantConfig{})
	}
	s := &Server{
		router: chi.NewRouter(),
		corpus: store,
		asker:  asker,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(s.accessLogger)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/categories", s.handleCategories)
		r.Get("/publications", s.handlePublications)
		r.Get("/publications/{id}", s.handlePublication)
		r.Get("/stats", s.handleStats)
		r.Get("/questions/suggested", s.handleSuggested)
		r.Post("/questions", s.handleAsk)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger logs one line per request.
func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("access",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		// Requests outlive ctx; Shutdown drains them.
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
