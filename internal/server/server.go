// Package server exposes analysis and rendering over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sant0-9/intelligenn/internal/analysis"
	"github.com/sant0-9/intelligenn/internal/logging"
)

// Analyzer runs one analysis
type Analyzer interface {
	Analyze(ctx context.Context, q analysis.Query) (*analysis.Result, error)
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// RequestTimeout bounds a single analysis; zero means no limit
	RequestTimeout time.Duration
}

type WebAPI struct {
	router *chi.Mux
	logger *zap.Logger
	server *http.Server
	cfg    Config
}

func NewWebAPI(analyzer Analyzer, logger *zap.Logger, cfg Config) *WebAPI {
	logger = logging.OrNop(logger).Named("server")
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	h := &handler{analyzer: analyzer, logger: logger, timeout: cfg.RequestTimeout}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.analyze)
		r.Post("/render", h.render)
	})

	return &WebAPI{
		router: router,
		logger: logger,
		cfg:    cfg,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the routed handler, for tests and embedding
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info("starting server", zap.String("addr", w.server.Addr))
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownTimeout)
		defer cancel()

		if err := w.server.Shutdown(shutdownCtx); err != nil {
			w.logger.Error("graceful shutdown failed", zap.Error(err))
			return w.server.Close()
		}
	}

	return nil
}
