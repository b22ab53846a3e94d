// Package web serves the upload page and the JSON validation API.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/csvcheck/csvcheck/internal/adapters/outbound/htmlview"
	"github.com/csvcheck/csvcheck/internal/application"
	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 10 * time.Second

// Server holds the handlers for the web surface. At most one validation run
// is in flight at a time; concurrent submissions get 429.
type Server struct {
	validate *application.ValidateService
	preview  *application.PreviewService
	view     *htmlview.Renderer
	cfg      domain.ServerConfig
	logger   *zap.Logger
	limiter  *rate.Limiter
	running  *semaphore.Weighted
}

func NewServer(
	validate *application.ValidateService,
	preview *application.PreviewService,
	view *htmlview.Renderer,
	cfg domain.ServerConfig,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		validate: validate,
		preview:  preview,
		view:     view,
		cfg:      cfg,
		logger:   logger.Named("web"),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		running:  semaphore.NewWeighted(1),
	}
}

// Router wires the routes and middleware.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware(s.logger))

	router.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	limited := RateLimitMiddleware(s.limiter)
	router.Handle("/validate", limited(http.HandlerFunc(s.handleValidateForm))).Methods(http.MethodPost)

	apiV1 := router.PathPrefix("/api/v1").Subrouter()
	apiV1.Use(limited)
	apiV1.HandleFunc("/validate", s.handleValidateAPI).Methods(http.MethodPost)

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
