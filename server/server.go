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
	"github.com/go-chi/httplog/v3"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/vesdash/history"
	"github.com/sig-0/vesdash/server/config"
	"github.com/sig-0/vesdash/state"
)

// RoutesFn is a callback that receives a router for registering routes
type RoutesFn func(router chi.Router)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Dashboard is the current-rate state surface consumed by the handlers
type Dashboard interface {
	// Snapshot returns a copy of the session state
	Snapshot() state.State

	// RefreshRates triggers a rate refresh
	RefreshRates(ctx context.Context, showNotification, manual bool)

	// SetActiveTab sets the active display tab
	SetActiveTab(tab state.Tab)
}

// HistoryQuerier resolves historical queries into displayable views
type HistoryQuerier interface {
	Fetch(ctx context.Context, p history.Params) (*history.Result, error)
}

// Server renders the dashboard state and pipeline outputs over HTTP.
// It computes no quotations of its own
type Server struct {
	logger *slog.Logger
	config *config.Config

	dashboard Dashboard
	histories HistoryQuerier

	mux *chi.Mux
}

// New creates a new server instance
func New(dashboard Dashboard, histories HistoryQuerier, opts ...Option) (*Server, error) {
	s := &Server{
		logger:    noopLogger,
		dashboard: dashboard,
		histories: histories,
		config:    config.DefaultConfig(),
		mux:       chi.NewMux(),
	}

	// Apply the options
	for _, opt := range opts {
		opt(s)
	}

	// Validate the configuration
	if err := config.ValidateConfig(s.config); err != nil {
		return nil, fmt.Errorf("invalid configuration, %w", err)
	}

	// Set up the CORS middleware
	if s.config.CORSConfig != nil {
		corsMiddleware := cors.New(cors.Options{
			AllowedOrigins: s.config.CORSConfig.AllowedOrigins,
			AllowedMethods: s.config.CORSConfig.AllowedMethods,
			AllowedHeaders: s.config.CORSConfig.AllowedHeaders,
		})

		s.mux.Use(corsMiddleware.Handler)
	}

	s.mux.Use(httplog.RequestLogger(s.logger, &httplog.Options{
		Level:         slog.LevelInfo,
		Schema:        httplog.SchemaOTEL,
		RecoverPanics: true,
		Skip: func(_ *http.Request, respStatus int) bool {
			return respStatus == 404 || respStatus == 405
		},
	}))

	// Register the health check handler
	s.mux.Get("/health", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	// Register the API docs handlers
	s.mux.Get("/openapi.yaml", s.OpenAPI)
	s.mux.Get("/docs", s.Redoc)

	// Register the dashboard endpoints
	s.mux.Get("/api/dashboard/current", s.CurrentRates)
	s.mux.Post("/api/dashboard/refresh", s.Refresh)
	s.mux.Post("/api/dashboard/tab", s.ActiveTab)
	s.mux.Get("/api/dashboard/history", s.History)

	return s, nil
}

// Routes calls fn with the server mux so callers can add endpoints
func (s *Server) Routes(fn RoutesFn) {
	if fn == nil {
		return
	}

	fn(s.mux)
}

// Serve serves the dashboard [BLOCKING]
func (s *Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           s.mux,
		ReadHeaderTimeout: 60 * time.Second,
	}

	group, gCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer s.logger.Info("server shut down")

		ln, err := net.Listen("tcp", server.Addr)
		if err != nil {
			return err
		}

		s.logger.Info(
			fmt.Sprintf(
				"server started at %s",
				ln.Addr().String(),
			),
		)

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-gCtx.Done()

		s.logger.Info("server to be shutdown")

		wsCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()

		return server.Shutdown(wsCtx)
	})

	return group.Wait()
}
