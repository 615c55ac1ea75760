// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/treasury/internal/api/handler/api"
	"github.com/newthinker/treasury/internal/api/handler/web"
	"github.com/newthinker/treasury/internal/api/middleware"
	"github.com/newthinker/treasury/internal/api/response"
	"github.com/newthinker/treasury/internal/api/session"
	"github.com/newthinker/treasury/internal/client"
	"github.com/newthinker/treasury/internal/dashboard"
	"github.com/newthinker/treasury/internal/metrics"
	"github.com/newthinker/treasury/internal/render"
	"go.uber.org/zap"
)

// Server represents the HTTP server for the dashboard
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	deps       Dependencies
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	TemplatesDir string
	MetricsPath  string
}

// Dashboard holds the settings of new dashboard sessions.
type Dashboard struct {
	DefaultTicker    string
	Years            []int
	RecentSince      int
	DefaultStatement string
	DefaultFormat    string
}

// Dependencies holds all dependencies for the server.
type Dependencies struct {
	Client    *client.Client
	Renderer  *render.Renderer
	Sessions  *session.Store
	Dashboard Dashboard
	// Metrics is optional; nil disables the metrics endpoint.
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Client == nil || deps.Renderer == nil || deps.Sessions == nil {
		return nil, fmt.Errorf("server requires client, renderer and sessions")
	}

	if deps.Metrics != nil {
		deps.Sessions.OnCountChange(deps.Metrics.SetSessionsActive)
	}

	mux := http.NewServeMux()

	var handler http.Handler = mux
	handler = middleware.Recover(logger)(handler)
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = metrics.LoggingMiddleware(logger)(handler)

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second, // covers a full backend fetch
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
		deps:   deps,
	}

	// Set up routes
	if err := s.setupRoutes(cfg); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// newController builds the controller of a new session.
func (s *Server) newController() *dashboard.Controller {
	opts := dashboard.Options{
		Logger:      s.logger.Named("dashboard"),
		Years:       s.deps.Dashboard.Years,
		RecentSince: s.deps.Dashboard.RecentSince,
	}
	if s.deps.Metrics != nil {
		opts.Recorder = s.deps.Metrics
	}
	c := dashboard.New(s.deps.Client, s.deps.Renderer, opts)

	// Defaults come from validated config; a bad value keeps the built-in one
	if s.deps.Dashboard.DefaultStatement != "" {
		if err := c.SetStatement(s.deps.Dashboard.DefaultStatement); err != nil {
			s.logger.Warn("ignoring default statement", zap.Error(err))
		}
	}
	if s.deps.Dashboard.DefaultFormat != "" {
		if err := c.SetFormat(s.deps.Dashboard.DefaultFormat); err != nil {
			s.logger.Warn("ignoring default format", zap.Error(err))
		}
	}
	return c
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config) error {
	// Web UI routes
	webOpts := web.Options{
		Sessions:      s.deps.Sessions,
		NewController: s.newController,
		DefaultTicker: s.deps.Dashboard.DefaultTicker,
		RecentSince:   s.deps.Dashboard.RecentSince,
		Links:         s.deps.Client,
		Logger:        s.logger.Named("web"),
		TemplatesDir:  cfg.TemplatesDir,
	}
	if s.deps.Metrics != nil {
		webOpts.Recorder = s.deps.Metrics
	}
	webHandler, err := web.NewHandler(webOpts)
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	webHandler.Register(s.mux)

	// JSON API routes
	sessionHandler := apihandler.NewSessionHandler(s.deps.Sessions, s.deps.Client)
	s.mux.HandleFunc("GET /api/session", sessionHandler.State)
	s.mux.HandleFunc("POST /api/session/search", sessionHandler.Search)
	s.mux.HandleFunc("GET /api/session/export/financials", sessionHandler.Financials)
	s.mux.HandleFunc("GET /api/session/export/rates", sessionHandler.Rates)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if s.deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, s.metricsHandler())
	}

	return nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// metricsHandler expires idle sessions before each scrape so the session
// gauge does not wait for the next dashboard request.
func (s *Server) metricsHandler() http.Handler {
	scrape := s.deps.Metrics.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.deps.Sessions.Len()
		scrape.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"backend":  s.deps.Client.BaseURL(),
		"sessions": s.deps.Sessions.Len(),
	})
}
