package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/treasury/internal/api"
	"github.com/newthinker/treasury/internal/api/session"
	"github.com/newthinker/treasury/internal/client"
	"github.com/newthinker/treasury/internal/logger"
	"github.com/newthinker/treasury/internal/metrics"
	"github.com/newthinker/treasury/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var templatesDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&templatesDir, "templates", "", "page templates directory (embedded when empty)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Bootstrap logger until the configured level is known
	boot := logger.Must(debug, "")
	cfg, err := loadConfig(boot)
	if err != nil {
		return err
	}

	log, err := logger.New(development(cfg), logLevel(cfg))
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting treasury server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("loading section templates: %w", err)
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	// Create API server
	server, err := api.NewServer(api.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		TemplatesDir: templatesDir,
		MetricsPath:  cfg.Metrics.Path,
	}, api.Dependencies{
		Client:   client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.Timeout)),
		Renderer: renderer,
		Sessions: session.NewStore(cfg.Server.MaxSessions, time.Duration(cfg.Server.SessionTTLMinutes)*time.Minute),
		Dashboard: api.Dashboard{
			DefaultTicker:    cfg.Dashboard.DefaultTicker,
			Years:            cfg.Dashboard.Years,
			RecentSince:      cfg.Dashboard.RecentSince,
			DefaultStatement: cfg.Dashboard.DefaultStatement,
			DefaultFormat:    cfg.Dashboard.DefaultFormat,
		},
		Metrics: reg,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down treasury server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
