package main

import (
	"fmt"
	"os"

	"github.com/newthinker/treasury/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "treasury",
	Short: "Treasury Pro - financial dashboard",
	Long: `Treasury Pro serves a per-company financial dashboard: overview metrics,
ratio categories, trends, peers, red flags, news and interest rates, with
statement and rates downloads from the backend data service.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// loadConfig reads --config, or the defaults when it is not set, and
// validates the result.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// development picks the development logger for --debug or server.mode=debug.
func development(cfg *config.Config) bool {
	return debug || cfg.Development()
}

func logLevel(cfg *config.Config) string {
	if debug {
		return "debug"
	}
	return cfg.Log.Level
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
