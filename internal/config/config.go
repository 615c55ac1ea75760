package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/newthinker/treasury/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// Server modes. Debug selects the development logger.
const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

type ServerConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Mode              string `mapstructure:"mode"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes"`
	MaxSessions       int    `mapstructure:"max_sessions"`
}

// BackendConfig points at the service that produces snapshots and files.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DashboardConfig holds the initial UI selections.
type DashboardConfig struct {
	DefaultTicker    string `mapstructure:"default_ticker"`
	Years            []int  `mapstructure:"years"`
	RecentSince      int    `mapstructure:"recent_since"`
	DefaultStatement string `mapstructure:"default_statement"`
	DefaultFormat    string `mapstructure:"default_format"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file on top of Defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.SetEnvPrefix("TREASURY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.session_ttl_minutes", d.Server.SessionTTLMinutes)
	v.SetDefault("server.max_sessions", d.Server.MaxSessions)
	v.SetDefault("backend.base_url", d.Backend.BaseURL)
	v.SetDefault("backend.timeout", d.Backend.Timeout)
	v.SetDefault("dashboard.default_ticker", d.Dashboard.DefaultTicker)
	v.SetDefault("dashboard.years", d.Dashboard.Years)
	v.SetDefault("dashboard.recent_since", d.Dashboard.RecentSince)
	v.SetDefault("dashboard.default_statement", d.Dashboard.DefaultStatement)
	v.SetDefault("dashboard.default_format", d.Dashboard.DefaultFormat)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			Mode:              ModeRelease,
			SessionTTLMinutes: 60,
			MaxSessions:       1000,
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 60 * time.Second,
		},
		Dashboard: DashboardConfig{
			DefaultTicker:    "AAPL",
			Years:            []int{2024, 2023, 2022, 2021, 2020, 2019, 2018, 2017, 2016, 2015},
			RecentSince:      2020,
			DefaultStatement: "income",
			DefaultFormat:    "xlsx",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Development reports whether the server runs in debug mode.
func (c *Config) Development() bool {
	return c.Server.Mode == ModeDebug
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.SessionTTLMinutes < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("session_ttl_minutes cannot be negative, got %d", c.Server.SessionTTLMinutes))
	}
	if c.Server.MaxSessions < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_sessions must be at least 1, got %d", c.Server.MaxSessions))
	}

	switch c.Server.Mode {
	case ModeDebug, ModeRelease:
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("server mode must be debug or release, got %q", c.Server.Mode))
	}

	// Backend validation
	if c.Backend.BaseURL == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("backend base_url required"))
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backend base_url must be an http(s) URL, got %q", c.Backend.BaseURL))
	}
	if c.Backend.Timeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("backend timeout cannot be negative, got %s", c.Backend.Timeout))
	}

	// Dashboard validation
	if len(c.Dashboard.Years) == 0 {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("dashboard years required"))
	}
	switch c.Dashboard.DefaultStatement {
	case "income", "balance", "cashflow":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("default_statement must be income, balance or cashflow, got %q", c.Dashboard.DefaultStatement))
	}
	switch c.Dashboard.DefaultFormat {
	case "xlsx", "csv":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("default_format must be xlsx or csv, got %q", c.Dashboard.DefaultFormat))
	}

	return nil
}
