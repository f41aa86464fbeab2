// Package config loads settings for the ingest and report commands.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. PAYROLL_GINI_POSTGRES_DSN.
const EnvPrefix = "PAYROLL_GINI"

// Config represents the complete application configuration
type Config struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Report   ReportConfig   `mapstructure:"report"`
	Plot     PlotConfig     `mapstructure:"plot"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PostgresConfig holds record storage configuration
type PostgresConfig struct {
	DSN     string        `mapstructure:"dsn"`
	Timeout time.Duration `mapstructure:"timeout"`
	Migrate bool          `mapstructure:"migrate"`
}

// MetricsConfig holds Pushgateway configuration. Empty URL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

// ReportConfig holds text table configuration
type ReportConfig struct {
	HeaderEvery int `mapstructure:"header_every"`
}

// PlotConfig holds chart configuration
type PlotConfig struct {
	DPI      float64 `mapstructure:"dpi"`
	WidthIn  float64 `mapstructure:"width_in"`
	HeightIn float64 `mapstructure:"height_in"`
}

// LoggingConfig holds log.Logger flags (log.LstdFlags etc.)
type LoggingConfig struct {
	PrefixFlags int `mapstructure:"prefix_flags"`
}

// Load reads configuration from an optional file and environment variables.
// An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.timeout", "30s")
	v.SetDefault("postgres.migrate", true)

	v.SetDefault("metrics.pushgateway_url", "") // empty = no push
	v.SetDefault("metrics.job", "payroll_gini")

	v.SetDefault("report.header_every", 15)

	v.SetDefault("plot.dpi", 150.0)
	v.SetDefault("plot.width_in", 6.5)
	v.SetDefault("plot.height_in", 5.5)

	v.SetDefault("logging.prefix_flags", log.LstdFlags)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Postgres.Timeout <= 0 {
		return fmt.Errorf("postgres.timeout must be positive")
	}
	if c.Report.HeaderEvery < 1 {
		return fmt.Errorf("report.header_every must be at least 1")
	}
	if c.Plot.DPI <= 0 {
		return fmt.Errorf("plot.dpi must be positive")
	}
	if c.Plot.WidthIn <= 0 || c.Plot.HeightIn <= 0 {
		return fmt.Errorf("plot.width_in and plot.height_in must be positive")
	}
	if c.Logging.PrefixFlags < 0 {
		return fmt.Errorf("logging.prefix_flags must not be negative")
	}
	return nil
}
