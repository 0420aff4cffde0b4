// Package config provides configuration management for the matchday-edge dashboard.
package config

import (
	"time"

	"github.com/yourusername/matchday-edge/internal/prediction"
)

// Source kinds
const (
	SourceKindBookmaker = "bookmaker"
	SourceKindStats     = "stats"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Prediction PredictionConfig `mapstructure:"prediction" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Refresh    RefreshConfig    `mapstructure:"refresh" validate:"required"`
	Sources    []SourceConfig   `mapstructure:"sources" validate:"required,min=1,dive"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Health     HealthConfig     `mapstructure:"health" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// PredictionConfig holds the calculator parameters
type PredictionConfig struct {
	BlendWeight      float64 `mapstructure:"blend_weight" validate:"gte=0,lte=1"`
	DefaultHomeOdds  float64 `mapstructure:"default_home_odds" validate:"required,gt=1"`
	DefaultDrawOdds  float64 `mapstructure:"default_draw_odds" validate:"required,gt=1"`
	DefaultAwayOdds  float64 `mapstructure:"default_away_odds" validate:"required,gt=1"`
	MinExpectedValue float64 `mapstructure:"min_expected_value" validate:"gte=0"`
}

// CacheConfig configures the snapshot cache
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxSize    int `mapstructure:"max_size" validate:"gte=0"`
}

// RefreshConfig configures the periodic refresh cycle.
// After FailureThreshold failures a source is skipped for CooldownSeconds; 0 disables this.
type RefreshConfig struct {
	IntervalSeconds  int `mapstructure:"interval_seconds" validate:"required,gt=0"`
	TimeoutSeconds   int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	FailureThreshold int `mapstructure:"failure_threshold" validate:"gte=0"`
	CooldownSeconds  int `mapstructure:"cooldown_seconds" validate:"gte=0"`
}

// SourceConfig describes one fixture-backed data source.
// League restricts a bookmaker source to one competition; stats sources ignore it.
type SourceConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Kind    string `mapstructure:"kind" validate:"required,sourcekind"`
	Path    string `mapstructure:"path" validate:"required"`
	Enabled bool   `mapstructure:"enabled"`
	League  string `mapstructure:"league"`
}

// ServerConfig configures the dashboard API server
type ServerConfig struct {
	BindAddress          string   `mapstructure:"bind_address" validate:"required"`
	CORSOrigins          []string `mapstructure:"cors_origins"`
	RefreshRatePerMinute int      `mapstructure:"refresh_rate_per_minute" validate:"required,gt=0"`
	ReadTimeoutSeconds   int      `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds  int      `mapstructure:"write_timeout_seconds" validate:"gte=0"`
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// HealthConfig configures the health check server
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// CacheTTL returns the snapshot lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RefreshInterval returns the time between scheduled refreshes
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Refresh.IntervalSeconds) * time.Second
}

// RefreshTimeout returns the deadline of a single refresh
func (c *Config) RefreshTimeout() time.Duration {
	return time.Duration(c.Refresh.TimeoutSeconds) * time.Second
}

// SourceCooldown returns how long a failing source is skipped
func (c *Config) SourceCooldown() time.Duration {
	return time.Duration(c.Refresh.CooldownSeconds) * time.Second
}

// EnabledSources returns the enabled sources of a kind
func (c *Config) EnabledSources(kind string) []SourceConfig {
	var sources []SourceConfig
	for _, src := range c.Sources {
		if src.Enabled && src.Kind == kind {
			sources = append(sources, src)
		}
	}
	return sources
}

// ToCalculatorConfig converts the prediction section into calculator parameters
func (p PredictionConfig) ToCalculatorConfig() prediction.Config {
	return prediction.Config{
		BlendWeight: p.BlendWeight,
		DefaultOdds: prediction.OddsTriple{
			Home: p.DefaultHomeOdds,
			Draw: p.DefaultDrawOdds,
			Away: p.DefaultAwayOdds,
		},
		MinExpectedValue: p.MinExpectedValue,
	}
}
