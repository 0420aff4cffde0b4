// Package config provides configuration management for the matchday-edge dashboard.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable override
	EnvPrefix = "MATCHDAY_EDGE"

	// DefaultConfigPath is used when no path is given
	DefaultConfigPath = "config/config.yaml"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := readExpanded(v, data); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error: defaults and environment variables are used.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := readExpanded(v, data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources()
	}
	return cfg, nil
}

// ResolvePath returns the config path from the flag value, falling back to
// MATCHDAY_EDGE_CONFIG_PATH and then the default path
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envPath := os.Getenv(EnvPrefix + "_CONFIG_PATH"); envPath != "" {
		return envPath
	}
	return DefaultConfigPath
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded expands ${VAR} placeholders before handing the YAML to viper
func readExpanded(v *viper.Viper, data []byte) error {
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "matchday-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("prediction.blend_weight", 0.6)
	v.SetDefault("prediction.default_home_odds", 2.0)
	v.SetDefault("prediction.default_draw_odds", 3.0)
	v.SetDefault("prediction.default_away_odds", 2.0)
	v.SetDefault("prediction.min_expected_value", 0.0)

	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_size", 16)

	v.SetDefault("refresh.interval_seconds", 60)
	v.SetDefault("refresh.timeout_seconds", 10)
	v.SetDefault("refresh.failure_threshold", 3)
	v.SetDefault("refresh.cooldown_seconds", 300)

	v.SetDefault("server.bind_address", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.refresh_rate_per_minute", 6)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("health.port", 8081)
}

func defaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "hollywoodbets", Kind: SourceKindBookmaker, Path: "config/fixtures/hollywoodbets.yaml", Enabled: true},
		{Name: "betway", Kind: SourceKindBookmaker, Path: "config/fixtures/betway.yaml", Enabled: true},
		{Name: "fbref", Kind: SourceKindStats, Path: "config/fixtures/fbref.yaml", Enabled: true},
	}
}
