// Package config provides configuration management for the matchday-edge dashboard.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("sourcekind", validateSourceKind)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateSourceKind validates the kind of a data source
func validateSourceKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case SourceKindBookmaker, SourceKindStats:
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// A refresh must finish before the next one is due
	if cfg.Refresh.TimeoutSeconds > cfg.Refresh.IntervalSeconds {
		return fmt.Errorf("refresh timeout_seconds cannot exceed interval_seconds")
	}

	// Source names label metrics and snapshot counts
	seen := make(map[string]bool, len(cfg.Sources))
	for _, src := range cfg.Sources {
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name: %s", src.Name)
		}
		seen[src.Name] = true
	}

	if len(cfg.EnabledSources(SourceKindBookmaker)) == 0 {
		return fmt.Errorf("at least one bookmaker source must be enabled")
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got '%s'", cfg.Metrics.Path)
	}

	// Validate production environment requirements
	if cfg.IsProduction() {
		for _, origin := range cfg.Server.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("production environment requires explicit CORS origins")
			}
		}
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "sourcekind":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: bookmaker, stats, got '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}
