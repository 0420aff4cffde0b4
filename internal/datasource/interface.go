package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/matchday-edge/internal/models"
)

// Source is implemented by every data source
type Source interface {
	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// OddsSource fetches fixtures with bookmaker odds
type OddsSource interface {
	Source

	// FetchMatches retrieves the matches currently quoted by the bookmaker.
	// Each returned match carries odds for exactly one bookmaker.
	FetchMatches(ctx context.Context) ([]models.Match, error)
}

// StatsSource fetches team statistics
type StatsSource interface {
	Source

	// FetchTeamStats retrieves statistics keyed by the provider's team name
	FetchTeamStats(ctx context.Context) (map[string]models.TeamStats, error)
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "not_found")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNotFound    = "not_found"
	ErrCodeInvalidData = "invalid_data"
	ErrCodeDisabled    = "disabled"
	ErrCodeCanceled    = "canceled"
	ErrCodeUnknown     = "unknown"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("data not found")
	ErrInvalidData    = errors.New("invalid data format")
	ErrSourceDisabled = errors.New("data source disabled")
	ErrUnknownSource  = errors.New("unknown data source")
)

// NewSourceError creates a new data source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
