package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/logger"
	"github.com/yourusername/matchday-edge/internal/metrics"
	"github.com/yourusername/matchday-edge/internal/models"
)

// MatchValidator checks fixtures before they reach the calculator
type MatchValidator struct {
	validate *validator.Validate
	logger   *logger.RefreshLogger
}

// NewMatchValidator creates a validator with the match rules registered
func NewMatchValidator(log *logrus.Logger) *MatchValidator {
	v := validator.New()
	_ = v.RegisterValidation("form", validateForm)

	return &MatchValidator{
		validate: v,
		logger:   logger.NewRefreshLogger(log),
	}
}

// validateForm accepts recent-form strings made of W, D and L
func validateForm(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r != 'W' && r != 'D' && r != 'L' {
			return false
		}
	}
	return true
}

// Validate returns the problems found in a match, split into problems that reject the
// fixture and problems confined to its statistics
func (v *MatchValidator) Validate(match *models.Match) (fixture, stats []string) {
	err := v.validate.Struct(match)
	if err == nil {
		return nil, nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}, nil
	}

	for _, fe := range validationErrors {
		problem := describeFieldError(fe)
		if strings.Contains(fe.Namespace(), ".Stats.") {
			stats = append(stats, problem)
		} else {
			fixture = append(fixture, problem)
		}
	}
	return fixture, stats
}

// SanitizeOdds removes quotes that no bookmaker could offer (odds <= 1.0, NaN, Inf)
// and bookmakers left without markets. It returns the number of quotes removed.
func SanitizeOdds(odds models.BookmakerOdds) int {
	removed := 0
	for bookmaker, markets := range odds {
		for market, price := range markets {
			if !market.IsValid() || !models.IsQuotable(price) {
				delete(markets, market)
				removed++
			}
		}
		if len(markets) == 0 {
			delete(odds, bookmaker)
		}
	}
	return removed
}

// Filter returns the valid matches of one source feed. Rejected fixtures are logged and
// counted; unusable quotes are stripped.
func (v *MatchValidator) Filter(source string, matches []models.Match) []models.Match {
	valid := make([]models.Match, 0, len(matches))
	for i := range matches {
		match := matches[i]
		fixture, _ := v.Validate(&match)
		if len(fixture) > 0 {
			v.logger.LogMatchRejected(match.ID, source, fixture)
			metrics.RecordMatchRejected()
			continue
		}
		if removed := SanitizeOdds(match.Odds); removed > 0 {
			v.logger.WithFields(logrus.Fields{
				"match_id": match.ID,
				"source":   source,
				"removed":  removed,
			}).Debug("Removed unusable odds")
		}
		valid = append(valid, match)
	}
	return valid
}

// CheckStats detaches statistics that fail validation, so the fixture is predicted from
// odds alone
func (v *MatchValidator) CheckStats(matches []models.Match) {
	for i := range matches {
		if matches[i].Stats == nil {
			continue
		}
		_, stats := v.Validate(&matches[i])
		if len(stats) == 0 {
			continue
		}
		v.logger.WithFields(logrus.Fields{
			"match_id": matches[i].ID,
			"problems": stats,
		}).Warn("Discarding invalid statistics")
		matches[i].Stats = nil
	}
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.StructField()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	case "form":
		return fmt.Sprintf("%s must contain only W, D or L, got '%v'", fe.Namespace(), fe.Value())
	case "gte", "lte", "max":
		return fmt.Sprintf("%s violates %s=%s, got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", fe.Namespace(), fe.Tag())
	}
}
