package prediction

import (
	"math"

	"github.com/yourusername/matchday-edge/internal/models"
)

// Confidence heuristic weights. The score grows with the amount of input present;
// it is not a calibrated probability.
const (
	BaseConfidence        = 0.5
	StatsConfidenceBonus  = 0.3
	MarketConfidenceBonus = 0.2
	MaxConfidence         = 0.95

	// minBookmakersForBonus is the number of quoting bookmakers that earns the market bonus
	minBookmakersForBonus = 2
)

// Confidence scores how much input backed a prediction
func Confidence(hasStats bool, bookmakers int) float64 {
	confidence := BaseConfidence
	if hasStats {
		confidence += StatsConfidenceBonus
	}
	if bookmakers >= minBookmakersForBonus {
		confidence += MarketConfidenceBonus
	}
	return math.Min(MaxConfidence, confidence)
}

// DataQuality rates the inputs of a prediction on a 0-100 scale
func DataQuality(match *models.Match, confidence float64) int {
	score := 0
	if match.HasOdds() {
		score += 50
	}
	if match.HasStats() {
		score += 30
	}
	if confidence > 0.7 {
		score += 20
	}
	return score
}

// Recommendations returns plain-language betting suggestions for the dashboard
func Recommendations(probs models.ProbabilityTriple, confidence float64) []string {
	var recs []string

	if confidence > 0.6 {
		if probs.Home > 0.5 {
			recs = append(recs, models.MarketHomeWin.DisplayName())
		} else if probs.Away > 0.5 {
			recs = append(recs, models.MarketAwayWin.DisplayName())
		}
	}

	if confidence > 0.5 {
		recs = append(recs, models.MarketBTTS.DisplayName())
	}

	if len(recs) == 0 {
		return []string{"Wait for more data"}
	}
	return recs
}
