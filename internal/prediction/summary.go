package prediction

import "github.com/yourusername/matchday-edge/internal/models"

// Summarize aggregates the predictions of one refresh. Averages are zero for empty input.
func Summarize(matches []models.MatchPrediction) models.Summary {
	summary := models.Summary{TotalMatches: len(matches)}

	var (
		evTotal      float64
		qualityTotal int
	)
	for _, mp := range matches {
		qualityTotal += mp.Prediction.DataQuality
		for _, vb := range mp.Prediction.ValueBets {
			summary.ValueBetsFound++
			if vb.ExpectedValue > 0 {
				summary.ProfitableBets++
				evTotal += vb.ExpectedValue
			}
		}
	}

	if summary.ProfitableBets > 0 {
		summary.AvgExpectedValue = evTotal / float64(summary.ProfitableBets)
	}
	if len(matches) > 0 {
		summary.AvgDataQuality = float64(qualityTotal) / float64(len(matches))
	}
	return summary
}
