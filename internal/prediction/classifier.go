package prediction

import "github.com/yourusername/matchday-edge/internal/models"

// Classify returns the most probable outcome.
// Ties are broken in the fixed order Home, then Away, then Draw.
func Classify(p models.ProbabilityTriple) models.Outcome {
	if p.Home >= p.Away && p.Home >= p.Draw {
		return models.OutcomeHome
	}
	if p.Away >= p.Draw {
		return models.OutcomeAway
	}
	return models.OutcomeDraw
}
