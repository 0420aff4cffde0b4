package prediction

import "github.com/yourusername/matchday-edge/internal/models"

// DefaultBlendWeight favours the statistical estimate over the market
const DefaultBlendWeight = 0.6

// Blend returns w*statistical + (1-w)*implied per outcome. A convex combination of two
// normalized triples is normalized, so no further pass is applied. w is clamped to [0,1].
func Blend(implied, statistical models.ProbabilityTriple, w float64) models.ProbabilityTriple {
	w = clampUnit(w)
	return models.ProbabilityTriple{
		Home: w*statistical.Home + (1-w)*implied.Home,
		Draw: w*statistical.Draw + (1-w)*implied.Draw,
		Away: w*statistical.Away + (1-w)*implied.Away,
	}
}
