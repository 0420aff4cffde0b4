package prediction

import (
	"math"

	"github.com/yourusername/matchday-edge/internal/models"
)

// drawMass is the constant weight given to the draw before normalization
const drawMass = 1.0

// StatisticalProbabilities estimates outcome probabilities from team strengths.
// Home strength is home attack x away defense, away strength is away attack x home defense,
// and a constant draw mass keeps the draw bounded away from zero.
func StatisticalProbabilities(stats models.MatchStats) models.ProbabilityTriple {
	homeStrength := clampUnit(stats.Home.AttackStrength) * clampUnit(stats.Away.DefenseStrength)
	awayStrength := clampUnit(stats.Away.AttackStrength) * clampUnit(stats.Home.DefenseStrength)

	total := homeStrength + awayStrength + drawMass
	return models.ProbabilityTriple{
		Home: homeStrength / total,
		Draw: drawMass / total,
		Away: awayStrength / total,
	}
}

// BTTSProbability estimates both-teams-to-score as the mean of the two attack-versus-defense
// products. Without statistics it is an even 0.5.
func BTTSProbability(stats *models.MatchStats) float64 {
	if stats == nil {
		return 0.5
	}
	homeAttack := clampUnit(stats.Home.AttackStrength)
	awayAttack := clampUnit(stats.Away.AttackStrength)
	homeDefense := clampUnit(stats.Home.DefenseStrength)
	awayDefense := clampUnit(stats.Away.DefenseStrength)

	return (homeAttack*awayDefense + awayAttack*homeDefense) / 2
}

// clampUnit ensures a strength figure lies in [0,1]
func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
