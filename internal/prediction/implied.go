package prediction

import (
	"math"

	"github.com/yourusername/matchday-edge/internal/models"
)

// OddsTriple holds decimal match-result odds. A zero value means the outcome is not quoted.
type OddsTriple struct {
	Home float64
	Draw float64
	Away float64
}

// DefaultOdds fills outcomes a bookmaker does not quote
var DefaultOdds = OddsTriple{Home: 2.0, Draw: 3.0, Away: 2.0}

// withDefaults replaces missing outcomes with the defaults
func (o OddsTriple) withDefaults(defaults OddsTriple) OddsTriple {
	if o.Home == 0 {
		o.Home = defaults.Home
	}
	if o.Draw == 0 {
		o.Draw = defaults.Draw
	}
	if o.Away == 0 {
		o.Away = defaults.Away
	}
	return o
}

// ImpliedProbabilities converts decimal odds to a normalized probability triple.
// Missing outcomes take the defaults. Non-positive or non-finite odds contribute no mass;
// when nothing is left the uniform split is returned together with ErrInvalidOdds.
func ImpliedProbabilities(odds OddsTriple, defaults OddsTriple) (models.ProbabilityTriple, error) {
	odds = odds.withDefaults(defaults)
	raw := models.ProbabilityTriple{
		Home: inverse(odds.Home),
		Draw: inverse(odds.Draw),
		Away: inverse(odds.Away),
	}
	normalized, ok := raw.Normalize()
	if !ok {
		return normalized, ErrInvalidOdds
	}
	return normalized, nil
}

// ConsensusImplied averages the implied probabilities of every bookmaker quoting at least
// one match-result market. The average of normalized triples is itself normalized.
func ConsensusImplied(odds models.BookmakerOdds, defaults OddsTriple) (models.ProbabilityTriple, error) {
	var (
		total models.ProbabilityTriple
		count int
	)
	for _, name := range odds.Bookmakers() {
		quote, ok := matchResultOdds(odds[name])
		if !ok {
			continue
		}
		implied, err := ImpliedProbabilities(quote, defaults)
		if err != nil {
			continue
		}
		total.Home += implied.Home
		total.Draw += implied.Draw
		total.Away += implied.Away
		count++
	}
	if count == 0 {
		return models.UniformTriple(), ErrNoQuotes
	}
	n := float64(count)
	return models.ProbabilityTriple{
		Home: total.Home / n,
		Draw: total.Draw / n,
		Away: total.Away / n,
	}, nil
}

// matchResultOdds extracts the 1X2 quote of a bookmaker, reporting whether any outcome is quoted
func matchResultOdds(odds models.MarketOdds) (OddsTriple, bool) {
	home, okHome := odds.Get(models.MarketHomeWin)
	draw, okDraw := odds.Get(models.MarketDraw)
	away, okAway := odds.Get(models.MarketAwayWin)
	return OddsTriple{Home: home, Draw: draw, Away: away}, okHome || okDraw || okAway
}

func inverse(odds float64) float64 {
	if odds <= 0 || math.IsNaN(odds) || math.IsInf(odds, 0) {
		return 0
	}
	return 1.0 / odds
}
