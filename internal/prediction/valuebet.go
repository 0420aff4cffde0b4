package prediction

import (
	"sort"

	"github.com/yourusername/matchday-edge/internal/models"
)

// ExpectedValue returns the percentage edge of a bet, (probability x odds - 1) x 100
func ExpectedValue(probability, odds float64) float64 {
	return (probability*odds - 1) * 100
}

// IsValue reports whether a bet at these odds has a positive edge
func IsValue(probability, odds float64) bool {
	return probability*odds > 1
}

// DetectValueBets checks every market against the best available odds and returns the
// markets where probability x odds > 1 and the expected value reaches minExpectedValue,
// highest expected value first. Markets without usable odds are skipped.
func DetectValueBets(odds models.BookmakerOdds, probs models.ProbabilityTriple, bttsProbability, minExpectedValue float64) []models.ValueBet {
	bets := make([]models.ValueBet, 0)

	for _, market := range models.Markets {
		best, bookmaker, ok := odds.Best(market)
		if !ok {
			continue
		}

		probability, ok := probs.ForMarket(market)
		if !ok {
			probability = bttsProbability
		}
		if !IsValue(probability, best) {
			continue
		}

		ev := ExpectedValue(probability, best)
		if ev < minExpectedValue {
			continue
		}

		bets = append(bets, models.ValueBet{
			Market:        market,
			MarketName:    market.DisplayName(),
			Probability:   probability,
			Odds:          best,
			ExpectedValue: ev,
			Bookmaker:     bookmaker,
		})
	}

	sort.SliceStable(bets, func(i, j int) bool {
		return bets[i].ExpectedValue > bets[j].ExpectedValue
	})
	return bets
}
