package models

import "math"

// ProbabilityTolerance is the allowed deviation of a triple's sum from 1
const ProbabilityTolerance = 1e-9

// Outcome is a full-time match result
type Outcome string

const (
	OutcomeHome Outcome = "H"
	OutcomeDraw Outcome = "D"
	OutcomeAway Outcome = "A"
)

// Market returns the match-result market that pays out on this outcome
func (o Outcome) Market() Market {
	switch o {
	case OutcomeHome:
		return MarketHomeWin
	case OutcomeAway:
		return MarketAwayWin
	default:
		return MarketDraw
	}
}

// ProbabilityTriple is a distribution over home win, draw and away win
type ProbabilityTriple struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// UniformTriple returns the even 1/3 split
func UniformTriple() ProbabilityTriple {
	third := 1.0 / 3.0
	return ProbabilityTriple{Home: third, Draw: third, Away: third}
}

// Sum returns the total probability mass
func (p ProbabilityTriple) Sum() float64 {
	return p.Home + p.Draw + p.Away
}

// Normalize scales the triple to sum to 1. It returns the uniform split and false
// when the mass is not a positive finite number or any component is negative.
func (p ProbabilityTriple) Normalize() (ProbabilityTriple, bool) {
	if p.Home < 0 || p.Draw < 0 || p.Away < 0 {
		return UniformTriple(), false
	}
	total := p.Sum()
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return UniformTriple(), false
	}
	return ProbabilityTriple{
		Home: p.Home / total,
		Draw: p.Draw / total,
		Away: p.Away / total,
	}, true
}

// IsValid reports whether the triple is non-negative and sums to 1
func (p ProbabilityTriple) IsValid() bool {
	if p.Home < 0 || p.Draw < 0 || p.Away < 0 {
		return false
	}
	return math.Abs(p.Sum()-1.0) <= ProbabilityTolerance
}

// Get returns the probability of an outcome
func (p ProbabilityTriple) Get(o Outcome) float64 {
	switch o {
	case OutcomeHome:
		return p.Home
	case OutcomeAway:
		return p.Away
	default:
		return p.Draw
	}
}

// ForMarket returns the probability backing a match-result market
func (p ProbabilityTriple) ForMarket(m Market) (float64, bool) {
	switch m {
	case MarketHomeWin:
		return p.Home, true
	case MarketDraw:
		return p.Draw, true
	case MarketAwayWin:
		return p.Away, true
	default:
		return 0, false
	}
}

// Max returns the largest component
func (p ProbabilityTriple) Max() float64 {
	return math.Max(p.Home, math.Max(p.Draw, p.Away))
}
