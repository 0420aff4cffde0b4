package models

import (
	"time"
)

// ValueBet is a market whose estimated probability beats the best available odds
type ValueBet struct {
	Market        Market  `json:"market"`
	MarketName    string  `json:"market_name"`
	Probability   float64 `json:"probability"`
	Odds          float64 `json:"odds"`
	ExpectedValue float64 `json:"expected_value"`
	Bookmaker     string  `json:"bookmaker"`
}

// Edge returns probability x odds, which exceeds 1 for every emitted value bet
func (v ValueBet) Edge() float64 {
	return v.Probability * v.Odds
}

// Prediction is the derived forecast for a match. It is recomputed on every refresh.
type Prediction struct {
	Outcome         Outcome            `json:"outcome"`
	Probabilities   ProbabilityTriple  `json:"probabilities"`
	Implied         ProbabilityTriple  `json:"implied"`
	Statistical     *ProbabilityTriple `json:"statistical,omitempty"`
	BTTSProbability float64            `json:"btts_probability"`
	Confidence      float64            `json:"confidence"`
	LowConfidence   bool               `json:"low_confidence"`
	ValueBets       []ValueBet         `json:"value_bets"`
	Recommendations []string           `json:"recommendations"`
	DataQuality     int                `json:"data_quality"`
}

// MeetsThreshold checks if the confidence meets the given threshold
func (p *Prediction) MeetsThreshold(threshold float64) bool {
	return p.Confidence >= threshold
}

// BestValueBet returns the highest expected value bet, if any
func (p *Prediction) BestValueBet() (ValueBet, bool) {
	if len(p.ValueBets) == 0 {
		return ValueBet{}, false
	}
	return p.ValueBets[0], true
}

// MatchPrediction pairs a match with its prediction
type MatchPrediction struct {
	Match       Match      `json:"match"`
	Prediction  Prediction `json:"prediction"`
	ProcessedAt time.Time  `json:"processed_at"`
}
