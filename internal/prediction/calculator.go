// Package prediction implements the match prediction and value-bet pipeline: implied
// probabilities from odds, a statistical estimate from team strengths, a weighted blend,
// outcome classification, value-bet detection and confidence scoring.
package prediction

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/logger"
	"github.com/yourusername/matchday-edge/internal/metrics"
	"github.com/yourusername/matchday-edge/internal/models"
)

// Fallback reasons reported in logs and metrics
const (
	FallbackNoOdds  = "no_usable_odds"
	FallbackNoStats = "missing_stats"
)

// Config holds the tunable parameters of the calculator
type Config struct {
	BlendWeight      float64
	DefaultOdds      OddsTriple
	MinExpectedValue float64
}

// DefaultConfig returns the calculator defaults
func DefaultConfig() Config {
	return Config{
		BlendWeight:      DefaultBlendWeight,
		DefaultOdds:      DefaultOdds,
		MinExpectedValue: 0,
	}
}

// Calculator turns matches into predictions
type Calculator struct {
	cfg    Config
	logger *logger.PredictionLogger
}

// NewCalculator creates a calculator with the given configuration
func NewCalculator(cfg Config, log *logrus.Logger) *Calculator {
	return &Calculator{
		cfg:    cfg,
		logger: logger.NewPredictionLogger(log),
	}
}

// Config returns the calculator configuration
func (c *Calculator) Config() Config {
	return c.cfg
}

// Predict runs the full pipeline for one match. It never fails: missing statistics fall
// back to implied probabilities with base confidence, and a match without usable odds
// falls back to the uniform split flagged as low confidence and base confidence.
func (c *Calculator) Predict(match *models.Match) models.Prediction {
	implied, err := ConsensusImplied(match.Odds, c.cfg.DefaultOdds)
	pred := models.Prediction{Implied: implied}
	if err != nil {
		pred.LowConfidence = true
		c.fallback(match.ID, FallbackNoOdds)
	}

	if match.Stats != nil {
		statistical := StatisticalProbabilities(*match.Stats)
		pred.Statistical = &statistical
		pred.Probabilities = Blend(implied, statistical, c.cfg.BlendWeight)
		pred.Confidence = Confidence(true, match.BookmakerCount())
	} else {
		pred.Probabilities = implied
		pred.Confidence = BaseConfidence
		c.fallback(match.ID, FallbackNoStats)
	}

	// without usable odds the blend rests on a uniform prior
	if pred.LowConfidence {
		pred.Confidence = BaseConfidence
	}

	pred.Outcome = Classify(pred.Probabilities)
	pred.BTTSProbability = BTTSProbability(match.Stats)
	pred.ValueBets = DetectValueBets(match.Odds, pred.Probabilities, pred.BTTSProbability, c.cfg.MinExpectedValue)
	pred.Recommendations = Recommendations(pred.Probabilities, pred.Confidence)
	pred.DataQuality = DataQuality(match, pred.Confidence)

	c.record(match.ID, &pred)
	return pred
}

// PredictAll predicts every match, stamping each result with processedAt
func (c *Calculator) PredictAll(matches []models.Match, processedAt time.Time) []models.MatchPrediction {
	results := make([]models.MatchPrediction, 0, len(matches))
	for i := range matches {
		results = append(results, models.MatchPrediction{
			Match:       matches[i],
			Prediction:  c.Predict(&matches[i]),
			ProcessedAt: processedAt,
		})
	}
	return results
}

func (c *Calculator) fallback(matchID, reason string) {
	metrics.RecordPredictionFallback(reason)
	if reason == FallbackNoStats {
		c.logger.WithField("match_id", matchID).Debug("No statistics; using implied probabilities")
		return
	}
	c.logger.LogFallback(matchID, reason)
}

func (c *Calculator) record(matchID string, pred *models.Prediction) {
	metrics.RecordPrediction(string(pred.Outcome), pred.Confidence)
	for _, vb := range pred.ValueBets {
		metrics.RecordValueBet(string(vb.Market), vb.ExpectedValue)
		c.logger.LogValueBet(matchID, vb.MarketName, vb.Bookmaker, vb.Probability, vb.Odds, vb.ExpectedValue)
	}
	c.logger.LogPrediction(matchID, string(pred.Outcome), pred.Confidence, len(pred.ValueBets), pred.DataQuality)
}
