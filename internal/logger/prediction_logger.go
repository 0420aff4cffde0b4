// Package logger provides prediction-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for the prediction pipeline.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogPrediction logs a completed match prediction.
func (pl *PredictionLogger) LogPrediction(matchID, outcome string, confidence float64, valueBets, dataQuality int) {
	pl.WithFields(logrus.Fields{
		"match_id":     matchID,
		"outcome":      outcome,
		"confidence":   confidence,
		"value_bets":   valueBets,
		"data_quality": dataQuality,
	}).Debug("Match prediction computed")
}

// LogValueBet logs a detected value bet.
func (pl *PredictionLogger) LogValueBet(matchID, market, bookmaker string, probability, odds, expectedValue float64) {
	pl.WithFields(logrus.Fields{
		"match_id":       matchID,
		"market":         market,
		"bookmaker":      bookmaker,
		"probability":    probability,
		"odds":           odds,
		"expected_value": expectedValue,
	}).Debug("Value bet detected")
}

// LogFallback logs a prediction that fell back to reduced inputs.
func (pl *PredictionLogger) LogFallback(matchID, reason string) {
	pl.WithFields(logrus.Fields{
		"match_id":   matchID,
		"event_type": "fallback",
		"reason":     reason,
	}).Warn("Prediction fell back to reduced inputs")
}
