// Package logger provides refresh cycle logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// RefreshLogger provides dedicated logging for refresh cycles and data sources.
type RefreshLogger struct {
	*logrus.Entry
}

// NewRefreshLogger creates a new refresh logger.
func NewRefreshLogger(baseLogger *logrus.Logger) *RefreshLogger {
	return &RefreshLogger{
		Entry: baseLogger.WithField("component", "refresh"),
	}
}

// LogRefreshCompleted logs a refresh cycle that produced a snapshot.
func (rl *RefreshLogger) LogRefreshCompleted(sequence uint64, matches, valueBets int, durationMs float64, applied bool) {
	rl.WithFields(logrus.Fields{
		"sequence":    sequence,
		"matches":     matches,
		"value_bets":  valueBets,
		"duration_ms": durationMs,
		"applied":     applied,
	}).Info("Refresh cycle completed")
}

// LogStaleRefresh logs a snapshot dropped because a newer one was already applied.
func (rl *RefreshLogger) LogStaleRefresh(sequence, lastApplied uint64) {
	rl.WithFields(logrus.Fields{
		"sequence":     sequence,
		"last_applied": lastApplied,
		"event_type":   "stale_drop",
	}).Warn("Dropped out-of-order refresh result")
}

// LogSourceFailure logs a data source that failed during a refresh.
func (rl *RefreshLogger) LogSourceFailure(source string, err error) {
	rl.WithFields(logrus.Fields{
		"source":     source,
		"event_type": "source_failure",
	}).WithError(err).Warn("Data source failed; continuing with empty result")
}

// LogMatchRejected logs a match dropped by validation.
func (rl *RefreshLogger) LogMatchRejected(matchID, source string, problems []string) {
	rl.WithFields(logrus.Fields{
		"match_id": matchID,
		"source":   source,
		"problems": problems,
	}).Warn("Match rejected by validation")
}
