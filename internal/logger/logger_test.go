package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		environment string
		wantLevel   logrus.Level
		wantJSON    bool
	}{
		{name: "production json", level: "info", environment: "production", wantLevel: logrus.InfoLevel, wantJSON: true},
		{name: "development text", level: "debug", environment: "development", wantLevel: logrus.DebugLevel, wantJSON: false},
		{name: "invalid level defaults to info", level: "loud", environment: "development", wantLevel: logrus.InfoLevel, wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := NewLoggerWithOutput(tt.level, tt.environment, buf)

			assert.Equal(t, tt.wantLevel, log.GetLevel())
			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Info("discarded")
	})
}

func TestPredictionLoggerPrediction(t *testing.T) {
	log, buf := setupTestLogger()
	predictionLogger := NewPredictionLogger(log)

	predictionLogger.LogPrediction("match_001", "D", 0.8, 1, 80)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "prediction", logEntry["component"])
	assert.Equal(t, "match_001", logEntry["match_id"])
	assert.Equal(t, "D", logEntry["outcome"])
	assert.Equal(t, 0.8, logEntry["confidence"])
	assert.Equal(t, float64(80), logEntry["data_quality"])
}

func TestPredictionLoggerValueBet(t *testing.T) {
	log, buf := setupTestLogger()
	predictionLogger := NewPredictionLogger(log)

	predictionLogger.LogValueBet("match_001", "Draw", "Betway", 0.39, 3.6, 40.4)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "Draw", logEntry["market"])
	assert.Equal(t, "Betway", logEntry["bookmaker"])
	assert.Equal(t, 40.4, logEntry["expected_value"])
}

func TestPredictionLoggerFallback(t *testing.T) {
	log, buf := setupTestLogger()
	predictionLogger := NewPredictionLogger(log)

	predictionLogger.LogFallback("match_002", "no_usable_odds")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "fallback", logEntry["event_type"])
	assert.Equal(t, "no_usable_odds", logEntry["reason"])
}

func TestRefreshLoggerCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	refreshLogger := NewRefreshLogger(log)

	refreshLogger.LogRefreshCompleted(7, 3, 2, 12.5, true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "refresh", logEntry["component"])
	assert.Equal(t, float64(7), logEntry["sequence"])
	assert.Equal(t, true, logEntry["applied"])
}

func TestRefreshLoggerStaleDrop(t *testing.T) {
	log, buf := setupTestLogger()
	refreshLogger := NewRefreshLogger(log)

	refreshLogger.LogStaleRefresh(4, 5)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "stale_drop", logEntry["event_type"])
	assert.Equal(t, float64(5), logEntry["last_applied"])
}

func TestRefreshLoggerSourceFailure(t *testing.T) {
	log, buf := setupTestLogger()
	refreshLogger := NewRefreshLogger(log)

	refreshLogger.LogSourceFailure("betway", errors.New("fixture missing"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "betway", logEntry["source"])
	assert.Equal(t, "fixture missing", logEntry["error"])
}

func TestRefreshLoggerMatchRejected(t *testing.T) {
	log, buf := setupTestLogger()
	refreshLogger := NewRefreshLogger(log)

	refreshLogger.LogMatchRejected("", "hollywoodbets", []string{"ID is required"})

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "hollywoodbets", logEntry["source"])
	assert.Equal(t, []interface{}{"ID is required"}, logEntry["problems"])
}
