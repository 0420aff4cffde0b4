// Package metrics provides centralized Prometheus metrics registry for the dashboard service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchday_edge",
		Name:      "refreshes_total",
		Help:      "Total number of refresh cycles by result",
	}, []string{"result"})
	StaleRefreshesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchday_edge",
		Name:      "stale_refreshes_total",
		Help:      "Total number of refresh results dropped because a newer result was already applied",
	})
	SourceErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchday_edge",
		Name:      "source_errors_total",
		Help:      "Total number of data source failures",
	}, []string{"source"})
	MatchesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchday_edge",
		Name:      "matches_rejected_total",
		Help:      "Total number of matches dropped by validation",
	})
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchday_edge",
		Name:      "predictions_total",
		Help:      "Total number of predictions by outcome",
	}, []string{"outcome"})
	PredictionFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchday_edge",
		Name:      "prediction_fallbacks_total",
		Help:      "Total number of predictions computed from reduced inputs",
	}, []string{"reason"})
	ValueBetsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "matchday_edge",
		Name:      "value_bets_total",
		Help:      "Total number of value bets detected by market",
	}, []string{"market"})
)

// Gauge metrics
var (
	LiveMatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchday_edge",
		Name:      "live_matches",
		Help:      "Number of matches in the latest applied snapshot",
	})
	LiveValueBets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchday_edge",
		Name:      "live_value_bets",
		Help:      "Number of value bets in the latest applied snapshot",
	})
	LastAppliedSequence = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchday_edge",
		Name:      "last_applied_sequence",
		Help:      "Sequence number of the latest applied snapshot",
	})
	CacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchday_edge",
		Name:      "cache_hit_ratio",
		Help:      "Hit ratio of the snapshot cache",
	})
	StreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchday_edge",
		Name:      "stream_clients",
		Help:      "Number of connected snapshot stream clients",
	})
)

// Histogram metrics
var (
	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchday_edge",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of refresh cycles in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	PredictionConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchday_edge",
		Name:      "prediction_confidence",
		Help:      "Reported confidence of match predictions",
		Buckets:   []float64{0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1.0},
	})
	ValueBetExpectedValue = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchday_edge",
		Name:      "value_bet_expected_value_percent",
		Help:      "Expected value percentage of detected value bets",
		Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(RefreshesTotal)
		registry.MustRegister(StaleRefreshesTotal)
		registry.MustRegister(SourceErrorsTotal)
		registry.MustRegister(MatchesRejectedTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionFallbacksTotal)
		registry.MustRegister(ValueBetsTotal)

		// Register gauge metrics
		registry.MustRegister(LiveMatches)
		registry.MustRegister(LiveValueBets)
		registry.MustRegister(LastAppliedSequence)
		registry.MustRegister(CacheHitRatio)
		registry.MustRegister(StreamClients)

		// Register histogram metrics
		registry.MustRegister(RefreshDuration)
		registry.MustRegister(PredictionConfidence)
		registry.MustRegister(ValueBetExpectedValue)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRefresh records a finished refresh cycle.
func RecordRefresh(result string, durationSeconds float64) {
	RefreshesTotal.WithLabelValues(result).Inc()
	RefreshDuration.Observe(durationSeconds)
}

// RecordStaleRefresh records a dropped out-of-order refresh result.
func RecordStaleRefresh() {
	StaleRefreshesTotal.Inc()
}

// RecordSourceError records a data source failure.
func RecordSourceError(source string) {
	SourceErrorsTotal.WithLabelValues(source).Inc()
}

// RecordMatchRejected records a match dropped by validation.
func RecordMatchRejected() {
	MatchesRejectedTotal.Inc()
}

// RecordPrediction records a computed prediction.
func RecordPrediction(outcome string, confidence float64) {
	PredictionsTotal.WithLabelValues(outcome).Inc()
	PredictionConfidence.Observe(confidence)
}

// RecordPredictionFallback records a prediction computed from reduced inputs.
func RecordPredictionFallback(reason string) {
	PredictionFallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordValueBet records a detected value bet.
func RecordValueBet(market string, expectedValue float64) {
	ValueBetsTotal.WithLabelValues(market).Inc()
	ValueBetExpectedValue.Observe(expectedValue)
}

// UpdateSnapshot updates the gauges describing the latest applied snapshot.
func UpdateSnapshot(sequence uint64, matches, valueBets int) {
	LastAppliedSequence.Set(float64(sequence))
	LiveMatches.Set(float64(matches))
	LiveValueBets.Set(float64(valueBets))
}

// UpdateCacheHitRatio updates the cache hit ratio gauge.
func UpdateCacheHitRatio(ratio float64) {
	CacheHitRatio.Set(ratio)
}

// UpdateStreamClients updates the connected stream clients gauge.
func UpdateStreamClients(count int) {
	StreamClients.Set(float64(count))
}
