package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordRefresh(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(RefreshesTotal.WithLabelValues("success"))

	assert.NotPanics(t, func() {
		RecordRefresh("success", 0.25)
	})

	assert.Equal(t, before+1, testutil.ToFloat64(RefreshesTotal.WithLabelValues("success")))
}

func TestRecordStaleRefresh(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(StaleRefreshesTotal)

	RecordStaleRefresh()

	assert.Equal(t, before+1, testutil.ToFloat64(StaleRefreshesTotal))
}

func TestRecordPrediction(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name       string
		outcome    string
		confidence float64
	}{
		{name: "home with stats", outcome: "H", confidence: 0.95},
		{name: "draw without stats", outcome: "D", confidence: 0.5},
		{name: "away", outcome: "A", confidence: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(PredictionsTotal.WithLabelValues(tt.outcome))
			assert.NotPanics(t, func() {
				RecordPrediction(tt.outcome, tt.confidence)
			})
			assert.Equal(t, before+1, testutil.ToFloat64(PredictionsTotal.WithLabelValues(tt.outcome)))
		})
	}
}

func TestUpdateSnapshot(t *testing.T) {
	InitRegistry()

	UpdateSnapshot(42, 3, 5)

	assert.Equal(t, 42.0, testutil.ToFloat64(LastAppliedSequence))
	assert.Equal(t, 3.0, testutil.ToFloat64(LiveMatches))
	assert.Equal(t, 5.0, testutil.ToFloat64(LiveValueBets))
}

func TestSourceAndValueBetMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSourceError("betway")
		RecordMatchRejected()
		RecordPredictionFallback("missing_stats")
		RecordValueBet("draw", 4.4)
		UpdateCacheHitRatio(0.5)
		UpdateStreamClients(2)
	})

	assert.Equal(t, 0.5, testutil.ToFloat64(CacheHitRatio))
	assert.Equal(t, 2.0, testutil.ToFloat64(StreamClients))
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()
	RecordRefresh("success", 0.1)

	handler := Handler()
	require.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "matchday_edge_refreshes_total")
}

func BenchmarkRecordPrediction(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordPrediction("H", 0.8)
	}
}
