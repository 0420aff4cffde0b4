// Package service runs the refresh cycle: fetch every source, merge and validate the
// fixtures, predict each match and publish the resulting snapshot.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/matchday-edge/internal/datasource"
	"github.com/yourusername/matchday-edge/internal/logger"
	"github.com/yourusername/matchday-edge/internal/metrics"
	"github.com/yourusername/matchday-edge/internal/models"
	"github.com/yourusername/matchday-edge/internal/prediction"
)

// Refresh results reported to metrics
const (
	ResultApplied = "applied"
	ResultStale   = "stale"
	ResultFailed  = "failed"
)

// Refresher produces snapshots from the configured sources
type Refresher struct {
	sources    datasource.Sources
	merger     *Merger
	validator  *MatchValidator
	calculator *prediction.Calculator
	store      *SnapshotStore
	logger     *logger.RefreshLogger
	timeout    time.Duration
	sequence   atomic.Uint64
	breakers   map[string]*CircuitBreaker
	now        func() time.Time
}

// NewRefresher creates a refresher. timeout bounds a single refresh; zero means no bound
// beyond the caller's context.
func NewRefresher(
	sources datasource.Sources,
	calculator *prediction.Calculator,
	store *SnapshotStore,
	timeout time.Duration,
	log *logrus.Logger,
) *Refresher {
	return &Refresher{
		sources:    sources,
		merger:     NewMerger(log),
		validator:  NewMatchValidator(log),
		calculator: calculator,
		store:      store,
		logger:     logger.NewRefreshLogger(log),
		timeout:    timeout,
		now:        time.Now,
	}
}

// WithCircuitBreakers installs one breaker per source. A disabled config leaves every
// source unguarded.
func (r *Refresher) WithCircuitBreakers(cfg CircuitBreakerConfig, log *logrus.Logger) *Refresher {
	if !cfg.Enabled() {
		r.breakers = nil
		return r
	}
	r.breakers = make(map[string]*CircuitBreaker)
	for _, name := range r.sources.Names() {
		r.breakers[name] = NewCircuitBreaker(name, cfg, log)
	}
	return r
}

// Breaker returns the circuit breaker of a source, if any
func (r *Refresher) Breaker(source string) (*CircuitBreaker, bool) {
	b, ok := r.breakers[source]
	return b, ok
}

// Store returns the snapshot store the refresher publishes to
func (r *Refresher) Store() *SnapshotStore {
	return r.store
}

// Refresh runs one cycle. It returns the produced snapshot and whether it was applied;
// a snapshot overtaken by a newer refresh is returned but not applied. When every
// bookmaker source fails, the cached snapshot (or an empty one) is returned together
// with ErrAllSourcesFailed.
func (r *Refresher) Refresh(ctx context.Context) (*models.Snapshot, bool, error) {
	seq := r.sequence.Add(1)
	start := r.now()

	if len(r.sources.Odds) == 0 {
		metrics.RecordRefresh(ResultFailed, 0)
		latest, _ := r.store.Latest()
		return latest, false, ErrNoSources
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	feeds, teams, counts, failed := r.fetchAll(ctx)
	if failed == len(r.sources.Odds) {
		elapsed := r.now().Sub(start)
		metrics.RecordRefresh(ResultFailed, elapsed.Seconds())
		r.logger.WithField("sequence", seq).Error("All bookmaker sources failed; serving cached data")
		latest, _ := r.store.Latest()
		return latest, false, ErrAllSourcesFailed
	}

	for i, src := range r.sources.Odds {
		feeds[i] = r.validator.Filter(src.Name(), feeds[i])
	}
	matches := r.merger.Merge(feeds, teams)
	r.validator.CheckStats(matches)

	generatedAt := r.now()
	predictions := r.calculator.PredictAll(matches, generatedAt)

	snap := &models.Snapshot{
		ID:           uuid.New(),
		Sequence:     seq,
		Matches:      predictions,
		SourceCounts: counts,
		Summary:      prediction.Summarize(predictions),
		GeneratedAt:  generatedAt,
		Duration:     r.now().Sub(start),
	}

	applied := r.store.Apply(seq, snap)
	result := ResultApplied
	if !applied {
		result = ResultStale
	}
	metrics.RecordRefresh(result, snap.Duration.Seconds())
	r.logger.LogRefreshCompleted(seq, len(snap.Matches), snap.Summary.ValueBetsFound,
		float64(snap.Duration.Microseconds())/1000, applied)

	return snap, applied, nil
}

// fetchAll queries every source concurrently. A failing source contributes an empty
// result and is counted in failed when it is a bookmaker.
func (r *Refresher) fetchAll(ctx context.Context) ([][]models.Match, map[string]models.TeamStats, map[string]int, int) {
	feeds := make([][]models.Match, len(r.sources.Odds))
	oddsErrs := make([]error, len(r.sources.Odds))
	statsResults := make([]map[string]models.TeamStats, len(r.sources.Stats))
	statsErrs := make([]error, len(r.sources.Stats))

	// goroutines never return errors so one failure does not cancel the others
	var g errgroup.Group
	for i, src := range r.sources.Odds {
		i, src := i, src
		g.Go(func() error {
			oddsErrs[i] = r.guarded(src.Name(), func() error {
				var err error
				feeds[i], err = src.FetchMatches(ctx)
				return err
			})
			return nil
		})
	}
	for i, src := range r.sources.Stats {
		i, src := i, src
		g.Go(func() error {
			statsErrs[i] = r.guarded(src.Name(), func() error {
				var err error
				statsResults[i], err = src.FetchTeamStats(ctx)
				return err
			})
			return nil
		})
	}
	_ = g.Wait()

	counts := make(map[string]int, len(feeds)+len(statsResults))
	failed := 0
	for i, src := range r.sources.Odds {
		if oddsErrs[i] != nil {
			r.sourceFailed(src.Name(), oddsErrs[i])
			feeds[i] = nil
			failed++
		}
		counts[src.Name()] = len(feeds[i])
	}

	teams := make(map[string]models.TeamStats)
	for i, src := range r.sources.Stats {
		if statsErrs[i] != nil {
			r.sourceFailed(src.Name(), statsErrs[i])
			counts[src.Name()] = 0
			continue
		}
		counts[src.Name()] = len(statsResults[i])
		for name, stats := range statsResults[i] {
			if _, exists := teams[name]; !exists {
				teams[name] = stats
			}
		}
	}

	return feeds, teams, counts, failed
}

// guarded runs fetch unless the source's breaker is open, and feeds the outcome back
func (r *Refresher) guarded(source string, fetch func() error) error {
	b, ok := r.breakers[source]
	if !ok {
		return fetch()
	}
	if !b.Allow() {
		return ErrCircuitOpen
	}
	if err := fetch(); err != nil {
		b.RecordFailure(err)
		return err
	}
	b.RecordSuccess()
	return nil
}

func (r *Refresher) sourceFailed(name string, err error) {
	r.logger.LogSourceFailure(name, err)
	metrics.RecordSourceError(name)
}
