package service

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/cache"
	"github.com/yourusername/matchday-edge/internal/logger"
	"github.com/yourusername/matchday-edge/internal/metrics"
	"github.com/yourusername/matchday-edge/internal/models"
)

// LiveDataKey is the cache key of the latest applied snapshot
const LiveDataKey = "live_data"

// SnapshotStore holds the latest refresh result. Results are applied in sequence order:
// a result older than the last applied one is dropped.
type SnapshotStore struct {
	mu          sync.Mutex
	cache       *cache.TTLCache[*models.Snapshot]
	lastApplied uint64
	subscribers map[chan *models.Snapshot]struct{}
	logger      *logger.RefreshLogger
}

// NewSnapshotStore creates a store backed by c
func NewSnapshotStore(c *cache.TTLCache[*models.Snapshot], log *logrus.Logger) *SnapshotStore {
	return &SnapshotStore{
		cache:       c,
		subscribers: make(map[chan *models.Snapshot]struct{}),
		logger:      logger.NewRefreshLogger(log),
	}
}

// Apply stores snap if seq is newer than the last applied sequence and notifies
// subscribers. It reports whether the snapshot was applied.
func (s *SnapshotStore) Apply(seq uint64, snap *models.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.lastApplied {
		s.logger.LogStaleRefresh(seq, s.lastApplied)
		metrics.RecordStaleRefresh()
		return false
	}

	s.lastApplied = seq
	s.cache.Set(LiveDataKey, snap)
	metrics.UpdateSnapshot(seq, len(snap.Matches), snap.Summary.ValueBetsFound)

	for ch := range s.subscribers {
		publish(ch, snap)
	}
	return true
}

// publish delivers snap without blocking, replacing an undelivered older snapshot
func publish(ch chan *models.Snapshot, snap *models.Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Latest returns the cached snapshot, or an empty snapshot and false when nothing has
// been applied or the cached one expired
func (s *SnapshotStore) Latest() (*models.Snapshot, bool) {
	snap, ok := s.cache.Get(LiveDataKey)
	if !ok || snap == nil {
		return models.EmptySnapshot(), false
	}
	return snap, true
}

// LastApplied returns the sequence of the latest applied snapshot, 0 before the first
func (s *SnapshotStore) LastApplied() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastApplied
}

// Ready reports whether a snapshot has been applied
func (s *SnapshotStore) Ready() bool {
	return s.LastApplied() > 0
}

// Subscribe returns a channel receiving every applied snapshot. Slow readers only see
// the most recent one. Call Unsubscribe when done.
func (s *SnapshotStore) Subscribe() chan *models.Snapshot {
	ch := make(chan *models.Snapshot, 1)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	count := len(s.subscribers)
	s.mu.Unlock()

	metrics.UpdateStreamClients(count)
	return ch
}

// Unsubscribe removes a subscription and closes its channel
func (s *SnapshotStore) Unsubscribe(ch chan *models.Snapshot) {
	s.mu.Lock()
	_, ok := s.subscribers[ch]
	if ok {
		delete(s.subscribers, ch)
		close(ch)
	}
	count := len(s.subscribers)
	s.mu.Unlock()

	metrics.UpdateStreamClients(count)
}

// SubscriberCount returns the number of active subscriptions
func (s *SnapshotStore) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}
