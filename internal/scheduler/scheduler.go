// Package scheduler runs the periodic refresh job.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchday-edge/internal/models"
)

// MinInterval is the shortest accepted refresh interval
const MinInterval = 5 * time.Second

// Refresher is the job run on every tick
type Refresher interface {
	Refresh(ctx context.Context) (*models.Snapshot, bool, error)
}

// Scheduler manages the scheduled refresh job
type Scheduler struct {
	cron            *cron.Cron
	refresher       Refresher
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	timeout         time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. timeout bounds each refresh run.
func NewScheduler(refresher Refresher, timeout time.Duration, logger *logrus.Logger) *Scheduler {
	entry := logger.WithField("component", "scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger{entry})),
		),
		refresher:       refresher,
		logger:          entry,
		jobIDs:          make([]cron.EntryID, 0),
		timeout:         timeout,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRefresh schedules the refresh job every interval
func (s *Scheduler) ScheduleRefresh(interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if interval < MinInterval {
		interval = MinInterval
	}

	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	entryID, err := s.cron.AddFunc(spec, func() {
		s.RunNow(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("interval", interval.String()).Info("Scheduled refresh job")

	return nil
}

// RunNow runs one refresh immediately, logging instead of returning failures
func (s *Scheduler) RunNow(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	snap, applied, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Scheduled refresh failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"sequence": snap.Sequence,
		"applied":  applied,
	}).Debug("Scheduled refresh finished")
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler, waiting for a running job up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("timed out waiting for running refresh after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}

// cronLogger adapts logrus to cron's logger interface
type cronLogger struct {
	entry *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues)).WithError(err).Error(msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
