package service

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CircuitState represents the state of a source circuit breaker
type CircuitState int

const (
	// CircuitClosed means the source is queried normally
	CircuitClosed CircuitState = iota
	// CircuitHalfOpen means one trial fetch is allowed after the cooldown
	CircuitHalfOpen
	// CircuitOpen means the source is skipped
	CircuitOpen
)

// String returns string representation of circuit state
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "CLOSED"
	case CircuitHalfOpen:
		return "HALF_OPEN"
	case CircuitOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreakerConfig defines when a failing source is skipped.
// A MaxFailureCount of zero disables the breaker.
type CircuitBreakerConfig struct {
	MaxFailureCount   int
	FailureTimeWindow time.Duration
	CooldownPeriod    time.Duration
}

// Enabled reports whether breakers should be installed
func (c CircuitBreakerConfig) Enabled() bool {
	return c.MaxFailureCount > 0
}

// CircuitBreaker stops querying a source after repeated failures
type CircuitBreaker struct {
	source          string
	config          CircuitBreakerConfig
	state           CircuitState
	failureCount    int
	lastFailureTime time.Time
	openedAt        time.Time
	trialInFlight   bool
	mu              sync.Mutex
	logger          *logrus.Entry
	now             func() time.Time
}

// NewCircuitBreaker creates a closed breaker for source
func NewCircuitBreaker(source string, config CircuitBreakerConfig, logger *logrus.Logger) *CircuitBreaker {
	return &CircuitBreaker{
		source: source,
		config: config,
		state:  CircuitClosed,
		logger: logger.WithFields(logrus.Fields{"component": "circuit_breaker", "source": source}),
		now:    time.Now,
	}
}

// Allow reports whether the source may be queried. An open breaker whose cooldown has
// passed moves to half-open and admits a single trial fetch; other callers are refused
// until the trial's result is recorded.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen && cb.now().Sub(cb.openedAt) >= cb.config.CooldownPeriod {
		cb.state = CircuitHalfOpen
		cb.trialInFlight = false
		cb.logger.Info("Circuit breaker entering half-open state after cooldown")
	}

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitHalfOpen:
		if cb.trialInFlight {
			return false
		}
		cb.trialInFlight = true
		return true
	default:
		return false
	}
}

// RecordFailure counts a failed fetch and opens the breaker at the threshold.
// A failed trial fetch reopens it immediately.
func (cb *CircuitBreaker) RecordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	if cb.state == CircuitHalfOpen {
		cb.openLocked(now, err)
		return
	}

	// Reset failure count if outside time window
	if cb.config.FailureTimeWindow > 0 && now.Sub(cb.lastFailureTime) > cb.config.FailureTimeWindow {
		cb.failureCount = 0
	}
	cb.failureCount++
	cb.lastFailureTime = now

	if cb.failureCount >= cb.config.MaxFailureCount && cb.state == CircuitClosed {
		cb.openLocked(now, err)
	}
}

// RecordSuccess closes the breaker and resets the failure count
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitClosed {
		cb.logger.WithField("old_state", cb.state.String()).Info("Circuit breaker closed")
	}
	cb.state = CircuitClosed
	cb.failureCount = 0
	cb.trialInFlight = false
}

// GetState returns current circuit state
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

func (cb *CircuitBreaker) openLocked(now time.Time, err error) {
	oldState := cb.state
	cb.state = CircuitOpen
	cb.openedAt = now
	cb.trialInFlight = false

	entry := cb.logger.WithFields(logrus.Fields{
		"old_state":       oldState.String(),
		"failure_count":   cb.failureCount,
		"cooldown_period": cb.config.CooldownPeriod.String(),
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn("Circuit breaker opened; source skipped until cooldown")
}
