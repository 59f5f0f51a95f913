// Package circuitbreaker guards calls to an unreliable dependency.
package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the state of the circuit breaker.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota
	// StateOpen rejects calls until the open timeout elapses.
	StateOpen
	// StateHalfOpen lets a single probe call through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config configures a circuit breaker.
type Config struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes that closes it again.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration
	// OnStateChange is called with the lock held; it must not call back into the breaker.
	OnStateChange func(from, to State)
}

// Default thresholds.
const (
	DefaultFailureThreshold = 5
	DefaultSuccessThreshold = 1
	DefaultTimeout          = 30 * time.Second
)

// Breaker implements the circuit breaker pattern.
type Breaker struct {
	mu            sync.Mutex
	config        Config
	state         State
	failures      int
	successes     int
	openedAt      time.Time
	probeInFlight bool
	now           func() time.Time
}

// New creates a breaker, filling zero config values with defaults.
func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = DefaultSuccessThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Breaker{config: cfg, state: StateClosed, now: time.Now}
}

// Execute runs fn unless the circuit is open. The error returned by fn is
// passed through unchanged and counted as a failure.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.beforeCall(); err != nil {
		return err
	}

	err := fn()
	b.afterCall(err)
	return err
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the circuit and clears counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transitionTo(StateClosed)
}

func (b *Breaker) beforeCall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		wait := b.config.Timeout - b.now().Sub(b.openedAt)
		if wait > 0 {
			return fmt.Errorf("%w: retry after %v", ErrCircuitOpen, wait)
		}
		b.transitionTo(StateHalfOpen)
		b.probeInFlight = true
	case StateHalfOpen:
		if b.probeInFlight {
			return fmt.Errorf("%w: probe in flight", ErrCircuitOpen)
		}
		b.probeInFlight = true
	case StateClosed:
	}
	return nil
}

func (b *Breaker) afterCall(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probeInFlight = false

	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.config.FailureThreshold {
			b.transitionTo(StateOpen)
		}
		return
	}

	b.failures = 0
	if b.state == StateHalfOpen {
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.transitionTo(StateClosed)
		}
	}
}

func (b *Breaker) transitionTo(next State) {
	if b.state == next {
		return
	}

	prev := b.state
	b.state = next
	b.failures = 0
	b.successes = 0
	if next == StateOpen {
		b.openedAt = b.now()
	}

	if b.config.OnStateChange != nil {
		b.config.OnStateChange(prev, next)
	}
}
