package clients

import (
	"sync"
	"time"
)

// State is a circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down has elapsed.
	StateOpen

	// StateHalfOpen admits a limited number of probe requests.
	StateHalfOpen
)

// String returns a human-readable name for the state.
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

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures int

	// Timeout is the cool-down spent open before probing.
	Timeout time.Duration

	// HalfOpenLimit caps concurrent probes and is also the number of
	// consecutive probe successes needed to close again.
	HalfOpenLimit int
}

// CircuitBreaker guards a downstream dependency.
//
//	closed    --MaxFailures failures-->    open
//	open      --Timeout elapsed-->         half-open
//	half-open --HalfOpenLimit successes--> closed
//	half-open --any failure-->             open
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	probes   int
	passed   int
	openedAt time.Time
	notify   func(from, to State)
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after every transition. fn runs
// synchronously, outside the breaker's lock.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.notify = fn
	cb.mu.Unlock()
}

// Allow reports whether a request may proceed. Every true result must be
// followed by exactly one RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var fire func()

	allowed := false

	switch cb.state {
	case StateClosed:
		allowed = true
	case StateOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cfg.Timeout {
			fire = cb.transition(StateHalfOpen)
			cb.probes = 1
			allowed = true
		}
	case StateHalfOpen:
		if cb.probes < cb.cfg.HalfOpenLimit {
			cb.probes++
			allowed = true
		}
	}

	cb.mu.Unlock()
	run(fire)

	return allowed
}

// RecordSuccess records a request that reached the dependency.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var fire func()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.probes--
		cb.passed++
		if cb.passed >= cb.cfg.HalfOpenLimit {
			fire = cb.transition(StateClosed)
		}
	}

	cb.mu.Unlock()
	run(fire)
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var fire func()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			fire = cb.transition(StateOpen)
		}
	case StateHalfOpen:
		fire = cb.transition(StateOpen)
	case StateOpen:
		cb.openedAt = cb.now()
	}

	cb.mu.Unlock()
	run(fire)
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// transition must be called with mu held. It returns the pending
// notification, if any, for the caller to run after unlocking.
func (cb *CircuitBreaker) transition(to State) func() {
	from := cb.state
	if from == to {
		return nil
	}

	cb.state = to
	cb.failures, cb.passed = 0, 0

	if to == StateOpen {
		cb.openedAt = cb.now()
		cb.probes = 0
	}

	if cb.notify == nil {
		return nil
	}

	notify := cb.notify

	return func() { notify(from, to) }
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}
