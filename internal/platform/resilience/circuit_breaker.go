package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs after the breaker
// lock is released.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker trips after consecutive upstream failures and probes the
// upstream again once the open timeout elapses.
type CircuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	openTimeout      time.Duration
	halfOpenMaxReq   int
	onChange         StateChangeFunc

	state           CircuitState
	failures        int
	openedAt        time.Time
	probesInFlight  int
	probesSucceeded int
	now             func() time.Time
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenMaxReq int) *CircuitBreaker {
	cfg := CircuitBreakerConfig{
		FailureThreshold: failureThreshold,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}.Normalized()

	return &CircuitBreaker{
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
		halfOpenMaxReq:   cfg.HalfOpenMaxReq,
		state:            CircuitStateClosed,
		now:              time.Now,
	}
}

// OnStateChange registers fn for every transition. Set it before the
// breaker is shared.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *CircuitBreaker) Allow() error {
	var err error
	b.update(func(now time.Time) {
		if b.state == CircuitStateOpen {
			if now.Sub(b.openedAt) < b.openTimeout {
				err = ErrCircuitOpen
				return
			}
			b.setState(CircuitStateHalfOpen, now)
		}
		if b.state == CircuitStateHalfOpen {
			if b.probesInFlight >= b.halfOpenMaxReq {
				err = ErrCircuitOpen
				return
			}
			b.probesInFlight++
		}
	})
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.update(func(now time.Time) {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			b.probesInFlight = max(b.probesInFlight-1, 0)
			b.probesSucceeded++
			if b.probesSucceeded >= b.halfOpenMaxReq && b.probesInFlight == 0 {
				b.setState(CircuitStateClosed, now)
			}
		}
	})
}

func (b *CircuitBreaker) RecordFailure() {
	b.update(func(now time.Time) {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.failureThreshold {
				b.setState(CircuitStateOpen, now)
			}
		case CircuitStateHalfOpen:
			b.setState(CircuitStateOpen, now)
		case CircuitStateOpen:
			b.openedAt = now
		}
	})
}

// State reports half_open once an open breaker's timeout has elapsed, even
// before the next Allow moves it there.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// Guard runs fn when the breaker allows it and records the outcome.
// Errors for which isFailure returns false count as successes.
func (b *CircuitBreaker) Guard(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return err
}

func (b *CircuitBreaker) update(fn func(now time.Time)) {
	b.mu.Lock()
	from := b.state
	fn(b.now())
	to := b.state
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil && from != to {
		onChange(from, to)
	}
}

func (b *CircuitBreaker) setState(to CircuitState, now time.Time) {
	b.state = to
	b.probesInFlight = 0
	b.probesSucceeded = 0
	switch to {
	case CircuitStateOpen:
		b.openedAt = now
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}
