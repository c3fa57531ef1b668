package core

// run_limiter.go bounds how many reconciliations execute at once.
//
// Each run holds both decoded spreadsheets in memory, so parallel runs are
// limited with a semaphore. A run that finds every slot taken queues for up
// to maxWait and then fails with ErrTooManyRuns (UPL002). Queued and rejected
// runs are reported on /healthz; WaitForDrain lets shutdown wait for the runs
// already in progress.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyRuns is returned when all run slots are occupied and the wait
// timeout expires. Clients should retry after a short delay.
var ErrTooManyRuns = errors.New("too many concurrent runs, please try again later")

// DefaultMaxConcurrentRuns is the default limit for parallel runs.
const DefaultMaxConcurrentRuns = 4

// DefaultMaxWaitTime is how long a run queues for a slot before rejecting.
const DefaultMaxWaitTime = 15 * time.Second

// RunLimiter controls concurrent reconciliation using a semaphore.
type RunLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu       sync.Mutex
	active   int
	queued   int
	rejected int64
	idle     chan struct{} // closed while no run is active
}

// NewRunLimiter creates a limiter that allows at most maxConcurrent
// simultaneous runs. Runs that cannot get a slot within maxWait receive
// ErrTooManyRuns.
func NewRunLimiter(maxConcurrent int, maxWait time.Duration) *RunLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRuns
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	idle := make(chan struct{})
	close(idle)

	return &RunLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		idle:    idle,
	}
}

// Acquire queues for a run slot and returns the function that gives it back.
// The release function is safe to call more than once; only the first call
// frees the slot.
//
// A caller whose ctx ends while queued gets ctx.Err(); a run that outwaits
// maxWait gets ErrTooManyRuns.
func (l *RunLimiter) Acquire(ctx context.Context) (release func(), err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.queued++
	l.mu.Unlock()

	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.queued--
		l.active++
		if l.active == 1 {
			l.idle = make(chan struct{})
		}
		l.mu.Unlock()

		var once sync.Once
		return func() { once.Do(l.release) }, nil

	case <-ctx.Done():
		l.mu.Lock()
		l.queued--
		l.mu.Unlock()
		return nil, ctx.Err()

	case <-timer.C:
		l.mu.Lock()
		l.queued--
		l.rejected++
		l.mu.Unlock()
		return nil, ErrTooManyRuns
	}
}

func (l *RunLimiter) release() {
	l.mu.Lock()
	l.active--
	if l.active == 0 {
		close(l.idle)
	}
	l.mu.Unlock()

	<-l.slots
}

// WaitForDrain blocks until no run is active or ctx is done. Runs that start
// while waiting extend the wait.
func (l *RunLimiter) WaitForDrain(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.active == 0 {
			l.mu.Unlock()
			return nil
		}
		idle := l.idle
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle:
		}
	}
}

// RunLimiterStatus is a snapshot of the limiter's state.
type RunLimiterStatus struct {
	Active        int   `json:"active"`
	Queued        int   `json:"queued"`
	Available     int   `json:"available"`
	MaxConcurrent int   `json:"maxConcurrent"`
	Rejected      int64 `json:"rejected"` // runs that gave up waiting since start
}

// Status returns the current limiter state for the health endpoint.
func (l *RunLimiter) Status() RunLimiterStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	return RunLimiterStatus{
		Active:        l.active,
		Queued:        l.queued,
		Available:     cap(l.slots) - l.active,
		MaxConcurrent: cap(l.slots),
		Rejected:      l.rejected,
	}
}
