package core

// upload_limiter.go caps how many uploads are parsed at the same time.
//
// A parse holds the raw file and its columnar copy in memory, so uploads
// take a slot from a buffered channel. A caller that cannot get a slot
// within maxWait fails with ErrTooManyUploads.

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrTooManyUploads is returned when no upload slot frees up in time.
var ErrTooManyUploads = errors.New("too many concurrent uploads, please try again later")

const (
	// DefaultMaxConcurrentUploads is the slot count when none is configured.
	DefaultMaxConcurrentUploads = 5

	// DefaultMaxWaitTime is how long Acquire waits for a slot by default.
	DefaultMaxWaitTime = 30 * time.Second
)

// UploadLimiter hands out a fixed number of upload slots.
type UploadLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	accepted atomic.Int64
	rejected atomic.Int64

	mu     sync.Mutex
	active int
	idle   chan struct{} // closed whenever active == 0
}

// NewUploadLimiter returns a limiter with maxConcurrent slots.
// Non-positive arguments select the defaults.
func NewUploadLimiter(maxConcurrent int, maxWait time.Duration) *UploadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentUploads
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	idle := make(chan struct{})
	close(idle)
	return &UploadLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
		idle:    idle,
	}
}

// Acquire takes a slot, waiting at most maxWait. Every successful Acquire
// must be paired with a Release. Cancelling ctx returns ctx.Err().
func (l *UploadLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeoutCause(ctx, l.maxWait, ErrTooManyUploads)
	defer cancel()

	select {
	case l.slots <- struct{}{}:
	case <-waitCtx.Done():
		if err := ctx.Err(); err != nil {
			return err
		}
		l.rejected.Add(1)
		return context.Cause(waitCtx)
	}

	l.accepted.Add(1)
	l.mu.Lock()
	if l.active == 0 {
		l.idle = make(chan struct{})
	}
	l.active++
	l.mu.Unlock()
	return nil
}

// Release returns a slot taken by Acquire.
func (l *UploadLimiter) Release() {
	l.mu.Lock()
	l.active--
	if l.active == 0 {
		close(l.idle)
	}
	l.mu.Unlock()

	<-l.slots
}

// ActiveCount returns the number of uploads holding a slot.
func (l *UploadLimiter) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// WaitForDrain blocks until no upload holds a slot, or ctx ends.
func (l *UploadLimiter) WaitForDrain(ctx context.Context) error {
	l.mu.Lock()
	idle := l.idle
	l.mu.Unlock()

	select {
	case <-idle:
		return nil
	default:
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UploadLimiterStatus is a point-in-time view of the limiter.
type UploadLimiterStatus struct {
	Active        int   `json:"active"`
	Available     int   `json:"available"`
	MaxConcurrent int   `json:"max_concurrent"`
	Accepted      int64 `json:"accepted"`
	Rejected      int64 `json:"rejected"`
}

// Status reports slot usage and lifetime counters.
func (l *UploadLimiter) Status() UploadLimiterStatus {
	active := l.ActiveCount()
	return UploadLimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - active,
		MaxConcurrent: cap(l.slots),
		Accepted:      l.accepted.Load(),
		Rejected:      l.rejected.Load(),
	}
}
