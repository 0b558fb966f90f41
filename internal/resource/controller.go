package resource

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation does not fit.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// Limits bound one benchmark run.
type Limits struct {
	// MemoryBytes caps the bytes reserved for context blocks. Zero tracks
	// without a cap.
	MemoryBytes int64
	// Workers is how many contexts iterate at once. Zero means one.
	Workers int64
	// ProgressPerSec throttles calibration progress logs. Zero disables
	// throttling.
	ProgressPerSec float64
}

// Usage is a snapshot of reserved memory.
type Usage struct {
	Reserved int64
	Peak     int64
	Limit    int64 // 0 if unlimited
}

// Controller enforces Limits. A nil *Controller enforces nothing.
type Controller struct {
	limits   Limits
	memory   *semaphore.Weighted // nil if unlimited
	reserved atomic.Int64
	peak     atomic.Int64
	workers  *semaphore.Weighted
	progress *rate.Limiter // nil if unthrottled
}

// NewController creates a controller for l.
func NewController(l Limits) *Controller {
	if l.Workers <= 0 {
		l.Workers = 1
	}
	c := &Controller{
		limits:  l,
		workers: semaphore.NewWeighted(l.Workers),
	}
	if l.MemoryBytes > 0 {
		c.memory = semaphore.NewWeighted(l.MemoryBytes)
	}
	if l.ProgressPerSec > 0 {
		c.progress = rate.NewLimiter(rate.Limit(l.ProgressPerSec), 1)
	}
	return c
}

// Reservation is memory held against the limit until Release.
type Reservation struct {
	c        *Controller
	bytes    int64
	released atomic.Bool
}

// Bytes returns the reserved size.
func (r *Reservation) Bytes() int64 {
	return r.bytes
}

// Release returns the bytes to the controller. It is idempotent.
func (r *Reservation) Release() {
	if r == nil || r.c == nil || r.released.Swap(true) {
		return
	}
	if r.c.memory != nil {
		r.c.memory.Release(r.bytes)
	}
	r.c.reserved.Add(-r.bytes)
}

// Reserve claims n bytes without blocking, so a run that does not fit fails
// before any timing starts.
func (c *Controller) Reserve(n int64) (*Reservation, error) {
	if c == nil || n <= 0 {
		return &Reservation{bytes: max(n, 0)}, nil
	}
	if c.memory != nil && !c.memory.TryAcquire(n) {
		return nil, ErrMemoryLimitExceeded
	}

	now := c.reserved.Add(n)
	for {
		p := c.peak.Load()
		if now <= p || c.peak.CompareAndSwap(p, now) {
			break
		}
	}
	return &Reservation{c: c, bytes: n}, nil
}

// Usage returns the current memory reservations.
func (c *Controller) Usage() Usage {
	if c == nil {
		return Usage{}
	}
	return Usage{
		Reserved: c.reserved.Load(),
		Peak:     c.peak.Load(),
		Limit:    c.limits.MemoryBytes,
	}
}

// Workers returns the number of worker slots.
func (c *Controller) Workers() int64 {
	if c == nil {
		return 1
	}
	return c.limits.Workers
}

// Worker blocks until a worker slot is free and returns the function that
// frees it.
func (c *Controller) Worker(ctx context.Context) (func(), error) {
	if c == nil {
		return func() {}, ctx.Err()
	}
	if err := c.workers.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { c.workers.Release(1) }, nil
}

// AllowProgress reports whether a progress log may be emitted now.
func (c *Controller) AllowProgress() bool {
	if c == nil || c.progress == nil {
		return true
	}
	return c.progress.AllowN(time.Now(), 1)
}
