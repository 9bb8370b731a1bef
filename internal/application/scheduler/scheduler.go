// Package scheduler provides the two timing primitives the driver
// layer uses: a trailing-edge debouncer for search input and a
// coalescer that collapses bursts of change notifications into a
// single deferred callback.
package scheduler

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period applied to search input
// before a query is evaluated.
const DefaultSearchDebounce = 300 * time.Millisecond

// Debouncer runs a function after a quiet period. A newer trigger
// supersedes a pending one; only the last function fires.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any
// previously scheduled function that has not fired yet.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels a pending trigger, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Coalescer fires a fixed callback at most once per flush cycle.
// Requests arriving while a flush is pending or in flight are
// suppressed rather than queued, so a burst of mutations produces a
// single notification.
type Coalescer struct {
	mu      sync.Mutex
	pending bool
	delay   time.Duration
	fn      func()
}

// NewCoalescer creates a coalescer that defers fn by delay after the
// first request of each cycle.
func NewCoalescer(delay time.Duration, fn func()) *Coalescer {
	return &Coalescer{delay: delay, fn: fn}
}

// Request asks for a flush. The first request of a cycle schedules
// the callback; later requests before the callback completes are
// dropped.
func (c *Coalescer) Request() {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return
	}
	c.pending = true
	c.mu.Unlock()

	time.AfterFunc(c.delay, func() {
		c.fn()
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	})
}
