// Package debounce coalesces bursts of updates into a single delivery after a
// quiet period.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is used when a non-positive delay is given
const DefaultDelay = 1200 * time.Millisecond

// Debouncer delivers the most recent value passed to Notify once no further
// Notify call has happened for the configured delay.
type Debouncer[T any] struct {
	delay time.Duration
	out   chan T

	mu      sync.Mutex
	timer   *time.Timer
	latest  T
	pending bool
	stopped bool
}

// New creates a debouncer. Settled values are available on C.
func New[T any](delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay: delay,
		out:   make(chan T, 1),
	}
}

// Delay returns the quiet period
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// C returns the channel settled values are sent on.
// Only the latest undelivered value is kept.
func (d *Debouncer[T]) C() <-chan T {
	return d.out
}

// Notify records v and restarts the quiet period
func (d *Debouncer[T]) Notify(v T) {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.latest = v
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
		return
	}
	d.timer.Reset(d.delay)
}

// Flush delivers a pending value immediately
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Cancel drops a pending value without delivering it
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
}

// Stop cancels any pending value. Further Notify calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
	d.stopped = true
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = false

	// replace an undelivered value so the channel never blocks the timer
	select {
	case <-d.out:
	default:
	}
	d.out <- v
	d.mu.Unlock()
}
