// Package ratelimit holds the explicit rate-limiting policies attached to
// specific operations: progress persistence, manual refresh requests,
// search re-query.
package ratelimit

import (
	"sync"
	"time"
)

// Counter throttles by call count: Allow reports true on the first call and
// then every nth call. Used to bound persistence write volume during
// continuous playback (writes must still occur periodically, so this is a
// throttle, not a debounce).
type Counter struct {
	mu    sync.Mutex
	every int
	calls int
}

func NewCounter(every int) *Counter {
	if every < 1 {
		every = 1
	}
	return &Counter{every: every}
}

func (c *Counter) Allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	allowed := c.calls%c.every == 0
	c.calls++
	return allowed
}

func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}

// Interval throttles by wall clock: at most one Allow per min duration.
type Interval struct {
	mu   sync.Mutex
	min  time.Duration
	last time.Time
	now  func() time.Time
}

func NewInterval(min time.Duration) *Interval {
	return &Interval{min: min, now: time.Now}
}

func (i *Interval) Allow() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	t := i.now()
	if !i.last.IsZero() && t.Sub(i.last) < i.min {
		return false
	}
	i.last = t
	return true
}

// Debouncer delays a callback until triggers pause for the configured
// duration; each Trigger resets the timer, only the last callback runs.
// Gates search re-query: recompute after input pauses, not per keystroke.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
