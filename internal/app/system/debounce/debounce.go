// Package debounce provides a timer-cancellation debouncer.
//
// A Debouncer coalesces bursts of triggers into a single invocation of its
// action after a quiet period: each Trigger cancels any pending invocation
// and schedules a fresh one. This bounds the action's frequency to one call
// per quiet period during continuous triggering.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules a delayed action where any new trigger cancels and
// reschedules the pending one.
//
// A zero delay makes Trigger invoke the action synchronously, which turns
// the debounced path into an immediate one for tests.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

// New creates a Debouncer that invokes fn after delay of quiet time.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		delay: delay,
		fn:    fn,
	}
}

// Trigger requests an invocation of the action. Any invocation still pending
// from an earlier trigger is cancelled and rescheduled.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	if d.delay == 0 {
		d.mu.Unlock()
		d.fn()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.fn()
	})
	d.mu.Unlock()
}

// Flush runs the pending action immediately, if there is one.
// Used at shutdown so a scheduled write is not lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	timer := d.timer
	d.timer = nil
	d.mu.Unlock()

	if timer != nil && timer.Stop() {
		d.fn()
	}
}

// Stop cancels the pending action without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}

// Pending reports whether an invocation is currently scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
