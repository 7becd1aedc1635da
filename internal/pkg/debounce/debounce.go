// Package debounce runs a function once after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays fn until Trigger has not been called for delay.
// It is safe for concurrent use.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool

	// run is held while fn executes so Stop can wait for it.
	run sync.Mutex
}

// New creates a Debouncer. Nothing is scheduled until Trigger is called.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)starts the quiet period. Calls after Stop are ignored.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels pending work and waits for a running fn to return. fn is
// never started after Stop returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.run.Lock()
	//nolint:staticcheck // empty critical section waits for an in-flight fn
	d.run.Unlock()
}

func (d *Debouncer) fire(gen uint64) {
	d.run.Lock()
	defer d.run.Unlock()

	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}
