// Package debounce collapses bursts of triggers into the last one.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the delay used for search-as-you-type inputs.
const DefaultDelay = 300 * time.Millisecond

// Debouncer runs only the last function passed to Trigger within a quiet period.
// A new Trigger invalidates the pending one. Callbacks already running are
// never interrupted.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	gen   uint64
	wg    sync.WaitGroup
}

// New creates a Debouncer. Non-positive delays use DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Wait blocks until every scheduled callback has either run or been dropped.
func (d *Debouncer) Wait() {
	d.wg.Wait()
}

func (d *Debouncer) stopLocked() {
	if d.timer == nil {
		return
	}
	if d.timer.Stop() {
		d.wg.Done()
	}
	d.timer = nil
}
