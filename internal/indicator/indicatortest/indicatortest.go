// Package indicatortest provides a virtual clock and a recording
// indicator for tests of the timing-driven loops.
package indicatortest

import (
	"runtime"
	"sync"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/indicator"
)

// Clock advances virtual time on Sleep without blocking.
// Once the elapsed time reaches Deadline, OnDeadline is called once.
type Clock struct {
	Deadline   time.Duration
	OnDeadline func()

	mu      sync.Mutex
	elapsed time.Duration
	fired   bool
}

func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.elapsed += d
	var fire func()
	if c.Deadline > 0 && !c.fired && c.elapsed >= c.Deadline {
		c.fired = true
		fire = c.OnDeadline
	}
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
	runtime.Gosched()
}

// Elapsed is the virtual time slept so far.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Event is one Set call, stamped with virtual time.
type Event struct {
	At    time.Duration
	Color indicator.Color
}

// Recorder records every Set call. Clock may be nil.
type Recorder struct {
	Clock *Clock
	Err   error // returned from every Set when non-nil

	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Set(c indicator.Color) error {
	if r.Err != nil {
		return r.Err
	}
	var at time.Duration
	if r.Clock != nil {
		at = r.Clock.Elapsed()
	}
	r.mu.Lock()
	r.events = append(r.events, Event{At: at, Color: c})
	r.mu.Unlock()
	return nil
}

// Events returns a copy of the recorded calls.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Colors returns only the colors of the recorded calls.
func (r *Recorder) Colors() []indicator.Color {
	events := r.Events()
	colors := make([]indicator.Color, len(events))
	for i, e := range events {
		colors[i] = e.Color
	}
	return colors
}
