// Package clock paces the sampling and indicator loops. Every delay in the
// pipeline goes through a Clock so tests can run on virtual time.
package clock

import "time"

// Clock blocks the calling goroutine for a pacing delay.
type Clock interface {
	Sleep(d time.Duration)
}

// System sleeps on the wall clock.
type System struct{}

func (System) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Millis converts a millisecond config value to a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
