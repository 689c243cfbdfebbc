package tilt

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/accel"
	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/filter"
)

// Tracker is the steady-state sampling loop: read, smooth, classify,
// publish into State. It owns the Reader once started.
type Tracker struct {
	Reader    accel.Reader
	Filter    *filter.Filter
	Reference Reference
	State     *State
	Clock     clock.Clock
	Interval  time.Duration

	// MaxBackoff selects the bus fault policy. Zero halts on the first
	// failed read; otherwise reads are retried with a delay doubling from
	// Interval up to MaxBackoff.
	MaxBackoff time.Duration
}

// Step performs one tick.
func (t *Tracker) Step() error {
	if err := t.Reader.ReadAcc(); err != nil {
		return err
	}
	fx, fy := t.Filter.Push(t.Reader.AccX(), t.Reader.AccY())
	t.State.Apply(
		Classify(int(fx), int(t.Reference.X)),
		Classify(int(fy), int(t.Reference.Y)),
	)
	return nil
}

// Run ticks until ctx is done or, under the halt policy, a read fails.
func (t *Tracker) Run(ctx context.Context) error {
	var backoff time.Duration
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := t.Step(); err != nil {
			if t.MaxBackoff <= 0 {
				return fmt.Errorf("tilt: %w", err)
			}
			backoff = nextBackoff(backoff, t.Interval, t.MaxBackoff)
			log.Printf("tilt: read failed, retrying in %v: %v", backoff, err)
			t.Clock.Sleep(backoff)
			continue
		}

		backoff = 0
		t.Clock.Sleep(t.Interval)
	}
}

func nextBackoff(cur, base, max time.Duration) time.Duration {
	if base <= 0 {
		base = time.Millisecond
	}
	if cur == 0 {
		cur = base
	} else {
		cur *= 2
	}
	if cur > max {
		cur = max
	}
	return cur
}
