package tilt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/filter"
	"github.com/relabs-tech/tilt_indicator/internal/indicator/indicatortest"
)

func newTracker(r *fakeReader, clk *indicatortest.Clock) *Tracker {
	return &Tracker{
		Reader:    r,
		Filter:    &filter.Filter{},
		Reference: Reference{X: 0, Y: 0},
		State:     &State{},
		Clock:     clk,
		Interval:  10 * time.Millisecond,
	}
}

func TestStepClassifiesFilteredReading(t *testing.T) {
	// A single raw sample past the zone entry only nudges the smoothed value into the hysteresis gap.
	r := &fakeReader{
		xs: []int16{0, 0, 0, 600, 0},
		ys: []int16{0, 0, 0, 0, 0},
	}
	tr := newTracker(r, &indicatortest.Clock{})
	if err := tr.Filter.Prefill(r); err != nil {
		t.Fatalf("Prefill: %v", err)
	}
	if got := tr.State.Snapshot(); !got.Zero() {
		t.Fatalf("prefill touched the state: %+v", got)
	}

	if err := tr.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := tr.State.Snapshot(); !got.Zero() {
		t.Errorf("spike leaked through the filter: %+v", got)
	}
}

func TestStepReachesSteadyLevels(t *testing.T) {
	r := constantReader(-3000, 900)
	tr := newTracker(r, &indicatortest.Clock{})

	for i := 0; i < filter.Depth; i++ {
		if err := tr.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	want := Levels{X: AxisLevels{Neg: 3}, Y: AxisLevels{Pos: 1}}
	if got := tr.State.Snapshot(); got != want {
		t.Errorf("levels = %+v, want %+v", got, want)
	}
}

func TestRunHaltsOnBusError(t *testing.T) {
	r := &fakeReader{xs: []int16{0}, ys: []int16{0}, fail: map[int]bool{4: true}}
	clk := &indicatortest.Clock{}
	tr := newTracker(r, clk)

	err := tr.Run(context.Background())
	if !errors.Is(err, errNack) {
		t.Fatalf("Run error = %v, want %v", err, errNack)
	}
	if r.n != 4 {
		t.Errorf("reads = %d, want 4", r.n)
	}
	if clk.Elapsed() != 3*tr.Interval {
		t.Errorf("elapsed = %v, want %v", clk.Elapsed(), 3*tr.Interval)
	}
}

func TestRunRetriesWithBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{
		xs:   []int16{0},
		ys:   []int16{0},
		fail: map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true},
	}
	clk := &indicatortest.Clock{}
	tr := newTracker(r, clk)
	tr.MaxBackoff = 50 * time.Millisecond

	// 10 + 20 + 40 + 50 + 50 ms of backoff, then one good tick.
	clk.Deadline = 170*time.Millisecond + tr.Interval
	clk.OnDeadline = cancel

	if err := tr.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if r.n != 6 {
		t.Errorf("reads = %d, want 6", r.n)
	}
}

func TestNextBackoff(t *testing.T) {
	testCases := map[string]struct {
		cur, base, max, want time.Duration
	}{
		"First":       {cur: 0, base: 10 * time.Millisecond, max: time.Second, want: 10 * time.Millisecond},
		"Doubles":     {cur: 40 * time.Millisecond, base: 10 * time.Millisecond, max: time.Second, want: 80 * time.Millisecond},
		"Capped":      {cur: 800 * time.Millisecond, base: 10 * time.Millisecond, max: time.Second, want: time.Second},
		"ZeroBaseMin": {cur: 0, base: 0, max: time.Second, want: time.Millisecond},
	}

	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := nextBackoff(tt.cur, tt.base, tt.max); got != tt.want {
				t.Errorf("nextBackoff = %v, want %v", got, tt.want)
			}
		})
	}
}
