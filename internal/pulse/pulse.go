// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package pulse turns tilt levels into a repeating LED pulse pattern.
// Pulse count per round encodes the level, color encodes axis and direction.
package pulse

import (
	"context"
	"fmt"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/indicator"
	"github.com/relabs-tech/tilt_indicator/internal/tilt"
)

// Rounds per cycle, one per possible level.
const Rounds = tilt.MaxLevel

// Timing is the duration budget of a cycle.
type Timing struct {
	Round   time.Duration // budget of one round
	Pulse   time.Duration // axis color
	Neutral time.Duration // all channels on after each pulse
	Idle    time.Duration // dark hold when every level is zero
}

var DefaultTiming = Timing{
	Round:   400 * time.Millisecond,
	Pulse:   100 * time.Millisecond,
	Neutral: 100 * time.Millisecond,
	Idle:    100 * time.Millisecond,
}

// XColor is the pulse color of the X axis: blue, plus green when tilted negative.
func XColor(negative bool) indicator.Color {
	return indicator.Color{Red: false, Green: negative, Blue: true}
}

// YColor is the pulse color of the Y axis: red, plus green when tilted negative.
func YColor(negative bool) indicator.Color {
	return indicator.Color{Red: true, Green: negative, Blue: false}
}

// Step holds Color for Hold.
type Step struct {
	Color indicator.Color
	Hold  time.Duration
}

// Plan lays out one full cycle for the given snapshot.
func Plan(l tilt.Levels, t Timing) []Step {
	if l.Zero() {
		return []Step{{Color: indicator.Off, Hold: t.Idle}}
	}

	steps := make([]Step, 0, Rounds*5)
	for k := 1; k <= Rounds; k++ {
		remaining := t.Round
		if l.X.Total() >= k {
			steps = append(steps,
				Step{Color: XColor(l.X.Neg > 0), Hold: t.Pulse},
				Step{Color: indicator.White, Hold: t.Neutral},
			)
			remaining -= t.Pulse + t.Neutral
		}
		if l.Y.Total() >= k {
			steps = append(steps,
				Step{Color: YColor(l.Y.Neg > 0), Hold: t.Pulse},
				Step{Color: indicator.White, Hold: t.Neutral},
			)
			remaining -= t.Pulse + t.Neutral
		}
		if remaining > 0 {
			steps = append(steps, Step{Color: indicator.Off, Hold: remaining})
		}
	}
	return steps
}

// Source hands out atomic snapshots of the current levels.
type Source interface {
	Snapshot() tilt.Levels
}

// Engine replays one Plan per cycle, re-reading the Source only between cycles.
type Engine struct {
	Source    Source
	Indicator indicator.Indicator
	Clock     clock.Clock
	Timing    Timing
}

// Cycle snapshots the source once and plays the resulting plan.
func (e *Engine) Cycle() error {
	for _, s := range Plan(e.Source.Snapshot(), e.Timing) {
		if err := e.Indicator.Set(s.Color); err != nil {
			return fmt.Errorf("pulse: %w", err)
		}
		e.Clock.Sleep(s.Hold)
	}
	return nil
}

// Run repeats cycles until ctx is done. A running cycle is always finished.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Cycle(); err != nil {
			return err
		}
	}
}
