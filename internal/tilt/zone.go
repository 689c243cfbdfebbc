// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tilt

import "github.com/relabs-tech/tilt_indicator/internal/accel"

// Classification thresholds, in raw counts. They are fixed: the only
// per-board tuning is the calibrated reference.
const (
	// Deadzone absorbs hand tremor around the neutral position.
	Deadzone = 50

	// ZoneEntry is how far the board must tilt before a level is reported.
	// Between Deadzone and ZoneEntry the previous level is held.
	ZoneEntry = 500

	// FullScale is the span of a 14-bit sample. Levels split the first
	// sixth of it into three bands: below 1/8, below 1/6, beyond.
	FullScale = accel.Span14

	MaxLevel = 3
)

// Action says how one classification changes an axis.
type Action int

const (
	Hold     Action = iota // inside the hysteresis gap, keep the current levels
	Clear                  // inside the deadzone, both directions drop to 0
	Positive               // set the positive level, clear the negative one
	Negative               // set the negative level, clear the positive one
)

func (a Action) String() string {
	switch a {
	case Hold:
		return "hold"
	case Clear:
		return "clear"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "unknown"
}

// Update is the result of classifying one filtered sample.
type Update struct {
	Action Action
	Level  int // 1..MaxLevel for Positive and Negative, else 0
}

// Classify compares a filtered reading against the calibrated reference.
func Classify(current, reference int) Update {
	diff := current - reference
	switch {
	case abs(diff) < Deadzone:
		return Update{Action: Clear}
	case diff <= -ZoneEntry:
		return Update{Action: Negative, Level: BlinkLevel(current, reference)}
	case diff >= ZoneEntry:
		return Update{Action: Positive, Level: BlinkLevel(current, reference)}
	default:
		return Update{Action: Hold}
	}
}

// BlinkLevel quantizes the distance from the reference into 1..3.
// Comparisons are done on integers, so diff < FullScale/6 holds up to 2730.
func BlinkLevel(value, reference int) int {
	diff := abs(value - reference)
	switch {
	case diff*8 < FullScale:
		return 1
	case diff*6 < FullScale:
		return 2
	default:
		return MaxLevel
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// AxisLevels are the two directional levels of one axis.
type AxisLevels struct {
	Pos int `json:"pos"`
	Neg int `json:"neg"`
}

// Apply returns the levels after u. At most one direction stays nonzero.
func (a AxisLevels) Apply(u Update) AxisLevels {
	switch u.Action {
	case Clear:
		return AxisLevels{}
	case Positive:
		return AxisLevels{Pos: u.Level}
	case Negative:
		return AxisLevels{Neg: u.Level}
	}
	return a
}

// Total is the pulse count for the axis in one cycle.
func (a AxisLevels) Total() int {
	return a.Pos + a.Neg
}

// Levels is the full tilt picture handed to the pulse engine.
type Levels struct {
	X AxisLevels `json:"x"`
	Y AxisLevels `json:"y"`
}

// Zero reports whether the board is level on both axes.
func (l Levels) Zero() bool {
	return l == Levels{}
}
