// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tilt

import (
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/accel"
	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/indicator"
)

const (
	// CalibrationSamples raw readings are averaged into the reference.
	CalibrationSamples = 10

	// The indicator blinks white AckBlinks times, AckPhase on and AckPhase
	// off, once the reference is fixed.
	AckBlinks = 2
	AckPhase  = 200 * time.Millisecond
)

// Reference is the neutral position measured at startup. It is a value
// type and never changes for the life of the process.
type Reference struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// Calibrate averages CalibrationSamples back-to-back raw readings,
// truncating toward zero. There is no filtering and no delay between reads.
func Calibrate(r accel.Reader) (Reference, error) {
	var sumX, sumY int
	for i := 0; i < CalibrationSamples; i++ {
		if err := r.ReadAcc(); err != nil {
			return Reference{}, fmt.Errorf("calibration sample %d: %w", i, err)
		}
		sumX += int(r.AccX())
		sumY += int(r.AccY())
	}
	return Reference{
		X: int16(sumX / CalibrationSamples),
		Y: int16(sumY / CalibrationSamples),
	}, nil
}

// Calibrator runs the one-shot startup calibration and acknowledges it
// on the indicator.
type Calibrator struct {
	Reader    accel.Reader
	Indicator indicator.Indicator
	Clock     clock.Clock
}

func (c *Calibrator) Run() (Reference, error) {
	ref, err := Calibrate(c.Reader)
	if err != nil {
		return Reference{}, err
	}
	log.Printf("tilt: calibrated neutral x=%d y=%d", ref.X, ref.Y)

	if err := indicator.Blink(c.Indicator, c.Clock, indicator.White, AckPhase, AckBlinks); err != nil {
		return ref, fmt.Errorf("calibration ack: %w", err)
	}
	return ref, nil
}
