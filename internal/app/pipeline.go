// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/config"
	"github.com/relabs-tech/tilt_indicator/internal/display"
	"github.com/relabs-tech/tilt_indicator/internal/filter"
	"github.com/relabs-tech/tilt_indicator/internal/indicator"
	"github.com/relabs-tech/tilt_indicator/internal/pulse"
	"github.com/relabs-tech/tilt_indicator/internal/sensors"
	"github.com/relabs-tech/tilt_indicator/internal/tilt"
)

// Pipeline is the tilt indicator from power-on to steady state:
// identify the accelerometer, calibrate, pre-fill the filter, then run
// the tracker and the pulse engine side by side.
type Pipeline struct {
	Device    sensors.Device
	Indicator indicator.Indicator
	Clock     clock.Clock

	Interval   time.Duration // classifier tick
	Timing     pulse.Timing
	MaxBackoff time.Duration // 0 halts on the first bus fault

	// Display mirrors the levels when non-nil.
	Display         display.Drawer
	DisplayInterval time.Duration
}

// NewPipeline fills the pacing fields from cfg.
func NewPipeline(cfg *config.Config, dev sensors.Device, ind indicator.Indicator, clk clock.Clock) *Pipeline {
	timing := pulse.DefaultTiming
	timing.Idle = clock.Millis(cfg.IdleTick)

	var maxBackoff time.Duration
	if cfg.BusErrorPolicy == config.BusPolicyRetry {
		maxBackoff = clock.Millis(cfg.BusRetryMaxBackoff)
	}

	return &Pipeline{
		Device:          dev,
		Indicator:       ind,
		Clock:           clk,
		Interval:        clock.Millis(cfg.ClassifyInterval),
		Timing:          timing,
		MaxBackoff:      maxBackoff,
		DisplayInterval: clock.Millis(cfg.DisplayUpdateInterval),
	}
}

// Run blocks until ctx is done (returning nil) or a stage fails.
// An identity mismatch leaves the indicator dark and nothing is started.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Device.Init(); err != nil {
		if errors.Is(err, sensors.ErrDeviceIdentity) {
			if offErr := p.Indicator.Set(indicator.Off); offErr != nil {
				log.Printf("tilt: could not switch indicator off: %v", offErr)
			}
			log.Printf("tilt: refusing to arm: %v", err)
		}
		return fmt.Errorf("accelerometer init: %w", err)
	}
	log.Println("tilt: accelerometer ready")

	cal := &tilt.Calibrator{Reader: p.Device, Indicator: p.Indicator, Clock: p.Clock}
	ref, err := cal.Run()
	if err != nil {
		return err
	}

	f := &filter.Filter{}
	if err := f.Prefill(p.Device); err != nil {
		return err
	}

	state := &tilt.State{}
	tracker := &tilt.Tracker{
		Reader:     p.Device,
		Filter:     f,
		Reference:  ref,
		State:      state,
		Clock:      p.Clock,
		Interval:   p.Interval,
		MaxBackoff: p.MaxBackoff,
	}
	engine := &pulse.Engine{
		Source:    state,
		Indicator: p.Indicator,
		Clock:     p.Clock,
		Timing:    p.Timing,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return tracker.Run(gctx) })
	g.Go(func() error { return engine.Run(gctx) })
	if p.Display != nil {
		mirror := &display.Mirror{
			Dev:       p.Display,
			Source:    state,
			Reference: ref,
			Clock:     p.Clock,
			Interval:  p.DisplayInterval,
		}
		g.Go(func() error { return mirror.Run(gctx) })
	}

	log.Println("tilt: armed")
	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
