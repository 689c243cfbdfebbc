// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package indicator

import (
	"fmt"

	"github.com/relabs-tech/tilt_indicator/internal/config"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIO drives an RGB LED wired to three output pins.
type GPIO struct {
	red, green, blue gpio.PinOut
	activeLow        bool
}

// NewGPIO wraps three already-resolved pins. With activeLow a lit
// channel is driven gpio.Low.
func NewGPIO(red, green, blue gpio.PinOut, activeLow bool) *GPIO {
	return &GPIO{red: red, green: green, blue: blue, activeLow: activeLow}
}

// OpenGPIO resolves the configured LED pins through the periph registry.
func OpenGPIO(cfg *config.Config) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	pins := make([]gpio.PinIO, 0, 3)
	for _, name := range []string{cfg.LEDRedPin, cfg.LEDGreenPin, cfg.LEDBluePin} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("LED pin %q not found", name)
		}
		pins = append(pins, p)
	}

	return NewGPIO(pins[0], pins[1], pins[2], cfg.LEDActiveLow), nil
}

func (g *GPIO) Set(c Color) error {
	if err := g.red.Out(g.level(c.Red)); err != nil {
		return fmt.Errorf("LED red %s: %w", g.red, err)
	}
	if err := g.green.Out(g.level(c.Green)); err != nil {
		return fmt.Errorf("LED green %s: %w", g.green, err)
	}
	if err := g.blue.Out(g.level(c.Blue)); err != nil {
		return fmt.Errorf("LED blue %s: %w", g.blue, err)
	}
	return nil
}

func (g *GPIO) level(on bool) gpio.Level {
	if g.activeLow {
		return gpio.Level(!on)
	}
	return gpio.Level(on)
}
