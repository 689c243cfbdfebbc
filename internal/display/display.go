// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package display mirrors the tilt levels on an SSD1306 OLED.
package display

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/pulse"
	"github.com/relabs-tech/tilt_indicator/internal/tilt"
)

const (
	width  = 128
	height = 64
)

// Drawer is the part of *ssd1306.Dev the mirror needs.
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Open attaches to a 128x64 SSD1306 on bus.
func Open(bus i2c.Bus) (*ssd1306.Dev, error) {
	opts := ssd1306.DefaultOpts
	opts.W, opts.H = width, height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	return dev, nil
}

// Mirror redraws the current levels every Interval.
type Mirror struct {
	Dev       Drawer
	Source    pulse.Source
	Reference tilt.Reference
	Clock     clock.Clock
	Interval  time.Duration
}

// Run draws until ctx is done. Draw errors are logged and skipped, the
// mirror is never allowed to stop the indicator.
func (m *Mirror) Run(ctx context.Context) error {
	log.Println("display: starting update loop")
	var last tilt.Levels
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		levels := m.Source.Snapshot()
		if first || levels != last {
			if err := m.Dev.Draw(m.Dev.Bounds(), Render(levels, m.Reference), image.Point{}); err != nil {
				log.Printf("display: error updating display: %v", err)
			} else {
				last, first = levels, false
			}
		}
		m.Clock.Sleep(m.Interval)
	}
}

// Render draws the levels as bar rows plus the calibration reference.
func Render(l tilt.Levels, ref tilt.Reference) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, width, height))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	rows := []struct {
		label string
		level int
	}{
		{"X+", l.X.Pos},
		{"X-", l.X.Neg},
		{"Y+", l.Y.Pos},
		{"Y-", l.Y.Neg},
	}
	for i, r := range rows {
		drawer.Dot = fixed.P(0, 13*(i+1))
		drawer.DrawString(fmt.Sprintf("%s %s", r.label, bar(r.level)))
	}

	drawer.Dot = fixed.P(64, 13)
	drawer.DrawString("ref")
	drawer.Dot = fixed.P(64, 26)
	drawer.DrawString(fmt.Sprintf("x%6d", ref.X))
	drawer.Dot = fixed.P(64, 39)
	drawer.DrawString(fmt.Sprintf("y%6d", ref.Y))

	return img
}

func bar(level int) string {
	b := []byte("...")
	for i := 0; i < level && i < len(b); i++ {
		b[i] = '#'
	}
	return string(b)
}
