// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"log"

	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/config"
	"github.com/relabs-tech/tilt_indicator/internal/indicator"
	"github.com/relabs-tech/tilt_indicator/internal/sensors"
)

// RunMockConsole runs the full pipeline against a simulated, slowly
// rocking accelerometer and prints every indicator change.
func RunMockConsole(ctx context.Context, cfg *config.Config) error {
	log.Println("starting tilt console with mock accelerometer")
	p := NewPipeline(cfg, sensors.NewMockMMA(), &indicator.Console{}, clock.System{})
	return p.Run(ctx)
}
