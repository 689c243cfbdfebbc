// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/relabs-tech/tilt_indicator/internal/app"
	"github.com/relabs-tech/tilt_indicator/internal/config"
)

func main() {
	configPath := flag.String("config", "", "optional configuration file (pacing keys only matter here)")
	flag.Parse()

	log.Println("starting tilt-indicator (mock console)")

	cfg := config.Default()
	if *configPath != "" {
		if err := config.InitGlobal(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = config.Get()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunMockConsole(ctx, cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
