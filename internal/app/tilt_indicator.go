package app

import (
	"context"
	"log"

	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/config"
	"github.com/relabs-tech/tilt_indicator/internal/display"
	"github.com/relabs-tech/tilt_indicator/internal/indicator"
	"github.com/relabs-tech/tilt_indicator/internal/sensors"
)

// RunTiltIndicator wires the pipeline to the real board: MMA8451 on the
// configured I2C bus, RGB LED on GPIO and, if enabled, the OLED on the
// same bus.
func RunTiltIndicator(ctx context.Context, cfg *config.Config) error {
	log.Println("starting tilt indicator")

	dev, bus, err := sensors.Open(cfg)
	if err != nil {
		return err
	}
	defer bus.Close()

	led, err := indicator.OpenGPIO(cfg)
	if err != nil {
		return err
	}
	defer led.Set(indicator.Off)

	p := NewPipeline(cfg, dev, led, clock.System{})

	if cfg.DisplayEnabled {
		oled, err := display.Open(bus)
		if err != nil {
			log.Printf("display: disabled: %v", err)
		} else {
			defer oled.Halt()
			p.Display = oled
		}
	}

	return p.Run(ctx)
}
