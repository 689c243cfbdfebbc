package app

import (
	"context"
	"errors"
	"log"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/config"
	"github.com/relabs-tech/tilt_indicator/internal/indicator"
	"github.com/relabs-tech/tilt_indicator/internal/recorder"
	"github.com/relabs-tech/tilt_indicator/internal/sensors"
)

// RunRecorder serves raw accelerometer data over the configured serial
// port until ctx is done or the host hangs up.
func RunRecorder(ctx context.Context, cfg *config.Config) error {
	log.Println("starting tilt recorder")

	dev, bus, err := sensors.Open(cfg)
	if err != nil {
		return err
	}
	defer bus.Close()

	if err := dev.Init(); err != nil {
		return err
	}
	log.Printf("recorder: accelerometer ready: %v", dev)

	led, err := indicator.OpenGPIO(cfg)
	if err != nil {
		return err
	}
	defer led.Set(indicator.Off)

	serialOpts := serial.OpenOptions{
		PortName:              cfg.SerialPort,
		BaudRate:              uint(cfg.SerialBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return err
	}
	// Closed by the recorder.
	log.Printf("recorder: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	rec := recorder.New(dev, port, led, clock.System{}, recorder.Options{
		StreamInterval: clock.Millis(cfg.StreamInterval),
		RecordSamples:  cfg.RecordSamples,
		RecordInterval: clock.Millis(cfg.RecordInterval),
		LEDStep:        recorder.DefaultOptions.LEDStep,
	})

	err = rec.Run(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}
