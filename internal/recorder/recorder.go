// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package recorder serves raw accelerometer data to a host over a serial
// line. Single-byte commands from the host:
//
//	m, M  stream one "x=.. y=.. z=.." line per StreamInterval
//	s, S  stop streaming
//	r, R  record RecordSamples readings and send them as little-endian uint16 words
package recorder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/relabs-tech/tilt_indicator/internal/accel"
	"github.com/relabs-tech/tilt_indicator/internal/clock"
	"github.com/relabs-tech/tilt_indicator/internal/indicator"
)

// pendingRecords is how many record requests may queue up.
const pendingRecords = 32

// Options is the recorder pacing.
type Options struct {
	StreamInterval time.Duration
	RecordSamples  int
	RecordInterval time.Duration
	LEDStep        time.Duration // status LED color period
}

var DefaultOptions = Options{
	StreamInterval: time.Second,
	RecordSamples:  400,
	RecordInterval: 10 * time.Millisecond,
	LEDStep:        time.Second,
}

// Recorder owns the device and the serial port while running.
type Recorder struct {
	dev  accel.Reader
	port io.ReadWriteCloser
	led  indicator.Indicator
	clk  clock.Clock
	opts Options

	mu        sync.Mutex // serializes device access and port writes
	streaming atomic.Bool
	recording atomic.Bool
	requests  chan struct{}
}

func New(dev accel.Reader, port io.ReadWriteCloser, led indicator.Indicator, clk clock.Clock, opts Options) *Recorder {
	return &Recorder{
		dev:      dev,
		port:     port,
		led:      led,
		clk:      clk,
		opts:     opts,
		requests: make(chan struct{}, pendingRecords),
	}
}

// Run serves commands until ctx is done or the port fails. The port is
// closed on return.
func (r *Recorder) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		// Unblocks the pending Read in readCommands.
		r.port.Close()
		return nil
	})
	g.Go(func() error { return r.readCommands(ctx) })
	g.Go(func() error { return r.streamLoop(ctx) })
	g.Go(func() error { return r.recordLoop(ctx) })
	g.Go(func() error { return r.ledLoop(ctx) })

	return g.Wait()
}

// Handle applies one command byte. Unknown bytes are ignored.
func (r *Recorder) Handle(c byte) {
	switch c {
	case 'r', 'R':
		select {
		case r.requests <- struct{}{}:
		default:
			log.Println("recorder: record queue full, request dropped")
		}
	case 'm', 'M':
		r.streaming.Store(true)
	case 's', 'S':
		r.streaming.Store(false)
	}
}

func (r *Recorder) readCommands(ctx context.Context) error {
	var buf [1]byte
	for {
		n, err := r.port.Read(buf[:])
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("recorder: serial port closed: %w", err)
			}
			return fmt.Errorf("recorder: serial read: %w", err)
		}
		if n == 1 {
			r.Handle(buf[0])
		}
	}
}

func (r *Recorder) streamLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.streaming.Load() {
			if err := r.streamOnce(); err != nil {
				return err
			}
		}
		r.clk.Sleep(r.opts.StreamInterval)
	}
}

func (r *Recorder) streamOnce() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := accel.Read(r.dev)
	if err != nil {
		return fmt.Errorf("recorder: stream read: %w", err)
	}
	if _, err := fmt.Fprintf(r.port, "x=%d y=%d z=%d\n\r", s.X, s.Y, s.Z); err != nil {
		return fmt.Errorf("recorder: stream write: %w", err)
	}
	return nil
}

func (r *Recorder) recordLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.requests:
			if err := r.record(); err != nil {
				return err
			}
		}
	}
}

// record captures one burst and writes it in a single port write.
func (r *Recorder) record() error {
	r.recording.Store(true)
	defer r.recording.Store(false)

	if err := r.led.Set(indicator.White); err != nil {
		log.Printf("recorder: LED error: %v", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([]byte, 0, r.opts.RecordSamples*6)
	for i := 0; i < r.opts.RecordSamples; i++ {
		s, err := accel.Read(r.dev)
		if err != nil {
			return fmt.Errorf("recorder: record sample %d: %w", i, err)
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s.X))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s.Y))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s.Z))
		r.clk.Sleep(r.opts.RecordInterval)
	}

	if _, err := r.port.Write(buf); err != nil {
		return fmt.Errorf("recorder: record write: %w", err)
	}
	log.Printf("recorder: sent %d samples (%d bytes)", r.opts.RecordSamples, len(buf))
	return nil
}

// ledLoop cycles the status LED red, green, blue while not recording.
func (r *Recorder) ledLoop(ctx context.Context) error {
	colors := []indicator.Color{indicator.Red, indicator.Green, indicator.Blue}
	for i := 0; ; i = (i + 1) % len(colors) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !r.recording.Load() {
			if err := r.led.Set(colors[i]); err != nil {
				log.Printf("recorder: LED error: %v", err)
			}
		}
		r.clk.Sleep(r.opts.LEDStep)
	}
}
