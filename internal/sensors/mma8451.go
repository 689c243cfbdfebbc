// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"errors"
	"fmt"
	"log"

	"github.com/relabs-tech/tilt_indicator/internal/accel"
	"github.com/relabs-tech/tilt_indicator/internal/config"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var (
	// ErrDeviceIdentity means WHO_AM_I did not return the MMA8451 id.
	// The device is left unconfigured.
	ErrDeviceIdentity = errors.New("device identity mismatch")

	// ErrBusTransaction wraps any failed I2C transfer. The driver never
	// retries; the caller decides on the next tick.
	ErrBusTransaction = errors.New("bus transaction failed")
)

// busSpeed is the fast-mode clock the MMA8451 supports.
const busSpeed = 400 * physic.KiloHertz

// Device is an accelerometer that must be identified and configured
// before its first reading.
type Device interface {
	accel.Reader
	Init() error
}

// MMA8451 drives an NXP MMA8451Q over I2C.
type MMA8451 struct {
	dev     i2c.Dev
	x, y, z int16
}

// NewMMA8451 returns a driver for the device at addr. No bus traffic
// happens until Init.
func NewMMA8451(bus i2c.Bus, addr uint16) *MMA8451 {
	return &MMA8451{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

// Open initializes the periph host, opens the configured I2C bus and
// returns the driver on it. The bus is returned as well so other
// devices (the OLED mirror) can share it; the caller closes it.
func Open(cfg *config.Config) (*MMA8451, i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, nil, fmt.Errorf("i2c open %q: %w", cfg.I2CBus, err)
	}

	// Not every host lets userland change the bus clock.
	if err := bus.SetSpeed(busSpeed); err != nil {
		log.Printf("mma8451: keeping default bus speed: %v", err)
	}

	return NewMMA8451(bus, cfg.MMAI2CAddr), bus, nil
}

// Init checks WHO_AM_I and, only on a match, switches the device to
// active mode.
func (m *MMA8451) Init() error {
	var id [1]byte
	if err := m.dev.Tx([]byte{regWhoAmI}, id[:]); err != nil {
		return fmt.Errorf("mma8451 0x%02X: who_am_i read: %w: %w", m.dev.Addr, ErrBusTransaction, err)
	}
	if id[0] != mma8451ID {
		return fmt.Errorf("mma8451 0x%02X: who_am_i = 0x%02X, want 0x%02X: %w", m.dev.Addr, id[0], mma8451ID, ErrDeviceIdentity)
	}

	if err := m.dev.Tx([]byte{regCtrlReg1, ctrl1Active}, nil); err != nil {
		return fmt.Errorf("mma8451 0x%02X: ctrl_reg1 write: %w: %w", m.dev.Addr, ErrBusTransaction, err)
	}
	return nil
}

// ReadAcc burst-reads all three axes and latches them. On error the
// previous values are kept.
func (m *MMA8451) ReadAcc() error {
	var buf [burstLen]byte
	if err := m.dev.Tx([]byte{regOutXMSB}, buf[:]); err != nil {
		return fmt.Errorf("mma8451 0x%02X: data read: %w: %w", m.dev.Addr, ErrBusTransaction, err)
	}
	m.x = accel.Unpack14(buf[0], buf[1])
	m.y = accel.Unpack14(buf[2], buf[3])
	m.z = accel.Unpack14(buf[4], buf[5])
	return nil
}

// ReadRegister reads a single register. It is meant for diagnostics and
// never changes device state.
func (m *MMA8451) ReadRegister(addr byte) (byte, error) {
	var v [1]byte
	if err := m.dev.Tx([]byte{addr}, v[:]); err != nil {
		return 0, fmt.Errorf("mma8451 0x%02X: register 0x%02X read: %w: %w", m.dev.Addr, addr, ErrBusTransaction, err)
	}
	return v[0], nil
}

func (m *MMA8451) AccX() int16 { return m.x }
func (m *MMA8451) AccY() int16 { return m.y }
func (m *MMA8451) AccZ() int16 { return m.z }

func (m *MMA8451) String() string {
	return fmt.Sprintf("mma8451(%s, 0x%02X)", m.dev.Bus, m.dev.Addr)
}
