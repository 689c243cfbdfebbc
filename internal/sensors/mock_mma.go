// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"math"
	"time"

	"github.com/relabs-tech/tilt_indicator/internal/accel"
)

// oneG is 1 g in counts at the ±2 g range.
const oneG = 4096

// MockMMA is a Device that rocks slowly around both horizontal axes,
// starting level so a startup calibration sees the neutral position.
type MockMMA struct {
	start   time.Time
	now     func() time.Time
	x, y, z int16
}

// NewMockMMA creates a mock accelerometer that generates smooth tilt.
func NewMockMMA() *MockMMA {
	return &MockMMA{now: time.Now}
}

func (m *MockMMA) Init() error {
	m.start = m.now()
	return nil
}

func (m *MockMMA) ReadAcc() error {
	elapsed := m.now().Sub(m.start).Seconds()

	x := 3200 * math.Sin(elapsed*0.5)
	y := 2400 * math.Sin(elapsed*0.35)
	m.x = clamp14(x)
	m.y = clamp14(y)
	m.z = clamp14(math.Sqrt(math.Max(oneG*oneG-x*x-y*y, 0)))
	return nil
}

func (m *MockMMA) AccX() int16 { return m.x }
func (m *MockMMA) AccY() int16 { return m.y }
func (m *MockMMA) AccZ() int16 { return m.z }

func clamp14(v float64) int16 {
	return int16(math.Max(accel.Min14, math.Min(accel.Max14, v)))
}
