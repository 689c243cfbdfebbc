// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// MMA8451Q register map (subset used by the driver).
const (
	regOutXMSB  = 0x01 // X MSB, X LSB, Y MSB, Y LSB, Z MSB, Z LSB follow
	regWhoAmI   = 0x0D
	regCtrlReg1 = 0x2A
)

const (
	// MMA8451DefaultAddr is the 7-bit address with SA0 high (0x3A on the wire).
	MMA8451DefaultAddr = 0x1D

	// mma8451ID is the fixed WHO_AM_I value.
	mma8451ID = 0x1A

	// ctrl1Active: ACTIVE=1, F_READ=0 (14-bit burst), DR=000 (800 Hz), normal noise mode.
	ctrl1Active = 0x01

	// burstLen covers the three MSB/LSB pairs starting at regOutXMSB.
	burstLen = 6
)
