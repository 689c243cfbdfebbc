// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package accel

// Range of a 14-bit two's complement sample.
const (
	Min14  = -8192
	Max14  = 8191
	Span14 = 16384
)

// Unpack14 rebuilds a sample from the MSB/LSB register pair. The value is
// left-justified: the LSB register carries the low 6 bits in its top bits.
func Unpack14(hi, lo byte) int16 {
	v := int(hi)<<6 | int(lo)>>2
	if v > Max14 {
		v -= Span14
	}
	return int16(v)
}

// Pack14 is the register layout Unpack14 expects. The two unused low
// bits of lo are zero. v is truncated to 14 bits.
func Pack14(v int16) (hi, lo byte) {
	u := uint16(v) & 0x3FFF
	return byte(u >> 6), byte(u << 2)
}
