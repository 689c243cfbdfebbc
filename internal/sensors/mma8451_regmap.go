// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// BitField describes bits Hi..Lo of a register.
type BitField struct {
	Hi, Lo      uint8
	Name        string
	Description string
	Values      string
}

// Extract returns the field's value from a full register byte.
func (f BitField) Extract(v byte) byte {
	width := f.Hi - f.Lo + 1
	return (v >> f.Lo) & byte(1<<width-1)
}

// RegisterInfo is the metadata for one device register.
type RegisterInfo struct {
	Address     byte
	Name        string
	Description string
	Access      string // "R" or "RW"
	Default     byte
	BitFields   []BitField
}

// MMA8451RegisterMap returns metadata for the MMA8451Q registers the
// register dump shows.
func MMA8451RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		// Status and data
		{Address: 0x00, Name: "STATUS", Description: "Data status", Access: "R",
			BitFields: []BitField{
				{Hi: 7, Lo: 7, Name: "ZYXOW", Description: "X, Y or Z overwrite", Values: "0=No, 1=Overwritten"},
				{Hi: 3, Lo: 3, Name: "ZYXDR", Description: "New X, Y and Z data ready", Values: "0=No, 1=Ready"},
			}},
		{Address: regOutXMSB, Name: "OUT_X_MSB", Description: "X sample bits 13:6", Access: "R"},
		{Address: 0x02, Name: "OUT_X_LSB", Description: "X sample bits 5:0 in 7:2", Access: "R"},
		{Address: 0x03, Name: "OUT_Y_MSB", Description: "Y sample bits 13:6", Access: "R"},
		{Address: 0x04, Name: "OUT_Y_LSB", Description: "Y sample bits 5:0 in 7:2", Access: "R"},
		{Address: 0x05, Name: "OUT_Z_MSB", Description: "Z sample bits 13:6", Access: "R"},
		{Address: 0x06, Name: "OUT_Z_LSB", Description: "Z sample bits 5:0 in 7:2", Access: "R"},

		// System
		{Address: 0x0B, Name: "SYSMOD", Description: "System mode", Access: "R",
			BitFields: []BitField{
				{Hi: 1, Lo: 0, Name: "SYSMOD", Description: "Current mode", Values: "0=Standby, 1=Wake, 2=Sleep"},
			}},
		{Address: regWhoAmI, Name: "WHO_AM_I", Description: "Device identifier", Access: "R", Default: mma8451ID},
		{Address: 0x0E, Name: "XYZ_DATA_CFG", Description: "Range and high-pass output", Access: "RW",
			BitFields: []BitField{
				{Hi: 4, Lo: 4, Name: "HPF_OUT", Description: "High-pass filtered output", Values: "0=Off, 1=On"},
				{Hi: 1, Lo: 0, Name: "FS", Description: "Full scale", Values: "0=±2g, 1=±4g, 2=±8g"},
			}},

		// Control
		{Address: regCtrlReg1, Name: "CTRL_REG1", Description: "System control 1", Access: "RW",
			BitFields: []BitField{
				{Hi: 7, Lo: 6, Name: "ASLP_RATE", Description: "Auto-wake sample rate in sleep", Values: "0=50Hz, 1=12.5Hz, 2=6.25Hz, 3=1.56Hz"},
				{Hi: 5, Lo: 3, Name: "DR", Description: "Output data rate", Values: "0=800Hz, 1=400Hz, 2=200Hz, 3=100Hz, 4=50Hz, 5=12.5Hz, 6=6.25Hz, 7=1.56Hz"},
				{Hi: 2, Lo: 2, Name: "LNOISE", Description: "Reduced noise mode", Values: "0=Normal, 1=Reduced noise"},
				{Hi: 1, Lo: 1, Name: "F_READ", Description: "Fast read (8-bit samples)", Values: "0=14-bit, 1=8-bit"},
				{Hi: 0, Lo: 0, Name: "ACTIVE", Description: "Active mode", Values: "0=Standby, 1=Active"},
			}},
		{Address: 0x2B, Name: "CTRL_REG2", Description: "System control 2", Access: "RW",
			BitFields: []BitField{
				{Hi: 7, Lo: 7, Name: "ST", Description: "Self-test", Values: "0=Disabled, 1=Enabled"},
				{Hi: 6, Lo: 6, Name: "RST", Description: "Software reset", Values: "0=Disabled, 1=Reset"},
				{Hi: 1, Lo: 0, Name: "MODS", Description: "Active mode power scheme", Values: "0=Normal, 1=Low noise low power, 2=High resolution, 3=Low power"},
			}},

		// Offset correction
		{Address: 0x2F, Name: "OFF_X", Description: "X offset, 2 mg/LSB", Access: "RW"},
		{Address: 0x30, Name: "OFF_Y", Description: "Y offset, 2 mg/LSB", Access: "RW"},
		{Address: 0x31, Name: "OFF_Z", Description: "Z offset, 2 mg/LSB", Access: "RW"},
	}
}
