// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"github.com/relabs-tech/tilt_indicator/internal/config"
	"github.com/relabs-tech/tilt_indicator/internal/sensors"
)

// RegisterReader reads one device register.
type RegisterReader interface {
	ReadRegister(addr byte) (byte, error)
}

// DumpRegisters prints every register of the MMA8451 map with its decoded
// bit fields. Unreadable registers are reported inline and the dump goes on.
func DumpRegisters(r RegisterReader, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADDR\tNAME\tVALUE\tACCESS\tDESCRIPTION")

	failed := 0
	for _, reg := range sensors.MMA8451RegisterMap() {
		v, err := r.ReadRegister(reg.Address)
		if err != nil {
			failed++
			fmt.Fprintf(tw, "0x%02X\t%s\t--\t%s\t%v\n", reg.Address, reg.Name, reg.Access, err)
			continue
		}
		fmt.Fprintf(tw, "0x%02X\t%s\t0x%02X\t%s\t%s\n", reg.Address, reg.Name, v, reg.Access, reg.Description)
		for _, f := range reg.BitFields {
			fmt.Fprintf(tw, "\t  %s\t%d\t\t%s (%s)\n", f.Name, f.Extract(v), f.Description, f.Values)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("register dump: %d registers unreadable", failed)
	}
	return nil
}

// RunRegisterDump prints the live register contents of the configured
// MMA8451. The device is not initialized first, so the dump shows the
// state left by whoever configured it last.
func RunRegisterDump(cfg *config.Config, w io.Writer) error {
	dev, bus, err := sensors.Open(cfg)
	if err != nil {
		return err
	}
	defer bus.Close()

	log.Printf("register_debug: dumping %v", dev)
	return DumpRegisters(dev, w)
}
