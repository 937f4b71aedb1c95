// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cbus provides the I²C transport for charlcd controllers that
// are wired straight to the bus, the way ST7032i and AiP31068 chip-on-
// glass modules are.
//
// Each write is a control byte selecting the instruction or data
// register followed by the payload byte. The chips have no readable
// register, so the transport is write-only like the rest of the family.
package i2cbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"

	"github.com/tgtakaoka/go-charlcd/charlcd"
)

// DefaultAddr is the slave address nearly all of these modules ship
// with.
const DefaultAddr uint16 = 0x3e

const (
	controlCommand byte = 0x00
	controlData    byte = 0x40
)

// Dev implements charlcd.Bus over an I²C bus.
type Dev struct {
	d i2c.Dev
}

// New returns a charlcd.Bus for the device at addr on bus. Pass
// DefaultAddr unless the module is strapped otherwise.
func New(bus i2c.Bus, addr uint16) *Dev {
	return &Dev{d: i2c.Dev{Bus: bus, Addr: addr}}
}

// Initialize reports an 8-bit interface: the bus moves whole bytes, so
// the controller keeps the function set in 8-bit mode.
func (d *Dev) Initialize() (bool, error) {
	return true, nil
}

// Command writes one byte to the instruction register.
func (d *Dev) Command(b byte) error {
	return d.tx(controlCommand, b)
}

// Data writes one byte to the data register.
func (d *Dev) Data(b byte) error {
	return d.tx(controlData, b)
}

func (d *Dev) tx(control, b byte) error {
	if err := d.d.Tx([]byte{control, b}, nil); err != nil {
		return fmt.Errorf("i2cbus: %w", err)
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("i2cbus: %s", d.d.String())
}

var _ charlcd.Bus = &Dev{}
