// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiobus

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/pcf857x"
)

const (
	// Name is the LCD pin name, and the integer value is the GPIO
	// number (not physical) of the PCF8574 I2C GPIO Expander.
	pcfRS        = 0
	pcfRW        = 1
	pcfEnable    = 2
	pcfBacklight = 3
	pcfD4        = 4
	pcfD5        = 5
	pcfD6        = 6
	pcfD7        = 7
)

// NewPCF8574Backpack returns a charlcd.Bus for the ubiquitous PCF8574
// I²C backpack boards soldered onto bare HD44780 panels.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// The expander drives D4-D7, so the controller runs the 4-bit
// interface. R/W is wired through on these boards and is tied low here;
// the bus stays write-only.
func NewPCF8574Backpack(bus i2c.Bus, address uint16) (*Dev, error) {
	pcf, err := pcf857x.New(bus, address, pcf857x.PCF8574)
	if err != nil {
		return nil, err
	}
	if err := pcf.Pins[pcfRW].Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	gr, err := pcf.Group(pcfD4, pcfD5, pcfD6, pcfD7)
	if err != nil {
		return nil, err
	}
	return New(gr, pcf.Pins[pcfRS], pcf.Pins[pcfEnable], pcf.Pins[pcfBacklight])
}
