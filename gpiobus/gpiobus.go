// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpiobus provides the parallel-bus transport for charlcd
// controllers: a gpio.Group for the data lines plus discrete register
// select and enable pins.
//
// With 4 data lines every byte goes out as two enable strobes, high
// nibble first; with 8 lines as one strobe. The group can come from
// host GPIOs or from an I²C I/O expander backpack, see
// NewPCF8574Backpack.
package gpiobus

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"

	"github.com/tgtakaoka/go-charlcd/charlcd"
)

// Dev implements charlcd.Bus over GPIO pins.
type Dev struct {
	data      gpio.Group
	rs        gpio.PinOut
	e         gpio.PinOut
	backlight gpio.PinOut

	eightBit bool
	// nibble goes true once the controller has committed to the 4-bit
	// function set; from then on bytes are split into two strobes.
	nibble    bool
	lastWrite int64
}

// After a write the chip is busy for its instruction execution time and
// the next strobe must wait it out. GPIO paths are fast enough to get
// there early; expander backpacks usually are not, so the pacing only
// sleeps the remainder.
const writeSettle time.Duration = 100 // microseconds

// New returns a charlcd.Bus driving the first 4 or 8 pins of data as
// D4-D7 (or D0-D7), with rs selecting the register and e strobing each
// transfer. backlight may be nil.
//
// A group of 8 or more pins selects the 8-bit interface.
func New(data gpio.Group, rs, e, backlight gpio.PinOut) (*Dev, error) {
	if len(data.Pins()) < 4 {
		return nil, fmt.Errorf("gpiobus: need at least 4 data pins, have %d", len(data.Pins()))
	}
	d := &Dev{
		data:      data,
		rs:        rs,
		e:         e,
		backlight: backlight,
		eightBit:  len(data.Pins()) >= 8,
	}
	if err := rs.Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	if err := e.Out(gpio.Low); err != nil {
		return nil, wrap(err)
	}
	return d, nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("gpiobus: %w", err)
}

// Initialize commits to the final interface width. Until this point a
// 4-bit transport strobes only the high nibble of each command, which is
// exactly what the controller's 8-bit reset pulses must look like on 4
// data lines.
//
// Committing to 4 bits takes one more lone strobe: the chip is still in
// 8-bit mode and reads a single 0x2 nibble as the complete function set
// that selects the 4-bit interface. Only after that does it pair
// nibbles, so strobing it as half of a paired command would leave every
// following instruction shifted by one nibble.
func (d *Dev) Initialize() (bool, error) {
	if !d.eightBit {
		if err := d.rs.Out(gpio.Low); err != nil {
			return false, wrap(err)
		}
		d.delayWrite(writeSettle)
		if err := d.strobe(0x02, 0x0f); err != nil {
			return false, wrap(err)
		}
		d.lastWrite = time.Now().UnixMicro()
		d.nibble = true
	}
	return d.eightBit, nil
}

// Command writes one byte to the instruction register.
func (d *Dev) Command(b byte) error {
	if err := d.rs.Out(gpio.Low); err != nil {
		return wrap(err)
	}
	return d.write(b)
}

// Data writes one byte to the data register.
func (d *Dev) Data(b byte) error {
	if err := d.rs.Out(gpio.High); err != nil {
		return wrap(err)
	}
	return d.write(b)
}

// Backlight turns the backlight pin on or off.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if d.backlight == nil {
		return fmt.Errorf("gpiobus: %w", display.ErrNotImplemented)
	}
	return wrap(d.backlight.Out(gpio.Level(intensity > 0)))
}

// Halt releases the data pin group.
func (d *Dev) Halt() error {
	return d.data.Halt()
}

func (d *Dev) String() string {
	width := 4
	if d.eightBit {
		width = 8
	}
	return fmt.Sprintf("gpiobus: %s (%d-bit)", d.data.String(), width)
}

func (d *Dev) write(b byte) error {
	d.delayWrite(writeSettle)
	var err error
	switch {
	case d.eightBit:
		err = d.strobe(gpio.GPIOValue(b), 0xff)
	case d.nibble:
		err = d.strobe(gpio.GPIOValue(b>>4), 0x0f)
		if err == nil {
			err = d.strobe(gpio.GPIOValue(b&0x0f), 0x0f)
		}
	default:
		err = d.strobe(gpio.GPIOValue(b>>4), 0x0f)
	}
	d.lastWrite = time.Now().UnixMicro()
	return wrap(err)
}

// strobe puts value on the data lines and pulses enable.
func (d *Dev) strobe(value, mask gpio.GPIOValue) error {
	if err := d.data.Out(value, mask); err != nil {
		return err
	}
	if err := d.e.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(2 * time.Microsecond)
	return d.e.Out(gpio.Low)
}

// delayWrite looks at the time of the last write and if the specified
// microseconds period has not elapsed, sleeps the difference.
func (d *Dev) delayWrite(microseconds time.Duration) {
	diff := microseconds - time.Duration(time.Now().UnixMicro()-d.lastWrite)
	if diff > 0 {
		time.Sleep(diff * time.Microsecond)
	}
}

var _ charlcd.Bus = &Dev{}
var _ display.DisplayBacklight = &Dev{}
