// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7036 controls the extended character LCD controllers found
// on chip-on-glass panels, such as the Sitronix ST7032 and ST7036.
//
// These chips speak the HD44780 instruction set plus a second
// instruction table holding the analog drive registers: LCD bias,
// booster/icon power, contrast and the voltage follower amplifier. Like
// the base set, none of them can be read back; every register is
// shadowed host-side.
//
// # Datasheet
//
// https://www.newhavendisplay.com/app_notes/ST7036.pdf
package st7036

import (
	"time"

	"github.com/tgtakaoka/go-charlcd/charlcd"
)

// Instruction table select bits of the function set word.
const (
	instructionTable0 byte = 0x00
	instructionTable1 byte = 0x01
)

// Instruction table 1.
const (
	biasSet   byte = 0x14
	bias1_4   byte = 0x08
	bias3Line byte = 0x01

	iconAddress byte = 0x40

	powerSet  byte = 0x50
	iconOn    byte = 0x08
	boosterOn byte = 0x04

	followerOff byte = 0x60
	followerOn  byte = 0x68

	contrastLo byte = 0x70
)

// MaxContrast is the largest value SetContrast stores; the contrast
// register is 6 bits wide.
const MaxContrast = 0x3f

// startupContrast is the mid-range value programmed during power-on,
// per the ST7036 application note.
const startupContrast = 0x23

// Dev is an open handle to one extended controller. It layers the second
// instruction table register set over the charlcd base controller.
type Dev struct {
	*charlcd.Dev

	biasSet  byte
	powerSet byte
	contrast int
	follower int
	iconAddr byte
}

// New returns a Dev in an initialized state: bias and booster
// programmed, contrast at the startup value, follower amplifier on at
// ratio 4, display on, cleared, left-to-right entry mode.
func New(bus charlcd.Bus, opts *charlcd.Opts) (*Dev, error) {
	d := &Dev{follower: -1}
	base, err := charlcd.NewWithInit(bus, opts, d.program)
	if err != nil {
		return nil, err
	}
	d.Dev = base
	return d, nil
}

// program is the extended power-on strategy. It runs between the
// interface reset pulses and the common display-on/clear tail: switch
// to instruction table 1, program bias, contrast and follower, give the
// power supply its settle time, then switch back to table 0.
func (d *Dev) program(base *charlcd.Dev, functionSet byte) error {
	// The setters below write through d.Dev.
	d.Dev = base

	d.biasSet = biasSet // 1/5 bias
	if base.Rows() == 3 {
		d.biasSet |= bias3Line
	}
	d.powerSet = boosterOn

	if err := base.Command(functionSet | instructionTable1); err != nil {
		return err
	}
	if err := base.Command(d.biasSet); err != nil {
		return err
	}
	if err := d.SetContrast(startupContrast); err != nil {
		return err
	}
	if err := d.Follower(4); err != nil {
		return err
	}
	// Booster and follower power settle time.
	base.Settle(200 * time.Millisecond)
	return base.Command(functionSet | instructionTable0)
}

// Icon turns the icon blob drive on or off.
func (d *Dev) Icon(on bool) error {
	return d.setPower(iconOn, on)
}

// IconOn reports whether the icon drive is on, from shadow state.
func (d *Dev) IconOn() bool {
	return d.powerSet&iconOn != 0
}

// Booster turns the internal voltage booster on or off. Panels running
// the logic supply through the booster go blank without it.
func (d *Dev) Booster(on bool) error {
	return d.setPower(boosterOn, on)
}

// BoosterOn reports whether the voltage booster is on.
func (d *Dev) BoosterOn() bool {
	return d.powerSet&boosterOn != 0
}

func (d *Dev) setPower(field byte, on bool) error {
	if on {
		d.powerSet |= field
	} else {
		d.powerSet &^= field
	}
	return d.Command(powerSet | d.powerSet)
}

// SetContrast sets the 6-bit contrast register. Out-of-range values
// clamp to 0-MaxContrast. The low nibble goes out through the contrast
// set command, the high 2 bits ride along with the power set word.
func (d *Dev) SetContrast(contrast int) error {
	if contrast < 0 {
		contrast = 0
	} else if contrast > MaxContrast {
		contrast = MaxContrast
	}
	d.contrast = contrast
	if err := d.Command(contrastLo | byte(contrast&0x0f)); err != nil {
		return err
	}
	return d.Command(powerSet | d.powerSet | byte(contrast>>4))
}

// Contrast returns the contrast shadow value, 0-MaxContrast.
func (d *Dev) Contrast() int {
	return d.contrast
}

// Follower sets the voltage follower amplifier ratio. Negative turns
// the follower off; 0-7 turns it on at that ratio, larger ratios clamp
// to 7. A contrast change only reaches the panel while the follower is
// on.
func (d *Dev) Follower(ratio int) error {
	if ratio < 0 {
		d.follower = -1
		return d.Command(followerOff)
	}
	if ratio >= 8 {
		ratio = 7
	}
	d.follower = ratio
	return d.Command(followerOn | byte(ratio))
}

// FollowerRatio returns the follower shadow: -1 when off, else the
// ratio 0-7.
func (d *Dev) FollowerRatio() int {
	return d.follower
}

// SetIconAddress sets the 4-bit icon RAM address; the value masks to
// 0-15. Subsequent data writes fill icon RAM instead of DDRAM.
func (d *Dev) SetIconAddress(address int) error {
	d.iconAddr = byte(address) & 0x0f
	return d.Command(iconAddress | d.iconAddr)
}

// IconAddress returns the icon RAM address shadow.
func (d *Dev) IconAddress() int {
	return int(d.iconAddr)
}
