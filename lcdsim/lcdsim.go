// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim implements a charlcd.Bus backed by a software model of
// the device instead of hardware.
//
// The simulator interprets the instruction stream it receives: DDRAM
// and CGRAM addressing, entry mode, display shift and the on/off flag.
// The visible window is rendered to a terminal (stdout by default)
// using ANSI color codes, with the backlight drawn as a colored border.
//
// Useful while you are waiting for your display panel to come by mail,
// and for end-to-end tests that want to assert on what a command
// sequence makes visible rather than on the raw bytes.
package lcdsim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/tgtakaoka/go-charlcd/charlcd"
)

// Each DDRAM row is 40 cells wide regardless of the visible columns;
// the display shift rotates the window within it.
const rowWidth = 40

// Opts represents the options available for the simulator.
type Opts struct {
	// Cols and Lines describe the visible geometry of the panel.
	Cols  int
	Lines int
	// RowOffsets is the DDRAM base address of each row. Defaults to
	// {0x00, 0x40}.
	RowOffsets []byte
	// W receives the rendering. Defaults to stdout. Set to io.Discard
	// for a render-free device model in tests.
	W io.Writer
	// Palette maps the backlight color to terminal colors.
	Palette *ansi256.Palette
}

// Dev is a simulated character LCD. It implements charlcd.Bus so a
// controller can be pointed at it unchanged.
type Dev struct {
	w          io.Writer
	palette    ansi256.Palette
	cols       int
	lines      int
	rowOffsets []byte

	ddram     [128]byte
	cgram     [64]byte
	addr      byte
	cgramMode bool
	decrement bool
	shift     int
	on        bool
	backlight color.NRGBA

	drawn bool
	buf   bytes.Buffer
}

// New returns a simulated display.
func New(opts *Opts) *Dev {
	rowOffsets := opts.RowOffsets
	if len(rowOffsets) == 0 {
		rowOffsets = []byte{0x00, 0x40}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:          w,
		palette:    *p,
		cols:       opts.Cols,
		lines:      opts.Lines,
		rowOffsets: rowOffsets,
		backlight:  color.NRGBA{0x40, 0xc0, 0x40, 0xff},
	}
	for i := range d.ddram {
		d.ddram[i] = ' '
	}
	return d
}

// Initialize reports an 8-bit interface; the simulator takes whole
// bytes.
func (d *Dev) Initialize() (bool, error) {
	return true, nil
}

// Command interprets one instruction byte. Instructions are decoded by
// their highest set bit, like the device does.
func (d *Dev) Command(b byte) error {
	switch {
	case b&charlcd.DDRAMAddress != 0:
		d.addr = b & 0x7f
		d.cgramMode = false
	case b&charlcd.CGRAMAddress != 0:
		d.addr = b & 0x3f
		d.cgramMode = true
	case b&charlcd.FunctionSet != 0:
		// Interface width is the transport's business; nothing to model.
	case b&0x10 != 0:
		d.moveShift(b)
	case b&charlcd.DisplayControl != 0:
		d.on = b&charlcd.DisplayEnable != 0
	case b&0x04 != 0:
		d.decrement = b&0x02 == 0
	case b&charlcd.ReturnHome != 0:
		d.addr = 0
		d.shift = 0
		d.cgramMode = false
	case b == charlcd.ClearDisplay:
		for i := range d.ddram {
			d.ddram[i] = ' '
		}
		d.addr = 0
		d.shift = 0
		d.decrement = false
		d.cgramMode = false
	}
	return d.refresh()
}

// Data writes one byte to the currently addressed RAM and advances the
// address counter per the entry mode.
func (d *Dev) Data(b byte) error {
	if d.cgramMode {
		d.cgram[d.addr&0x3f] = b
	} else {
		d.ddram[d.addr&0x7f] = b
	}
	if d.decrement {
		d.addr--
	} else {
		d.addr++
	}
	d.addr &= 0x7f
	return d.refresh()
}

func (d *Dev) moveShift(b byte) {
	if b&0x08 != 0 {
		// Display shift moves the visible window.
		if b&0x04 != 0 {
			d.shift--
		} else {
			d.shift++
		}
	} else {
		// Cursor shift moves the address counter.
		if b&0x04 != 0 {
			d.addr++
		} else {
			d.addr--
		}
		d.addr &= 0x7f
	}
}

// Row returns the visible content of row n as raw DDRAM bytes.
func (d *Dev) Row(n int) string {
	if n < 0 || n >= d.lines || n >= len(d.rowOffsets) {
		return ""
	}
	b := make([]byte, d.cols)
	base := int(d.rowOffsets[n])
	for i := range b {
		cell := ((i+d.shift)%rowWidth + rowWidth) % rowWidth
		b[i] = d.ddram[(base+cell)&0x7f]
	}
	return string(b)
}

// DisplayOn reports the modeled display on/off flag.
func (d *Dev) DisplayOn() bool {
	return d.on
}

// Glyph returns the 8 CGRAM rows of glyph code 0-7.
func (d *Dev) Glyph(code byte) [8]byte {
	var dots [8]byte
	copy(dots[:], d.cgram[(code&7)<<3:])
	return dots
}

// Backlight sets the simulated backlight to a gray level.
func (d *Dev) Backlight(intensity display.Intensity) error {
	return d.RGBBacklight(intensity, intensity, intensity)
}

// RGBBacklight sets the simulated backlight color, rendered as the
// border around the text.
func (d *Dev) RGBBacklight(red, green, blue display.Intensity) error {
	d.backlight = color.NRGBA{byte(red), byte(green), byte(blue), 0xff}
	return d.refresh()
}

// Halt resets the terminal colors.
func (d *Dev) Halt() error {
	if _, err := d.w.Write([]byte("\033[0m\n")); err != nil {
		return err
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcdsim: %d cols, %d lines", d.cols, d.lines)
}

// refresh redraws the panel in place. This code is designed to minimize
// the amount of memory allocated per call.
func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dF", d.lines)
	}
	d.drawn = true
	glow := d.palette.Block(d.backlight)
	for row := 0; row < d.lines; row++ {
		d.buf.WriteString("\r\033[0m")
		d.buf.WriteString(glow)
		if d.on {
			d.buf.WriteString("\033[0;30;47m")
			d.buf.WriteString(printable(d.Row(row)))
		} else {
			d.buf.WriteString("\033[0;2m")
			for i := 0; i < d.cols; i++ {
				d.buf.WriteByte(' ')
			}
		}
		d.buf.WriteString("\033[0m")
		d.buf.WriteString(glow)
		d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// printable maps the CGRAM codes and anything else below 0x20 to a
// placeholder so the terminal is not fed control bytes.
func printable(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c < 0x20 {
			b[i] = '*'
		}
	}
	return string(b)
}

var _ charlcd.Bus = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ display.DisplayRGBBacklight = &Dev{}
