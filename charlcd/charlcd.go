// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd controls HD44780 compatible character LCD controllers,
// such as the HD44780U itself, the ST7066U or the KS0066.
//
// The bus to these chips is write-only: no register can be read back.
// Every property getter is therefore served from a shadow copy of the
// device registers, updated together with each command write.
//
// Implements periph.io/x/conn/v3/display.TextDisplay.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package charlcd

import (
	"fmt"
	"strings"
	"time"
)

const packageName = "charlcd"

// ErrInvalidGeometry is returned by New when the geometry is not at
// least one column by one line, or when the row offset table has fewer
// entries than the display has lines.
var ErrInvalidGeometry = fmt.Errorf("%s: invalid geometry", packageName)

// Bus is the write-only transport a controller drives. GPIO bit-banging,
// I²C framing and test recorders all implement it.
type Bus interface {
	// Initialize prepares the transport after the interface reset pulses
	// and reports whether it transfers full bytes. When true, the
	// function set register is programmed with the 8-bit interface flag.
	Initialize() (eightBit bool, err error)
	// Command writes one byte to the instruction register.
	Command(b byte) error
	// Data writes one byte to the data register.
	Data(b byte) error
}

// InitFunc programs the variant specific registers during power-on. It
// runs between the interface reset pulses and the common display-on,
// clear, entry-mode tail. functionSet is the computed function set word
// the variant must write, possibly with extra flag bits of its own.
//
// The st7036 package supplies the extended-chip strategy; the default
// writes functionSet and nothing else.
type InitFunc func(d *Dev, functionSet byte) error

// DefaultOpts is the recommended default options, matching the common
// 16x2 panel.
var DefaultOpts = Opts{
	Cols:  16,
	Lines: 2,
}

// Opts defines the options for the device.
type Opts struct {
	// Cols and Lines describe the visible geometry of the panel.
	Cols  int
	Lines int
	// RowOffsets is the DDRAM base address of each row and must have at
	// least Lines entries. Defaults to {0x00, 0x40} when empty.
	RowOffsets []byte
	// Delay blocks for at least the given duration. It paces the mandatory
	// settle times of the instruction set. Defaults to time.Sleep; tests
	// substitute a no-op.
	Delay func(time.Duration)
}

// Dev is an open handle to one controller. It owns the shadow register
// state; the bus must not be shared with another writer or the shadows
// diverge from the device.
type Dev struct {
	bus        Bus
	cols       int
	lines      int
	rowOffsets []byte
	delay      func(time.Duration)

	functionSet    byte
	displayControl byte
	col, row       int
	message        string
	columnAlign    bool
	rightToLeft    bool
}

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// New returns a Dev for an HD44780 compatible controller in an
// initialized state: display on, cleared, cursor at (0,0), left-to-right
// entry mode.
func New(bus Bus, opts *Opts) (*Dev, error) {
	return NewWithInit(bus, opts, nil)
}

// NewWithInit is New with a variant specific initialization strategy.
// Chip packages layering on top of this one use it; other callers want
// New.
func NewWithInit(bus Bus, opts *Opts, program InitFunc) (*Dev, error) {
	if opts.Cols < 1 || opts.Lines < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, opts.Cols, opts.Lines)
	}
	rowOffsets := opts.RowOffsets
	if len(rowOffsets) == 0 {
		rowOffsets = []byte{0x00, 0x40}
	}
	if len(rowOffsets) < opts.Lines {
		return nil, fmt.Errorf("%w: %d offsets for %d lines", ErrInvalidGeometry, len(rowOffsets), opts.Lines)
	}
	d := &Dev{
		bus:        bus,
		cols:       opts.Cols,
		lines:      opts.Lines,
		rowOffsets: rowOffsets,
		delay:      opts.Delay,
	}
	if d.delay == nil {
		d.delay = time.Sleep
	}
	if program == nil {
		program = func(d *Dev, functionSet byte) error {
			return d.Command(functionSet)
		}
	}
	if err := d.init(program); err != nil {
		return nil, err
	}
	return d, nil
}

// init runs the power-on protocol. The device's interface width after
// power-on is unknown, so the 8-bit function set is issued twice with the
// reset pulse delays from the datasheet before anything else.
func (d *Dev) init(program InitFunc) error {
	if err := d.Command(FunctionSet | Function8Bit); err != nil {
		return err
	}
	d.delay(4100 * time.Microsecond)
	if err := d.Command(FunctionSet | Function8Bit); err != nil {
		return err
	}
	d.delay(1 * time.Millisecond)

	eightBit, err := d.bus.Initialize()
	if err != nil {
		return wrap(err)
	}
	d.functionSet = FunctionSet
	if eightBit {
		d.functionSet |= Function8Bit
	}
	if d.lines >= 2 {
		d.functionSet |= Function2Line
	}
	d.displayControl = DisplayControl

	if err := program(d, d.functionSet); err != nil {
		return err
	}
	if err := d.Display(true); err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	return d.SetRightToLeft(false)
}

// Command writes a raw instruction byte to the bus. It does not touch
// any shadow register; callers that bypass the typed operations are
// responsible for keeping the two consistent.
func (d *Dev) Command(b byte) error {
	return wrap(d.bus.Command(b))
}

// Data writes a raw data byte to the bus.
func (d *Dev) Data(b byte) error {
	return wrap(d.bus.Data(b))
}

// Settle blocks for at least t using the configured delay function.
func (d *Dev) Settle(t time.Duration) {
	d.delay(t)
}

// Clear clears the display and moves the cursor to (0,0).
func (d *Dev) Clear() error {
	if err := d.Command(ClearDisplay); err != nil {
		return err
	}
	d.col, d.row = 0, 0
	d.delay(2 * time.Millisecond)
	return nil
}

// Home moves the cursor to (0,0) and undoes any display shift.
func (d *Dev) Home() error {
	if err := d.Command(ReturnHome); err != nil {
		return err
	}
	d.col, d.row = 0, 0
	d.delay(2 * time.Millisecond)
	return nil
}

// SetRightToLeft selects the text direction. It programs the entry mode
// register so the device address counter decrements after each data
// write, and steers the message layout (see SetMessage).
func (d *Dev) SetRightToLeft(enable bool) error {
	d.rightToLeft = enable
	cmd := EntryLeft
	if enable {
		cmd = EntryRight
	}
	return d.Command(cmd)
}

// RightToLeft reports the current text direction.
func (d *Dev) RightToLeft() bool {
	return d.rightToLeft
}

// setDisplayControl does a read-modify-write of the display control
// shadow and issues the combined command, keeping the two bit-exact.
func (d *Dev) setDisplayControl(field byte, on bool) error {
	if on {
		d.displayControl |= field
	} else {
		d.displayControl &^= field
	}
	return d.Command(d.displayControl)
}

// Display turns the display on or off. The DDRAM content is preserved
// while off.
func (d *Dev) Display(on bool) error {
	return d.setDisplayControl(DisplayEnable, on)
}

// DisplayOn reports whether the display is on, from shadow state.
func (d *Dev) DisplayOn() bool {
	return d.displayControl&DisplayEnable != 0
}

// ShowCursor shows or hides the underline cursor.
func (d *Dev) ShowCursor(show bool) error {
	return d.setDisplayControl(CursorShow, show)
}

// CursorShown reports whether the underline cursor is shown.
func (d *Dev) CursorShown() bool {
	return d.displayControl&CursorShow != 0
}

// Blink enables or disables blinking of the cursor cell.
func (d *Dev) Blink(blink bool) error {
	return d.setDisplayControl(CursorBlink, blink)
}

// BlinkOn reports whether the cursor cell blinks.
func (d *Dev) BlinkOn() bool {
	return d.displayControl&CursorBlink != 0
}

// DisplayLeft shifts the whole display one column to the left. The
// device-internal shift offset cannot be read back and is not tracked.
func (d *Dev) DisplayLeft() error {
	return d.Command(DisplayShiftLeft)
}

// DisplayRight shifts the whole display one column to the right.
func (d *Dev) DisplayRight() error {
	return d.Command(DisplayShiftRight)
}

// CursorLeft moves the cursor one cell to the left.
func (d *Dev) CursorLeft() error {
	return d.Command(CursorShiftLeft)
}

// CursorRight moves the cursor one cell to the right.
func (d *Dev) CursorRight() error {
	return d.Command(CursorShiftRight)
}

// CursorPosition moves the cursor to the cell at (column, row).
// Coordinates outside the geometry saturate to the nearest valid cell,
// the way the device truncates register values; it never fails. The
// stored cursor tracks the address written.
func (d *Dev) CursorPosition(column, row int) error {
	if column < 0 {
		column = 0
	} else if column >= d.cols {
		column = d.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= d.lines {
		row = d.lines - 1
	}
	if err := d.Command(DDRAMAddress | (d.rowOffsets[row] + byte(column))); err != nil {
		return err
	}
	d.col, d.row = column, row
	return nil
}

// CursorAt returns the stored cursor position. It reflects the last
// positioning command; data writes advance only the device's own address
// counter.
func (d *Dev) CursorAt() (column, row int) {
	return d.col, d.row
}

// CreateChar programs one of the 8 CGRAM glyphs. code masks to 0-7 and
// dots holds the 8 pixel rows, top first, low 5 bits used. The glyph is
// displayed by writing its code as data.
//
// The CGRAM address counter is left past the glyph; issue a cursor
// position command before writing further text.
func (d *Dev) CreateChar(code byte, dots [8]byte) error {
	code &= 7
	if err := d.Command(CGRAMAddress | code<<3); err != nil {
		return err
	}
	for _, b := range dots {
		if err := d.Data(b); err != nil {
			return err
		}
	}
	return nil
}
