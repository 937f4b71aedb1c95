// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// ErrNotImplemented is returned for display.TextDisplay features the
// instruction set has no equivalent for.
var ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)

// Not supported by this chip family. Returns display.ErrNotImplemented.
func (d *Dev) AutoScroll(enabled bool) error {
	return ErrNotImplemented
}

// Return the number of columns the display supports.
func (d *Dev) Cols() int {
	return d.cols
}

// Return the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.lines
}

// Return the min column position.
func (d *Dev) MinCol() int {
	return 0
}

// Return the min row position.
func (d *Dev) MinRow() int {
	return 0
}

// Move the cursor forward or backward.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Backward:
		return d.CursorLeft()
	case display.Forward:
		return d.CursorRight()
	default:
		return ErrNotImplemented
	}
}

// Move the cursor to an arbitrary position. Out-of-range coordinates
// saturate to the nearest valid cell.
func (d *Dev) MoveTo(row, col int) error {
	return d.CursorPosition(col, row)
}

// Cursor sets the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	show, blink := false, false
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
		case display.CursorUnderline:
			show = true
		case display.CursorBlink, display.CursorBlock:
			show, blink = true, true
		default:
			return fmt.Errorf("%s: unexpected cursor mode %d", packageName, mode)
		}
	}
	if err := d.ShowCursor(show); err != nil {
		return err
	}
	return d.Blink(blink)
}

// Write lays p out on the display as text starting at the current
// cursor, like SetMessage.
func (d *Dev) Write(p []byte) (int, error) {
	if err := d.SetMessage(string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Write a string output to the display.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Halt clears the display and turns it off.
func (d *Dev) Halt() error {
	if err := d.Clear(); err != nil {
		return err
	}
	return d.Display(false)
}

// Return info about the display.
func (d *Dev) String() string {
	return fmt.Sprintf("%s: %d cols, %d lines", packageName, d.cols, d.lines)
}

var _ display.TextDisplay = &Dev{}
var _ conn.Resource = &Dev{}
