// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

// SetColumnAlign selects the column policy at line breaks in SetMessage.
// When enabled, the column in use before the break is kept on the next
// row, which lines up tabular multi-line output. No command is issued.
func (d *Dev) SetColumnAlign(enable bool) {
	d.columnAlign = enable
}

// ColumnAlign reports the column alignment policy.
func (d *Dev) ColumnAlign() bool {
	return d.columnAlign
}

// Message returns the last string given to SetMessage, verbatim.
func (d *Dev) Message() string {
	return d.message
}

// SetMessage lays a multi-line string out on the display, starting at
// the current cursor.
//
// Each '\n' moves the write head to the next row; the column it resets
// to follows the text direction unless column alignment keeps it. Any
// other rune is written as one data byte (its code point truncated to
// the device's 8-bit character set) and the device's own address
// auto-increment advances the position, so no per-character positioning
// command is issued. In right-to-left mode the starting column is
// mirrored first, since the device decrements the address counter while
// the string is still supplied in logical order.
//
// Text longer than a row is not wrapped: it runs into the raw DDRAM
// address space past the visible columns, exactly as it would on the
// device.
func (d *Dev) SetMessage(message string) error {
	d.message = message
	col, line := d.col, d.row
	for i, r := range message {
		if i == 0 && d.rightToLeft {
			if err := d.CursorPosition(d.cols-col-1, line); err != nil {
				return err
			}
		}
		if r == '\n' {
			line++
			next := col
			if !d.columnAlign {
				if d.rightToLeft {
					next = d.cols - 1
				} else {
					next = 0
				}
			}
			if err := d.CursorPosition(next, line); err != nil {
				return err
			}
		} else {
			if err := d.Data(byte(r)); err != nil {
				return err
			}
		}
	}
	return nil
}
