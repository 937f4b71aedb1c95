// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd

// HD44780 compatible instruction set. An instruction byte is the command
// base OR'd with its flag bits. The same encoding is shared by every chip
// in the family, which is why transports and the st7036 package build
// their command words from these values.
const (
	// Clear display and return home. Both need a 2ms settle.
	ClearDisplay byte = 0x01
	ReturnHome   byte = 0x02

	// Entry mode set. EntryLeft makes the address counter increment after
	// each data write (left-to-right text), EntryRight decrement.
	EntryLeft  byte = 0x06
	EntryRight byte = 0x04

	// Display on/off control and its flag bits.
	DisplayControl byte = 0x08
	DisplayEnable  byte = 0x04
	CursorShow     byte = 0x02
	CursorBlink    byte = 0x01

	// Cursor or display shift. These move the device-internal shift
	// offset, which is not readable and therefore not tracked.
	CursorShiftLeft   byte = 0x10
	CursorShiftRight  byte = 0x14
	DisplayShiftLeft  byte = 0x18
	DisplayShiftRight byte = 0x1c

	// Function set and its flag bits. The bare base selects a 4-bit bus,
	// one line and the 5x8 font.
	FunctionSet   byte = 0x20
	Function8Bit  byte = 0x10
	Function2Line byte = 0x08
	Function5x10  byte = 0x04

	// CGRAM / DDRAM address set. The low bits carry the address.
	CGRAMAddress byte = 0x40
	DDRAMAddress byte = 0x80
)
