// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charlcd_test

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/display"

	"github.com/tgtakaoka/go-charlcd/charlcdtest"
)

func TestTextDisplay(t *testing.T) {
	dev, bus := getLCD(t)
	if dev.Cols() != 16 || dev.Rows() != 2 || dev.MinCol() != 0 || dev.MinRow() != 0 {
		t.Error("geometry accessors")
	}
	if len(dev.String()) == 0 {
		t.Error("String()")
	}
	if err := dev.MoveTo(1, 7); err != nil {
		t.Fatal(err)
	}
	if err := dev.Move(display.Forward); err != nil {
		t.Fatal(err)
	}
	if err := dev.Move(display.Backward); err != nil {
		t.Fatal(err)
	}
	if err := dev.Move(display.Up); !errors.Is(err, display.ErrNotImplemented) {
		t.Errorf("Move(Up) = %v, want ErrNotImplemented", err)
	}
	if err := dev.AutoScroll(true); !errors.Is(err, display.ErrNotImplemented) {
		t.Errorf("AutoScroll = %v, want ErrNotImplemented", err)
	}
	wantOps(t, bus, []charlcdtest.Op{cmd(0xc7), cmd(0x14), cmd(0x10)})
}

func TestTextDisplayCursorModes(t *testing.T) {
	dev, _ := getLCD(t)
	if err := dev.Cursor(display.CursorUnderline); err != nil {
		t.Fatal(err)
	}
	if !dev.CursorShown() || dev.BlinkOn() {
		t.Error("CursorUnderline must set only the show bit")
	}
	if err := dev.Cursor(display.CursorBlink); err != nil {
		t.Fatal(err)
	}
	if !dev.CursorShown() || !dev.BlinkOn() {
		t.Error("CursorBlink must set show and blink")
	}
	if err := dev.Cursor(display.CursorOff); err != nil {
		t.Fatal(err)
	}
	if dev.CursorShown() || dev.BlinkOn() {
		t.Error("CursorOff must clear both bits")
	}
	if err := dev.Cursor(display.CursorMode(42)); err == nil {
		t.Error("unknown mode must fail")
	}
}

func TestHalt(t *testing.T) {
	dev, bus := getLCD(t)
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	wantOps(t, bus, []charlcdtest.Op{cmd(0x01), cmd(0x08)})
	if dev.DisplayOn() {
		t.Error("display still on after Halt")
	}
}
