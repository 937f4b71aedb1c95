// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7036_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tgtakaoka/go-charlcd/charlcd"
	"github.com/tgtakaoka/go-charlcd/charlcdtest"
	"github.com/tgtakaoka/go-charlcd/st7036"
)

func noDelay(time.Duration) {}

func getLCD(t *testing.T) (*st7036.Dev, *charlcdtest.Record) {
	t.Helper()
	bus := &charlcdtest.Record{EightBit: true}
	dev, err := st7036.New(bus, &charlcd.Opts{Cols: 16, Lines: 2, Delay: noDelay})
	if err != nil {
		t.Fatal(err)
	}
	bus.Ops = nil
	return dev, bus
}

func wantOps(t *testing.T, bus *charlcdtest.Record, want []charlcdtest.Op) {
	t.Helper()
	if len(bus.Ops) != len(want) {
		t.Fatalf("got %d writes %v, want %d %v", len(bus.Ops), bus.Ops, len(want), want)
	}
	for i := range want {
		if bus.Ops[i] != want[i] {
			t.Errorf("write #%d: got %s, want %s", i, bus.Ops[i], want[i])
		}
	}
}

func TestInit(t *testing.T) {
	bus := &charlcdtest.Playback{EightBit: true, Ops: []charlcdtest.Op{
		{Val: 0x30}, // 8-bit reset pulse
		{Val: 0x30},
		{Val: 0x39}, // function set, instruction table 1
		{Val: 0x14}, // 1/5 bias
		{Val: 0x73}, // contrast 0x23, low nibble
		{Val: 0x56}, // booster on, contrast high bits
		{Val: 0x6c}, // follower on, ratio 4
		{Val: 0x38}, // back to instruction table 0
		{Val: 0x0c}, // display on
		{Val: 0x01}, // clear
		{Val: 0x06}, // entry mode left-to-right
	}, DontPanic: true}
	dev, err := st7036.New(bus, &charlcd.Opts{Cols: 16, Lines: 2, Delay: noDelay})
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	if dev.Contrast() != 0x23 {
		t.Errorf("startup contrast %#x, want 0x23", dev.Contrast())
	}
	if dev.FollowerRatio() != 4 {
		t.Errorf("startup follower %d, want 4", dev.FollowerRatio())
	}
	if !dev.BoosterOn() || dev.IconOn() {
		t.Error("unexpected startup power state")
	}
}

func TestInitThreeLine(t *testing.T) {
	bus := &charlcdtest.Record{EightBit: true}
	_, err := st7036.New(bus, &charlcd.Opts{
		Cols: 16, Lines: 3, RowOffsets: []byte{0x00, 0x10, 0x20}, Delay: noDelay,
	})
	if err != nil {
		t.Fatal(err)
	}
	// The 3-line panels need the extra bias bit.
	if got := bus.Ops[3]; got != (charlcdtest.Op{Val: 0x15}) {
		t.Errorf("bias set %s, want command 0x15", got)
	}
}

func TestInitSettle(t *testing.T) {
	var longest time.Duration
	bus := &charlcdtest.Record{EightBit: true}
	_, err := st7036.New(bus, &charlcd.Opts{Cols: 16, Lines: 2, Delay: func(t time.Duration) {
		if t > longest {
			longest = t
		}
	}})
	if err != nil {
		t.Fatal(err)
	}
	if longest < 200*time.Millisecond {
		t.Errorf("longest settle %s, want the 200ms power supply settle", longest)
	}
}

func TestInvalidGeometry(t *testing.T) {
	bus := &charlcdtest.Record{EightBit: true}
	_, err := st7036.New(bus, &charlcd.Opts{Cols: 16, Lines: 3, Delay: noDelay})
	if !errors.Is(err, charlcd.ErrInvalidGeometry) {
		t.Fatalf("got %v, want ErrInvalidGeometry", err)
	}
}

func TestPowerSet(t *testing.T) {
	dev, bus := getLCD(t)
	if err := dev.Icon(true); err != nil {
		t.Fatal(err)
	}
	if err := dev.Booster(false); err != nil {
		t.Fatal(err)
	}
	wantOps(t, bus, []charlcdtest.Op{{Val: 0x5c}, {Val: 0x58}})
	if !dev.IconOn() || dev.BoosterOn() {
		t.Error("power shadow does not match the commands issued")
	}
	if err := dev.Booster(true); err != nil {
		t.Fatal(err)
	}
	if !dev.IconOn() || !dev.BoosterOn() {
		t.Error("booster toggle must not disturb the icon bit")
	}
}

func TestContrast(t *testing.T) {
	dev, bus := getLCD(t)
	tests := []struct {
		in   int
		want int
		ops  []charlcdtest.Op
	}{
		{100, 0x3f, []charlcdtest.Op{{Val: 0x7f}, {Val: 0x57}}},
		{-5, 0, []charlcdtest.Op{{Val: 0x70}, {Val: 0x54}}},
		{0x2a, 0x2a, []charlcdtest.Op{{Val: 0x7a}, {Val: 0x56}}},
	}
	for _, tt := range tests {
		bus.Ops = nil
		if err := dev.SetContrast(tt.in); err != nil {
			t.Fatal(err)
		}
		wantOps(t, bus, tt.ops)
		if dev.Contrast() != tt.want {
			t.Errorf("SetContrast(%d): shadow %d, want %d", tt.in, dev.Contrast(), tt.want)
		}
	}
}

func TestFollower(t *testing.T) {
	dev, bus := getLCD(t)
	if err := dev.Follower(-1); err != nil {
		t.Fatal(err)
	}
	if dev.FollowerRatio() != -1 {
		t.Errorf("FollowerRatio() = %d, want -1", dev.FollowerRatio())
	}
	if err := dev.Follower(10); err != nil {
		t.Fatal(err)
	}
	if dev.FollowerRatio() != 7 {
		t.Errorf("FollowerRatio() = %d, want 7", dev.FollowerRatio())
	}
	if err := dev.Follower(2); err != nil {
		t.Fatal(err)
	}
	wantOps(t, bus, []charlcdtest.Op{{Val: 0x60}, {Val: 0x6f}, {Val: 0x6a}})
}

func TestIconAddress(t *testing.T) {
	dev, bus := getLCD(t)
	if err := dev.SetIconAddress(0x1f); err != nil {
		t.Fatal(err)
	}
	wantOps(t, bus, []charlcdtest.Op{{Val: 0x4f}})
	if dev.IconAddress() != 0x0f {
		t.Errorf("IconAddress() = %d, want 15", dev.IconAddress())
	}
}

func TestBaseOperations(t *testing.T) {
	// The base controller surface carries through the embedding.
	dev, bus := getLCD(t)
	if err := dev.SetMessage("ok"); err != nil {
		t.Fatal(err)
	}
	wantOps(t, bus, []charlcdtest.Op{{Data: true, Val: 'o'}, {Data: true, Val: 'k'}})
	if err := dev.CursorPosition(3, 1); err != nil {
		t.Fatal(err)
	}
	if col, row := dev.CursorAt(); col != 3 || row != 1 {
		t.Errorf("cursor (%d,%d), want (3,1)", col, row)
	}
}
