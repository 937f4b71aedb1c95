// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcdtest is meant to be used to test drivers and
// applications over a fake charlcd.Bus.
//
// Record keeps every byte a controller emitted so a test can assert on
// the exact command sequence an operation produces; it can additionally
// log each write as a human readable hexadecimal line. Playback replays
// an expected stream and flags the first divergence.
package charlcdtest

import (
	"fmt"
	"io"

	"github.com/tgtakaoka/go-charlcd/charlcd"
)

// Op is one write observed on the bus.
type Op struct {
	// Data is true for a data-register write, false for an instruction.
	Data bool
	Val  byte
}

func (o Op) String() string {
	if o.Data {
		return fmt.Sprintf("data 0x%02x", o.Val)
	}
	return fmt.Sprintf("command 0x%02x", o.Val)
}

// Record implements charlcd.Bus and records every write.
//
// The zero value is ready to use as a 4-bit style transport; set
// EightBit to have Initialize report an 8-bit interface.
type Record struct {
	// EightBit is what Initialize reports to the controller.
	EightBit bool
	// W, when not nil, receives one "command 0xNN" / "data 0xNN" line
	// per write.
	W io.Writer

	// Ops is every write in order.
	Ops []Op
}

func (r *Record) Initialize() (bool, error) {
	return r.EightBit, nil
}

func (r *Record) Command(b byte) error {
	return r.record(Op{Val: b})
}

func (r *Record) Data(b byte) error {
	return r.record(Op{Data: true, Val: b})
}

func (r *Record) record(o Op) error {
	r.Ops = append(r.Ops, o)
	if r.W != nil {
		if _, err := fmt.Fprintf(r.W, "%s\n", o); err != nil {
			return err
		}
	}
	return nil
}

// Playback implements charlcd.Bus and fails when the byte stream
// diverges from the expected Ops.
//
// Close() verifies that all the expected Ops were consumed.
type Playback struct {
	// EightBit is what Initialize reports to the controller.
	EightBit bool
	// Ops is the expected stream.
	Ops []Op
	// DontPanic makes a divergence return an error instead of panicking.
	DontPanic bool

	count int
}

func (p *Playback) Initialize() (bool, error) {
	return p.EightBit, nil
}

func (p *Playback) Command(b byte) error {
	return p.check(Op{Val: b})
}

func (p *Playback) Data(b byte) error {
	return p.check(Op{Data: true, Val: b})
}

// Count returns how many writes were consumed so far.
func (p *Playback) Count() int {
	return p.count
}

// Close verifies that all the expected writes were consumed.
func (p *Playback) Close() error {
	if p.count != len(p.Ops) {
		return p.fail(fmt.Errorf("charlcdtest: expected %d writes, got %d", len(p.Ops), p.count))
	}
	return nil
}

func (p *Playback) check(o Op) error {
	if p.count >= len(p.Ops) {
		return p.fail(fmt.Errorf("charlcdtest: unexpected write #%d: %s", p.count, o))
	}
	if want := p.Ops[p.count]; o != want {
		return p.fail(fmt.Errorf("charlcdtest: write #%d: expected %s, got %s", p.count, want, o))
	}
	p.count++
	return nil
}

func (p *Playback) fail(err error) error {
	if !p.DontPanic {
		panic(err)
	}
	return err
}

var _ charlcd.Bus = &Record{}
var _ charlcd.Bus = &Playback{}
