// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim_test

import (
	"fmt"
	"io"
	"log"

	"github.com/tgtakaoka/go-charlcd/charlcd"
	"github.com/tgtakaoka/go-charlcd/lcdsim"
)

// A controller pointed at the simulator behaves exactly like one on
// hardware, and the simulated DDRAM can be inspected. Drop the W option
// to watch the panel on your terminal instead.
func Example() {
	sim := lcdsim.New(&lcdsim.Opts{Cols: 16, Lines: 2, W: io.Discard})
	lcd, err := charlcd.New(sim, &charlcd.Opts{Cols: 16, Lines: 2})
	if err != nil {
		log.Fatal(err)
	}
	if err := lcd.SetMessage("Hello\nWorld"); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q\n", sim.Row(0))
	fmt.Printf("%q\n", sim.Row(1))
	// Output:
	// "Hello           "
	// "World           "
}
