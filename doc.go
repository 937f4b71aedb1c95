// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd is a container for character-matrix LCD controller
// drivers in the HD44780 instruction-set family.
//
// The controller core lives in the charlcd package, the extended
// ST7032/ST7036 controller in st7036. The remaining packages are bus
// transports: gpiobus and i2cbus drive real hardware, charlcdtest records
// the byte stream for tests, and lcdsim renders the display to a terminal.
package charlcd
