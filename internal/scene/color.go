/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the retained chart description: a Figure with its plot
// areas and the drawable artists inside them. Everything here is plain data;
// turning it into pixels is the job of the render and frame packages.
package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedInput is returned for input that cannot describe a valid scene,
// e.g. a hex color with the wrong number of digits.
var ErrMalformedInput = errors.New("malformed input")

// Color is an RGBA color with float components in [0,1].
type Color struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

// Commonly used colors.
var (
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Black       = Color{A: 1}
	Transparent = Color{}
)

// NewColor builds a Color from explicit components.
func NewColor(r, g, b, a float32) Color { return Color{R: r, G: g, B: b, A: a} }

// Check reports channels that are not finite or fall outside [0,1].
func (c Color) Check() error {
	for i, v := range [4]float32{c.R, c.G, c.B, c.A} {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("%w: color channel %c = %v outside [0,1]", ErrMalformedInput, "rgba"[i], v)
		}
	}
	return nil
}

// ColorFromHex parses "#RRGGBB" or "#RRGGBBAA" (the '#' is optional).
// Alpha defaults to 1.0 when only six digits are given.
func ColorFromHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: hex color %q must have 6 or 8 digits", ErrMalformedInput, s)
	}
	var comps [4]float32
	comps[3] = 1
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: hex color %q: invalid digit pair %q", ErrMalformedInput, s, hex[i*2:i*2+2])
		}
		comps[i] = float32(v) / 255
	}
	return Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
}

// MustHex is ColorFromHex for literals known to be valid. It panics otherwise.
func MustHex(s string) Color {
	c, err := ColorFromHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA8 returns the color as 8-bit channels, clamped and rounded.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// Hex renders the color as "#rrggbbaa".
func (c Color) Hex() string {
	r, g, b, a := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

func (c Color) String() string { return c.Hex() }

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
