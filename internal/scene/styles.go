/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"math"
	"strings"
)

// Vec2 is a point in pixel space, origin top-left, y growing downwards.
type Vec2 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// Finite reports whether neither coordinate is NaN or infinite.
func (v Vec2) Finite() bool { return finite(v.X) && finite(v.Y) }

func finite(f float32) bool { return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0) }

// firstNonFinite returns the index of the first non-finite point, or -1.
func firstNonFinite(pts []Vec2) int {
	for i, p := range pts {
		if !p.Finite() {
			return i
		}
	}
	return -1
}

// LineStyle describes the dash pattern of a line. The renderer currently
// strokes every style solid.
type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
	Dotted
	DashDot
)

var lineStyleNames = [...]string{"solid", "dashed", "dotted", "dashdot"}

func (s LineStyle) String() string {
	if s < 0 || int(s) >= len(lineStyleNames) {
		return fmt.Sprintf("LineStyle(%d)", int(s))
	}
	return lineStyleNames[s]
}

// ParseLineStyle accepts the style names and the usual shorthands
// "-", "--", ":" and "-.".
func ParseLineStyle(s string) (LineStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid", "-":
		return Solid, nil
	case "dashed", "--":
		return Dashed, nil
	case "dotted", ":":
		return Dotted, nil
	case "dashdot", "-.":
		return DashDot, nil
	}
	return Solid, fmt.Errorf("%w: unknown line style %q", ErrMalformedInput, s)
}

// MarkerStyle is carried for completeness; no artist draws markers yet.
type MarkerStyle int

const (
	Circle MarkerStyle = iota
	Square
	Triangle
	Cross
	Plus
)

var markerNames = [...]string{"circle", "square", "triangle", "cross", "plus"}

func (m MarkerStyle) String() string {
	if m < 0 || int(m) >= len(markerNames) {
		return fmt.Sprintf("MarkerStyle(%d)", int(m))
	}
	return markerNames[m]
}

func ParseMarkerStyle(s string) (MarkerStyle, error) {
	for i, n := range markerNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return MarkerStyle(i), nil
		}
	}
	return Circle, fmt.Errorf("%w: unknown marker style %q", ErrMalformedInput, s)
}

type HorizontalAlign int

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

var hAlignNames = [...]string{"left", "center", "right"}

func (a HorizontalAlign) String() string {
	if a < 0 || int(a) >= len(hAlignNames) {
		return fmt.Sprintf("HorizontalAlign(%d)", int(a))
	}
	return hAlignNames[a]
}

func ParseHorizontalAlign(s string) (HorizontalAlign, error) {
	for i, n := range hAlignNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return HorizontalAlign(i), nil
		}
	}
	return AlignLeft, fmt.Errorf("%w: unknown horizontal alignment %q", ErrMalformedInput, s)
}

type VerticalAlign int

const (
	AlignTop VerticalAlign = iota
	AlignMiddle
	AlignBottom
)

var vAlignNames = [...]string{"top", "middle", "bottom"}

func (a VerticalAlign) String() string {
	if a < 0 || int(a) >= len(vAlignNames) {
		return fmt.Sprintf("VerticalAlign(%d)", int(a))
	}
	return vAlignNames[a]
}

func ParseVerticalAlign(s string) (VerticalAlign, error) {
	for i, n := range vAlignNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return VerticalAlign(i), nil
		}
	}
	return AlignTop, fmt.Errorf("%w: unknown vertical alignment %q", ErrMalformedInput, s)
}
