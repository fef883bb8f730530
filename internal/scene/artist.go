/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "fmt"

// Kind identifies an artist variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindLine
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Artist is anything that can be placed into a PlotAxes. The set is open:
// renderers skip kinds they do not know.
type Artist interface {
	Kind() Kind
}

// LineArtist is a polyline through Points. A line with fewer than two points
// is valid but draws nothing.
type LineArtist struct {
	Points []Vec2
	Color  Color
	Width  float32
	Style  LineStyle
}

// NewLineArtist copies points so later changes by the caller do not leak in.
// Points must be finite and the color in range.
func NewLineArtist(points []Vec2, color Color, width float32, style LineStyle) (*LineArtist, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: line width %v must be positive", ErrMalformedInput, width)
	}
	if i := firstNonFinite(points); i >= 0 {
		return nil, fmt.Errorf("%w: point %d %v is not finite", ErrMalformedInput, i, points[i])
	}
	if err := color.Check(); err != nil {
		return nil, err
	}
	pts := make([]Vec2, len(points))
	copy(pts, points)
	return &LineArtist{Points: pts, Color: color, Width: width, Style: style}, nil
}

func (*LineArtist) Kind() Kind { return KindLine }

// TextArtist places a text at Position. Alignment is stored but not applied
// when drawing.
type TextArtist struct {
	Config   TextConfig
	Position Vec2
	HAlign   HorizontalAlign
	VAlign   VerticalAlign
}

func NewTextArtist(cfg TextConfig, pos Vec2) *TextArtist {
	return &TextArtist{Config: cfg, Position: pos, HAlign: AlignLeft, VAlign: AlignBottom}
}

func (*TextArtist) Kind() Kind { return KindText }
