/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "fmt"

// DefaultTextSize is the point size used when a caller does not pick one.
const DefaultTextSize = 12

// TextConfig is a piece of text with its color and size.
type TextConfig struct {
	Text  string  `json:"text"`
	Color Color   `json:"color"`
	Size  float32 `json:"size"`
}

// NewTextConfig validates size > 0.
func NewTextConfig(text string, color Color, size float32) (TextConfig, error) {
	if size <= 0 {
		return TextConfig{}, fmt.Errorf("%w: text size %v must be positive", ErrMalformedInput, size)
	}
	return TextConfig{Text: text, Color: color, Size: size}, nil
}

// GridConfig controls the background grid of a plot area.
type GridConfig struct {
	Visible bool      `json:"visible"`
	Color   Color     `json:"color"`
	Style   LineStyle `json:"style"`
}

// DefaultGrid is hidden, half-transparent grey, dashed.
func DefaultGrid() GridConfig {
	return GridConfig{Visible: false, Color: Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5}, Style: Dashed}
}

// Limits is a data range on one axis.
type Limits struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// AxisConfig describes one axis. Nil Label means no label, nil Limits means
// the range is derived from the data.
type AxisConfig struct {
	Label   *TextConfig `json:"label,omitempty"`
	Limits  *Limits     `json:"limits,omitempty"`
	Visible bool        `json:"visible"`
}

func DefaultAxis() AxisConfig { return AxisConfig{Visible: true} }

// Clone returns a copy that shares no pointers with a.
func (a AxisConfig) Clone() AxisConfig {
	out := AxisConfig{Visible: a.Visible}
	if a.Label != nil {
		l := *a.Label
		out.Label = &l
	}
	if a.Limits != nil {
		l := *a.Limits
		out.Limits = &l
	}
	return out
}
