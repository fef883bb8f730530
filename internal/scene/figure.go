/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"errors"
	"fmt"
)

// Default figure settings.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// DefaultFaceColor is the dark background every new figure starts with.
var DefaultFaceColor = Color{R: 0.1, G: 0.1, B: 0.1, A: 1}

// PlotAxes is one plot area. Artists are drawn in slice order.
type PlotAxes struct {
	Artists []Artist
	Title   *TextConfig
	XAxis   AxisConfig
	YAxis   AxisConfig
	Grid    GridConfig
}

// NewPlotAxes returns an empty plot area with an empty white 12pt title.
func NewPlotAxes() *PlotAxes {
	return &PlotAxes{
		Title: &TextConfig{Text: "", Color: White, Size: DefaultTextSize},
		XAxis: DefaultAxis(),
		YAxis: DefaultAxis(),
		Grid:  DefaultGrid(),
	}
}

func (p *PlotAxes) AddArtist(a Artist) { p.Artists = append(p.Artists, a) }

func (p *PlotAxes) AddLine(l *LineArtist) { p.AddArtist(l) }

func (p *PlotAxes) AddText(t *TextArtist) { p.AddArtist(t) }

// Figure is the root of a scene.
type Figure struct {
	Axes      []*PlotAxes
	FaceColor Color
	Width     int
	Height    int
}

// NewFigure returns an 800x800 figure with one empty PlotAxes.
func NewFigure() *Figure {
	return &Figure{
		Axes:      []*PlotAxes{NewPlotAxes()},
		FaceColor: DefaultFaceColor,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
}

// AddAxes appends a new plot area and returns it.
func (f *Figure) AddAxes() *PlotAxes {
	ax := NewPlotAxes()
	f.Axes = append(f.Axes, ax)
	return ax
}

// Validate reports every violated constraint, joined: sizes must be
// positive, points finite and color channels within [0,1].
func (f *Figure) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil figure", ErrMalformedInput)
	}
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrMalformedInput}, args...)...))
	}
	color := func(where string, c Color) {
		if err := c.Check(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}
	if f.Width <= 0 || f.Height <= 0 {
		add("figure size %dx%d must be positive", f.Width, f.Height)
	}
	color("face color", f.FaceColor)
	for i, ax := range f.Axes {
		if ax == nil {
			add("axes[%d] is nil", i)
			continue
		}
		if ax.Title != nil {
			if ax.Title.Size <= 0 {
				add("axes[%d] title size %v must be positive", i, ax.Title.Size)
			}
			color(fmt.Sprintf("axes[%d] title", i), ax.Title.Color)
		}
		color(fmt.Sprintf("axes[%d] grid", i), ax.Grid.Color)
		for j, a := range ax.Artists {
			where := fmt.Sprintf("axes[%d].artists[%d]", i, j)
			switch v := a.(type) {
			case nil:
				add("%s is nil", where)
			case *LineArtist:
				if v == nil {
					add("%s is nil", where)
					continue
				}
				if v.Width <= 0 {
					add("%s line width must be positive", where)
				}
				if k := firstNonFinite(v.Points); k >= 0 {
					add("%s point %d %v is not finite", where, k, v.Points[k])
				}
				color(where, v.Color)
			case *TextArtist:
				if v == nil {
					add("%s is nil", where)
					continue
				}
				if v.Config.Size <= 0 {
					add("%s text size must be positive", where)
				}
				if !v.Position.Finite() {
					add("%s position %v is not finite", where, v.Position)
				}
				color(where, v.Config.Color)
			}
		}
	}
	return errors.Join(errs...)
}
