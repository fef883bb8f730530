/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package plot is a small pyplot-style builder. A Figure collects axes,
// lines and labels in data coordinates; Build lays them out in pixels and
// returns the scene.Figure the frame driver renders.
package plot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"spirographicals/internal/canvas"
	"spirographicals/internal/export"
	"spirographicals/internal/fonts"
	"spirographicals/internal/frame"
	applog "spirographicals/internal/log"
	"spirographicals/internal/scene"
	"spirographicals/internal/vector"
)

// Figure defaults.
const (
	DefaultSizeInches = 10.0
	DefaultDPI        = 100.0
	DefaultFaceColor  = "#121212"
)

// Figure is the top-level container of a plot.
type Figure struct {
	widthIn, heightIn float64
	dpi               float64
	face              scene.Color
	rows, cols        int
	axes              []*Axes
	font              *fonts.Library
	errs              []error
}

type Option func(*Figure)

// WithSize sets the figure size in inches.
func WithSize(w, h float64) Option {
	return func(f *Figure) { f.widthIn, f.heightIn = w, h }
}

// WithDPI sets pixels per inch.
func WithDPI(dpi float64) Option { return func(f *Figure) { f.dpi = dpi } }

// WithFaceColor sets the background from a hex or named color.
func WithFaceColor(s string) Option {
	return func(f *Figure) {
		c, err := ParseColor(s)
		if err != nil {
			f.fail(fmt.Errorf("face color: %w", err))
			return
		}
		f.face = c
	}
}

// WithFont selects the font used to measure titles and labels.
func WithFont(l *fonts.Library) Option {
	return func(f *Figure) {
		if l != nil {
			f.font = l
		}
	}
}

func NewFigure(opts ...Option) *Figure {
	f := &Figure{
		widthIn:  DefaultSizeInches,
		heightIn: DefaultSizeInches,
		dpi:      DefaultDPI,
		face:     scene.MustHex(DefaultFaceColor),
		rows:     1,
		cols:     1,
	}
	for _, o := range opts {
		o(f)
	}
	if f.font == nil {
		f.font = fonts.Default()
	}
	return f
}

func (f *Figure) fail(err error) { f.errs = append(f.errs, err) }

// SizePixels is the canvas size: inches times dpi, truncated.
func (f *Figure) SizePixels() (int, int) {
	return int(f.widthIn * f.dpi), int(f.heightIn * f.dpi)
}

// AddSubplot returns the first axes, creating it on the first call.
func (f *Figure) AddSubplot() *Axes {
	if len(f.axes) > 0 {
		return f.axes[0]
	}
	ax := newAxes(f)
	f.axes = append(f.axes, ax)
	return ax
}

// Subplots replaces the axes with a rows x cols grid, returned in
// row-major order.
func (f *Figure) Subplots(rows, cols int) []*Axes {
	if rows < 1 || cols < 1 {
		f.fail(fmt.Errorf("%w: subplot grid %dx%d", scene.ErrMalformedInput, rows, cols))
		rows, cols = 1, 1
	}
	f.rows, f.cols = rows, cols
	f.axes = make([]*Axes, rows*cols)
	for i := range f.axes {
		f.axes[i] = newAxes(f)
	}
	return append([]*Axes(nil), f.axes...)
}

// Axes returns the plot areas in drawing order.
func (f *Figure) Axes() []*Axes { return append([]*Axes(nil), f.axes...) }

// Err reports every invalid value passed to the builder so far.
func (f *Figure) Err() error { return errors.Join(f.errs...) }

// Build lays the figure out in pixels.
func (f *Figure) Build() (*scene.Figure, error) {
	if err := f.Err(); err != nil {
		return nil, err
	}
	w, h := f.SizePixels()
	out := &scene.Figure{FaceColor: f.face, Width: w, Height: h}
	cells := vector.Cells(vector.R(0, 0, float32(w), float32(h)), f.rows, f.cols, 0)
	for i, ax := range f.axes {
		cell := cells[min(i, len(cells)-1)]
		out.Axes = append(out.Axes, ax.build(cell))
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Show builds the figure and renders it on sys until the canvas closes.
func (f *Figure) Show(sys canvas.System, opts ...frame.Option) error {
	fig, err := f.Build()
	if err != nil {
		return err
	}
	return frame.Render(sys, fig, opts...)
}

// Savefig builds the figure and writes it to path; the extension picks
// the format.
func (f *Figure) Savefig(path string, opts export.Options) error {
	fig, err := f.Build()
	if err != nil {
		return err
	}
	if opts.Font == nil {
		opts.Font = f.font
	}
	applog.WithComponent("plot").Debug("savefig", slog.String("path", path), slog.Int("axes", len(fig.Axes)))
	return export.Savefig(fig, path, opts)
}

var namedColors = map[string]string{
	"white":   "#ffffff",
	"black":   "#000000",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"gray":    "#808080",
	"grey":    "#808080",
}

// ParseColor accepts "#rrggbb", "#rrggbbaa" or a basic color name.
func ParseColor(s string) (scene.Color, error) {
	if hex, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
		s = hex
	}
	return scene.ColorFromHex(strings.TrimSpace(s))
}
