/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package plot

import (
	"fmt"

	"spirographicals/internal/scene"
	"spirographicals/internal/vector"
)

// Plot defaults.
const (
	DefaultLineColor = "#00FFFF"
	DefaultLineWidth = 1.5
	GridDivisions    = 5
	// AutoPadding is the fraction added around the data when a limit is
	// not set explicitly.
	AutoPadding = 0.05
)

type line struct {
	points vector.Polyline
	color  scene.Color
	width  float32
	style  scene.LineStyle
	label  string
}

type label struct {
	pos vector.Pt
	cfg scene.TextConfig
}

// Axes is one plot area of a Figure. Methods return the receiver so calls
// can be chained.
type Axes struct {
	fig    *Figure
	lines  []*line
	texts  []label
	title  scene.TextConfig
	xlabel *scene.TextConfig
	ylabel *scene.TextConfig
	grid   scene.GridConfig
	xlim   *scene.Limits
	ylim   *scene.Limits
}

func newAxes(f *Figure) *Axes {
	return &Axes{
		fig:   f,
		title: scene.TextConfig{Color: scene.White, Size: scene.DefaultTextSize},
		grid:  scene.DefaultGrid(),
	}
}

// PlotOption styles one line.
type PlotOption func(*line) error

func Color(s string) PlotOption {
	return func(l *line) error {
		c, err := ParseColor(s)
		l.color = c
		return err
	}
}

func LineWidth(w float32) PlotOption {
	return func(l *line) error {
		if w <= 0 {
			return fmt.Errorf("%w: line width %v must be positive", scene.ErrMalformedInput, w)
		}
		l.width = w
		return nil
	}
}

func Style(s scene.LineStyle) PlotOption {
	return func(l *line) error { l.style = s; return nil }
}

// Label names the line. It is kept with the axes but not drawn.
func Label(s string) PlotOption {
	return func(l *line) error { l.label = s; return nil }
}

// Plot adds y versus x as a line. x and y must have the same length and
// every point must be finite once narrowed to float32.
func (a *Axes) Plot(x, y []float64, opts ...PlotOption) *Axes {
	if len(x) != len(y) {
		a.fig.fail(fmt.Errorf("%w: plot: len(x)=%d, len(y)=%d", scene.ErrMalformedInput, len(x), len(y)))
		return a
	}
	l := &line{
		color: scene.MustHex(DefaultLineColor),
		width: DefaultLineWidth,
		style: scene.Solid,
	}
	for _, o := range opts {
		if err := o(l); err != nil {
			a.fig.fail(fmt.Errorf("plot: %w", err))
			return a
		}
	}
	l.points = make(vector.Polyline, len(x))
	for i := range x {
		p := scene.V(float32(x[i]), float32(y[i]))
		if !p.Finite() {
			a.fig.fail(fmt.Errorf("%w: plot: point %d (%v, %v) is not finite in float32", scene.ErrMalformedInput, i, x[i], y[i]))
			return a
		}
		l.points[i] = vector.Pt{X: p.X, Y: p.Y}
	}
	a.lines = append(a.lines, l)
	return a
}

// Labels returns the line labels in plot order; unlabeled lines give "".
func (a *Axes) Labels() []string {
	out := make([]string, len(a.lines))
	for i, l := range a.lines {
		out[i] = l.label
	}
	return out
}

// TextOption styles a title, axis label or free text.
type TextOption func(*scene.TextConfig) error

func TextColor(s string) TextOption {
	return func(c *scene.TextConfig) error {
		col, err := ParseColor(s)
		c.Color = col
		return err
	}
}

func FontSize(size float32) TextOption {
	return func(c *scene.TextConfig) error {
		if size <= 0 {
			return fmt.Errorf("%w: text size %v must be positive", scene.ErrMalformedInput, size)
		}
		c.Size = size
		return nil
	}
}

func (a *Axes) text(what, s string, opts []TextOption) (scene.TextConfig, bool) {
	cfg := scene.TextConfig{Text: s, Color: scene.White, Size: scene.DefaultTextSize}
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			a.fig.fail(fmt.Errorf("%s: %w", what, err))
			return cfg, false
		}
	}
	return cfg, true
}

func (a *Axes) SetTitle(s string, opts ...TextOption) *Axes {
	if cfg, ok := a.text("title", s, opts); ok {
		a.title = cfg
	}
	return a
}

func (a *Axes) SetXLabel(s string, opts ...TextOption) *Axes {
	if cfg, ok := a.text("xlabel", s, opts); ok {
		a.xlabel = &cfg
	}
	return a
}

func (a *Axes) SetYLabel(s string, opts ...TextOption) *Axes {
	if cfg, ok := a.text("ylabel", s, opts); ok {
		a.ylabel = &cfg
	}
	return a
}

// Text places s with its baseline start at (x, y) in data coordinates.
func (a *Axes) Text(x, y float64, s string, opts ...TextOption) *Axes {
	if cfg, ok := a.text("text", s, opts); ok {
		a.texts = append(a.texts, label{pos: vector.Pt{X: float32(x), Y: float32(y)}, cfg: cfg})
	}
	return a
}

// GridOption styles the grid.
type GridOption func(*scene.GridConfig) error

func GridColor(s string) GridOption {
	return func(g *scene.GridConfig) error {
		c, err := ParseColor(s)
		g.Color = c
		return err
	}
}

func GridStyle(s scene.LineStyle) GridOption {
	return func(g *scene.GridConfig) error { g.Style = s; return nil }
}

func (a *Axes) Grid(visible bool, opts ...GridOption) *Axes {
	g := a.grid
	g.Visible = visible
	for _, o := range opts {
		if err := o(&g); err != nil {
			a.fig.fail(fmt.Errorf("grid: %w", err))
			return a
		}
	}
	a.grid = g
	return a
}

func (a *Axes) SetXLim(lo, hi float64) *Axes {
	a.xlim = a.limits("xlim", lo, hi)
	return a
}

func (a *Axes) SetYLim(lo, hi float64) *Axes {
	a.ylim = a.limits("ylim", lo, hi)
	return a
}

func (a *Axes) limits(what string, lo, hi float64) *scene.Limits {
	if lo >= hi {
		a.fig.fail(fmt.Errorf("%w: %s [%v, %v] is empty", scene.ErrMalformedInput, what, lo, hi))
		return nil
	}
	return &scene.Limits{Min: float32(lo), Max: float32(hi)}
}
