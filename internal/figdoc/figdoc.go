/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package figdoc reads figure documents: YAML or JSON files that describe a
// figure declaratively. Documents are checked against an embedded JSON
// schema before they are decoded.
package figdoc

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"spirographicals/internal/fonts"
	"spirographicals/internal/plot"
	"spirographicals/internal/scene"
)

//go:embed figure.schema.json
var schemaJSON []byte

// Schema returns the JSON schema documents are validated against.
func Schema() []byte { return append([]byte(nil), schemaJSON...) }

type Document struct {
	Size      []float64 `yaml:"size,omitempty" json:"size,omitempty"`
	DPI       float64   `yaml:"dpi,omitempty" json:"dpi,omitempty"`
	FaceColor string    `yaml:"facecolor,omitempty" json:"facecolor,omitempty"`
	Layout    *Layout   `yaml:"layout,omitempty" json:"layout,omitempty"`
	Axes      []AxesDoc `yaml:"axes,omitempty" json:"axes,omitempty"`
}

type Layout struct {
	Rows int `yaml:"rows" json:"rows"`
	Cols int `yaml:"cols" json:"cols"`
}

type AxesDoc struct {
	Title         *Text          `yaml:"title,omitempty" json:"title,omitempty"`
	XLabel        *Text          `yaml:"xlabel,omitempty" json:"xlabel,omitempty"`
	YLabel        *Text          `yaml:"ylabel,omitempty" json:"ylabel,omitempty"`
	XLim          []float64      `yaml:"xlim,omitempty" json:"xlim,omitempty"`
	YLim          []float64      `yaml:"ylim,omitempty" json:"ylim,omitempty"`
	Grid          *Grid          `yaml:"grid,omitempty" json:"grid,omitempty"`
	Lines         []Line         `yaml:"lines,omitempty" json:"lines,omitempty"`
	Hypotrochoids []Hypotrochoid `yaml:"hypotrochoids,omitempty" json:"hypotrochoids,omitempty"`
	Texts         []Annotation   `yaml:"texts,omitempty" json:"texts,omitempty"`
}

// Text is written either as a plain string or as {text, color, size}.
type Text struct {
	Text  string  `yaml:"text" json:"text"`
	Color string  `yaml:"color,omitempty" json:"color,omitempty"`
	Size  float32 `yaml:"size,omitempty" json:"size,omitempty"`
}

func (t *Text) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		t.Text = n.Value
		return nil
	}
	type plain Text
	return n.Decode((*plain)(t))
}

type Grid struct {
	Visible bool   `yaml:"visible" json:"visible"`
	Color   string `yaml:"color,omitempty" json:"color,omitempty"`
	Style   string `yaml:"style,omitempty" json:"style,omitempty"`
}

// Stroke styles a line or curve.
type Stroke struct {
	Color string  `yaml:"color,omitempty" json:"color,omitempty"`
	Width float32 `yaml:"width,omitempty" json:"width,omitempty"`
	Style string  `yaml:"style,omitempty" json:"style,omitempty"`
	Label string  `yaml:"label,omitempty" json:"label,omitempty"`
}

type Line struct {
	X      []float64 `yaml:"x" json:"x"`
	Y      []float64 `yaml:"y" json:"y"`
	Stroke `yaml:",inline" json:",inline"`
}

type Hypotrochoid struct {
	FixedRadius   float64 `yaml:"fixed_radius" json:"fixed_radius"`
	RollingRadius float64 `yaml:"rolling_radius" json:"rolling_radius"`
	Distance      float64 `yaml:"distance" json:"distance"`
	Steps         int     `yaml:"steps,omitempty" json:"steps,omitempty"`
	Stroke        `yaml:",inline" json:",inline"`
}

// DefaultSteps samples a hypotrochoid when steps is not given.
const DefaultSteps = 2000

type Annotation struct {
	X     float64 `yaml:"x" json:"x"`
	Y     float64 `yaml:"y" json:"y"`
	Text  string  `yaml:"text" json:"text"`
	Color string  `yaml:"color,omitempty" json:"color,omitempty"`
	Size  float32 `yaml:"size,omitempty" json:"size,omitempty"`
}

// Load reads a .yaml, .yml or .json document.
func Load(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %s: figure documents must be .yaml, .yml or .json", scene.ErrMalformedInput, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read figure document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse validates and decodes a document. JSON is accepted as YAML.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", scene.ErrMalformedInput, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if err := validate(raw); err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", scene.ErrMalformedInput, err)
	}
	return &doc, nil
}

func validate(raw any) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: schema check: %w", scene.ErrMalformedInput, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", scene.ErrMalformedInput, strings.Join(msgs, "; "))
}

// Figure builds the plot the document describes. With no layout the axes
// are placed side by side.
func (d *Document) Figure(font *fonts.Library) (*plot.Figure, error) {
	var opts []plot.Option
	if len(d.Size) == 2 {
		opts = append(opts, plot.WithSize(d.Size[0], d.Size[1]))
	}
	if d.DPI > 0 {
		opts = append(opts, plot.WithDPI(d.DPI))
	}
	if d.FaceColor != "" {
		opts = append(opts, plot.WithFaceColor(d.FaceColor))
	}
	opts = append(opts, plot.WithFont(font))
	f := plot.NewFigure(opts...)

	if len(d.Axes) == 0 {
		return f, f.Err()
	}
	rows, cols := 1, len(d.Axes)
	if d.Layout != nil {
		rows, cols = d.Layout.Rows, d.Layout.Cols
	}
	if len(d.Axes) > rows*cols {
		return nil, fmt.Errorf("%w: %d axes do not fit a %dx%d layout", scene.ErrMalformedInput, len(d.Axes), rows, cols)
	}
	grid := f.Subplots(rows, cols)
	for i, ad := range d.Axes {
		if err := ad.apply(grid[i]); err != nil {
			return nil, fmt.Errorf("axes[%d]: %w", i, err)
		}
	}
	return f, f.Err()
}

// Build is Figure followed by plot.Figure.Build.
func (d *Document) Build(font *fonts.Library) (*scene.Figure, error) {
	f, err := d.Figure(font)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

func (s AxesDoc) apply(ax *plot.Axes) error {
	if s.Title != nil {
		ax.SetTitle(s.Title.Text, s.Title.options()...)
	}
	if s.XLabel != nil {
		ax.SetXLabel(s.XLabel.Text, s.XLabel.options()...)
	}
	if s.YLabel != nil {
		ax.SetYLabel(s.YLabel.Text, s.YLabel.options()...)
	}
	if len(s.XLim) == 2 {
		ax.SetXLim(s.XLim[0], s.XLim[1])
	}
	if len(s.YLim) == 2 {
		ax.SetYLim(s.YLim[0], s.YLim[1])
	}
	if g := s.Grid; g != nil {
		var opts []plot.GridOption
		if g.Color != "" {
			opts = append(opts, plot.GridColor(g.Color))
		}
		if g.Style != "" {
			st, err := scene.ParseLineStyle(g.Style)
			if err != nil {
				return fmt.Errorf("grid: %w", err)
			}
			opts = append(opts, plot.GridStyle(st))
		}
		ax.Grid(g.Visible, opts...)
	}
	for i, l := range s.Lines {
		opts, err := l.Stroke.options()
		if err != nil {
			return fmt.Errorf("lines[%d]: %w", i, err)
		}
		ax.Plot(l.X, l.Y, opts...)
	}
	for i, h := range s.Hypotrochoids {
		opts, err := h.Stroke.options()
		if err != nil {
			return fmt.Errorf("hypotrochoids[%d]: %w", i, err)
		}
		steps := h.Steps
		if steps == 0 {
			steps = DefaultSteps
		}
		x, y := plot.Hypotrochoid(h.FixedRadius, h.RollingRadius, h.Distance, steps)
		ax.Plot(x, y, opts...)
	}
	for _, t := range s.Texts {
		txt := Text{Text: t.Text, Color: t.Color, Size: t.Size}
		ax.Text(t.X, t.Y, t.Text, txt.options()...)
	}
	return nil
}

func (t Text) options() []plot.TextOption {
	var opts []plot.TextOption
	if t.Color != "" {
		opts = append(opts, plot.TextColor(t.Color))
	}
	if t.Size > 0 {
		opts = append(opts, plot.FontSize(t.Size))
	}
	return opts
}

func (s Stroke) options() ([]plot.PlotOption, error) {
	var opts []plot.PlotOption
	if s.Color != "" {
		opts = append(opts, plot.Color(s.Color))
	}
	if s.Width > 0 {
		opts = append(opts, plot.LineWidth(s.Width))
	}
	if s.Style != "" {
		st, err := scene.ParseLineStyle(s.Style)
		if err != nil {
			return nil, err
		}
		opts = append(opts, plot.Style(st))
	}
	if s.Label != "" {
		opts = append(opts, plot.Label(s.Label))
	}
	return opts, nil
}
