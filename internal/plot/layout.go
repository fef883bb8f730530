/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package plot

import (
	"spirographicals/internal/scene"
	"spirographicals/internal/vector"
)

// Layout constants in pixels, or as a fraction of the cell where noted.
const (
	marginFrac = 0.08
	gridWidth  = 1
	labelGap   = 6
)

// dataRect is the visible data range: explicit limits where set, the padded
// data bounds otherwise, and the unit square for an empty plot.
func (a *Axes) dataRect() vector.Rect {
	var b vector.Rect
	have := false
	for _, l := range a.lines {
		lb, ok := l.points.Bounds()
		if !ok {
			continue
		}
		if !have {
			b, have = lb, true
		} else {
			b = b.Union(lb)
		}
	}
	if have {
		b = b.Pad(AutoPadding)
	} else {
		b = vector.R(0, 0, 1, 1)
	}
	if a.xlim != nil {
		b.X, b.W = a.xlim.Min, a.xlim.Max-a.xlim.Min
	}
	if a.ylim != nil {
		b.Y, b.H = a.ylim.Min, a.ylim.Max-a.ylim.Min
	}
	return b
}

// viewport is the pixel area data is mapped into.
func viewport(cell vector.Rect) vector.Rect {
	m := marginFrac * min(cell.W, cell.H)
	return cell.Inset(m, m)
}

func (a *Axes) advance(cfg scene.TextConfig) float32 {
	return float32(a.fig.font.Advance(cfg.Text, float64(cfg.Size)))
}

// build converts the axes into drawable artists inside cell: grid first,
// then data lines, free texts, and finally title and axis labels.
func (a *Axes) build(cell vector.Rect) *scene.PlotAxes {
	view := viewport(cell)
	data := a.dataRect()
	toView := vector.Fit(data, view, true)

	out := scene.NewPlotAxes()
	title := a.title
	out.Title = &title
	out.Grid = a.grid
	out.XAxis.Limits = &scene.Limits{Min: data.X, Max: data.X + data.W}
	out.YAxis.Limits = &scene.Limits{Min: data.Y, Max: data.Y + data.H}
	if a.xlabel != nil {
		l := *a.xlabel
		out.XAxis.Label = &l
	}
	if a.ylabel != nil {
		l := *a.ylabel
		out.YAxis.Label = &l
	}

	if a.grid.Visible {
		for _, g := range vector.GridLines(view, GridDivisions) {
			out.AddLine(&scene.LineArtist{Points: points(g), Color: a.grid.Color, Width: gridWidth, Style: a.grid.Style})
		}
	}
	for _, l := range a.lines {
		out.AddLine(&scene.LineArtist{
			Points: points(l.points.Transform(toView)),
			Color:  l.color,
			Width:  l.width,
			Style:  l.style,
		})
	}
	for _, t := range a.texts {
		p := toView.Apply(t.pos)
		out.AddText(scene.NewTextArtist(t.cfg, scene.V(p.X, p.Y)))
	}

	center := view.Center()
	if title.Text != "" {
		x := center.X - a.advance(title)/2
		y := view.Y - labelGap
		out.AddText(a.aligned(title, x, y, scene.AlignCenter, scene.AlignBottom))
	}
	if l := a.xlabel; l != nil && l.Text != "" {
		x := center.X - a.advance(*l)/2
		y := view.Y + view.H + l.Size + labelGap
		out.AddText(a.aligned(*l, x, y, scene.AlignCenter, scene.AlignTop))
	}
	if l := a.ylabel; l != nil && l.Text != "" {
		x := max(view.X-a.advance(*l)-labelGap, cell.X+2)
		y := center.Y + l.Size/2
		out.AddText(a.aligned(*l, x, y, scene.AlignRight, scene.AlignMiddle))
	}
	return out
}

func (a *Axes) aligned(cfg scene.TextConfig, x, y float32, h scene.HorizontalAlign, v scene.VerticalAlign) *scene.TextArtist {
	t := scene.NewTextArtist(cfg, scene.V(x, y))
	t.HAlign, t.VAlign = h, v
	return t
}

func points(p vector.Polyline) []scene.Vec2 {
	out := make([]scene.Vec2, len(p))
	for i, q := range p {
		out[i] = scene.V(q.X, q.Y)
	}
	return out
}
