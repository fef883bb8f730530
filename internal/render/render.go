/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns scene artists into canvas calls.
//
// Every path and pen created here is destroyed before Draw returns, whether
// drawing succeeded or not. Canvas state such as the current pen and color
// is left as the last artist set it.
package render

import (
	"errors"
	"fmt"

	"spirographicals/internal/canvas"
	"spirographicals/internal/scene"
)

// Pen settings applied to every line.
const (
	LineCap    = canvas.CapRound
	LineJoin   = canvas.JoinRound
	MiterLimit = 10
)

// Fault is a failed canvas operation while drawing an artist.
type Fault struct {
	Resource string // "path", "pen" or "stroke"
	Kind     scene.Kind
	Err      error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("render %s: %s: %v", f.Kind, f.Resource, f.Err)
}

// Unwrap exposes both the cause and the ErrResourceAcquisition marker.
func (f *Fault) Unwrap() []error { return []error{canvas.ErrResourceAcquisition, f.Err} }

// Draw issues the canvas calls for one artist. Unknown artist kinds and nil
// artists produce no calls and no error.
func Draw(c canvas.Canvas, a scene.Artist) error {
	switch v := a.(type) {
	case *scene.LineArtist:
		if v == nil {
			return nil
		}
		return drawLine(c, v)
	case *scene.TextArtist:
		if v == nil {
			return nil
		}
		drawText(c, v)
	}
	return nil
}

// DrawAxes draws the artists of one plot area in order and stops at the first fault.
func DrawAxes(c canvas.Canvas, ax *scene.PlotAxes) error {
	if ax == nil {
		return nil
	}
	for _, a := range ax.Artists {
		if err := Draw(c, a); err != nil {
			return err
		}
	}
	return nil
}

// RGBA converts a scene color into the canvas representation.
func RGBA(c scene.Color) canvas.RGBA {
	return canvas.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func drawLine(c canvas.Canvas, l *scene.LineArtist) (err error) {
	if len(l.Points) < 2 {
		return nil
	}

	path, err := c.CreatePath()
	if err != nil {
		return &Fault{Resource: "path", Kind: scene.KindLine, Err: err}
	}
	defer path.Destroy()

	path.MoveTo(l.Points[0].X, l.Points[0].Y)
	for _, p := range l.Points[1:] {
		path.LineTo(p.X, p.Y)
	}

	pen, err := c.CreatePen(canvas.PenConfig{
		LineWidth:  l.Width,
		Cap:        LineCap,
		Join:       LineJoin,
		MiterLimit: MiterLimit,
	})
	if err != nil {
		return &Fault{Resource: "pen", Kind: scene.KindLine, Err: err}
	}
	defer pen.Destroy()

	c.SetPen(pen)
	c.SetColor(RGBA(l.Color))
	if err := c.StrokePath(path); err != nil {
		return &Fault{Resource: "stroke", Kind: scene.KindLine, Err: err}
	}
	return nil
}

func drawText(c canvas.Canvas, t *scene.TextArtist) {
	c.SetColor(RGBA(t.Config.Color))
	c.DrawText(t.Config.Text, t.Position.X, t.Position.Y)
}

// IsFault reports whether err came from a failed canvas resource.
func IsFault(err error) bool { return errors.Is(err, canvas.ErrResourceAcquisition) }
