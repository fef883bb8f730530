/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas defines the immediate-mode drawing surface the renderer
// talks to. Implementations live elsewhere (raster, export, ui, record);
// this package only fixes the contract and the value types that cross it.
//
// Handles returned by CreatePath and CreatePen are owned by the caller and
// must be destroyed exactly once, on the same goroutine that created them.
package canvas

import "errors"

// ErrResourceAcquisition marks a failure to obtain or use a canvas, path or pen.
var ErrResourceAcquisition = errors.New("resource acquisition failed")

// RGBA is a float color in [0,1], the form every backend accepts.
type RGBA struct {
	R, G, B, A float32
}

type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

// PenConfig describes stroke geometry.
type PenConfig struct {
	LineWidth  float32
	Cap        LineCap
	Join       LineJoin
	MiterLimit float32
}

// WindowConfig is what a System needs to open a canvas.
type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

// System is the graphics subsystem owning every canvas it creates.
type System interface {
	Initialize() error
	Terminate()
	CreateCanvas(cfg WindowConfig) (Canvas, error)
}

// Canvas is one drawing surface. Coordinates are pixels with the origin in
// the top-left corner.
type Canvas interface {
	ShouldClose() bool
	BeginFrame()
	EndFrame() error
	Clear(c RGBA)

	CreatePath() (Path, error)
	CreatePen(cfg PenConfig) (Pen, error)
	SetPen(p Pen)
	SetColor(c RGBA)
	StrokePath(p Path) error
	DrawText(s string, x, y float32)

	Destroy()
}

// Path accumulates straight segments until it is stroked.
type Path interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	Destroy()
}

type Pen interface {
	Config() PenConfig
	Destroy()
}
