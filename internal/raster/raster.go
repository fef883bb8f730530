/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package raster is a software canvas backed by the gg rasterizer. Frames
// are drawn into an in-memory image and handed to a Present callback, which
// either shows them (window) or encodes them (PNG export).
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"spirographicals/internal/canvas"
	"spirographicals/internal/fonts"
)

// Options configures a System.
type Options struct {
	// Frames closes each canvas after that many presented frames. Zero
	// leaves closing to CloseRequested.
	Frames int
	// CloseRequested is polled by ShouldClose.
	CloseRequested func() bool
	// Present receives each finished frame, numbered from 1.
	Present func(frame int, c *Canvas) error
	// Font for DrawText; fonts.Default() when nil.
	Font *fonts.Library
	// TextSize in points, 12 when zero.
	TextSize float64
}

// System hands out gg canvases.
type System struct {
	opts        Options
	initialized bool
	open        int
}

func NewSystem(opts Options) *System {
	if opts.Font == nil {
		opts.Font = fonts.Default()
	}
	if opts.TextSize <= 0 {
		opts.TextSize = 12
	}
	return &System{opts: opts}
}

func (s *System) Initialize() error {
	s.initialized = true
	return nil
}

func (s *System) Terminate() { s.initialized = false }

// Open is the number of canvases created and not yet destroyed.
func (s *System) Open() int { return s.open }

func (s *System) CreateCanvas(cfg canvas.WindowConfig) (canvas.Canvas, error) {
	if !s.initialized {
		return nil, fmt.Errorf("%w: raster system not initialized", canvas.ErrResourceAcquisition)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", canvas.ErrResourceAcquisition, cfg.Width, cfg.Height)
	}
	ctx := gg.NewContext(cfg.Width, cfg.Height)
	ctx.SetFont(s.opts.Font.Face(s.opts.TextSize))
	s.open++
	return &Canvas{sys: s, ctx: ctx, cfg: cfg}, nil
}

// Canvas draws into a gg.Context.
type Canvas struct {
	sys    *System
	ctx    *gg.Context
	cfg    canvas.WindowConfig
	frames int
	closed bool
}

// Config returns the window configuration the canvas was created with.
func (c *Canvas) Config() canvas.WindowConfig { return c.cfg }

// Frames is the number of presented frames.
func (c *Canvas) Frames() int { return c.frames }

func (c *Canvas) ShouldClose() bool {
	if c.closed {
		return true
	}
	if n := c.sys.opts.Frames; n > 0 && c.frames >= n {
		return true
	}
	return c.sys.opts.CloseRequested != nil && c.sys.opts.CloseRequested()
}

func (c *Canvas) BeginFrame() { c.ctx.ClearPath() }

func (c *Canvas) EndFrame() error {
	if c.closed {
		return errors.New("raster canvas destroyed")
	}
	c.frames++
	if p := c.sys.opts.Present; p != nil {
		return p(c.frames, c)
	}
	return nil
}

func (c *Canvas) Clear(col canvas.RGBA) { c.ctx.ClearWithColor(toGG(col)) }

func (c *Canvas) CreatePath() (canvas.Path, error) { return &canvas.SegmentPath{}, nil }

func (c *Canvas) CreatePen(cfg canvas.PenConfig) (canvas.Pen, error) {
	if err := canvas.ValidatePen(cfg); err != nil {
		return nil, err
	}
	return &canvas.BasicPen{Cfg: cfg}, nil
}

func (c *Canvas) SetPen(p canvas.Pen) {
	if p == nil {
		return
	}
	cfg := p.Config()
	c.ctx.SetLineWidth(float64(cfg.LineWidth))
	c.ctx.SetLineCap(capOf(cfg.Cap))
	c.ctx.SetLineJoin(joinOf(cfg.Join))
	c.ctx.SetMiterLimit(float64(cfg.MiterLimit))
}

func (c *Canvas) SetColor(col canvas.RGBA) {
	c.ctx.SetRGBA(float64(col.R), float64(col.G), float64(col.B), float64(col.A))
}

func (c *Canvas) StrokePath(p canvas.Path) error {
	sp, err := canvas.AsSegments(p)
	if err != nil {
		return err
	}
	c.ctx.ClearPath()
	for _, s := range sp.Segs {
		switch s.Op {
		case canvas.OpMove:
			c.ctx.MoveTo(float64(s.X), float64(s.Y))
		case canvas.OpLine:
			c.ctx.LineTo(float64(s.X), float64(s.Y))
		}
	}
	if err := c.ctx.Stroke(); err != nil {
		return fmt.Errorf("%w: stroke: %w", canvas.ErrResourceAcquisition, err)
	}
	return nil
}

// DrawText draws s with its baseline starting at (x, y).
func (c *Canvas) DrawText(s string, x, y float32) {
	c.ctx.DrawString(s, float64(x), float64(y))
}

func (c *Canvas) Destroy() {
	if c.closed {
		return
	}
	c.closed = true
	_ = c.ctx.Close()
	c.sys.open--
}

// Image returns the current frame.
func (c *Canvas) Image() image.Image { return c.ctx.Image() }

// EncodePNG writes the current frame as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.ctx.EncodePNG(w) }

func toGG(c canvas.RGBA) gg.RGBA {
	return gg.RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

func capOf(c canvas.LineCap) gg.LineCap {
	switch c {
	case canvas.CapRound:
		return gg.LineCapRound
	case canvas.CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func joinOf(j canvas.LineJoin) gg.LineJoin {
	switch j {
	case canvas.JoinRound:
		return gg.LineJoinRound
	case canvas.JoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}
