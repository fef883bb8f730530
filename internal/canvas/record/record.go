/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package record implements canvas.System by writing down every call.
// It backs the trace command and doubles as the test canvas: faults can be
// injected per operation and handle lifetimes are tracked.
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"spirographicals/internal/canvas"
)

// Operation names as they appear in a trace.
const (
	OpInitialize    = "initialize"
	OpTerminate     = "terminate"
	OpCreateCanvas  = "create_canvas"
	OpDestroyCanvas = "destroy_canvas"
	OpShouldClose   = "should_close"
	OpBeginFrame    = "begin_frame"
	OpEndFrame      = "end_frame"
	OpClear         = "clear"
	OpCreatePath    = "create_path"
	OpDestroyPath   = "destroy_path"
	OpMoveTo        = "move_to"
	OpLineTo        = "line_to"
	OpCreatePen     = "create_pen"
	OpDestroyPen    = "destroy_pen"
	OpSetPen        = "set_pen"
	OpSetColor      = "set_color"
	OpStrokePath    = "stroke_path"
	OpDrawText      = "draw_text"
)

// Call is one recorded operation.
type Call struct {
	Op   string `json:"op"`
	Args []any  `json:"args,omitempty"`
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(parts, ", ") + ")"
}

// System records calls into a shared log. The zero value never asks to
// close; set CloseAfter to end a frame loop.
type System struct {
	// CloseAfter makes ShouldClose report true once this many frames have
	// ended. Zero means never.
	CloseAfter int

	calls   []Call
	faults  map[string]error
	frames  int
	nextID  int
	live    map[int]string
	doubles int
}

func New(closeAfter int) *System {
	return &System{CloseAfter: closeAfter}
}

// FailOn makes the next calls of op return err. Only operations with an
// error result can fail: initialize, create_canvas, create_path,
// create_pen, stroke_path and end_frame.
func (s *System) FailOn(op string, err error) {
	if s.faults == nil {
		s.faults = map[string]error{}
	}
	s.faults[op] = err
}

func (s *System) record(op string, args ...any) {
	s.calls = append(s.calls, Call{Op: op, Args: args})
}

func (s *System) fault(op string) error {
	if err, ok := s.faults[op]; ok {
		return err
	}
	return nil
}

func (s *System) acquire(kind string) int {
	if s.live == nil {
		s.live = map[int]string{}
	}
	s.nextID++
	s.live[s.nextID] = kind
	return s.nextID
}

func (s *System) release(id int) {
	if _, ok := s.live[id]; !ok {
		s.doubles++
		return
	}
	delete(s.live, id)
}

// Calls returns a copy of everything recorded so far.
func (s *System) Calls() []Call { return append([]Call(nil), s.calls...) }

// Ops returns the operation names in order, leaving out the ones in skip.
func (s *System) Ops(skip ...string) []string {
	drop := map[string]bool{}
	for _, o := range skip {
		drop[o] = true
	}
	var out []string
	for _, c := range s.calls {
		if !drop[c.Op] {
			out = append(out, c.Op)
		}
	}
	return out
}

// Count returns how often op was called.
func (s *System) Count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Live is the number of paths, pens and canvases not yet destroyed.
func (s *System) Live() int { return len(s.live) }

// DoubleDestroys counts Destroy calls on handles that were already gone.
func (s *System) DoubleDestroys() int { return s.doubles }

// Frames is the number of EndFrame calls that succeeded.
func (s *System) Frames() int { return s.frames }

// Reset forgets the recorded calls and frame count. Live handles stay tracked.
func (s *System) Reset() {
	s.calls = nil
	s.frames = 0
}

// WriteJSON writes the trace as an indented JSON array.
func (s *System) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	calls := s.calls
	if calls == nil {
		calls = []Call{}
	}
	return enc.Encode(calls)
}

func (s *System) Initialize() error {
	s.record(OpInitialize)
	return s.fault(OpInitialize)
}

func (s *System) Terminate() { s.record(OpTerminate) }

func (s *System) CreateCanvas(cfg canvas.WindowConfig) (canvas.Canvas, error) {
	s.record(OpCreateCanvas, cfg.Width, cfg.Height, cfg.Title, cfg.Resizable, cfg.VSync)
	if err := s.fault(OpCreateCanvas); err != nil {
		return nil, err
	}
	return &Canvas{sys: s, id: s.acquire("canvas"), cfg: cfg}, nil
}

// Canvas is a recording canvas.Canvas.
type Canvas struct {
	sys *System
	id  int
	cfg canvas.WindowConfig
}

// Config returns the window configuration the canvas was created with.
func (c *Canvas) Config() canvas.WindowConfig { return c.cfg }

func (c *Canvas) ShouldClose() bool {
	c.sys.record(OpShouldClose)
	return c.sys.CloseAfter > 0 && c.sys.frames >= c.sys.CloseAfter
}

func (c *Canvas) BeginFrame() { c.sys.record(OpBeginFrame) }

func (c *Canvas) EndFrame() error {
	c.sys.record(OpEndFrame)
	if err := c.sys.fault(OpEndFrame); err != nil {
		return err
	}
	c.sys.frames++
	return nil
}

func (c *Canvas) Clear(col canvas.RGBA) { c.sys.record(OpClear, col.R, col.G, col.B, col.A) }

func (c *Canvas) CreatePath() (canvas.Path, error) {
	c.sys.record(OpCreatePath)
	if err := c.sys.fault(OpCreatePath); err != nil {
		return nil, err
	}
	return &Path{sys: c.sys, id: c.sys.acquire("path")}, nil
}

func (c *Canvas) CreatePen(cfg canvas.PenConfig) (canvas.Pen, error) {
	c.sys.record(OpCreatePen, cfg.LineWidth, cfg.Cap.String(), cfg.Join.String(), cfg.MiterLimit)
	if err := c.sys.fault(OpCreatePen); err != nil {
		return nil, err
	}
	return &Pen{sys: c.sys, id: c.sys.acquire("pen"), cfg: cfg}, nil
}

func (c *Canvas) SetPen(p canvas.Pen) {
	id := 0
	if rp, ok := p.(*Pen); ok {
		id = rp.id
	}
	c.sys.record(OpSetPen, id)
}

func (c *Canvas) SetColor(col canvas.RGBA) { c.sys.record(OpSetColor, col.R, col.G, col.B, col.A) }

func (c *Canvas) StrokePath(p canvas.Path) error {
	id := 0
	if rp, ok := p.(*Path); ok {
		id = rp.id
	}
	c.sys.record(OpStrokePath, id)
	return c.sys.fault(OpStrokePath)
}

func (c *Canvas) DrawText(s string, x, y float32) { c.sys.record(OpDrawText, s, x, y) }

func (c *Canvas) Destroy() {
	c.sys.record(OpDestroyCanvas)
	c.sys.release(c.id)
}

type Path struct {
	sys *System
	id  int
}

func (p *Path) MoveTo(x, y float32) { p.sys.record(OpMoveTo, x, y) }
func (p *Path) LineTo(x, y float32) { p.sys.record(OpLineTo, x, y) }

func (p *Path) Destroy() {
	p.sys.record(OpDestroyPath, p.id)
	p.sys.release(p.id)
}

type Pen struct {
	sys *System
	id  int
	cfg canvas.PenConfig
}

func (p *Pen) Config() canvas.PenConfig { return p.cfg }

func (p *Pen) Destroy() {
	p.sys.record(OpDestroyPen, p.id)
	p.sys.release(p.id)
}
