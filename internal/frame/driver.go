/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package frame owns the lifecycle of one render session: it opens a canvas
// for a Figure, redraws the whole scene every frame until the canvas asks to
// close, then releases everything.
//
// A Driver can be pumped one frame at a time with Step, which lets a host
// event loop stay in control, or run to completion with Run.
package frame

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"spirographicals/internal/canvas"
	applog "spirographicals/internal/log"
	"spirographicals/internal/render"
	"spirographicals/internal/scene"
)

// WindowTitle is the title of every canvas the driver opens.
const WindowTitle = "Spirographicals"

// ErrState is returned when an operation is not valid in the current state.
var ErrState = errors.New("frame driver: invalid state")

type State int

const (
	Uninitialized State = iota
	Open
	Closing
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Option func(*Driver)

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// Driver renders one Figure onto one canvas. It is single-use and must be
// driven from a single goroutine.
type Driver struct {
	sys    canvas.System
	fig    *scene.Figure
	canvas canvas.Canvas
	state  State
	frames int
	log    *slog.Logger
}

func New(sys canvas.System, fig *scene.Figure, opts ...Option) *Driver {
	d := &Driver{sys: sys, fig: fig}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = applog.WithComponent("frame")
	}
	d.log = d.log.With(slog.String("run", uuid.NewString()))
	return d
}

func (d *Driver) State() State { return d.state }

// Frames is the number of frames presented so far.
func (d *Driver) Frames() int { return d.frames }

// Open initializes the subsystem and creates the canvas. On failure the
// driver ends up Terminated and the subsystem is shut down again.
func (d *Driver) Open() error {
	if d.state != Uninitialized {
		return fmt.Errorf("%w: open in state %s", ErrState, d.state)
	}
	l := applog.WithOperation(d.log, "open")
	if d.sys == nil {
		d.state = Terminated
		return fmt.Errorf("%w: no graphics system", canvas.ErrResourceAcquisition)
	}
	if err := d.fig.Validate(); err != nil {
		d.state = Terminated
		return err
	}
	if err := d.sys.Initialize(); err != nil {
		d.state = Terminated
		l.Error("graphics initialization failed", slog.Any("err", err))
		return fmt.Errorf("%w: initialize: %w", canvas.ErrResourceAcquisition, err)
	}
	cfg := canvas.WindowConfig{
		Width:     d.fig.Width,
		Height:    d.fig.Height,
		Title:     WindowTitle,
		Resizable: true,
		VSync:     true,
	}
	c, err := d.sys.CreateCanvas(cfg)
	if err == nil && c == nil {
		err = errors.New("no canvas returned")
	}
	if err != nil {
		d.sys.Terminate()
		d.state = Terminated
		l.Error("canvas creation failed", slog.Any("err", err))
		return fmt.Errorf("%w: create canvas: %w", canvas.ErrResourceAcquisition, err)
	}
	d.canvas = c
	d.state = Open
	l.Info("canvas open", slog.Int("width", cfg.Width), slog.Int("height", cfg.Height), slog.Int("axes", len(d.fig.Axes)))
	return nil
}

// Step renders one frame. It returns false once the canvas has asked to
// close or a fault aborted the frame; the driver is then Closing and only
// Close remains to be called.
func (d *Driver) Step() (bool, error) {
	switch d.state {
	case Open:
	case Closing, Terminated:
		return false, nil
	default:
		return false, fmt.Errorf("%w: step in state %s", ErrState, d.state)
	}
	if d.canvas.ShouldClose() {
		d.state = Closing
		return false, nil
	}

	d.canvas.BeginFrame()
	d.canvas.Clear(render.RGBA(d.fig.FaceColor))
	for i, ax := range d.fig.Axes {
		if err := render.DrawAxes(d.canvas, ax); err != nil {
			d.state = Closing
			d.log.Error("frame aborted", slog.Int("frame", d.frames), slog.Int("axes", i), slog.Any("err", err))
			return false, err
		}
	}
	if err := d.canvas.EndFrame(); err != nil {
		d.state = Closing
		d.log.Error("present failed", slog.Int("frame", d.frames), slog.Any("err", err))
		return false, fmt.Errorf("%w: end frame: %w", canvas.ErrResourceAcquisition, err)
	}
	d.frames++
	return true, nil
}

// Close destroys the canvas and terminates the subsystem. Calling it again
// is a no-op.
func (d *Driver) Close() {
	switch d.state {
	case Terminated:
		return
	case Uninitialized:
		d.state = Terminated
		return
	}
	d.canvas.Destroy()
	d.canvas = nil
	d.sys.Terminate()
	d.state = Terminated
	d.log.Info("canvas closed", slog.Int("frames", d.frames))
}

// Run opens the driver if needed, renders until the canvas closes or a
// fault occurs, and always closes afterwards. A Terminated driver cannot
// run again.
func (d *Driver) Run() error {
	if d.state == Terminated {
		return fmt.Errorf("%w: run in state %s", ErrState, d.state)
	}
	if d.state == Uninitialized {
		if err := d.Open(); err != nil {
			return err
		}
	}
	defer d.Close()
	for {
		more, err := d.Step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Render draws fig onto a canvas from sys until the canvas closes. It blocks
// for the lifetime of the canvas.
func Render(sys canvas.System, fig *scene.Figure, opts ...Option) error {
	return New(sys, fig, opts...).Run()
}
