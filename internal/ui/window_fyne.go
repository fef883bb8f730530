//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fcanvas "fyne.io/fyne/v2/canvas"

	"spirographicals/internal/canvas"
	"spirographicals/internal/frame"
	applog "spirographicals/internal/log"
	"spirographicals/internal/raster"
	"spirographicals/internal/scene"
)

// Show opens a window for fig and blocks until the window is closed or
// rendering fails. It must be called from the main goroutine.
func Show(fig *scene.Figure, opts Options) error {
	l := applog.WithComponent("ui")
	a := app.NewWithID("io.spirographicals")
	sys := newWindowSystem(a, opts)

	done := make(chan error, 1)
	go func() {
		err := frame.Render(sys, fig)
		if err != nil {
			l.Error("render stopped", slog.Any("err", err))
		}
		done <- err
		fyne.Do(a.Quit)
	}()
	a.Run()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		l.Warn("renderer did not stop after window closed")
		return nil
	}
}

// windowSystem drives a raster canvas and mirrors each frame into a fyne window.
type windowSystem struct {
	app    fyne.App
	opts   Options
	raster *raster.System
	win    fyne.Window
	img    *fcanvas.Image
	closed atomic.Bool
	pace   *time.Ticker
}

func newWindowSystem(a fyne.App, opts Options) *windowSystem {
	s := &windowSystem{app: a, opts: opts}
	s.raster = raster.NewSystem(raster.Options{
		Font:           opts.Font,
		TextSize:       opts.TextSize,
		CloseRequested: s.closed.Load,
		Present:        s.present,
	})
	return s
}

func (s *windowSystem) Initialize() error { return s.raster.Initialize() }

func (s *windowSystem) Terminate() {
	if s.pace != nil {
		s.pace.Stop()
	}
	s.raster.Terminate()
}

func (s *windowSystem) CreateCanvas(cfg canvas.WindowConfig) (canvas.Canvas, error) {
	c, err := s.raster.CreateCanvas(cfg)
	if err != nil {
		return nil, err
	}
	fyne.DoAndWait(func() {
		s.win = s.app.NewWindow(cfg.Title)
		s.img = fcanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)))
		s.img.FillMode = fcanvas.ImageFillStretch
		s.win.SetContent(s.img)
		s.win.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
		s.win.SetFixedSize(!cfg.Resizable)
		s.win.SetOnClosed(func() { s.closed.Store(true) })
		s.win.Show()
	})
	if cfg.VSync {
		s.pace = time.NewTicker(s.opts.interval())
	}
	return &windowCanvas{Canvas: c, sys: s}, nil
}

func (s *windowSystem) present(_ int, c *raster.Canvas) error {
	frameImg := c.Image()
	fyne.Do(func() {
		s.img.Image = frameImg
		s.img.Refresh()
	})
	if s.pace != nil {
		<-s.pace.C
	}
	return nil
}

// windowCanvas closes the window together with the raster canvas.
type windowCanvas struct {
	canvas.Canvas
	sys *windowSystem
}

func (c *windowCanvas) Destroy() {
	c.Canvas.Destroy()
	if w := c.sys.win; w != nil && !c.sys.closed.Load() {
		fyne.Do(w.Close)
	}
}
