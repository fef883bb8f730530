/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package raster

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"spirographicals/internal/canvas"
	"spirographicals/internal/frame"
	"spirographicals/internal/scene"
)

var _ canvas.System = (*System)(nil)

func TestCreateCanvasRequiresInitialize(t *testing.T) {
	s := NewSystem(Options{Frames: 1})
	if _, err := s.CreateCanvas(canvas.WindowConfig{Width: 10, Height: 10}); !errors.Is(err, canvas.ErrResourceAcquisition) {
		t.Fatalf("err = %v", err)
	}
	_ = s.Initialize()
	if _, err := s.CreateCanvas(canvas.WindowConfig{Width: 0, Height: 10}); !errors.Is(err, canvas.ErrResourceAcquisition) {
		t.Fatalf("zero width err = %v", err)
	}
}

func TestRenderProducesPixels(t *testing.T) {
	fig := scene.NewFigure()
	fig.Width, fig.Height = 100, 100
	fig.FaceColor = scene.Color{R: 1, A: 1}
	fig.Axes[0].AddLine(&scene.LineArtist{
		Points: []scene.Vec2{scene.V(0, 50), scene.V(100, 50)},
		Color:  scene.White,
		Width:  4,
	})
	fig.Axes[0].AddText(scene.NewTextArtist(scene.TextConfig{Text: "Hi", Color: scene.White, Size: 12}, scene.V(5, 20)))

	var encoded bytes.Buffer
	var presented int
	sys := NewSystem(Options{
		Frames: 2,
		Present: func(n int, c *Canvas) error {
			presented = n
			encoded.Reset()
			return c.EncodePNG(&encoded)
		},
	})
	if err := frame.Render(sys, fig); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if presented != 2 {
		t.Fatalf("presented %d frames, want 2", presented)
	}
	if sys.Open() != 0 {
		t.Fatalf("canvas not destroyed")
	}
	img, err := png.Decode(&encoded)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, _, _ := img.At(90, 90).RGBA()
	if r>>8 < 200 || g>>8 > 50 {
		t.Fatalf("background pixel = %d,%d, want red", r>>8, g>>8)
	}
	_, g, _, _ = img.At(50, 49).RGBA()
	if g>>8 < 128 {
		t.Fatalf("line pixel green = %d, want bright", g>>8)
	}
}

func TestCloseRequested(t *testing.T) {
	stop := false
	sys := NewSystem(Options{CloseRequested: func() bool { return stop }, Present: func(n int, _ *Canvas) error {
		if n == 3 {
			stop = true
		}
		return nil
	}})
	d := frame.New(sys, scene.NewFigure())
	if err := d.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Frames() != 3 {
		t.Fatalf("Frames = %d, want 3", d.Frames())
	}
}

func TestPresentErrorStopsRendering(t *testing.T) {
	sys := NewSystem(Options{Present: func(int, *Canvas) error { return errors.New("disk full") }})
	if err := frame.Render(sys, scene.NewFigure()); !errors.Is(err, canvas.ErrResourceAcquisition) {
		t.Fatalf("err = %v", err)
	}
}

func TestForeignPathRejected(t *testing.T) {
	s := NewSystem(Options{})
	_ = s.Initialize()
	c, _ := s.CreateCanvas(canvas.WindowConfig{Width: 4, Height: 4})
	defer c.Destroy()
	if err := c.StrokePath(nil); !errors.Is(err, canvas.ErrResourceAcquisition) {
		t.Fatalf("err = %v", err)
	}
	if _, err := c.CreatePen(canvas.PenConfig{}); !errors.Is(err, canvas.ErrResourceAcquisition) {
		t.Fatalf("zero pen err = %v", err)
	}
}
