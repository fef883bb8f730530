/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"spirographicals/internal/canvas"
	"spirographicals/internal/canvas/record"
	"spirographicals/internal/scene"
)

func newCanvas(t *testing.T) (*record.System, canvas.Canvas) {
	t.Helper()
	sys := record.New(0)
	c, err := sys.CreateCanvas(canvas.WindowConfig{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("CreateCanvas: %v", err)
	}
	sys.Reset()
	return sys, c
}

func callStrings(sys *record.System) []string {
	var out []string
	for _, c := range sys.Calls() {
		out = append(out, c.String())
	}
	return out
}

func TestDegenerateLinesProduceNoCalls(t *testing.T) {
	for _, pts := range [][]scene.Vec2{nil, {scene.V(5, 5)}} {
		sys, c := newCanvas(t)
		l := &scene.LineArtist{Points: pts, Color: scene.White, Width: 1}
		if err := Draw(c, l); err != nil {
			t.Fatalf("Draw(%d points) = %v", len(pts), err)
		}
		if n := len(sys.Calls()); n != 0 {
			t.Fatalf("Draw(%d points) made %d calls: %v", len(pts), n, callStrings(sys))
		}
	}
}

func TestLineCallSequence(t *testing.T) {
	sys, c := newCanvas(t)
	l := &scene.LineArtist{
		Points: []scene.Vec2{scene.V(0, 0), scene.V(10, 10), scene.V(20, 0)},
		Color:  scene.Color{R: 1, G: 0, B: 0, A: 1},
		Width:  2,
	}
	if err := Draw(c, l); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	want := []string{
		"create_path",
		"move_to(0, 0)",
		"line_to(10, 10)",
		"line_to(20, 0)",
		"create_pen(2, round, round, 10)",
		"set_pen(3)",
		"set_color(1, 0, 0, 1)",
		"stroke_path(2)",
		"destroy_pen(3)",
		"destroy_path(2)",
	}
	if got := callStrings(sys); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls:\n got %v\nwant %v", got, want)
	}
	// only the canvas itself is still alive
	if sys.Live() != 1 || sys.DoubleDestroys() != 0 {
		t.Fatalf("Live = %d, DoubleDestroys = %d", sys.Live(), sys.DoubleDestroys())
	}
}

func TestLineStyleDoesNotChangeCalls(t *testing.T) {
	pts := []scene.Vec2{scene.V(0, 0), scene.V(1, 1)}
	var seqs [][]string
	for _, st := range []scene.LineStyle{scene.Solid, scene.Dashed, scene.DashDot} {
		sys, c := newCanvas(t)
		if err := Draw(c, &scene.LineArtist{Points: pts, Width: 1, Style: st}); err != nil {
			t.Fatalf("Draw: %v", err)
		}
		seqs = append(seqs, callStrings(sys))
	}
	if !reflect.DeepEqual(seqs[0], seqs[1]) || !reflect.DeepEqual(seqs[0], seqs[2]) {
		t.Fatalf("line style changed the call sequence")
	}
}

func TestFaultsReleaseResources(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		op       string
		resource string
		wantOps  []string
	}{
		{record.OpCreatePath, "path", []string{"create_path"}},
		{record.OpCreatePen, "pen", []string{"create_path", "move_to", "line_to", "create_pen", "destroy_path"}},
		{record.OpStrokePath, "stroke", []string{"create_path", "move_to", "line_to", "create_pen", "set_pen", "set_color", "stroke_path", "destroy_pen", "destroy_path"}},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			sys, c := newCanvas(t)
			sys.FailOn(tc.op, boom)
			err := Draw(c, &scene.LineArtist{Points: []scene.Vec2{scene.V(0, 0), scene.V(1, 1)}, Width: 1})
			var f *Fault
			if !errors.As(err, &f) || f.Resource != tc.resource {
				t.Fatalf("err = %v, want Fault on %s", err, tc.resource)
			}
			if !errors.Is(err, canvas.ErrResourceAcquisition) || !errors.Is(err, boom) || !IsFault(err) {
				t.Fatalf("fault does not unwrap to marker and cause: %v", err)
			}
			if got := sys.Ops(); !reflect.DeepEqual(got, tc.wantOps) {
				t.Fatalf("ops:\n got %v\nwant %v", got, tc.wantOps)
			}
			if sys.Live() != 1 || sys.DoubleDestroys() != 0 {
				t.Fatalf("Live = %d, DoubleDestroys = %d", sys.Live(), sys.DoubleDestroys())
			}
		})
	}
}

func TestTextCalls(t *testing.T) {
	sys, c := newCanvas(t)
	tx := scene.NewTextArtist(scene.TextConfig{Text: "hello", Color: scene.White, Size: 14}, scene.V(3, 4))
	if err := Draw(c, tx); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	want := []string{"set_color(1, 1, 1, 1)", "draw_text(hello, 3, 4)"}
	if got := callStrings(sys); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

type marker struct{}

func (marker) Kind() scene.Kind { return scene.Kind(99) }

func TestUnknownArtistIsSkipped(t *testing.T) {
	sys, c := newCanvas(t)
	if err := Draw(c, marker{}); err != nil {
		t.Fatalf("Draw(unknown) = %v", err)
	}
	if err := Draw(c, nil); err != nil {
		t.Fatalf("Draw(nil) = %v", err)
	}
	var nilLine *scene.LineArtist
	if err := Draw(c, nilLine); err != nil {
		t.Fatalf("Draw(nil line) = %v", err)
	}
	if len(sys.Calls()) != 0 {
		t.Fatalf("unexpected calls: %v", callStrings(sys))
	}
}

func TestDrawAxesOrderAndStop(t *testing.T) {
	sys, c := newCanvas(t)
	ax := scene.NewPlotAxes()
	ax.AddText(scene.NewTextArtist(scene.TextConfig{Text: "A", Size: 12}, scene.V(0, 0)))
	ax.AddArtist(marker{})
	ax.AddText(scene.NewTextArtist(scene.TextConfig{Text: "B", Size: 12}, scene.V(0, 0)))
	if err := DrawAxes(c, ax); err != nil {
		t.Fatalf("DrawAxes: %v", err)
	}
	var texts []string
	for _, call := range sys.Calls() {
		if call.Op == record.OpDrawText {
			texts = append(texts, call.Args[0].(string))
		}
	}
	if strings.Join(texts, "") != "AB" {
		t.Fatalf("text order = %v", texts)
	}

	sys.Reset()
	sys.FailOn(record.OpCreatePath, errors.New("no path"))
	ax.Artists = append([]scene.Artist{&scene.LineArtist{Points: []scene.Vec2{{}, {}}, Width: 1}}, ax.Artists...)
	if err := DrawAxes(c, ax); !IsFault(err) {
		t.Fatalf("DrawAxes err = %v", err)
	}
	if sys.Count(record.OpDrawText) != 0 {
		t.Fatalf("drawing continued after fault")
	}
}
