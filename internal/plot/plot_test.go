/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package plot

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spirographicals/internal/canvas/record"
	"spirographicals/internal/export"
	"spirographicals/internal/frame"
	"spirographicals/internal/scene"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-3 }

func TestNewFigureDefaults(t *testing.T) {
	f := NewFigure()
	if w, h := f.SizePixels(); w != 1000 || h != 1000 {
		t.Fatalf("SizePixels = %dx%d, want 1000x1000", w, h)
	}
	fig, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fig.FaceColor.Hex() != "#121212ff" {
		t.Fatalf("face = %s", fig.FaceColor.Hex())
	}
	if len(fig.Axes) != 0 {
		t.Fatalf("axes = %d, want 0 before AddSubplot", len(fig.Axes))
	}
}

func TestOptions(t *testing.T) {
	f := NewFigure(WithSize(4, 3), WithDPI(50), WithFaceColor("white"))
	if w, h := f.SizePixels(); w != 200 || h != 150 {
		t.Fatalf("SizePixels = %dx%d", w, h)
	}
	fig, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fig.FaceColor != scene.White {
		t.Fatalf("face = %v", fig.FaceColor)
	}
	if _, err := NewFigure(WithFaceColor("#12")).Build(); !errors.Is(err, scene.ErrMalformedInput) {
		t.Fatalf("bad face color err = %v", err)
	}
}

func TestAddSubplotReturnsFirstAxes(t *testing.T) {
	f := NewFigure()
	a := f.AddSubplot()
	if b := f.AddSubplot(); a != b {
		t.Fatalf("second AddSubplot returned a new axes")
	}
	if len(f.Axes()) != 1 {
		t.Fatalf("axes = %d", len(f.Axes()))
	}
}

func TestPlotLengthMismatch(t *testing.T) {
	f := NewFigure()
	f.AddSubplot().Plot([]float64{1, 2}, []float64{1})
	if _, err := f.Build(); !errors.Is(err, scene.ErrMalformedInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestPlotRejectsNonFinitePoints(t *testing.T) {
	cases := map[string][2][]float64{
		"nan":      {{0, math.NaN(), 2}, {0, 1, 2}},
		"inf":      {{0, 1}, {math.Inf(-1), 1}},
		"overflow": {{0, 1e300}, {0, 3}},
	}
	for name, xy := range cases {
		t.Run(name, func(t *testing.T) {
			f := NewFigure()
			ax := f.AddSubplot().Plot(xy[0], xy[1])
			if _, err := f.Build(); !errors.Is(err, scene.ErrMalformedInput) {
				t.Fatalf("Build() err = %v, want ErrMalformedInput", err)
			}
			if len(ax.lines) != 0 {
				t.Fatalf("non-finite line was kept")
			}
		})
	}
}

func TestInvalidOptionsAreReported(t *testing.T) {
	f := NewFigure()
	ax := f.AddSubplot()
	ax.Plot([]float64{0, 1}, []float64{0, 1}, LineWidth(0))
	ax.SetTitle("t", FontSize(-1))
	ax.SetXLim(1, 1)
	if _, err := f.Build(); !errors.Is(err, scene.ErrMalformedInput) {
		t.Fatalf("err = %v", err)
	}
	if n := len(f.errs); n != 3 {
		t.Fatalf("collected %d errors, want 3", n)
	}
}

func TestBuildMapsDataIntoViewport(t *testing.T) {
	f := NewFigure()
	ax := f.AddSubplot().SetXLim(0, 1).SetYLim(0, 1)
	ax.Plot([]float64{0, 1}, []float64{0, 1}, Color("#ff0000"), LineWidth(2))
	fig, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	arts := fig.Axes[0].Artists
	if len(arts) != 1 {
		t.Fatalf("artists = %d, want 1", len(arts))
	}
	l := arts[0].(*scene.LineArtist)
	// 1000px figure, 8% margin.
	if l.Points[0] != scene.V(80, 920) || l.Points[1] != scene.V(920, 80) {
		t.Fatalf("points = %v", l.Points)
	}
	if l.Width != 2 || l.Color.Hex() != "#ff0000ff" {
		t.Fatalf("line style = %v %s", l.Width, l.Color.Hex())
	}
	lim := fig.Axes[0].XAxis.Limits
	if lim == nil || lim.Min != 0 || lim.Max != 1 {
		t.Fatalf("x limits = %+v", lim)
	}
}

func TestAutoLimitsArePadded(t *testing.T) {
	f := NewFigure()
	f.AddSubplot().Plot([]float64{0, 10}, []float64{0, 20})
	fig, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	x, y := fig.Axes[0].XAxis.Limits, fig.Axes[0].YAxis.Limits
	if !near(float64(x.Min), -0.5) || !near(float64(x.Max), 10.5) {
		t.Fatalf("x limits = %+v", x)
	}
	if !near(float64(y.Min), -1) || !near(float64(y.Max), 21) {
		t.Fatalf("y limits = %+v", y)
	}
}

func TestBuildOrderGridDataTextTitle(t *testing.T) {
	f := NewFigure()
	ax := f.AddSubplot()
	ax.Grid(true, GridColor("#444444"), GridStyle(scene.Dashed))
	ax.Plot([]float64{0, 1}, []float64{0, 1})
	ax.Text(0.5, 0.5, "note")
	ax.SetTitle("Title", TextColor("white"))
	ax.SetXLabel("x")
	ax.SetYLabel("y")
	fig, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	arts := fig.Axes[0].Artists
	grid := 2 * (GridDivisions + 1)
	if len(arts) != grid+1+1+3 {
		t.Fatalf("artists = %d", len(arts))
	}
	for i := 0; i < grid; i++ {
		l, ok := arts[i].(*scene.LineArtist)
		if !ok || l.Style != scene.Dashed || l.Color.Hex() != "#444444ff" {
			t.Fatalf("artist %d is not a grid line: %#v", i, arts[i])
		}
	}
	if l := arts[grid].(*scene.LineArtist); l.Color.Hex() != "#00ffffff" || l.Width != DefaultLineWidth {
		t.Fatalf("data line = %#v", l)
	}
	var texts []string
	for _, a := range arts[grid+1:] {
		texts = append(texts, a.(*scene.TextArtist).Config.Text)
	}
	if strings.Join(texts, ",") != "note,Title,x,y" {
		t.Fatalf("texts = %v", texts)
	}
	if fig.Axes[0].Title.Text != "Title" || !fig.Axes[0].Grid.Visible {
		t.Fatalf("axes config not mirrored: %+v", fig.Axes[0])
	}
	if fig.Axes[0].YAxis.Label == nil || fig.Axes[0].YAxis.Label.Text != "y" {
		t.Fatalf("ylabel not mirrored")
	}
}

func TestTitleIsCentered(t *testing.T) {
	f := NewFigure()
	f.AddSubplot().SetTitle("centered")
	fig, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ta := fig.Axes[0].Artists[0].(*scene.TextArtist)
	adv := f.font.Advance("centered", scene.DefaultTextSize)
	mid := float64(ta.Position.X) + adv/2
	if !near(mid, 500) {
		t.Fatalf("title midpoint = %v, want 500", mid)
	}
	if ta.HAlign != scene.AlignCenter {
		t.Fatalf("HAlign = %s", ta.HAlign)
	}
}

func TestSubplotsGrid(t *testing.T) {
	f := NewFigure(WithSize(4, 2))
	axes := f.Subplots(1, 2)
	if len(axes) != 2 {
		t.Fatalf("axes = %d", len(axes))
	}
	for _, ax := range axes {
		ax.SetXLim(0, 1).SetYLim(0, 1).Plot([]float64{0}, []float64{0})
	}
	fig, err := f.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	left := fig.Axes[0].Artists[0].(*scene.LineArtist).Points[0]
	right := fig.Axes[1].Artists[0].(*scene.LineArtist).Points[0]
	if right.X-left.X != 200 || right.Y != left.Y {
		t.Fatalf("left %v right %v", left, right)
	}
	bad := NewFigure()
	if n := len(bad.Subplots(0, 1)); n != 1 {
		t.Fatalf("invalid grid gave %d axes, want fallback 1", n)
	}
	if bad.Err() == nil {
		t.Fatal("invalid grid not reported")
	}
}

func TestHypotrochoidClosesAfterOnePeriod(t *testing.T) {
	x, y := Hypotrochoid(10, 3, 7, 2000)
	if len(x) != 2000 || len(y) != 2000 {
		t.Fatalf("len = %d/%d", len(x), len(y))
	}
	if !near(x[0], 14) || !near(y[0], 0) {
		t.Fatalf("start = (%v, %v), want (14, 0)", x[0], y[0])
	}
	if !near(x[len(x)-1], x[0]) || !near(y[len(y)-1], y[0]) {
		t.Fatalf("curve not closed: end = (%v, %v)", x[len(x)-1], y[len(y)-1])
	}
	x, y = Hypotrochoid(10, 0, 7, 100)
	if len(x) != 1 || x[0] != 0 || y[0] != 0 {
		t.Fatalf("r=0 = %v, %v", x, y)
	}
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]string{"white": "#ffffffff", " Cyan ": "#00ffffff", "#102030": "#102030ff"} {
		c, err := ParseColor(in)
		if err != nil || c.Hex() != want {
			t.Fatalf("ParseColor(%q) = %s, %v", in, c.Hex(), err)
		}
	}
	if _, err := ParseColor("chartreuse-ish"); !errors.Is(err, scene.ErrMalformedInput) {
		t.Fatalf("unknown name err = %v", err)
	}
}

func TestShowRendersOnSystem(t *testing.T) {
	f := NewFigure(WithSize(2, 2))
	x, y := Hypotrochoid(5, 3, 5, 50)
	f.AddSubplot().Plot(x, y).SetTitle("spiro")
	sys := record.New(1)
	quiet := frame.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := f.Show(sys, quiet); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if sys.Count(record.OpStrokePath) != 1 || sys.Count(record.OpDrawText) != 1 {
		t.Fatalf("ops = %v", sys.Ops())
	}
	if sys.Live() != 0 {
		t.Fatalf("Live = %d", sys.Live())
	}
}

func TestSavefigSVG(t *testing.T) {
	f := NewFigure(WithSize(2, 2))
	f.AddSubplot().Plot([]float64{0, 1, 2}, []float64{0, 1, 0})
	path := filepath.Join(t.TempDir(), "out", "fig.svg")
	if err := f.Savefig(path, export.Options{}); err != nil {
		t.Fatalf("Savefig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), "stroke=\"#00ffff\"") {
		t.Fatalf("unexpected svg: %s", data)
	}
}
