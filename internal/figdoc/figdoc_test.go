/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package figdoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spirographicals/internal/scene"
)

const spiroYAML = `
size: [4, 4]
dpi: 50
facecolor: "#121212"
axes:
  - title: "Hypotrochoid (R=10, r=3, d=7)"
    grid: {visible: true, color: "#444444", style: "--"}
    hypotrochoids:
      - {fixed_radius: 10, rolling_radius: 3, distance: 7, steps: 500, color: "#00FFFF", width: 1.5}
    texts:
      - {x: 0, y: 0, text: "origin", color: white, size: 10}
`

func TestParseAndBuild(t *testing.T) {
	doc, err := Parse([]byte(spiroYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Axes[0].Title == nil || doc.Axes[0].Title.Text != "Hypotrochoid (R=10, r=3, d=7)" {
		t.Fatalf("title = %+v", doc.Axes[0].Title)
	}
	fig, err := doc.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fig.Width != 200 || fig.Height != 200 {
		t.Fatalf("size = %dx%d", fig.Width, fig.Height)
	}
	arts := fig.Axes[0].Artists
	// 12 grid lines, the curve, the annotation and the title.
	if len(arts) != 15 {
		t.Fatalf("artists = %d, want 15", len(arts))
	}
	curve := arts[12].(*scene.LineArtist)
	if len(curve.Points) != 500 || curve.Color.Hex() != "#00ffffff" {
		t.Fatalf("curve = %d points, %s", len(curve.Points), curve.Color.Hex())
	}
	if g := arts[0].(*scene.LineArtist); g.Style != scene.Dashed {
		t.Fatalf("grid style = %s", g.Style)
	}
	if note := arts[13].(*scene.TextArtist); note.Config.Size != 10 {
		t.Fatalf("annotation size = %v", note.Config.Size)
	}
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"layout": {"rows": 2, "cols": 1}, "axes": [{"title": {"text": "a", "color": "red"}, "lines": [{"x": [0, 1], "y": [1, 0]}]}, {}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fig, err := doc.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(fig.Axes) != 2 {
		t.Fatalf("axes = %d", len(fig.Axes))
	}
	if fig.Axes[0].Title.Color.Hex() != "#ff0000ff" {
		t.Fatalf("title color = %s", fig.Axes[0].Title.Color.Hex())
	}
}

func TestSchemaRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "colour: red\n",
		"negative dpi":    "dpi: -1\n",
		"short size":      "size: [4]\n",
		"line without y":  "axes:\n  - lines:\n      - x: [1, 2]\n",
		"bad style":       "axes:\n  - grid: {visible: true, style: wavy}\n",
		"zero layout row": "layout: {rows: 0, cols: 1}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); !errors.Is(err, scene.ErrMalformedInput) {
				t.Fatalf("err = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestBuildReportsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"length mismatch": "axes:\n  - lines:\n      - {x: [1, 2], y: [1]}\n",
		"bad color":       "facecolor: notacolor\n",
		"too many axes":   "layout: {rows: 1, cols: 1}\naxes: [{}, {}]\n",
		"empty xlim":      "axes:\n  - xlim: [1, 1]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := doc.Build(nil); !errors.Is(err, scene.ErrMalformedInput) {
				t.Fatalf("err = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestEmptyDocumentUsesDefaults(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fig, err := doc.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if fig.Width != 1000 || len(fig.Axes) != 0 {
		t.Fatalf("fig = %dx%d with %d axes", fig.Width, fig.Height, len(fig.Axes))
	}
}

func TestLoadChecksExtension(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "fig.txt")
	if err := os.WriteFile(bad, []byte(spiroYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, scene.ErrMalformedInput) {
		t.Fatalf("err = %v", err)
	}
	good := filepath.Join(dir, "fig.yml")
	if err := os.WriteFile(good, []byte(spiroYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(good); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read figure document") {
		t.Fatalf("missing file err = %v", err)
	}
}

func TestSchemaIsCopied(t *testing.T) {
	s := Schema()
	s[0] = 'x'
	if Schema()[0] != '{' {
		t.Fatal("Schema returned the embedded slice")
	}
}
