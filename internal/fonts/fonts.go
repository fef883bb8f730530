/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fonts resolves the TrueType font used for chart text. It hands
// out rasterizer faces for drawing and measures strings for layout; both
// come from the same font data so layout matches what gets drawn.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DPI at which sizes in points equal pixels.
const DPI = 72

// Library is one parsed font with per-size face caches. Safe for
// concurrent use.
type Library struct {
	name string
	otf  *opentype.Font
	src  *text.FontSource

	mu      sync.Mutex
	faces   map[float64]text.Face
	measure map[float64]font.Face
}

var defaultLib = sync.OnceValues(func() (*Library, error) {
	return FromBytes("Go Regular", goregular.TTF)
})

// Default returns the built-in Go Regular library.
func Default() *Library {
	l, err := defaultLib()
	if err != nil {
		// goregular is compiled in; failing to parse it is a build defect.
		panic(fmt.Sprintf("fonts: built-in font: %v", err))
	}
	return l
}

// Load reads a TrueType/OpenType file. An empty path yields Default.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return FromBytes(path, data)
}

// FromBytes parses font data.
func FromBytes(name string, data []byte) (*Library, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", name, err)
	}
	return &Library{
		name:    name,
		otf:     otf,
		src:     src,
		faces:   map[float64]text.Face{},
		measure: map[float64]font.Face{},
	}, nil
}

func (l *Library) Name() string { return l.name }

// Face returns a rasterizer face of the given size in points.
func (l *Library) Face(size float64) text.Face {
	if size <= 0 {
		size = 12
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.faces[size]
	if !ok {
		f = l.src.Face(size)
		l.faces[size] = f
	}
	return f
}

func (l *Library) metricsFace(size float64) (font.Face, error) {
	if size <= 0 {
		size = 12
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.measure[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(l.otf, &opentype.FaceOptions{Size: size, DPI: DPI, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	l.measure[size] = f
	return f, nil
}

// Advance is the width of s in pixels at size points.
func (l *Library) Advance(s string, size float64) float64 {
	f, err := l.metricsFace(size)
	if err != nil {
		return 0
	}
	return float64(font.MeasureString(f, s)) / 64
}

// Metrics returns ascent and descent in pixels at size points.
func (l *Library) Metrics(size float64) (ascent, descent float64) {
	f, err := l.metricsFace(size)
	if err != nil {
		return size * 0.8, size * 0.2
	}
	m := f.Metrics()
	return float64(m.Ascent) / 64, float64(m.Descent) / 64
}

// Close releases the rasterizer source. The default library is never closed.
func (l *Library) Close() error {
	if l == nil || l == Default() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.measure {
		_ = f.Close()
	}
	l.measure = map[float64]font.Face{}
	l.faces = map[float64]text.Face{}
	return l.src.Close()
}
