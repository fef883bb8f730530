/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a figure once onto an offscreen canvas and writes
// the result as PNG, SVG, PDF or a JSON draw-command trace.
package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spirographicals/internal/canvas"
	"spirographicals/internal/canvas/record"
	"spirographicals/internal/fonts"
	"spirographicals/internal/frame"
	applog "spirographicals/internal/log"
	"spirographicals/internal/scene"
)

type Format string

const (
	FormatPNG   Format = "png"
	FormatSVG   Format = "svg"
	FormatPDF   Format = "pdf"
	FormatTrace Format = "trace"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPNG, FormatSVG, FormatPDF, FormatTrace}

// ParseFormat accepts a format name or a file extension with or without dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	case "pdf":
		return FormatPDF, nil
	case "trace", "json":
		return FormatTrace, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer export format from %q: no extension", path)
	}
	return ParseFormat(ext)
}

// Options tunes an export. The zero value renders one frame with the
// built-in font.
type Options struct {
	// Frames to render before the canvas closes. PDF emits one page per
	// frame; the other formats keep the last frame.
	Frames int
	Font   *fonts.Library
	// TextSize in points for SVG/PDF/PNG text, 12 when zero.
	TextSize float64
}

func (o Options) normalized() Options {
	if o.Frames < 1 {
		o.Frames = 1
	}
	if o.Font == nil {
		o.Font = fonts.Default()
	}
	if o.TextSize <= 0 {
		o.TextSize = 12
	}
	return o
}

// Savefig writes fig to path, choosing the format from the extension.
func Savefig(fig *scene.Figure, path string, opts Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	werr := Write(fig, f, format, opts)
	cerr := f.Close()
	if werr != nil {
		_ = os.Remove(path)
		return werr
	}
	if cerr != nil {
		return fmt.Errorf("close %s: %w", path, cerr)
	}
	applog.WithComponent("export").Info("figure saved", slog.String("path", path), slog.String("format", string(format)))
	return nil
}

// Write renders fig and writes the encoded result to w.
func Write(fig *scene.Figure, w io.Writer, format Format, opts Options) error {
	opts = opts.normalized()
	switch format {
	case FormatPNG:
		return writePNG(fig, w, opts)
	case FormatSVG:
		sys := NewSVG(w, opts)
		return render(sys, fig, sys.Err)
	case FormatPDF:
		sys := NewPDF(w, opts)
		return render(sys, fig, sys.Err)
	case FormatTrace:
		sys := record.New(opts.Frames)
		if err := frame.Render(sys, fig); err != nil {
			return err
		}
		return sys.WriteJSON(w)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func render(sys canvas.System, fig *scene.Figure, sinkErr func() error) error {
	if err := frame.Render(sys, fig); err != nil {
		return err
	}
	return sinkErr()
}
