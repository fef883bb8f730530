/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"spirographicals/internal/canvas"
)

// SVG is a canvas.System that serializes the last rendered frame as an SVG
// document when its canvas is destroyed.
type SVG struct {
	w           io.Writer
	opts        Options
	initialized bool
	err         error
}

func NewSVG(w io.Writer, opts Options) *SVG { return &SVG{w: w, opts: opts.normalized()} }

func (s *SVG) Initialize() error {
	s.initialized = true
	return nil
}

func (s *SVG) Terminate() { s.initialized = false }

// Err reports a failure to write the document.
func (s *SVG) Err() error { return s.err }

func (s *SVG) CreateCanvas(cfg canvas.WindowConfig) (canvas.Canvas, error) {
	if !s.initialized {
		return nil, fmt.Errorf("%w: svg system not initialized", canvas.ErrResourceAcquisition)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", canvas.ErrResourceAcquisition, cfg.Width, cfg.Height)
	}
	return &svgCanvas{sys: s, cfg: cfg, color: canvas.RGBA{A: 1}}, nil
}

type svgCanvas struct {
	sys    *SVG
	cfg    canvas.WindowConfig
	body   bytes.Buffer // current frame
	done   []byte       // last presented frame
	frames int
	pen    canvas.PenConfig
	color  canvas.RGBA
}

func (c *svgCanvas) wf(format string, args ...any) { _, _ = fmt.Fprintf(&c.body, format, args...) }

func (c *svgCanvas) ShouldClose() bool { return c.frames >= c.sys.opts.Frames }

func (c *svgCanvas) BeginFrame() { c.body.Reset() }

func (c *svgCanvas) EndFrame() error {
	c.frames++
	c.done = append(c.done[:0], c.body.Bytes()...)
	return nil
}

func (c *svgCanvas) Clear(col canvas.RGBA) {
	c.body.Reset()
	c.wf("  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"%s/>\n", c.cfg.Width, c.cfg.Height, svgColor(col), opacityAttr("fill-opacity", col.A))
}

func (c *svgCanvas) CreatePath() (canvas.Path, error) { return &canvas.SegmentPath{}, nil }

func (c *svgCanvas) CreatePen(cfg canvas.PenConfig) (canvas.Pen, error) {
	if err := canvas.ValidatePen(cfg); err != nil {
		return nil, err
	}
	return &canvas.BasicPen{Cfg: cfg}, nil
}

func (c *svgCanvas) SetPen(p canvas.Pen) {
	if p != nil {
		c.pen = p.Config()
	}
}

func (c *svgCanvas) SetColor(col canvas.RGBA) { c.color = col }

func (c *svgCanvas) StrokePath(p canvas.Path) error {
	sp, err := canvas.AsSegments(p)
	if err != nil {
		return err
	}
	var d strings.Builder
	for i, s := range sp.Segs {
		if i > 0 {
			d.WriteByte(' ')
		}
		if s.Op == canvas.OpMove {
			d.WriteByte('M')
		} else {
			d.WriteByte('L')
		}
		d.WriteString(num(s.X))
		d.WriteByte(' ')
		d.WriteString(num(s.Y))
	}
	c.wf("  <path d=\"%s\" fill=\"none\" stroke=\"%s\"%s stroke-width=\"%s\" stroke-linecap=\"%s\" stroke-linejoin=\"%s\" stroke-miterlimit=\"%s\"/>\n",
		d.String(), svgColor(c.color), opacityAttr("stroke-opacity", c.color.A), num(c.pen.LineWidth), c.pen.Cap, c.pen.Join, num(c.pen.MiterLimit))
	return nil
}

func (c *svgCanvas) DrawText(s string, x, y float32) {
	c.wf("  <text x=\"%s\" y=\"%s\" font-family=\"Go, sans-serif\" font-size=\"%s\" fill=\"%s\"%s>%s</text>\n",
		num(x), num(y), num(float32(c.sys.opts.TextSize)), svgColor(c.color), opacityAttr("fill-opacity", c.color.A), escape(s))
}

// Destroy writes the document.
func (c *svgCanvas) Destroy() {
	if c.sys.err != nil {
		return
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %d %d\">\n", c.cfg.Width, c.cfg.Height, c.cfg.Width, c.cfg.Height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(c.cfg.Title))
	buf.Write(c.done)
	buf.WriteString("</svg>\n")
	if _, err := buf.WriteTo(c.sys.w); err != nil {
		c.sys.err = fmt.Errorf("write svg: %w", err)
	}
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func svgColor(c canvas.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

func opacityAttr(name string, a float32) string {
	if a >= 1 {
		return ""
	}
	return fmt.Sprintf(" %s=\"%s\"", name, num(a))
}

func num(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
