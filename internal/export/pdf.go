/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"spirographicals/internal/canvas"
	"spirographicals/internal/version"
)

// PDF is a canvas.System backed by gofpdf. Units are points, one point per
// figure pixel, origin top-left. Every frame becomes a page; the document is
// written when the canvas is destroyed.
type PDF struct {
	w           io.Writer
	opts        Options
	initialized bool
	pages       int
	err         error
}

func NewPDF(w io.Writer, opts Options) *PDF { return &PDF{w: w, opts: opts.normalized()} }

func (p *PDF) Initialize() error {
	p.initialized = true
	return nil
}

func (p *PDF) Terminate() { p.initialized = false }

// Err reports a failure while producing the document.
func (p *PDF) Err() error { return p.err }

// Pages is the number of pages in the last written document.
func (p *PDF) Pages() int { return p.pages }

func (p *PDF) CreateCanvas(cfg canvas.WindowConfig) (canvas.Canvas, error) {
	if !p.initialized {
		return nil, fmt.Errorf("%w: pdf system not initialized", canvas.ErrResourceAcquisition)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", canvas.ErrResourceAcquisition, cfg.Width, cfg.Height)
	}
	size := gofpdf.SizeType{Wd: float64(cfg.Width), Ht: float64(cfg.Height)}
	doc := gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: size})
	doc.SetTitle(cfg.Title, true)
	doc.SetCreator("spirographicals "+version.String(), true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("%w: pdf: %w", canvas.ErrResourceAcquisition, err)
	}
	return &pdfCanvas{sys: p, doc: doc, size: size, cfg: cfg, tr: doc.UnicodeTranslatorFromDescriptor("")}, nil
}

type pdfCanvas struct {
	sys    *PDF
	doc    *gofpdf.Fpdf
	size   gofpdf.SizeType
	cfg    canvas.WindowConfig
	frames int
	color  canvas.RGBA
	tr     func(string) string // UTF-8 to cp1252 for the core fonts
}

func (c *pdfCanvas) ShouldClose() bool { return c.frames >= c.sys.opts.Frames }

func (c *pdfCanvas) BeginFrame() {
	c.doc.AddPageFormat("P", c.size)
	c.doc.SetFont("Helvetica", "", c.sys.opts.TextSize)
}

func (c *pdfCanvas) EndFrame() error {
	if err := c.doc.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	c.frames++
	return nil
}

func (c *pdfCanvas) Clear(col canvas.RGBA) {
	r, g, b := rgb(col)
	c.doc.SetFillColor(r, g, b)
	c.doc.SetAlpha(float64(col.A), "Normal")
	c.doc.Rect(0, 0, c.size.Wd, c.size.Ht, "F")
}

func (c *pdfCanvas) CreatePath() (canvas.Path, error) { return &canvas.SegmentPath{}, nil }

func (c *pdfCanvas) CreatePen(cfg canvas.PenConfig) (canvas.Pen, error) {
	if err := canvas.ValidatePen(cfg); err != nil {
		return nil, err
	}
	return &canvas.BasicPen{Cfg: cfg}, nil
}

func (c *pdfCanvas) SetPen(p canvas.Pen) {
	if p == nil {
		return
	}
	cfg := p.Config()
	c.doc.SetLineWidth(float64(cfg.LineWidth))
	c.doc.SetLineCapStyle(cfg.Cap.String())
	c.doc.SetLineJoinStyle(cfg.Join.String())
}

func (c *pdfCanvas) SetColor(col canvas.RGBA) { c.color = col }

func (c *pdfCanvas) StrokePath(p canvas.Path) error {
	sp, err := canvas.AsSegments(p)
	if err != nil {
		return err
	}
	r, g, b := rgb(c.color)
	c.doc.SetDrawColor(r, g, b)
	c.doc.SetAlpha(float64(c.color.A), "Normal")
	for _, s := range sp.Segs {
		switch s.Op {
		case canvas.OpMove:
			c.doc.MoveTo(float64(s.X), float64(s.Y))
		case canvas.OpLine:
			c.doc.LineTo(float64(s.X), float64(s.Y))
		}
	}
	c.doc.DrawPath("D")
	if err := c.doc.Error(); err != nil {
		return fmt.Errorf("%w: pdf stroke: %w", canvas.ErrResourceAcquisition, err)
	}
	return nil
}

func (c *pdfCanvas) DrawText(s string, x, y float32) {
	r, g, b := rgb(c.color)
	c.doc.SetTextColor(r, g, b)
	c.doc.SetAlpha(float64(c.color.A), "Normal")
	c.doc.Text(float64(x), float64(y), c.tr(s))
}

// Destroy writes the document to the system's writer.
func (c *pdfCanvas) Destroy() {
	if c.doc == nil {
		return
	}
	c.sys.pages = c.doc.PageCount()
	if c.sys.err == nil {
		if err := c.doc.Output(c.sys.w); err != nil {
			c.sys.err = fmt.Errorf("write pdf: %w", err)
		}
	}
	c.doc = nil
}

func rgb(c canvas.RGBA) (int, int, int) {
	return int(to8(c.R)), int(to8(c.G)), int(to8(c.B))
}
