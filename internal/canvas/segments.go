/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "fmt"

// Op is a path command.
type Op int

const (
	OpMove Op = iota
	OpLine
)

// Segment is one recorded path command.
type Segment struct {
	Op   Op
	X, Y float32
}

// SegmentPath is a Path that just remembers its commands. Backends that
// replay paths onto a native surface at stroke time embed it.
type SegmentPath struct {
	Segs      []Segment
	destroyed bool
}

func (p *SegmentPath) MoveTo(x, y float32) { p.Segs = append(p.Segs, Segment{Op: OpMove, X: x, Y: y}) }
func (p *SegmentPath) LineTo(x, y float32) { p.Segs = append(p.Segs, Segment{Op: OpLine, X: x, Y: y}) }

func (p *SegmentPath) Destroy() {
	p.destroyed = true
	p.Segs = nil
}

// Destroyed reports whether Destroy was called.
func (p *SegmentPath) Destroyed() bool { return p.destroyed }

// BasicPen is a Pen holding nothing but its configuration.
type BasicPen struct {
	Cfg       PenConfig
	destroyed bool
}

func (p *BasicPen) Config() PenConfig { return p.Cfg }
func (p *BasicPen) Destroy()          { p.destroyed = true }
func (p *BasicPen) Destroyed() bool   { return p.destroyed }

// AsSegments extracts the segment list from a path created by a backend that
// uses SegmentPath. Foreign paths are rejected.
func AsSegments(p Path) (*SegmentPath, error) {
	sp, ok := p.(*SegmentPath)
	if !ok || sp == nil {
		return nil, fmt.Errorf("%w: foreign path handle %T", ErrResourceAcquisition, p)
	}
	if sp.destroyed {
		return nil, fmt.Errorf("%w: path already destroyed", ErrResourceAcquisition)
	}
	return sp, nil
}

// ValidatePen checks a pen before a backend applies it.
func ValidatePen(cfg PenConfig) error {
	if cfg.LineWidth <= 0 {
		return fmt.Errorf("%w: pen width %v must be positive", ErrResourceAcquisition, cfg.LineWidth)
	}
	return nil
}
