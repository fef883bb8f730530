/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Polyline is an open chain of points, stroked in order.
type Polyline []Pt

// Bounds returns the bounding box and false for an empty polyline.
// Non-finite points are skipped.
func (p Polyline) Bounds() (Rect, bool) {
	var r Rect
	ok := false
	for _, q := range p {
		if !finite(q.X) || !finite(q.Y) {
			continue
		}
		pr := Rect{X: q.X, Y: q.Y}
		if !ok {
			r, ok = pr, true
			continue
		}
		r = r.Union(pr)
	}
	return r, ok
}

// Transform returns a new polyline with m applied to every point.
func (p Polyline) Transform(m Affine2D) Polyline {
	out := make(Polyline, len(p))
	for i, q := range p {
		out[i] = m.Apply(q)
	}
	return out
}

// GridLines divides r into n equal bands each way and returns the n+1
// vertical lines followed by the n+1 horizontal ones.
func GridLines(r Rect, n int) []Polyline {
	if n < 1 {
		return nil
	}
	out := make([]Polyline, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		x := r.X + r.W*float32(i)/float32(n)
		out = append(out, Polyline{{x, r.Y}, {x, r.Y + r.H}})
	}
	for i := 0; i <= n; i++ {
		y := r.Y + r.H*float32(i)/float32(n)
		out = append(out, Polyline{{r.X, y}, {r.X + r.W, y}})
	}
	return out
}

// Cells splits r into rows*cols cells in row-major order, separated by gap.
func Cells(r Rect, rows, cols int, gap float32) []Rect {
	if rows < 1 || cols < 1 {
		return nil
	}
	cw := (r.W - gap*float32(cols-1)) / float32(cols)
	ch := (r.H - gap*float32(rows-1)) / float32(rows)
	out := make([]Rect, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, Rect{
				X: r.X + float32(j)*(cw+gap),
				Y: r.Y + float32(i)*(ch+gap),
				W: cw,
				H: ch,
			})
		}
	}
	return out
}

func finite(v float32) bool { return v == v && v < 3.4e38 && v > -3.4e38 }
