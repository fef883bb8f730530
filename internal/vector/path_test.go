/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestPolylineBounds(t *testing.T) {
	p := Polyline{{0, 0}, {10, 0}, {0, 10}}
	b, ok := p.Bounds()
	if !ok || b != R(0, 0, 10, 10) {
		t.Fatalf("Bounds = %+v, %v", b, ok)
	}
	if _, ok := (Polyline{}).Bounds(); ok {
		t.Fatalf("empty polyline reported bounds")
	}
	nan := float32(math.NaN())
	b, ok = Polyline{{nan, 1}, {2, 3}, {4, 5}}.Bounds()
	if !ok || b != R(2, 3, 2, 2) {
		t.Fatalf("Bounds with NaN = %+v", b)
	}
}

func TestPolylineTransform(t *testing.T) {
	p := Polyline{{1, 1}, {2, 2}}
	q := p.Transform(Translate(5, 5))
	if q[0] != (Pt{6, 6}) || q[1] != (Pt{7, 7}) {
		t.Fatalf("Transform = %v", q)
	}
	if p[0] != (Pt{1, 1}) {
		t.Fatalf("Transform modified its receiver")
	}
}

func TestGridLines(t *testing.T) {
	lines := GridLines(R(0, 0, 100, 50), 4)
	if len(lines) != 10 {
		t.Fatalf("len = %d, want 10", len(lines))
	}
	if lines[1][0] != (Pt{25, 0}) || lines[1][1] != (Pt{25, 50}) {
		t.Fatalf("second vertical = %v", lines[1])
	}
	if lines[9][0] != (Pt{0, 50}) {
		t.Fatalf("last horizontal = %v", lines[9])
	}
	if GridLines(R(0, 0, 1, 1), 0) != nil {
		t.Fatalf("n=0 should yield nothing")
	}
}

func TestCellsRowMajor(t *testing.T) {
	cells := Cells(R(0, 0, 210, 100), 2, 2, 10)
	want := []Rect{R(0, 0, 100, 45), R(110, 0, 100, 45), R(0, 55, 100, 45), R(110, 55, 100, 45)}
	if len(cells) != len(want) {
		t.Fatalf("len = %d", len(cells))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d = %+v, want %+v", i, cells[i], want[i])
		}
	}
}
