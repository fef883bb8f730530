/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package plot

import "math"

// Hypotrochoid returns the curve traced by a point at distance d from the
// center of a circle of radius r rolling inside a fixed circle of radius R.
// The angle range covers exactly one closed period of the curve, sampled
// with steps points. r == 0 yields the single point (0, 0).
func Hypotrochoid(R, r, d float64, steps int) (x, y []float64) {
	if r == 0 {
		return []float64{0}, []float64{0}
	}
	if steps < 2 {
		steps = 2
	}
	revs := r / float64(gcd(int(math.Abs(r)), int(math.Abs(R))))
	end := 2 * math.Pi * math.Abs(revs)
	k := (R - r) / r
	x = make([]float64, steps)
	y = make([]float64, steps)
	for i := range steps {
		theta := end * float64(i) / float64(steps-1)
		x[i] = (R-r)*math.Cos(theta) + d*math.Cos(k*theta)
		y[i] = (R-r)*math.Sin(theta) - d*math.Sin(k*theta)
	}
	return x, y
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
