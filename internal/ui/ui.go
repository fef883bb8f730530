/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui shows a figure in a desktop window. The window is a fyne
// application displaying frames rasterized by the raster package; it is
// only compiled with the "fyne" build tag and cgo.
package ui

import (
	"time"

	"spirographicals/internal/fonts"
)

// Options for Show.
type Options struct {
	// FPS paces redraws; 60 when zero.
	FPS      int
	Font     *fonts.Library
	TextSize float64
}

func (o Options) interval() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
