//go:build !fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"errors"

	"spirographicals/internal/scene"
)

// Show is a stub in non-fyne builds so CI stays headless.
func Show(_ *scene.Figure, _ Options) error {
	return errors.New("window backend not built in this binary. Rebuild with: go build -tags fyne ./cmd/spirographicals, or use an offscreen backend (png, svg, pdf)")
}
