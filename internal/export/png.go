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
	"fmt"
	"io"

	"spirographicals/internal/frame"
	"spirographicals/internal/raster"
	"spirographicals/internal/scene"
)

// writePNG rasterizes the figure and encodes the final frame.
func writePNG(fig *scene.Figure, w io.Writer, opts Options) error {
	var last bytes.Buffer
	sys := raster.NewSystem(raster.Options{
		Frames:   opts.Frames,
		Font:     opts.Font,
		TextSize: opts.TextSize,
		Present: func(n int, c *raster.Canvas) error {
			if n < opts.Frames {
				return nil
			}
			last.Reset()
			return c.EncodePNG(&last)
		},
	})
	if err := frame.Render(sys, fig); err != nil {
		return err
	}
	if last.Len() == 0 {
		return fmt.Errorf("png export: no frame rendered")
	}
	_, err := last.WriteTo(w)
	return err
}
