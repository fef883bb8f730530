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
	"path/filepath"
	"strings"

	"spirographicals/internal/scene"
)

// PresetName selects a bundle of output formats.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
	PresetDebug PresetName = "debug"
)

// BatchOptions controls a multi-format export of one figure.
//
// Files are named <Base>.<ext> inside OutDir. An empty Base means "figure".
type BatchOptions struct {
	Preset  PresetName
	Formats []string // overrides the preset's formats when set
	OutDir  string
	Base    string
	Options Options
}

// BatchExport writes fig once per format and returns the written paths.
func BatchExport(fig *scene.Figure, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	base := strings.TrimSpace(opt.Base)
	if base == "" {
		base = "figure"
	}
	var written []string
	for _, name := range formats {
		f, err := ParseFormat(name)
		if err != nil {
			return written, err
		}
		ext := string(f)
		if f == FormatTrace {
			ext = "trace.json"
		}
		out := filepath.Join(opt.OutDir, base+"."+ext)
		if err := Savefig(fig, out, opt.Options); err != nil {
			return written, fmt.Errorf("%s: %w", f, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg"}
	case PresetPrint:
		return []string{"pdf", "png"}
	case PresetDebug:
		return []string{"trace", "svg"}
	default:
		return []string{"png"}
	}
}
