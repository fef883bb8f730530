/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI into a crash report and a clean exit code.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "spirographicals/internal/log"
	"spirographicals/internal/version"
)

// exitFn is swapped in tests so Recover does not end the test binary.
var exitFn = os.Exit

// Session describes what was being rendered when the panic hit. All fields
// are optional.
type Session struct {
	Command  string
	Document string
	Backend  string
	// Dir receives the report; the temp dir when empty.
	Dir string
}

// Recover must be deferred directly: defer crash.Recover(&sess).
// It logs the panic with its stack, writes a report file and exits with code 2.
func Recover(s *Session) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	path, err := writeReport(s, r, stack)
	if err != nil {
		l.Error("crash report not written", slog.Any("err", err), slog.String("path", path))
	}
	_, _ = fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", path)
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func writeReport(s *Session, panicVal any, stack []byte) (string, error) {
	dir := os.TempDir()
	if s != nil && s.Dir != "" {
		dir = s.Dir
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return dir, err
		}
	}
	path := filepath.Join(dir, fmt.Sprintf("spirographicals-crash-%s.log", time.Now().Format("20060102-150405.000")))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Spirographicals Crash Report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if s != nil {
		if s.Command != "" {
			fmt.Fprintf(&buf, "Command: %s\n", s.Command)
		}
		if s.Document != "" {
			fmt.Fprintf(&buf, "Document: %s\n", s.Document)
		}
		if s.Backend != "" {
			fmt.Fprintf(&buf, "Backend: %s\n", s.Backend)
		}
	}
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
