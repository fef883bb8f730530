/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spirographicals/internal/config"
	"spirographicals/internal/crash"
	"spirographicals/internal/export"
	"spirographicals/internal/figdoc"
	"spirographicals/internal/fonts"
	applog "spirographicals/internal/log"
	"spirographicals/internal/plot"
	"spirographicals/internal/scene"
	"spirographicals/internal/ui"
	"spirographicals/internal/version"
)

// errUsage makes run exit with code 2 after printing usage.
var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "Spirographicals: figures drawn from a retained scene")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  spirographicals version|-v|--version             Show version")
	fmt.Fprintln(w, "  spirographicals render <doc> [<out>]             Render a figure document to png, svg or pdf")
	fmt.Fprintln(w, "  spirographicals show <doc>                       Show a figure document (window backend needs -tags fyne)")
	fmt.Fprintln(w, "  spirographicals trace <doc> [<out.json>]         Write the draw-call trace of one frame")
	fmt.Fprintln(w, "  spirographicals export [-preset p] <doc> <dir>   Export to several formats (presets: web, print, debug)")
	fmt.Fprintln(w, "  spirographicals demo [<out>]                     Render the hypotrochoid demo, or show it when <out> is omitted")
	fmt.Fprintln(w, "  spirographicals config [path|schema]             Print the effective configuration")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every command needs.
type app struct {
	cfg  config.AppConfig
	font *fonts.Library
	out  io.Writer
	log  *slog.Logger
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
		Console:   stderr,
	})
	l := applog.WithComponent("cli")

	sess := crash.Session{Backend: cfg.Render.Backend}
	defer crash.Recover(&sess)

	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	sess.Command = args[0]
	if len(args) > 1 {
		sess.Document = args[1]
	}
	l.Debug("start", slog.String("cmd", args[0]), slog.Int("args", len(args)-1))

	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, "Spirographicals")
		fmt.Fprintln(stdout, version.String())
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	if cfgErr != nil {
		l.Error("configuration invalid", slog.Any("err", cfgErr))
		fmt.Fprintln(stderr, "Error:", cfgErr)
		return 1
	}

	font, err := fonts.Load(cfg.Render.FontFile)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	a := &app{cfg: cfg, font: font, out: stdout, log: l}

	var cmdErr error
	switch args[0] {
	case "render":
		cmdErr = a.render(args[1:])
	case "show":
		cmdErr = a.show(args[1:])
	case "trace":
		cmdErr = a.trace(args[1:])
	case "export":
		cmdErr = a.export(args[1:])
	case "demo":
		cmdErr = a.demo(args[1:])
	case "config":
		cmdErr = a.config(args[1:])
	default:
		cmdErr = fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	switch {
	case cmdErr == nil:
		return 0
	case errors.Is(cmdErr, errUsage):
		fmt.Fprintln(stderr, strings.TrimPrefix(cmdErr.Error(), errUsage.Error()+": "))
		usage(stderr)
		return 2
	default:
		l.Error(args[0]+" failed", slog.Any("err", cmdErr))
		fmt.Fprintln(stderr, "Error:", cmdErr)
		return 1
	}
}

func (a *app) exportOptions() export.Options {
	return export.Options{Frames: a.cfg.Render.Frames, Font: a.font}
}

func (a *app) load(path string) (*scene.Figure, error) {
	doc, err := figdoc.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Build(a.font)
}

func (a *app) render(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: render requires <doc>", errUsage)
	}
	out := a.cfg.Render.Output
	if len(args) > 1 {
		out = args[1]
	}
	fig, err := a.load(args[0])
	if err != nil {
		return err
	}
	if err := export.Savefig(fig, out, a.exportOptions()); err != nil {
		return err
	}
	abs, _ := filepath.Abs(out)
	fmt.Fprintln(a.out, "Wrote", abs)
	return nil
}

func (a *app) show(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: show requires <doc>", errUsage)
	}
	fig, err := a.load(args[0])
	if err != nil {
		return err
	}
	return a.display(fig)
}

// display uses the configured backend: a window, or a file written to
// render.output with the backend's extension.
func (a *app) display(fig *scene.Figure) error {
	if a.cfg.Render.Backend == "window" {
		return ui.Show(fig, ui.Options{FPS: a.cfg.Render.FPS, Font: a.font})
	}
	format, err := export.ParseFormat(a.cfg.Render.Backend)
	if err != nil {
		return err
	}
	out := strings.TrimSuffix(a.cfg.Render.Output, filepath.Ext(a.cfg.Render.Output)) + "." + string(format)
	if format == export.FormatTrace {
		out = strings.TrimSuffix(out, ".trace") + ".trace.json"
	}
	a.log.Info("no window backend selected, writing file", slog.String("backend", a.cfg.Render.Backend), slog.String("path", out))
	if err := export.Savefig(fig, out, a.exportOptions()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Wrote", out)
	return nil
}

func (a *app) trace(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: trace requires <doc>", errUsage)
	}
	fig, err := a.load(args[0])
	if err != nil {
		return err
	}
	opts := a.exportOptions()
	opts.Frames = 1
	if len(args) > 1 {
		if err := export.Savefig(fig, args[1], opts); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Wrote", args[1])
		return nil
	}
	return export.Write(fig, a.out, export.FormatTrace, opts)
}

func (a *app) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	preset := fs.String("preset", string(export.PresetWeb), "web, print or debug")
	formats := fs.String("formats", "", "comma-separated formats, overrides the preset")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: export requires <doc> and <dir>", errUsage)
	}
	fig, err := a.load(fs.Arg(0))
	if err != nil {
		return err
	}
	opt := export.BatchOptions{
		Preset:  export.PresetName(*preset),
		OutDir:  fs.Arg(1),
		Base:    strings.TrimSuffix(filepath.Base(fs.Arg(0)), filepath.Ext(fs.Arg(0))),
		Options: a.exportOptions(),
	}
	if *formats != "" {
		opt.Formats = strings.Split(*formats, ",")
	}
	written, err := export.BatchExport(fig, opt)
	for _, p := range written {
		fmt.Fprintln(a.out, "Wrote", p)
	}
	return err
}

func (a *app) demo(args []string) error {
	f := demoFigure(a.font)
	if len(args) > 0 {
		if err := f.Savefig(args[0], a.exportOptions()); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Wrote", args[0])
		return nil
	}
	fig, err := f.Build()
	if err != nil {
		return err
	}
	return a.display(fig)
}

// demoFigure is the classic spirograph: R=10, r=3, d=7 on a dark figure.
func demoFigure(font *fonts.Library) *plot.Figure {
	const bigR, smallR, dist = 10.0, 3.0, 7.0
	f := plot.NewFigure(plot.WithSize(10, 10), plot.WithFaceColor("#121212"), plot.WithFont(font))
	x, y := plot.Hypotrochoid(bigR, smallR, dist, 2000)
	f.AddSubplot().
		Plot(x, y, plot.Color("#00FFFF"), plot.LineWidth(1.5)).
		SetTitle(fmt.Sprintf("Hypotrochoid (R=%v, r=%v, d=%v)", bigR, smallR, dist), plot.TextColor("white")).
		Grid(true, plot.GridColor("#444444"), plot.GridStyle(scene.Dashed))
	return f
}

func (a *app) config(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "path":
			p, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, p)
			return nil
		case "schema":
			_, err := a.out.Write(figdoc.Schema())
			return err
		default:
			return fmt.Errorf("%w: unknown config subcommand %q", errUsage, args[0])
		}
	}
	values := map[string]any{
		"render.backend":   a.cfg.Render.Backend,
		"render.output":    a.cfg.Render.Output,
		"render.frames":    a.cfg.Render.Frames,
		"render.fps":       a.cfg.Render.FPS,
		"render.font_file": a.cfg.Render.FontFile,
		"logging.level":    a.cfg.Logging.Level,
		"logging.format":   a.cfg.Logging.Format,
		"logging.source":   a.cfg.Logging.Source,
		"logging.file":     a.cfg.Logging.File,
	}
	for _, k := range config.Keys() {
		line := fmt.Sprintf("%-17s %v", k, values[k])
		if env, ok := config.EnvOverrideFor(k); ok {
			line += "  (from " + env + ")"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
