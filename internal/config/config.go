/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type RenderConfig struct {
	Backend  string `yaml:"backend"`   // window | png | svg | pdf | trace
	Output   string `yaml:"output"`    // default output file for offscreen backends
	Frames   int    `yaml:"frames"`    // frames rendered by offscreen backends before closing
	FPS      int    `yaml:"fps"`       // frame pacing for the window backend
	FontFile string `yaml:"font_file"` // TrueType file for text; built-in font when empty
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user configuration, stored as YAML in the user scope.
// Environment variables override it at runtime and are never written back.
// Bump ConfigVersion when the structure changes incompatibly.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Backends lists the accepted render.backend values.
var Backends = []string{"window", "png", "svg", "pdf", "trace"}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Render:        RenderConfig{Backend: "window", Output: "figure.png", Frames: 1, FPS: 60},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// EnvPrefix is prepended to every override variable.
const EnvPrefix = "SPIRO"

// Env var names used as overrides.
const (
	EnvConfigFile    = "SPIRO_CONFIG"
	EnvRenderBackend = "SPIRO_RENDER_BACKEND"
	EnvRenderOutput  = "SPIRO_RENDER_OUTPUT"
	EnvRenderFrames  = "SPIRO_RENDER_FRAMES"
	EnvRenderFPS     = "SPIRO_RENDER_FPS"
	EnvFontFile      = "SPIRO_FONT_FILE"
	EnvLogLevel      = "SPIRO_LOG_LEVEL"
	EnvLogFormat     = "SPIRO_LOG_FORMAT"
	EnvLogSource     = "SPIRO_LOG_SOURCE"
	EnvLogFile       = "SPIRO_LOG_FILE"
)

// overrides mirrors the env vars above; nil means unset.
type overrides struct {
	Backend   *string `envconfig:"RENDER_BACKEND"`
	Output    *string `envconfig:"RENDER_OUTPUT"`
	Frames    *int    `envconfig:"RENDER_FRAMES"`
	FPS       *int    `envconfig:"RENDER_FPS"`
	FontFile  *string `envconfig:"FONT_FILE"`
	LogLevel  *string `envconfig:"LOG_LEVEL"`
	LogFormat *string `envconfig:"LOG_FORMAT"`
	LogSource *bool   `envconfig:"LOG_SOURCE"`
	LogFile   *string `envconfig:"LOG_FILE"`
}

// ConfigPath returns the per-user config file path. SPIRO_CONFIG wins.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Spirographicals")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Spirographicals")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "spirographicals")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "spirographicals")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config file if present, layers it over the defaults and
// applies environment overrides. A missing file is not an error; a file
// that does not parse is.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to the user config file.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks the values Load cannot repair on its own.
func (c AppConfig) Validate() error {
	var errs []error
	if !slices.Contains(Backends, c.Render.Backend) {
		errs = append(errs, fmt.Errorf("render.backend %q: want one of %s", c.Render.Backend, strings.Join(Backends, ", ")))
	}
	if c.Render.Frames < 1 {
		errs = append(errs, fmt.Errorf("render.frames %d: must be at least 1", c.Render.Frames))
	}
	if c.Render.FPS < 1 {
		errs = append(errs, fmt.Errorf("render.fps %d: must be at least 1", c.Render.FPS))
	}
	return errors.Join(errs...)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Render.Backend); v != "" {
		dst.Render.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Render.Output); v != "" {
		dst.Render.Output = v
	}
	if src.Render.Frames != 0 {
		dst.Render.Frames = src.Render.Frames
	}
	if src.Render.FPS != 0 {
		dst.Render.FPS = src.Render.FPS
	}
	if v := strings.TrimSpace(src.Render.FontFile); v != "" {
		dst.Render.FontFile = v
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	var ov overrides
	if err := envconfig.Process(EnvPrefix, &ov); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	setString := func(dst *string, v *string, lower bool) {
		if v == nil || strings.TrimSpace(*v) == "" {
			return
		}
		s := strings.TrimSpace(*v)
		if lower {
			s = strings.ToLower(s)
		}
		*dst = s
	}
	setString(&cfg.Render.Backend, ov.Backend, true)
	setString(&cfg.Render.Output, ov.Output, false)
	setString(&cfg.Render.FontFile, ov.FontFile, false)
	setString(&cfg.Logging.Level, ov.LogLevel, true)
	setString(&cfg.Logging.Format, ov.LogFormat, true)
	setString(&cfg.Logging.File, ov.LogFile, false)
	if ov.Frames != nil {
		cfg.Render.Frames = *ov.Frames
	}
	if ov.FPS != nil {
		cfg.Render.FPS = *ov.FPS
	}
	if ov.LogSource != nil {
		cfg.Logging.Source = *ov.LogSource
	}
	return nil
}

var envKeys = map[string]string{
	"render.backend":   EnvRenderBackend,
	"render.output":    EnvRenderOutput,
	"render.frames":    EnvRenderFrames,
	"render.fps":       EnvRenderFPS,
	"render.font_file": EnvFontFile,
	"logging.level":    EnvLogLevel,
	"logging.format":   EnvLogFormat,
	"logging.source":   EnvLogSource,
	"logging.file":     EnvLogFile,
}

// Keys lists every config key that can be overridden, sorted.
func Keys() []string {
	keys := make([]string, 0, len(envKeys))
	for k := range envKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// EnvOverrideFor returns the env var name if key is currently overridden.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
