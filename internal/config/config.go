// Package config holds the application settings: canvas geometry, axis line
// appearance, rendering engine, logging and save defaults.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const (
	EngineImaging = "imaging"
	EngineOpenCV  = "opencv"
)

type (
	CanvasConfig struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	}

	LineConfig struct {
		Width float32 `yaml:"width"`
		Color string  `yaml:"color"`
	}

	LoggingConfig struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	}

	WindowConfig struct {
		Title string `yaml:"title"`
	}

	SaveConfig struct {
		DefaultExtension string `yaml:"default_extension"`
		JPEGQuality      int    `yaml:"jpeg_quality"`
	}

	Config struct {
		Canvas  CanvasConfig  `yaml:"canvas"`
		Line    LineConfig    `yaml:"line"`
		Engine  string        `yaml:"engine"`
		Window  WindowConfig  `yaml:"window"`
		Save    SaveConfig    `yaml:"save"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Default returns the built-in configuration: an 800x600 canvas with a 2px
// red axis line, rendered by the pure Go engine.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Line:   LineConfig{Width: 2, Color: "#ff0000"},
		Engine: EngineImaging,
		Window: WindowConfig{Title: "Real-time Symmetry Image Generator"},
		Save:   SaveConfig{DefaultExtension: ".png", JPEGQuality: 95},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfiguration reads YAML from path on top of the defaults. An empty path
// returns the defaults. Environment overrides are applied last.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()

	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read configuration file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse configuration file %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	} else if os.Getenv("DEBUG") == "1" {
		c.Logging.Level = "debug"
	}
	if engine := os.Getenv("SYMMETRY_ENGINE"); engine != "" {
		c.Engine = engine
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Line.Width <= 0 {
		errs = append(errs, fmt.Errorf("line width %.1f must be positive", c.Line.Width))
	}
	if _, err := ParseColor(c.Line.Color); err != nil {
		errs = append(errs, err)
	}
	switch c.Engine {
	case EngineImaging, EngineOpenCV:
	default:
		errs = append(errs, fmt.Errorf("unknown engine %q", c.Engine))
	}
	if !strings.HasPrefix(c.Save.DefaultExtension, ".") {
		errs = append(errs, fmt.Errorf("default extension %q must start with a dot", c.Save.DefaultExtension))
	}
	if c.Save.JPEGQuality < 1 || c.Save.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality %d out of range [1, 100]", c.Save.JPEGQuality))
	}

	return errors.Join(errs...)
}

// LineColor returns the parsed axis line color.
func (c *Config) LineColor() color.NRGBA {
	col, err := ParseColor(c.Line.Color)
	if err != nil {
		return color.NRGBA{R: 255, A: 255}
	}
	return col
}

// Dump renders the configuration as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal configuration: %w", err)
	}
	return data, nil
}

var namedColors = map[string]color.NRGBA{
	"red":   {R: 255, A: 255},
	"green": {G: 255, A: 255},
	"blue":  {B: 255, A: 255},
	"white": {R: 255, G: 255, B: 255, A: 255},
	"black": {A: 255},
}

// ParseColor accepts a color name or "#rrggbb".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if col, ok := namedColors[s]; ok {
		return col, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
