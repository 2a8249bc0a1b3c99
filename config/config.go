// Package config loads application settings from YAML, layered over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/Carmen-Shannon/oxy-rts/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every setting the commands need.
type Config struct {
	LogLevel string            `yaml:"log_level"`
	Window   WindowConfig      `yaml:"window"`
	Engine   EngineConfig      `yaml:"engine"`
	Camera   CameraConfig      `yaml:"camera"`
	Input    InputConfig       `yaml:"input"`
	Rig      rig.Config        `yaml:"rig"`
	Walker   locomotion.Config `yaml:"walker"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// EngineConfig holds frame loop settings.
type EngineConfig struct {
	TickRate  int  `yaml:"tick_rate"` // ticks per second
	Profiling bool `yaml:"profiling"`
}

// CameraConfig holds perspective settings.
type CameraConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// InputConfig holds bindings and input scaling.
type InputConfig struct {
	ZoomScale         float32             `yaml:"zoom_scale"`         // wheel offset -> zoom event
	RotateSensitivity float32             `yaml:"rotate_sensitivity"` // pointer pixels -> rotate event
	DragButton        string              `yaml:"drag_button"`
	RotateButton      string              `yaml:"rotate_button"`
	Bindings          map[string][]string `yaml:"bindings"`
}

// BufferOptions converts the input settings into input.Buffer options.
//
// Returns:
//   - []input.BufferOption: options for input.NewBuffer
//   - error: an error if a binding name is unknown
func (c InputConfig) BufferOptions() ([]input.BufferOption, error) {
	bindings, err := input.ParseBindings(c.Bindings, c.DragButton, c.RotateButton)
	if err != nil {
		return nil, fmt.Errorf("parsing input bindings: %w", err)
	}
	return []input.BufferOption{
		input.WithBindings(bindings),
		input.WithZoomScale(c.ZoomScale),
		input.WithRotateSensitivity(c.RotateSensitivity),
	}, nil
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Engine.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("engine tick_rate must be positive, got %d", c.Engine.TickRate))
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera fov_degrees must be in (0, 180), got %v", c.Camera.FovDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got %v/%v", c.Camera.Near, c.Camera.Far))
	}
	if _, err := c.Input.BufferOptions(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := c.Rig.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rig: %w", err))
	}
	if err := c.Walker.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("walker: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

// WriteYAML writes the configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ParseLevel maps a log level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// NewLogger builds a text logger on stderr at the configured level.
func (c *Config) NewLogger() *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
