package rig

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// SmoothingLaw selects how speeds and offsets approach their targets.
type SmoothingLaw string

const (
	// SmoothingExponential blends by 1 - e^(-rate*dt) and is frame-rate independent.
	SmoothingExponential SmoothingLaw = "exponential"
	// SmoothingLerp blends by min(rate*dt, 1). Its trajectory depends on the frame rate.
	SmoothingLerp SmoothingLaw = "lerp"
)

// Factor returns the blend factor in [0, 1] for one step of length dt.
// An empty law behaves as SmoothingExponential.
func (l SmoothingLaw) Factor(rate, dt float32) float32 {
	if l == SmoothingLerp {
		return common.LerpFactor(rate, dt)
	}
	return common.ExpFactor(rate, dt)
}

// Config holds the rig tunables. It is fixed for the lifetime of a controller.
type Config struct {
	// horizontal motion
	MaxSpeed     float32 `yaml:"max_speed"`
	Acceleration float32 `yaml:"acceleration"`
	Damping      float32 `yaml:"damping"`

	// vertical motion
	StepSize    float32 `yaml:"step_size"`
	ZoomDamping float32 `yaml:"zoom_damping"`
	MinHeight   float32 `yaml:"min_height"`
	MaxHeight   float32 `yaml:"max_height"`
	ZoomSpeed   float32 `yaml:"zoom_speed"`

	MaxRotationSpeed float32 `yaml:"max_rotation_speed"`

	EdgeTolerance float32 `yaml:"edge_tolerance"`
	UseScreenEdge bool    `yaml:"use_screen_edge"`

	EnableDragPan bool `yaml:"enable_drag_pan"`
	EnableZoom    bool `yaml:"enable_zoom"`
	EnableRotate  bool `yaml:"enable_rotate"`

	// Deadzone is the squared magnitude a direction must exceed to count as input.
	Deadzone float32 `yaml:"deadzone"`
	// ZoomThreshold is the magnitude a zoom event must exceed to be applied.
	ZoomThreshold float32 `yaml:"zoom_threshold"`
	// CoastCutoff is the squared speed below which coasting stops.
	CoastCutoff float32 `yaml:"coast_cutoff"`

	Smoothing SmoothingLaw `yaml:"smoothing"`

	InitialPosition mgl32.Vec3 `yaml:"initial_position"`
	InitialYaw      float32    `yaml:"initial_yaw"`
	InitialOffset   mgl32.Vec3 `yaml:"initial_offset"`
}

// DefaultConfig returns the stock RTS camera tuning.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:         20,
		Acceleration:     10,
		Damping:          15,
		StepSize:         2,
		ZoomDamping:      7.5,
		MinHeight:        5,
		MaxHeight:        50,
		ZoomSpeed:        2,
		MaxRotationSpeed: 1,
		EdgeTolerance:    0.05,
		UseScreenEdge:    true,
		EnableDragPan:    true,
		EnableZoom:       true,
		EnableRotate:     true,
		Deadzone:         0.1,
		ZoomThreshold:    0.1,
		CoastCutoff:      0.1,
		Smoothing:        SmoothingExponential,
		InitialOffset:    mgl32.Vec3{0, 10, 10},
	}
}

// Validate reports every problem with the config. Each returned error wraps ErrInvalidConfig.
//
// Returns:
//   - error: nil if the config is usable
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	nonNegative := []struct {
		name  string
		value float32
	}{
		{"max_speed", c.MaxSpeed},
		{"acceleration", c.Acceleration},
		{"damping", c.Damping},
		{"step_size", c.StepSize},
		{"zoom_damping", c.ZoomDamping},
		{"zoom_speed", c.ZoomSpeed},
		{"max_rotation_speed", c.MaxRotationSpeed},
		{"deadzone", c.Deadzone},
		{"zoom_threshold", c.ZoomThreshold},
		{"coast_cutoff", c.CoastCutoff},
	}
	for _, f := range nonNegative {
		if isNaN(f.value) || f.value < 0 {
			invalid("%s must be a non-negative number, got %v", f.name, f.value)
		}
	}

	if isNaN(c.MinHeight) || isNaN(c.MaxHeight) {
		invalid("height bounds must be numbers")
	} else if c.MinHeight > c.MaxHeight {
		invalid("min_height %v exceeds max_height %v", c.MinHeight, c.MaxHeight)
	} else if h := c.InitialOffset.Y(); h < c.MinHeight || h > c.MaxHeight {
		invalid("initial_offset height %v outside [%v, %v]", h, c.MinHeight, c.MaxHeight)
	}

	if isNaN(c.EdgeTolerance) || c.EdgeTolerance < 0 || c.EdgeTolerance >= 0.5 {
		invalid("edge_tolerance must be in [0, 0.5), got %v", c.EdgeTolerance)
	}

	switch c.Smoothing {
	case "", SmoothingExponential, SmoothingLerp:
	default:
		invalid("unknown smoothing law %q", c.Smoothing)
	}

	return errors.Join(errs...)
}

func isNaN(v float32) bool {
	return math.IsNaN(float64(v))
}
