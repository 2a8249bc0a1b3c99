// Package locomotion moves a single rigid body like a player character:
// walk along the body's facing, turn from the look axis and jump on press.
package locomotion

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid walker config")

// RigidBody is the physics body a Walker drives.
type RigidBody interface {
	Position() mgl32.Vec3
	// Yaw is the facing in degrees about world +Y.
	Yaw() float32
	MovePosition(position mgl32.Vec3)
	SetYaw(yaw float32)
	ApplyImpulse(impulse mgl32.Vec3)
}

// Config holds the walker tunables.
type Config struct {
	WalkSpeed    float32 `yaml:"walk_speed"`
	TurnSpeed    float32 `yaml:"turn_speed"`
	JumpImpulse  float32 `yaml:"jump_impulse"`
	LookDeadzone float32 `yaml:"look_deadzone"`
}

// DefaultConfig returns the stock walker tuning.
func DefaultConfig() Config {
	return Config{
		WalkSpeed:    5,
		TurnSpeed:    200,
		JumpImpulse:  5,
		LookDeadzone: 0.01,
	}
}

// Validate rejects negative or NaN tunables.
func (c Config) Validate() error {
	fields := map[string]float32{
		"walk_speed":    c.WalkSpeed,
		"turn_speed":    c.TurnSpeed,
		"jump_impulse":  c.JumpImpulse,
		"look_deadzone": c.LookDeadzone,
	}
	var errs []error
	for name, v := range fields {
		if math.IsNaN(float64(v)) || v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidConfig, name, v))
		}
	}
	return errors.Join(errs...)
}

// Walker applies per-frame locomotion input to a RigidBody.
type Walker interface {
	// Tick pulls a frame from the input source and runs Update with it.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Tick(deltaTime float32)

	// Update moves, turns and jumps the body for one frame.
	//
	// Parameters:
	//   - frame: MoveAxis.Y walks, LookAxis.X turns, JumpPressed jumps
	//   - deltaTime: elapsed time in seconds
	Update(frame input.Frame, deltaTime float32)

	// Body returns the driven body.
	//
	// Returns:
	//   - RigidBody: the body
	Body() RigidBody
}

type walkerImpl struct {
	mu     *sync.Mutex
	cfg    Config
	body   RigidBody
	source input.Source
	logger *slog.Logger
}

var _ Walker = &walkerImpl{}

// NewWalker creates a Walker for body.
//
// Parameters:
//   - body: the rigid body to drive
//   - source: input source for Tick; may be nil when only Update is used
//   - cfg: walker tunables
//   - logger: structured logger; nil uses slog.Default()
//
// Returns:
//   - Walker: the newly created walker
//   - error: an error if the body is nil or the config is invalid
func NewWalker(body RigidBody, source input.Source, cfg Config, logger *slog.Logger) (Walker, error) {
	if body == nil {
		return nil, errors.New("walker needs a rigid body")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating walker: %w", err)
	}
	return &walkerImpl{
		mu:     &sync.Mutex{},
		cfg:    cfg,
		body:   body,
		source: source,
		logger: common.Coalesce(logger, slog.Default()),
	}, nil
}

func (w *walkerImpl) Tick(deltaTime float32) {
	if w.source == nil {
		return
	}
	w.Update(w.source.Frame(), deltaTime)
}

func (w *walkerImpl) Update(frame input.Frame, deltaTime float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if deltaTime <= 0 {
		return
	}

	// positive look turns clockwise seen from above
	if look := frame.LookAxis.X(); look >= w.cfg.LookDeadzone || look <= -w.cfg.LookDeadzone {
		w.body.SetYaw(common.WrapDegrees(w.body.Yaw() - look*w.cfg.TurnSpeed*deltaTime))
	}

	if move := frame.MoveAxis.Y(); move != 0 {
		forward := common.YawRotation(w.body.Yaw()).Rotate(mgl32.Vec3{0, 0, -1})
		w.body.MovePosition(w.body.Position().Add(forward.Mul(move * w.cfg.WalkSpeed * deltaTime)))
	}

	if frame.JumpPressed {
		w.body.ApplyImpulse(mgl32.Vec3{0, w.cfg.JumpImpulse, 0})
		w.logger.Debug("jump", slog.Any("position", w.body.Position()))
	}
}

func (w *walkerImpl) Body() RigidBody {
	return w.body
}
