package rig

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// MotionState is the planar integrator's memory between frames.
type MotionState struct {
	CurrentSpeed       float32
	HorizontalVelocity mgl32.Vec3
	LastBasePosition   mgl32.Vec3

	// lastDeltaTime is the step that produced the move from LastBasePosition.
	lastDeltaTime float32
}

// integrate advances base by one frame and returns the new base position.
// With a direction above the deadzone the speed ramps toward MaxSpeed; otherwise the
// velocity observed over the previous frame decays toward zero (coasting).
func (m *MotionState) integrate(cfg *Config, base, dir mgl32.Vec3, dt float32) mgl32.Vec3 {
	var observed mgl32.Vec3
	if m.lastDeltaTime > 0 {
		observed = base.Sub(m.LastBasePosition).Mul(1 / m.lastDeltaTime)
		observed[1] = 0
	}
	m.LastBasePosition = base
	m.lastDeltaTime = dt

	dir[1] = 0
	if dir.LenSqr() > cfg.Deadzone {
		f := cfg.Smoothing.Factor(cfg.Acceleration, dt)
		m.CurrentSpeed = common.Lerp(m.CurrentSpeed, cfg.MaxSpeed, f)
		m.HorizontalVelocity = dir.Mul(m.CurrentSpeed)
		return base.Add(m.HorizontalVelocity.Mul(dt))
	}

	f := cfg.Smoothing.Factor(cfg.Damping, dt)
	m.CurrentSpeed = common.Lerp(m.CurrentSpeed, 0, f)
	v := common.LerpVec3(observed, mgl32.Vec3{}, f)
	if v.LenSqr() <= cfg.CoastCutoff {
		v = mgl32.Vec3{}
	}
	m.HorizontalVelocity = v
	return base.Add(v.Mul(dt))
}
