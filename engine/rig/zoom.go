package rig

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ZoomState tracks the requested and actual camera height above the base.
type ZoomState struct {
	TargetHeight  float32
	CurrentHeight float32
}

// applyEvents retargets the height for each zoom event above the threshold.
// Every event is measured from the current height and clamped to the bounds.
// Returns true if the target changed.
func (z *ZoomState) applyEvents(cfg *Config, events []float32) bool {
	changed := false
	for _, e := range events {
		if e <= cfg.ZoomThreshold && e >= -cfg.ZoomThreshold {
			continue
		}
		target := common.Clamp(z.CurrentHeight+e*cfg.StepSize, cfg.MinHeight, cfg.MaxHeight)
		if target != z.TargetHeight {
			z.TargetHeight = target
			changed = true
		}
	}
	return changed
}

// pivot is where the offset is heading this frame: at the target height, and pushed back
// along the local forward axis in proportion to the remaining climb.
func (z *ZoomState) pivot(cfg *Config, offset mgl32.Vec3) mgl32.Vec3 {
	p := mgl32.Vec3{offset.X(), z.TargetHeight, offset.Z()}
	return p.Sub(localForward.Mul(cfg.ZoomSpeed * (z.TargetHeight - offset.Y())))
}

// dampOffset moves offset toward the zoom pivot and returns the new offset.
func (z *ZoomState) dampOffset(cfg *Config, offset mgl32.Vec3, dt float32) mgl32.Vec3 {
	f := cfg.Smoothing.Factor(cfg.ZoomDamping, dt)
	offset = common.LerpVec3(offset, z.pivot(cfg, offset), f)
	z.CurrentHeight = offset.Y()
	return offset
}
