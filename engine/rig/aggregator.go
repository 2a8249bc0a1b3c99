package rig

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// localForward is the rig's forward axis before yaw is applied.
var localForward = mgl32.Vec3{0, 0, -1}

// planarBasis returns the camera's forward and right vectors flattened onto the ground plane.
// The camera sits at the yaw-rotated offset and looks back at the base, so its forward is
// the negated horizontal offset. A camera straight above the base uses the yaw forward.
func planarBasis(yaw float32, offset mgl32.Vec3) (forward, right mgl32.Vec3) {
	rot := common.YawRotation(yaw)
	forward, ok := common.FlattenXZ(rot.Rotate(offset).Mul(-1))
	if !ok {
		forward = rot.Rotate(localForward)
	}
	right = mgl32.Vec3{-forward.Z(), 0, forward.X()}
	return forward, right
}

// keyboardDirection projects the move axis onto the planar basis.
// Contributions inside the deadzone are dropped and longer ones are capped at unit length.
func keyboardDirection(cfg *Config, axis mgl32.Vec2, forward, right mgl32.Vec3) mgl32.Vec3 {
	dir := right.Mul(axis.X()).Add(forward.Mul(axis.Y()))
	sqr := dir.LenSqr()
	if sqr <= cfg.Deadzone {
		return mgl32.Vec3{}
	}
	if sqr > 1 {
		dir = dir.Normalize()
	}
	return dir
}

// edgeDirection adds a full unit step along -right/+right and -forward/+forward when
// the pointer is within the edge tolerance of the viewport border.
func edgeDirection(cfg *Config, pointer mgl32.Vec2, forward, right mgl32.Vec3, viewport Viewport) mgl32.Vec3 {
	if !cfg.UseScreenEdge || viewport == nil {
		return mgl32.Vec3{}
	}
	w, h := float32(viewport.Width()), float32(viewport.Height())
	if w <= 0 || h <= 0 {
		return mgl32.Vec3{}
	}

	var dir mgl32.Vec3
	switch x := pointer.X(); {
	case x < cfg.EdgeTolerance*w:
		dir = dir.Sub(right)
	case x > (1-cfg.EdgeTolerance)*w:
		dir = dir.Add(right)
	}
	switch y := pointer.Y(); {
	case y < cfg.EdgeTolerance*h:
		dir = dir.Sub(forward)
	case y > (1-cfg.EdgeTolerance)*h:
		dir = dir.Add(forward)
	}
	if dir.LenSqr() <= cfg.Deadzone {
		return mgl32.Vec3{}
	}
	return dir
}

// aggregate sums the keyboard and screen-edge contributions for one frame.
// A frame without a known pointer contributes no edge scroll.
func aggregate(cfg *Config, frame input.Frame, forward, right mgl32.Vec3, viewport Viewport) mgl32.Vec3 {
	dir := keyboardDirection(cfg, frame.MoveAxis, forward, right)
	if frame.HasPointer {
		dir = dir.Add(edgeDirection(cfg, frame.PointerScreenPos, forward, right, viewport))
	}
	return dir
}
