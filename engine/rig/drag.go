package rig

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// DragState holds the ground point grabbed when the drag button went down.
type DragState struct {
	Anchor mgl32.Vec3
	Active bool
}

// groundHit casts the pointer onto the ground plane.
func groundHit(rays RayCaster, screen mgl32.Vec2) (mgl32.Vec3, bool) {
	ray, ok := rays.CastRay(screen)
	if !ok {
		return mgl32.Vec3{}, false
	}
	_, point, ok := rays.IntersectPlane(ray, common.GroundPlane)
	return point, ok
}

// sample returns this frame's drag contribution, anchor minus the current ground point.
// The anchor is captured only on the press frame and kept until release; frames where
// the pointer misses the ground contribute nothing, and so do frames with no known pointer.
func (d *DragState) sample(frame input.Frame, rays RayCaster) (contribution mgl32.Vec3, anchored bool) {
	if !frame.DragHeld || (frame.DragPressed && !frame.HasPointer) {
		d.Active = false
		d.Anchor = mgl32.Vec3{}
		return mgl32.Vec3{}, false
	}
	if !frame.HasPointer {
		return mgl32.Vec3{}, false
	}

	if frame.DragPressed {
		point, ok := groundHit(rays, frame.PointerScreenPos)
		d.Active = ok
		d.Anchor = point
		return mgl32.Vec3{}, ok
	}

	if !d.Active {
		return mgl32.Vec3{}, false
	}
	point, ok := groundHit(rays, frame.PointerScreenPos)
	if !ok {
		return mgl32.Vec3{}, false
	}
	contribution = d.Anchor.Sub(point)
	contribution[1] = 0
	return contribution, false
}

// limitDragStep scales a drag contribution so that one integration step at speed
// never carries the base past the anchor.
func limitDragStep(contribution mgl32.Vec3, speed, dt float32) mgl32.Vec3 {
	if s := speed * dt; s > 1 {
		return contribution.Mul(1 / s)
	}
	return contribution
}
