package rig

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// RayCaster turns screen positions into world rays. engine/camera.Camera satisfies it.
type RayCaster interface {
	// CastRay builds a world-space ray through a screen point (pixels, origin bottom-left).
	CastRay(screen mgl32.Vec2) (common.Ray, bool)
	// IntersectPlane returns the distance and point where ray meets plane.
	IntersectPlane(ray common.Ray, plane common.Plane) (float32, mgl32.Vec3, bool)
}

// Viewport reports the screen size used for the edge-scroll thresholds.
type Viewport interface {
	Width() int
	Height() int
}

// TransformSink receives the rig pose every frame. All calls are immediate-mode setters.
type TransformSink interface {
	SetPosition(position mgl32.Vec3)
	SetLocalOffset(offset mgl32.Vec3)
	SetYaw(yaw float32)
	LookAt(target mgl32.Vec3)
}
