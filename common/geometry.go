package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line starting at Origin and extending along Direction.
// Direction is expected to be unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Point returns the position at distance t along the ray.
func (r Ray) Point(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Plane is an infinite plane through Point with the given Normal.
type Plane struct {
	Normal mgl32.Vec3
	Point  mgl32.Vec3
}

// GroundPlane is the world plane y = 0 facing up.
var GroundPlane = Plane{Normal: WorldUp}

// IntersectRayPlane intersects a ray with a plane.
// Rays parallel to the plane, or whose hit lies behind the origin, do not intersect.
//
// Parameters:
//   - ray: the ray to cast
//   - plane: the plane to hit
//
// Returns:
//   - float32: distance along the ray to the hit point
//   - mgl32.Vec3: the hit point
//   - bool: true if the ray hits the plane in front of its origin
func IntersectRayPlane(ray Ray, plane Plane) (float32, mgl32.Vec3, bool) {
	denom := plane.Normal.Dot(ray.Direction)
	if denom > -1e-6 && denom < 1e-6 {
		return 0, mgl32.Vec3{}, false
	}
	t := plane.Normal.Dot(plane.Point.Sub(ray.Origin)) / denom
	if t < 0 {
		return 0, mgl32.Vec3{}, false
	}
	return t, ray.Point(t), true
}
