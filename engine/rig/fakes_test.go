package rig

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// fakeViewport is a fixed-size screen.
type fakeViewport struct {
	w, h int
}

func (v fakeViewport) Width() int  { return v.w }
func (v fakeViewport) Height() int { return v.h }

// fakeRays maps a screen point (x, y) straight down onto the ground point (x/10, 0, -y/10).
// Points with x < 0 miss the ground.
type fakeRays struct{}

func (fakeRays) CastRay(screen mgl32.Vec2) (common.Ray, bool) {
	if screen.X() < 0 {
		return common.Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, 1, 0}}, true
	}
	return common.Ray{
		Origin:    mgl32.Vec3{screen.X() / 10, 10, -screen.Y() / 10},
		Direction: mgl32.Vec3{0, -1, 0},
	}, true
}

func (fakeRays) IntersectPlane(ray common.Ray, plane common.Plane) (float32, mgl32.Vec3, bool) {
	return common.IntersectRayPlane(ray, plane)
}

// recordingSink remembers the last value of every setter and counts LookAt calls.
type recordingSink struct {
	position mgl32.Vec3
	offset   mgl32.Vec3
	yaw      float32
	target   mgl32.Vec3
	lookAts  int
}

func (s *recordingSink) SetPosition(p mgl32.Vec3)    { s.position = p }
func (s *recordingSink) SetLocalOffset(o mgl32.Vec3) { s.offset = o }
func (s *recordingSink) SetYaw(y float32)            { s.yaw = y }
func (s *recordingSink) LookAt(t mgl32.Vec3) {
	s.target = t
	s.lookAts++
}

// followRays behaves like fakeRays but moves with the rig, so the ground point under
// a fixed screen position shifts as the base pans.
type followRays struct {
	sink *recordingSink
}

func (r followRays) CastRay(screen mgl32.Vec2) (common.Ray, bool) {
	return common.Ray{
		Origin:    r.sink.position.Add(mgl32.Vec3{screen.X() / 10, 10, -screen.Y() / 10}),
		Direction: mgl32.Vec3{0, -1, 0},
	}, true
}

func (followRays) IntersectPlane(ray common.Ray, plane common.Plane) (float32, mgl32.Vec3, bool) {
	return common.IntersectRayPlane(ray, plane)
}
