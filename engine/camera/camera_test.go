package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRigCamera(offset mgl32.Vec3) (Camera, transform.RigTransform) {
	tr := transform.NewRigTransform(transform.WithLocalOffset(offset))
	tr.LookAt(tr.Position())
	cam := NewCamera(WithViewport(1000, 800), WithViewpoint(tr))
	return cam, tr
}

func TestCastRayThroughCenterHitsPivot(t *testing.T) {
	cam, _ := newRigCamera(mgl32.Vec3{0, 10, 10})

	ray, ok := cam.CastRay(mgl32.Vec2{500, 400})
	require.True(t, ok)
	_, hit, ok := cam.IntersectPlane(ray, common.GroundPlane)
	require.True(t, ok)
	assert.True(t, hit.ApproxEqualThreshold(mgl32.Vec3{}, 1e-3), "hit %v", hit)
}

func TestCastRayBottomLeftOrigin(t *testing.T) {
	cam, _ := newRigCamera(mgl32.Vec3{0, 10, 10})

	// lower on screen is closer to the camera, which sits at +Z
	ray, ok := cam.CastRay(mgl32.Vec2{500, 100})
	require.True(t, ok)
	_, hit, ok := cam.IntersectPlane(ray, common.GroundPlane)
	require.True(t, ok)
	assert.Greater(t, hit.Z(), float32(0))

	// left of center maps to -X
	ray, ok = cam.CastRay(mgl32.Vec2{100, 400})
	require.True(t, ok)
	_, hit, ok = cam.IntersectPlane(ray, common.GroundPlane)
	require.True(t, ok)
	assert.Less(t, hit.X(), float32(0))
}

func TestCastRayAboveHorizonMisses(t *testing.T) {
	cam, tr := newRigCamera(mgl32.Vec3{0, 1, 30})
	tr.LookAt(mgl32.Vec3{0, 1, 0})

	ray, ok := cam.CastRay(mgl32.Vec2{500, 790})
	require.True(t, ok)
	_, _, ok = cam.IntersectPlane(ray, common.GroundPlane)
	assert.False(t, ok)
}

func TestCastRayWithoutViewpoint(t *testing.T) {
	cam := NewCamera()
	_, ok := cam.CastRay(mgl32.Vec2{1, 1})
	assert.False(t, ok)

	cam.SetViewpoint(transform.NewRigTransform())
	cam.SetViewport(0, 0)
	_, ok = cam.CastRay(mgl32.Vec2{1, 1})
	assert.False(t, ok)
}

func TestProjectRoundTrip(t *testing.T) {
	cam, _ := newRigCamera(mgl32.Vec3{0, 15, 12})
	world := mgl32.Vec3{3, 0, -2}

	screen, ok := cam.Project(world)
	require.True(t, ok)
	ray, ok := cam.CastRay(screen)
	require.True(t, ok)
	_, hit, ok := cam.IntersectPlane(ray, common.GroundPlane)
	require.True(t, ok)
	assert.True(t, hit.ApproxEqualThreshold(world, 1e-2), "hit %v", hit)
}

func TestTopDownViewIsDefined(t *testing.T) {
	cam, _ := newRigCamera(mgl32.Vec3{0, 20, 0})
	ray, ok := cam.CastRay(mgl32.Vec2{500, 400})
	require.True(t, ok)
	_, hit, ok := cam.IntersectPlane(ray, common.GroundPlane)
	require.True(t, ok)
	assert.True(t, hit.ApproxEqualThreshold(mgl32.Vec3{}, 1e-3), "hit %v", hit)
}

func TestSetViewportUpdatesAspect(t *testing.T) {
	cam := NewCamera()
	cam.SetViewport(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, cam.Aspect(), 1e-6)
	assert.Equal(t, 1920, cam.Width())
	assert.Equal(t, 1080, cam.Height())
}

func TestFrustumContainsPivot(t *testing.T) {
	cam, _ := newRigCamera(mgl32.Vec3{0, 10, 10})
	f := cam.Frustum()

	assert.True(t, f.ContainsSphere(mgl32.Vec3{}, 0))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 20}, 0), "behind the eye")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{100, 0, 0}, 0), "far off to the side")
	assert.True(t, f.ContainsSphere(mgl32.Vec3{100, 0, 0}, 200), "large sphere reaches into view")
}
