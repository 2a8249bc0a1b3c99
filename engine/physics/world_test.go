package physics

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/Carmen-Shannon/oxy-rts/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/Carmen-Shannon/oxy-rts/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyMovePositionReachesTargetInOneTick(t *testing.T) {
	w := NewWorld()
	b := w.NewBody(WithStartPosition(mgl32.Vec3{1, 0, 2}))

	b.MovePosition(mgl32.Vec3{1, 0, 1.5})
	assert.Equal(t, mgl32.Vec3{1, 0, 2}, b.Position(), "moves wait for the next tick")

	w.Tick(0.1)
	p := b.Position()
	assert.InDelta(t, 1, p.X(), 1e-4)
	assert.InDelta(t, 1.5, p.Z(), 1e-4)

	w.Tick(0.1)
	assert.True(t, b.Position().ApproxEqualThreshold(p, 1e-5), "a consumed move leaves the body at rest")
}

func TestBodyYawRoundTrip(t *testing.T) {
	w := NewWorld()
	b := w.NewBody()

	b.SetYaw(90)
	assert.InDelta(t, 90, b.Yaw(), 1e-3)

	b.SetYaw(-10)
	assert.InDelta(t, 350, b.Yaw(), 1e-3)
}

func TestBodyJumpRisesAndLands(t *testing.T) {
	w := NewWorld(WithGravity(9.81))
	b := w.NewBody()
	assert.False(t, b.Airborne())

	b.ApplyImpulse(mgl32.Vec3{0, 5, 0})
	w.Tick(0.1)
	require.True(t, b.Airborne())
	assert.InDelta(t, 0.402, b.Height(), 1e-3)

	for range 30 {
		w.Tick(0.1)
	}
	assert.False(t, b.Airborne())
	assert.Zero(t, b.Height())
	assert.Zero(t, b.Velocity().Y())
}

func TestTickIgnoresNonPositiveDelta(t *testing.T) {
	w := NewWorld()
	b := w.NewBody()
	b.MovePosition(mgl32.Vec3{3, 0, 0})

	w.Tick(0)
	w.Tick(-1)
	assert.Equal(t, mgl32.Vec3{}, b.Position())

	w.Tick(0.5)
	assert.InDelta(t, 3, b.Position().X(), 1e-4)
}

func TestWalkerDrivesBody(t *testing.T) {
	w := NewWorld()
	b := w.NewBody()
	walker, err := locomotion.NewWalker(b, nil, locomotion.DefaultConfig(), nil)
	require.NoError(t, err)

	walker.Update(input.Frame{MoveAxis: mgl32.Vec2{0, 1}}, 0.1)
	w.Tick(0.1)

	p := b.Position()
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, -0.5, p.Z(), 1e-4, "yaw 0 walks toward -Z")

	walker.Update(input.Frame{JumpPressed: true}, 0.1)
	w.Tick(0.1)
	assert.True(t, b.Airborne())
}

func TestKinematicRigFollowsController(t *testing.T) {
	w := NewWorld()
	krig := w.NewKinematicRig(transform.WithLocalOffset(mgl32.Vec3{0, 10, 10}))

	cfg := rig.DefaultConfig()
	cfg.EnableDragPan = false
	cfg.UseScreenEdge = false
	src := input.SourceFunc(func() input.Frame { return input.Frame{MoveAxis: mgl32.Vec2{1, 0}} })

	rc, err := rig.NewRigController(src, krig, rig.WithConfig(cfg))
	require.NoError(t, err)

	for range 10 {
		rc.Tick(0.05)
		w.Tick(0.05)
	}

	base := rc.BasePosition()
	assert.Greater(t, base.X(), float32(0))
	assert.True(t, krig.Position().ApproxEqualThreshold(base, 1e-5), "body %v base %v", krig.Position(), base)
	assert.InDelta(t, float64(base.X()), krig.CP().Position().X, 1e-5)
	assert.True(t, krig.Eye().ApproxEqualThreshold(base.Add(mgl32.Vec3{0, rc.Height(), 10}), 1e-3), "eye %v", krig.Eye())
}

func TestBodiesListsCreationOrder(t *testing.T) {
	w := NewWorld()
	a := w.NewBody(WithRadius(1))
	b := w.NewBody(WithMass(2))
	bodies := w.Bodies()
	require.Len(t, bodies, 2)
	assert.Same(t, a.(*bodyImpl), bodies[0].(*bodyImpl))
	assert.Same(t, b.(*bodyImpl), bodies[1].(*bodyImpl))
	assert.Equal(t, float32(1), bodies[0].Radius())
}
