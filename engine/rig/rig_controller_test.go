package rig

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idleSource() input.Source {
	return input.SourceFunc(func() input.Frame { return input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}} })
}

func newTestController(t *testing.T, cfg Config, src input.Source) (RigController, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	rc, err := NewRigController(src, sink,
		WithConfig(cfg),
		WithRayCaster(fakeRays{}),
		WithViewport(fakeViewport{1000, 800}),
	)
	require.NoError(t, err)
	return rc, sink
}

func TestNewRigControllerMissingCollaborators(t *testing.T) {
	sink := &recordingSink{}

	_, err := NewRigController(nil, sink)
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = NewRigController(idleSource(), nil)
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = NewRigController(idleSource(), sink, WithViewport(fakeViewport{1000, 800}))
	assert.ErrorIs(t, err, ErrMissingCollaborator, "drag-pan needs a ray caster")

	_, err = NewRigController(idleSource(), sink, WithRayCaster(fakeRays{}))
	assert.ErrorIs(t, err, ErrMissingCollaborator, "edge scroll needs a viewport")

	cfg := DefaultConfig()
	cfg.EnableDragPan = false
	cfg.UseScreenEdge = false
	_, err = NewRigController(idleSource(), sink, WithConfig(cfg))
	assert.NoError(t, err, "optional collaborators are only required by their features")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted height bounds", func(c *Config) { c.MinHeight, c.MaxHeight = 60, 10 }},
		{"negative damping", func(c *Config) { c.Damping = -1 }},
		{"negative acceleration", func(c *Config) { c.Acceleration = -0.5 }},
		{"initial height outside bounds", func(c *Config) { c.InitialOffset = mgl32.Vec3{0, 80, 10} }},
		{"edge tolerance too wide", func(c *Config) { c.EdgeTolerance = 0.5 }},
		{"unknown smoothing", func(c *Config) { c.Smoothing = "cubic" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			_, err = NewRigController(idleSource(), &recordingSink{}, WithConfig(cfg),
				WithRayCaster(fakeRays{}), WithViewport(fakeViewport{1000, 800}))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestNewRigControllerPushesInitialPose(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialPosition = mgl32.Vec3{3, 0, 4}
	cfg.InitialYaw = 45
	rc, sink := newTestController(t, cfg, idleSource())

	assert.Equal(t, mgl32.Vec3{3, 0, 4}, sink.position)
	assert.Equal(t, float32(45), sink.yaw)
	assert.Equal(t, cfg.InitialOffset, sink.offset)
	assert.Equal(t, mgl32.Vec3{3, 0, 4}, sink.target)
	assert.Equal(t, float32(10), rc.Height())
}

func TestUpdateMovesForwardAndReaims(t *testing.T) {
	rc, sink := newTestController(t, DefaultConfig(), idleSource())

	frame := input.Frame{MoveAxis: mgl32.Vec2{0, 1}, HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}}
	for i := 0; i < 10; i++ {
		rc.Update(frame, 1.0/60)
	}

	pos := rc.BasePosition()
	assert.Less(t, pos.Z(), float32(0), "forward is away from the camera")
	assert.InDelta(t, 0, pos.X(), 1e-5)
	assert.Equal(t, pos, sink.position)
	assert.Equal(t, pos, sink.target, "camera looks at the base every frame")
	assert.Equal(t, 11, sink.lookAts)
}

func TestUpdateDeadzoneProducesNoDisplacement(t *testing.T) {
	rc, _ := newTestController(t, DefaultConfig(), idleSource())
	rc.Update(input.Frame{MoveAxis: mgl32.Vec2{0.2, 0.2}, HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}}, 1.0/60)
	assert.Equal(t, mgl32.Vec3{}, rc.BasePosition())
}

func TestUpdateRotationGating(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRotationSpeed = 1.5
	rc, sink := newTestController(t, cfg, idleSource())

	rc.Update(input.Frame{RotateEvents: []float32{10}, HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}}, 1.0/60)
	assert.Equal(t, float32(0), rc.Yaw())

	rc.Update(input.Frame{RotateEvents: []float32{10}, RotateHeld: true, HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}}, 1.0/60)
	assert.Equal(t, float32(15), rc.Yaw())
	assert.Equal(t, float32(15), sink.yaw)
}

func TestUpdateZoomClampsToMax(t *testing.T) {
	rc, _ := newTestController(t, DefaultConfig(), idleSource())

	rc.Update(input.Frame{ZoomEvents: []float32{1000}, HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}}, 1.0/60)
	assert.Equal(t, float32(50), rc.State().Zoom.TargetHeight)

	for i := 0; i < 600; i++ {
		rc.Update(input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}}, 1.0/60)
	}
	assert.InDelta(t, 50, rc.Height(), 1e-3)
}

func TestUpdateDragPansOppositeToPointer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseScreenEdge = false
	rc, _ := newTestController(t, cfg, idleSource())

	rc.Update(input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{100, 100}, DragHeld: true, DragPressed: true}, 1.0/60)
	assert.True(t, rc.State().Drag.Active)
	assert.Equal(t, mgl32.Vec3{}, rc.BasePosition())

	// pointer moves right by 10 ground units, so the world is pulled right and the base moves left
	rc.Update(input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{200, 100}, DragHeld: true}, 1.0/60)
	assert.Less(t, rc.BasePosition().X(), float32(0))

	rc.Update(input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{300, 100}}, 1.0/60)
	assert.False(t, rc.State().Drag.Active)
}

func TestUpdateCapabilityFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableRotate = false
	cfg.EnableZoom = false
	cfg.EnableDragPan = false
	rc, _ := newTestController(t, cfg, idleSource())

	rc.Update(input.Frame{
		HasPointer:       true,
		PointerScreenPos: mgl32.Vec2{100, 100},
		RotateEvents:     []float32{30},
		RotateHeld:       true,
		ZoomEvents:       []float32{5},
		DragHeld:         true,
		DragPressed:      true,
	}, 1.0/60)

	st := rc.State()
	assert.Equal(t, float32(0), st.Rig.BaseYaw)
	assert.Equal(t, float32(10), st.Zoom.TargetHeight)
	assert.False(t, st.Drag.Active)
}

func TestUpdateEdgeScrollMovesBase(t *testing.T) {
	rc, _ := newTestController(t, DefaultConfig(), idleSource())
	rc.Update(input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{10, 400}}, 1.0/60)
	pos := rc.BasePosition()
	assert.Less(t, pos.X(), float32(0))
	assert.InDelta(t, 0, pos.Z(), 1e-6)
}

func TestIdleBufferDoesNotEdgeScroll(t *testing.T) {
	buf := input.NewBuffer()
	sink := &recordingSink{}
	rc, err := NewRigController(buf, sink, WithRayCaster(fakeRays{}), WithViewport(fakeViewport{1000, 800}))
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		rc.Tick(1.0 / 60)
	}
	assert.Equal(t, mgl32.Vec3{}, rc.BasePosition(), "no cursor reported yet, so no screen edge is touched")

	buf.PointerMoved(10, 400)
	rc.Tick(1.0 / 60)
	assert.Less(t, rc.BasePosition().X(), float32(0))
}

func TestDragPressWithoutPointerDoesNotAnchor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseScreenEdge = false
	rc, _ := newTestController(t, cfg, idleSource())

	rc.Update(input.Frame{DragHeld: true, DragPressed: true}, 1.0/60)
	assert.False(t, rc.State().Drag.Active)

	rc.Update(input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{200, 100}, DragHeld: true}, 1.0/60)
	assert.Equal(t, mgl32.Vec3{}, rc.BasePosition())
}

func TestDragSettlesWithoutOscillating(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseScreenEdge = false
	sink := &recordingSink{}
	rc, err := NewRigController(idleSource(), sink, WithConfig(cfg), WithRayCaster(followRays{sink: sink}))
	require.NoError(t, err)

	// grab x=10 on the ground, then hold the pointer 10 units to the right of it
	const dt = 0.1
	rc.Update(input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{100, 100}, DragHeld: true, DragPressed: true}, dt)
	require.True(t, rc.State().Drag.Active)

	hold := input.Frame{HasPointer: true, PointerScreenPos: mgl32.Vec2{200, 100}, DragHeld: true}
	prev := rc.BasePosition().X()
	for i := 0; i < 30; i++ {
		rc.Update(hold, dt)
		x := rc.BasePosition().X()
		assert.LessOrEqual(t, x, prev, "frame %d moved back toward the anchor", i)
		prev = x
	}

	rc.Update(hold, dt)
	assert.InDelta(t, prev, rc.BasePosition().X(), 1e-4, "base has come to rest")
	assert.InDelta(t, -10, prev, 0.5)
}

func TestWithStateCarriesMotionAndZoom(t *testing.T) {
	rc, _ := newTestController(t, DefaultConfig(), idleSource())
	rc.Update(input.Frame{ZoomEvents: []float32{1000}}, 1.0/60)
	for i := 0; i < 10; i++ {
		rc.Update(input.Frame{MoveAxis: mgl32.Vec2{1, 0}}, 1.0/60)
	}
	st := rc.State()
	st.Drag = DragState{Active: true, Anchor: mgl32.Vec3{1, 0, 1}}
	require.Greater(t, st.Motion.CurrentSpeed, float32(0))

	cfg := DefaultConfig()
	cfg.MaxHeight = 30
	sink := &recordingSink{}
	next, err := NewRigController(idleSource(), sink, WithConfig(cfg), WithState(st),
		WithRayCaster(fakeRays{}), WithViewport(fakeViewport{1000, 800}))
	require.NoError(t, err)

	got := next.State()
	require.Greater(t, st.Rig.Offset.Y(), float32(30))
	assert.Equal(t, st.Rig.BasePosition, got.Rig.BasePosition)
	assert.Equal(t, st.Rig.BaseYaw, got.Rig.BaseYaw)
	assert.Equal(t, float32(30), got.Rig.Offset.Y(), "height is clamped into the new bounds")
	assert.Equal(t, st.Rig.Offset.Z(), got.Rig.Offset.Z())
	assert.Equal(t, st.Motion, got.Motion)
	assert.Equal(t, float32(30), got.Zoom.TargetHeight)
	assert.Equal(t, float32(30), got.Zoom.CurrentHeight)
	assert.False(t, got.Drag.Active)
	assert.Equal(t, st.Rig.BasePosition, sink.position)

	// with no input the carried velocity keeps the base coasting
	next.Update(input.Frame{}, 1.0/60)
	assert.Greater(t, next.BasePosition().X(), st.Rig.BasePosition.X())
}

func TestTickPullsFromSource(t *testing.T) {
	calls := 0
	src := input.SourceFunc(func() input.Frame {
		calls++
		return input.Frame{MoveAxis: mgl32.Vec2{1, 0}, HasPointer: true, PointerScreenPos: mgl32.Vec2{500, 400}}
	})
	rc, _ := newTestController(t, DefaultConfig(), src)

	rc.Tick(1.0 / 60)
	assert.Equal(t, 1, calls)
	assert.Greater(t, rc.BasePosition().X(), float32(0))
}

func TestNonPositiveDeltaIsIgnored(t *testing.T) {
	rc, sink := newTestController(t, DefaultConfig(), idleSource())
	before := rc.State()

	rc.Update(input.Frame{MoveAxis: mgl32.Vec2{1, 0}, ZoomEvents: []float32{3}}, 0)
	rc.Update(input.Frame{MoveAxis: mgl32.Vec2{1, 0}}, -0.1)

	assert.Equal(t, before, rc.State())
	assert.Equal(t, 1, sink.lookAts)
}

func TestCloseStopsUpdates(t *testing.T) {
	calls := 0
	src := input.SourceFunc(func() input.Frame {
		calls++
		return input.Frame{MoveAxis: mgl32.Vec2{1, 0}}
	})
	rc, _ := newTestController(t, DefaultConfig(), src)

	rc.Close()
	assert.False(t, rc.Enabled())
	rc.Tick(1.0 / 60)
	rc.Update(input.Frame{MoveAxis: mgl32.Vec2{1, 0}}, 1.0/60)

	assert.Equal(t, 0, calls, "a closed controller does not consume input")
	assert.Equal(t, mgl32.Vec3{}, rc.BasePosition())
	rc.Close()
}
