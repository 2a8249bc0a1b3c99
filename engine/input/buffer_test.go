package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferMoveAxisFromKeys(t *testing.T) {
	b := NewBuffer()

	b.KeyDown(common.KeyW)
	b.KeyDown(common.KeyD)
	assert.Equal(t, mgl32.Vec2{1, 1}, b.Snapshot().MoveAxis)

	b.KeyDown(common.KeyA)
	assert.Equal(t, mgl32.Vec2{0, 1}, b.Snapshot().MoveAxis, "opposite keys cancel")

	b.KeyUp(common.KeyW)
	b.KeyUp(common.KeyD)
	assert.Equal(t, mgl32.Vec2{-1, 0}, b.Snapshot().MoveAxis, "held keys persist across snapshots")
}

func TestBufferStickOverridesKeys(t *testing.T) {
	b := NewBuffer()
	b.KeyDown(common.KeyW)
	b.SetAxis(mgl32.Vec2{0.5, 0})
	assert.Equal(t, mgl32.Vec2{0.5, 0}, b.Snapshot().MoveAxis)

	b.SetAxis(mgl32.Vec2{})
	assert.Equal(t, mgl32.Vec2{0, 1}, b.Snapshot().MoveAxis)
}

func TestBufferEventStreamsAreConsumed(t *testing.T) {
	b := NewBuffer(WithZoomScale(0.5), WithRotateSensitivity(2))

	b.Scroll(1)
	b.Scroll(-3)
	b.PointerMoved(100, 100)
	b.PointerMoved(103, 90)
	b.PointerMoved(101, 90)

	f := b.Snapshot()
	assert.Equal(t, []float32{-0.5, 1.5}, f.ZoomEvents)
	assert.Equal(t, []float32{6, -4}, f.RotateEvents)
	assert.InDelta(t, 1.0, f.ZoomDelta(), 1e-6)
	assert.InDelta(t, 2.0, f.RotateDelta(), 1e-6)
	assert.Equal(t, mgl32.Vec2{101, 90}, f.PointerScreenPos)

	next := b.Snapshot()
	assert.Empty(t, next.ZoomEvents)
	assert.Empty(t, next.RotateEvents)
	assert.Equal(t, mgl32.Vec2{101, 90}, next.PointerScreenPos, "pointer position is state, not an event")
}

func TestBufferDragPressLatch(t *testing.T) {
	b := NewBuffer()

	b.MouseButtonDown(common.MouseButtonMiddle)
	f := b.Snapshot()
	assert.True(t, f.DragHeld)
	assert.True(t, f.DragPressed)

	f = b.Snapshot()
	assert.True(t, f.DragHeld)
	assert.False(t, f.DragPressed, "press is reported on one frame only")

	b.MouseButtonUp(common.MouseButtonMiddle)
	f = b.Snapshot()
	assert.False(t, f.DragHeld)
	assert.False(t, f.DragPressed)
}

func TestBufferRotateHeldAndJump(t *testing.T) {
	b := NewBuffer()
	b.MouseButtonDown(common.MouseButtonRight)
	b.KeyDown(common.KeySpace)

	f := b.Snapshot()
	assert.True(t, f.RotateHeld)
	assert.False(t, f.DragHeld)
	assert.True(t, f.JumpPressed)

	assert.False(t, b.Snapshot().JumpPressed, "holding jump does not repeat")
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer()
	b.KeyDown(common.KeyW)
	b.MouseButtonDown(common.MouseButtonRight)
	b.Scroll(1)
	b.Reset()

	f := b.Snapshot()
	assert.Equal(t, mgl32.Vec2{}, f.MoveAxis)
	assert.False(t, f.RotateHeld)
	assert.Empty(t, f.ZoomEvents)
}

func TestBufferHasPointer(t *testing.T) {
	b := NewBuffer()
	f := b.Snapshot()
	assert.False(t, f.HasPointer)
	assert.Empty(t, f.RotateEvents)

	b.PointerMoved(10, 20)
	f = b.Snapshot()
	assert.True(t, f.HasPointer)
	assert.Equal(t, mgl32.Vec2{10, 20}, f.PointerScreenPos)
	assert.Empty(t, f.RotateEvents, "the first cursor report is not a movement")

	b.Reset()
	assert.False(t, b.Snapshot().HasPointer)
}

func TestBufferConcurrentProducer(t *testing.T) {
	b := NewBuffer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			b.Scroll(1)
		}
	}()

	total := 0
	for i := 0; i < 50; i++ {
		total += len(b.Snapshot().ZoomEvents)
	}
	wg.Wait()
	total += len(b.Snapshot().ZoomEvents)
	assert.Equal(t, 1000, total, "no event is lost or duplicated across snapshots")
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string][]string{"forward": {"up"}, "jump": nil}, "left", "")
	require.NoError(t, err)
	assert.Equal(t, []uint32{common.KeyUp}, b.Forward)
	assert.Equal(t, DefaultBindings().Jump, b.Jump)
	assert.Equal(t, uint32(common.MouseButtonLeft), b.DragButton)
	assert.Equal(t, uint32(common.MouseButtonRight), b.RotateButton)

	_, err = ParseBindings(map[string][]string{"fly": {"w"}}, "", "")
	assert.Error(t, err)
	_, err = ParseBindings(map[string][]string{"forward": {"f13"}}, "", "")
	assert.Error(t, err)
	_, err = ParseBindings(nil, "", "thumb")
	assert.Error(t, err)
}

func TestSourceFunc(t *testing.T) {
	var src Source = SourceFunc(func() Frame { return Frame{RotateHeld: true} })
	assert.True(t, src.Frame().RotateHeld)
}
