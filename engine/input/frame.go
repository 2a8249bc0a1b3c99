// Package input collapses platform input into one Frame per simulation tick.
// Platform callbacks write into a Buffer; the frame loop takes a Snapshot at
// frame start so every consumer sees the same input for the whole frame.
package input

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is the input collapsed for a single frame.
type Frame struct {
	// MoveAxis is the keyboard/pad axis in [-1,1]^2. X is right, Y is forward.
	MoveAxis mgl32.Vec2
	// LookAxis is the secondary stick or look axis in [-1,1]^2.
	LookAxis mgl32.Vec2
	// PointerScreenPos is the pointer position in pixels with the origin at the bottom-left corner.
	PointerScreenPos mgl32.Vec2
	// HasPointer is false until the platform has reported a cursor position.
	// PointerScreenPos is meaningless while it is false.
	HasPointer bool
	// ZoomEvents holds one scaled value per discrete zoom event, in arrival order.
	ZoomEvents []float32
	// RotateEvents holds one value per discrete rotate event, in arrival order.
	RotateEvents []float32

	DragHeld    bool
	DragPressed bool
	RotateHeld  bool
	JumpPressed bool
}

// ZoomDelta returns the sum of all zoom events in the frame.
func (f Frame) ZoomDelta() float32 {
	return common.Sum(f.ZoomEvents)
}

// RotateDelta returns the sum of all rotate events in the frame.
func (f Frame) RotateDelta() float32 {
	return common.Sum(f.RotateEvents)
}

// Source provides the input for the current frame.
type Source interface {
	// Frame returns the input snapshot for the frame about to be simulated.
	// Event streams are consumed by the call.
	//
	// Returns:
	//   - Frame: the collapsed input
	Frame() Frame
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() Frame

// Frame calls f.
func (f SourceFunc) Frame() Frame {
	return f()
}
