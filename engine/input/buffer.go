package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer accumulates asynchronous platform input until the frame loop collects it.
// Producer methods are called from the platform's event thread; Frame/Snapshot is
// called once per frame by the frame loop.
type Buffer interface {
	Source

	// KeyDown records a key press.
	//
	// Parameters:
	//   - code: the key code (see common key codes)
	KeyDown(code uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - code: the key code (see common key codes)
	KeyUp(code uint32)

	// MouseButtonDown records a pointer button press.
	//
	// Parameters:
	//   - button: the button code (see common mouse button codes)
	MouseButtonDown(button uint32)

	// MouseButtonUp records a pointer button release.
	//
	// Parameters:
	//   - button: the button code
	MouseButtonUp(button uint32)

	// PointerMoved records the pointer position. The horizontal motion since the
	// previous position is also recorded as a rotate event scaled by the rotate sensitivity.
	//
	// Parameters:
	//   - x, y: pointer position in pixels, origin at the bottom-left corner
	PointerMoved(x, y float32)

	// Scroll records a wheel event as a zoom event. Scrolling up (positive) zooms in,
	// so the stored value is -yOffset scaled by the zoom scale.
	//
	// Parameters:
	//   - yOffset: vertical wheel offset reported by the platform
	Scroll(yOffset float32)

	// SetAxis overrides the key-derived move axis, typically from a gamepad stick.
	// A zero axis falls back to the keys.
	//
	// Parameters:
	//   - axis: stick value in [-1,1]^2
	SetAxis(axis mgl32.Vec2)

	// SetLookAxis records the secondary look axis.
	//
	// Parameters:
	//   - axis: stick value in [-1,1]^2
	SetLookAxis(axis mgl32.Vec2)

	// Snapshot collects the current frame and clears the event streams and press latches.
	//
	// Returns:
	//   - Frame: the collapsed input
	Snapshot() Frame

	// Reset drops all buffered events and held state.
	Reset()
}

type bufferImpl struct {
	mu *sync.Mutex

	bindings          Bindings
	zoomScale         float32
	rotateSensitivity float32

	keysHeld    map[uint32]bool
	keysPressed map[uint32]bool

	buttonsHeld    map[uint32]bool
	buttonsPressed map[uint32]bool

	pointer    mgl32.Vec2
	hasPointer bool

	stickAxis mgl32.Vec2
	lookAxis  mgl32.Vec2

	zoomEvents   []float32
	rotateEvents []float32
}

var _ Buffer = &bufferImpl{}

// NewBuffer creates an input Buffer with the default bindings.
//
// Parameters:
//   - options: functional options to configure the buffer
//
// Returns:
//   - Buffer: the newly created buffer
func NewBuffer(options ...BufferOption) Buffer {
	b := &bufferImpl{
		mu:                &sync.Mutex{},
		bindings:          DefaultBindings(),
		zoomScale:         1,
		rotateSensitivity: 1,
		keysHeld:          make(map[uint32]bool),
		keysPressed:       make(map[uint32]bool),
		buttonsHeld:       make(map[uint32]bool),
		buttonsPressed:    make(map[uint32]bool),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *bufferImpl) KeyDown(code uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.keysHeld[code] {
		b.keysPressed[code] = true
	}
	b.keysHeld[code] = true
}

func (b *bufferImpl) KeyUp(code uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.keysHeld, code)
}

func (b *bufferImpl) MouseButtonDown(button uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.buttonsHeld[button] {
		b.buttonsPressed[button] = true
	}
	b.buttonsHeld[button] = true
}

func (b *bufferImpl) MouseButtonUp(button uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buttonsHeld, button)
}

func (b *bufferImpl) PointerMoved(x, y float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pos := mgl32.Vec2{x, y}
	if b.hasPointer {
		if dx := pos.X() - b.pointer.X(); dx != 0 {
			b.rotateEvents = append(b.rotateEvents, dx*b.rotateSensitivity)
		}
	}
	b.pointer = pos
	b.hasPointer = true
}

func (b *bufferImpl) Scroll(yOffset float32) {
	if yOffset == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.zoomEvents = append(b.zoomEvents, -yOffset*b.zoomScale)
}

func (b *bufferImpl) SetAxis(axis mgl32.Vec2) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stickAxis = axis
}

func (b *bufferImpl) SetLookAxis(axis mgl32.Vec2) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lookAxis = axis
}

func (b *bufferImpl) Frame() Frame {
	return b.Snapshot()
}

func (b *bufferImpl) Snapshot() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	f := Frame{
		MoveAxis:         b.moveAxis(),
		LookAxis:         b.lookAxis,
		PointerScreenPos: b.pointer,
		HasPointer:       b.hasPointer,
		ZoomEvents:       b.zoomEvents,
		RotateEvents:     b.rotateEvents,
		DragHeld:         b.buttonsHeld[b.bindings.DragButton],
		DragPressed:      b.buttonsPressed[b.bindings.DragButton],
		RotateHeld:       b.buttonsHeld[b.bindings.RotateButton],
		JumpPressed:      b.anyPressed(b.bindings.Jump),
	}

	b.zoomEvents = nil
	b.rotateEvents = nil
	clear(b.keysPressed)
	clear(b.buttonsPressed)
	return f
}

func (b *bufferImpl) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.keysHeld)
	clear(b.keysPressed)
	clear(b.buttonsHeld)
	clear(b.buttonsPressed)
	b.zoomEvents = nil
	b.rotateEvents = nil
	b.stickAxis = mgl32.Vec2{}
	b.lookAxis = mgl32.Vec2{}
	b.hasPointer = false
}

// moveAxis derives the move axis from held keys unless a stick axis is set.
// Caller must hold the mutex.
func (b *bufferImpl) moveAxis() mgl32.Vec2 {
	if b.stickAxis.X() != 0 || b.stickAxis.Y() != 0 {
		return b.stickAxis
	}
	var x, y float32
	if b.anyHeld(b.bindings.Right) {
		x++
	}
	if b.anyHeld(b.bindings.Left) {
		x--
	}
	if b.anyHeld(b.bindings.Forward) {
		y++
	}
	if b.anyHeld(b.bindings.Back) {
		y--
	}
	return mgl32.Vec2{x, y}
}

func (b *bufferImpl) anyHeld(codes []uint32) bool {
	for _, c := range codes {
		if b.keysHeld[c] {
			return true
		}
	}
	return false
}

func (b *bufferImpl) anyPressed(codes []uint32) bool {
	for _, c := range codes {
		if b.keysPressed[c] {
			return true
		}
	}
	return false
}
