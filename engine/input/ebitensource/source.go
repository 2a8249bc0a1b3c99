// Package ebitensource feeds ebiten's polled input into an input.Buffer.
//
// ebiten exposes input as state to poll from Game.Update rather than as
// callbacks, so Poll turns state edges into the Buffer's producer calls.
package ebitensource

import (
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadzone = 0.2

// Source is an input.Source backed by ebiten.
type Source interface {
	input.Source

	// Poll reads ebiten's input state into the buffer. Call it once per
	// Game.Update before any consumer takes a frame.
	Poll()

	// Buffer returns the buffer Poll writes into.
	Buffer() input.Buffer
}

type sourceImpl struct {
	buffer       input.Buffer
	screenHeight func() int
	keys         map[uint32]ebiten.Key
	buttons      map[uint32]ebiten.MouseButton

	lastX, lastY int
	hasCursor    bool
}

var _ Source = &sourceImpl{}

// keyMap translates the common key codes into ebiten keys.
var keyMap = map[uint32]ebiten.Key{
	common.KeyW:     ebiten.KeyW,
	common.KeyA:     ebiten.KeyA,
	common.KeyS:     ebiten.KeyS,
	common.KeyD:     ebiten.KeyD,
	common.KeyQ:     ebiten.KeyQ,
	common.KeyE:     ebiten.KeyE,
	common.KeyR:     ebiten.KeyR,
	common.KeySpace: ebiten.KeySpace,
	common.KeyEsc:   ebiten.KeyEscape,
	common.KeyRight: ebiten.KeyArrowRight,
	common.KeyLeft:  ebiten.KeyArrowLeft,
	common.KeyDown:  ebiten.KeyArrowDown,
	common.KeyUp:    ebiten.KeyArrowUp,
}

var buttonMap = map[uint32]ebiten.MouseButton{
	common.MouseButtonLeft:   ebiten.MouseButtonLeft,
	common.MouseButtonRight:  ebiten.MouseButtonRight,
	common.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// NewSource creates a Source writing into buffer.
//
// Parameters:
//   - buffer: the buffer to feed; nil creates one with default bindings
//   - screenHeight: returns the logical screen height used to move the cursor origin to the bottom-left
//
// Returns:
//   - Source: the newly created source
func NewSource(buffer input.Buffer, screenHeight func() int) Source {
	if buffer == nil {
		buffer = input.NewBuffer()
	}
	return &sourceImpl{
		buffer:       buffer,
		screenHeight: screenHeight,
		keys:         keyMap,
		buttons:      buttonMap,
	}
}

func (s *sourceImpl) Poll() {
	for code, key := range s.keys {
		if inpututil.IsKeyJustPressed(key) {
			s.buffer.KeyDown(code)
		}
		if inpututil.IsKeyJustReleased(key) {
			s.buffer.KeyUp(code)
		}
	}
	for code, button := range s.buttons {
		if inpututil.IsMouseButtonJustPressed(button) {
			s.buffer.MouseButtonDown(code)
		}
		if inpututil.IsMouseButtonJustReleased(button) {
			s.buffer.MouseButtonUp(code)
		}
	}

	if x, y := ebiten.CursorPosition(); !s.hasCursor || x != s.lastX || y != s.lastY {
		s.lastX, s.lastY, s.hasCursor = x, y, true
		s.buffer.PointerMoved(float32(x), float32(s.height()-y))
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.buffer.Scroll(float32(wy))
	}

	s.pollGamepad()
}

// pollGamepad maps the first standard gamepad's sticks to the move and look axes.
func (s *sourceImpl) pollGamepad() {
	gamepads := ebiten.GamepadIDs()
	if len(gamepads) == 0 {
		return
	}
	id := gamepads[0]

	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)

	// pad Y grows downward; the move axis Y is forward
	s.buffer.SetAxis(stick(lx, -ly))
	s.buffer.SetLookAxis(stick(rx, -ry))
}

func (s *sourceImpl) height() int {
	if s.screenHeight == nil {
		_, h := ebiten.WindowSize()
		return h
	}
	return s.screenHeight()
}

func (s *sourceImpl) Frame() input.Frame {
	return s.buffer.Snapshot()
}

func (s *sourceImpl) Buffer() input.Buffer {
	return s.buffer
}

// stick returns the axis, or zero inside the deadzone.
func stick(x, y float64) mgl32.Vec2 {
	if math.Hypot(x, y) <= stickDeadzone {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{float32(x), float32(y)}
}
