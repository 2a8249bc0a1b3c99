package window

import (
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
)

// BindInput routes the window's input callbacks into buf.
// Any callbacks previously set for keys, buttons, pointer and wheel are replaced.
//
// Parameters:
//   - w: the window producing events
//   - buf: the buffer the frame loop snapshots
//
// Returns:
//   - func(): unbinds the callbacks and resets the buffer
func BindInput(w Window, buf input.Buffer) func() {
	w.SetKeyDownCallback(buf.KeyDown)
	w.SetKeyUpCallback(buf.KeyUp)
	w.SetMouseButtonDownCallback(func(button uint32, x, y float32) {
		buf.PointerMoved(x, y)
		buf.MouseButtonDown(button)
	})
	w.SetMouseButtonUpCallback(func(button uint32, x, y float32) {
		buf.PointerMoved(x, y)
		buf.MouseButtonUp(button)
	})
	w.SetMouseMoveCallback(buf.PointerMoved)
	w.SetScrollCallback(buf.Scroll)

	return func() {
		w.SetKeyDownCallback(nil)
		w.SetKeyUpCallback(nil)
		w.SetMouseButtonDownCallback(nil)
		w.SetMouseButtonUpCallback(nil)
		w.SetMouseMoveCallback(nil)
		w.SetScrollCallback(nil)
		buf.Reset()
	}
}
