package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

// Bindings maps key and button codes to the actions the Frame exposes.
type Bindings struct {
	Forward []uint32
	Back    []uint32
	Left    []uint32
	Right   []uint32
	Jump    []uint32

	DragButton   uint32
	RotateButton uint32
}

// DefaultBindings returns WASD plus arrow keys, middle-button drag and right-button rotate.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:      []uint32{common.KeyW, common.KeyUp},
		Back:         []uint32{common.KeyS, common.KeyDown},
		Left:         []uint32{common.KeyA, common.KeyLeft},
		Right:        []uint32{common.KeyD, common.KeyRight},
		Jump:         []uint32{common.KeySpace},
		DragButton:   common.MouseButtonMiddle,
		RotateButton: common.MouseButtonRight,
	}
}

// ParseBindings resolves key and button names into Bindings.
// Empty lists keep the default binding for that action.
//
// Parameters:
//   - names: action name to key names ("forward", "back", "left", "right", "jump")
//   - dragButton: button name for drag-pan, empty for the default
//   - rotateButton: button name for rotation, empty for the default
//
// Returns:
//   - Bindings: the resolved bindings
//   - error: an error if a name is unknown
func ParseBindings(names map[string][]string, dragButton, rotateButton string) (Bindings, error) {
	b := DefaultBindings()
	targets := map[string]*[]uint32{
		"forward": &b.Forward,
		"back":    &b.Back,
		"left":    &b.Left,
		"right":   &b.Right,
		"jump":    &b.Jump,
	}
	for action, keys := range names {
		target, ok := targets[action]
		if !ok {
			return Bindings{}, fmt.Errorf("unknown input action %q", action)
		}
		if len(keys) == 0 {
			continue
		}
		codes := make([]uint32, 0, len(keys))
		for _, k := range keys {
			code, ok := common.KeyCodes[k]
			if !ok {
				return Bindings{}, fmt.Errorf("unknown key %q for action %q", k, action)
			}
			codes = append(codes, code)
		}
		*target = codes
	}
	if dragButton != "" {
		code, ok := common.MouseButtons[dragButton]
		if !ok {
			return Bindings{}, fmt.Errorf("unknown drag button %q", dragButton)
		}
		b.DragButton = code
	}
	if rotateButton != "" {
		code, ok := common.MouseButtons[rotateButton]
		if !ok {
			return Bindings{}, fmt.Errorf("unknown rotate button %q", rotateButton)
		}
		b.RotateButton = code
	}
	return b, nil
}

// BufferOption is a functional option for configuring a Buffer.
type BufferOption func(*bufferImpl)

// WithBindings sets the key and button bindings.
//
// Parameters:
//   - bindings: the bindings to use
//
// Returns:
//   - BufferOption: functional option to set the bindings
func WithBindings(bindings Bindings) BufferOption {
	return func(b *bufferImpl) {
		b.bindings = bindings
	}
}

// WithZoomScale sets the factor applied to wheel offsets before they become zoom events.
//
// Parameters:
//   - scale: multiplier for wheel offsets
//
// Returns:
//   - BufferOption: functional option to set the zoom scale
func WithZoomScale(scale float32) BufferOption {
	return func(b *bufferImpl) {
		b.zoomScale = scale
	}
}

// WithRotateSensitivity sets the factor applied to horizontal pointer motion before it becomes a rotate event.
//
// Parameters:
//   - sensitivity: multiplier for pointer pixels
//
// Returns:
//   - BufferOption: functional option to set the rotate sensitivity
func WithRotateSensitivity(sensitivity float32) BufferOption {
	return func(b *bufferImpl) {
		b.rotateSensitivity = sensitivity
	}
}
