// Package rig implements the RTS camera rig: a base that pans and yaws over the ground
// plane, and a camera offset above and behind it that zooms along a tilted axis.
//
// Each frame the controller runs, in order: input aggregation, rotation, zoom target
// update, drag sampling, planar integration, offset damping and the look-at re-aim.
package rig

import (
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraRig is the pose the controller owns: base position and yaw plus the
// camera offset in the base's local frame.
type CameraRig struct {
	BasePosition mgl32.Vec3
	BaseYaw      float32
	Offset       mgl32.Vec3
}

// State is a copy of everything the controller mutates per frame.
type State struct {
	Rig    CameraRig
	Motion MotionState
	Zoom   ZoomState
	Drag   DragState
}

// RigController drives a TransformSink from per-frame input.
type RigController interface {
	// Tick pulls a frame from the input source and runs Update with it.
	// Satisfies the engine's system interface.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds since the previous tick
	Tick(deltaTime float32)

	// Update advances the rig by one frame using the given input.
	// Frames with a non-positive deltaTime are ignored.
	//
	// Parameters:
	//   - frame: input collapsed for this frame
	//   - deltaTime: elapsed time in seconds since the previous frame
	Update(frame input.Frame, deltaTime float32)

	// State returns a snapshot of the rig, motion, zoom and drag state.
	//
	// Returns:
	//   - State: copy of the controller state
	State() State

	// BasePosition returns the base rig position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space base position
	BasePosition() mgl32.Vec3

	// Yaw returns the base yaw in degrees, in [0, 360).
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Height returns the current camera height above the base.
	//
	// Returns:
	//   - float32: offset height
	Height() float32

	// Config returns the tunables the controller was built with.
	//
	// Returns:
	//   - Config: the controller config
	Config() Config

	// Enabled reports whether the controller still accepts frames.
	//
	// Returns:
	//   - bool: false after Close
	Enabled() bool

	// Close disables the controller. Later Tick and Update calls do nothing.
	Close()
}
