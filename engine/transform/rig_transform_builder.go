package transform

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// RigTransformOption is a functional option for configuring a RigTransform.
type RigTransformOption func(*rigTransformImpl)

// WithPosition sets the initial base position.
//
// Parameters:
//   - position: world-space base position
//
// Returns:
//   - RigTransformOption: functional option to set the position
func WithPosition(position mgl32.Vec3) RigTransformOption {
	return func(t *rigTransformImpl) {
		t.position = position
	}
}

// WithYaw sets the initial base yaw.
//
// Parameters:
//   - yaw: angle in degrees
//
// Returns:
//   - RigTransformOption: functional option to set the yaw
func WithYaw(yaw float32) RigTransformOption {
	return func(t *rigTransformImpl) {
		t.yaw = common.WrapDegrees(yaw)
	}
}

// WithLocalOffset sets the initial camera offset relative to the base.
//
// Parameters:
//   - offset: local offset
//
// Returns:
//   - RigTransformOption: functional option to set the offset
func WithLocalOffset(offset mgl32.Vec3) RigTransformOption {
	return func(t *rigTransformImpl) {
		t.offset = offset
	}
}
