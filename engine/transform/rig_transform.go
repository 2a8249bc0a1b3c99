package transform

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// transformCount is an atomic counter used to hand out unique transform IDs.
var transformCount atomic.Uint64

type rigTransformImpl struct {
	mu *sync.Mutex
	id uint64

	// base rig
	position mgl32.Vec3
	yaw      float32

	// camera relative to the base, in the base's yaw frame
	offset mgl32.Vec3

	// world-space point the camera is aimed at
	target    mgl32.Vec3
	hasTarget bool
}

// RigTransform is a two-level transform: a base that carries position and yaw,
// and a child camera placed at a local offset from the base and aimed at a world point.
// All setters are immediate-mode and idempotent.
type RigTransform interface {
	// ID returns the transform's unique identifier.
	//
	// Returns:
	//   - uint64: the transform ID
	ID() uint64

	// Position returns the base's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: base position
	Position() mgl32.Vec3

	// Yaw returns the base's yaw in degrees about world +Y.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// LocalOffset returns the camera position relative to the base, before yaw is applied.
	//
	// Returns:
	//   - mgl32.Vec3: local offset
	LocalOffset() mgl32.Vec3

	// Target returns the world-space point the camera looks at.
	// Defaults to the base position until LookAt is called.
	//
	// Returns:
	//   - mgl32.Vec3: look-at target
	Target() mgl32.Vec3

	// Eye returns the camera's world-space position (base + yaw-rotated offset).
	//
	// Returns:
	//   - mgl32.Vec3: camera position
	Eye() mgl32.Vec3

	// Forward returns the camera's unit viewing direction in world space.
	//
	// Returns:
	//   - mgl32.Vec3: forward vector
	Forward() mgl32.Vec3

	// Right returns the camera's unit right vector in world space.
	//
	// Returns:
	//   - mgl32.Vec3: right vector
	Right() mgl32.Vec3

	// Orientation returns the camera's world rotation.
	//
	// Returns:
	//   - mgl32.Quat: camera rotation
	Orientation() mgl32.Quat

	// SetPosition moves the base.
	//
	// Parameters:
	//   - position: new base position
	SetPosition(position mgl32.Vec3)

	// SetYaw sets the base yaw.
	//
	// Parameters:
	//   - yaw: angle in degrees
	SetYaw(yaw float32)

	// SetLocalOffset places the camera relative to the base.
	//
	// Parameters:
	//   - offset: local offset
	SetLocalOffset(offset mgl32.Vec3)

	// LookAt aims the camera at a world-space point.
	//
	// Parameters:
	//   - target: world-space point
	LookAt(target mgl32.Vec3)
}

var _ RigTransform = &rigTransformImpl{}

// NewRigTransform creates a RigTransform at the origin with the camera 10 units above and behind the base.
//
// Parameters:
//   - options: functional options to configure the transform
//
// Returns:
//   - RigTransform: the newly created transform
func NewRigTransform(options ...RigTransformOption) RigTransform {
	t := &rigTransformImpl{
		mu:     &sync.Mutex{},
		id:     transformCount.Add(1),
		offset: mgl32.Vec3{0, 10, 10},
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *rigTransformImpl) ID() uint64 {
	return t.id
}

func (t *rigTransformImpl) Position() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position
}

func (t *rigTransformImpl) Yaw() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.yaw
}

func (t *rigTransformImpl) LocalOffset() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

func (t *rigTransformImpl) Target() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.targetLocked()
}

func (t *rigTransformImpl) Eye() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.eyeLocked()
}

func (t *rigTransformImpl) Forward() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.forwardLocked()
}

func (t *rigTransformImpl) Right() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.forwardLocked()
	r := f.Cross(common.WorldUp)
	if r.Len() < 1e-6 {
		// looking straight down: right follows the base yaw
		return common.YawRotation(t.yaw).Rotate(mgl32.Vec3{1, 0, 0})
	}
	return r.Normalize()
}

func (t *rigTransformImpl) Orientation() mgl32.Quat {
	t.mu.Lock()
	defer t.mu.Unlock()
	eye := t.eyeLocked()
	target := t.targetLocked()
	if eye.Sub(target).Len() < 1e-6 {
		return common.YawRotation(t.yaw)
	}
	up := common.WorldUp
	if f := target.Sub(eye).Normalize(); f.Cross(up).Len() < 1e-6 {
		up = common.YawRotation(t.yaw).Rotate(mgl32.Vec3{0, 0, -1})
	}
	return mgl32.QuatLookAtV(eye, target, up)
}

func (t *rigTransformImpl) SetPosition(position mgl32.Vec3) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.position = position
}

func (t *rigTransformImpl) SetYaw(yaw float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.yaw = common.WrapDegrees(yaw)
}

func (t *rigTransformImpl) SetLocalOffset(offset mgl32.Vec3) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = offset
}

func (t *rigTransformImpl) LookAt(target mgl32.Vec3) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.target = target
	t.hasTarget = true
}

// --- internal helpers ---

// eyeLocked composes base position, yaw and offset. Caller must hold the mutex.
func (t *rigTransformImpl) eyeLocked() mgl32.Vec3 {
	return t.position.Add(common.YawRotation(t.yaw).Rotate(t.offset))
}

func (t *rigTransformImpl) targetLocked() mgl32.Vec3 {
	if !t.hasTarget {
		return t.position
	}
	return t.target
}

// forwardLocked falls back to the yaw-rotated local forward when eye and target coincide.
// Caller must hold the mutex.
func (t *rigTransformImpl) forwardLocked() mgl32.Vec3 {
	d := t.targetLocked().Sub(t.eyeLocked())
	if d.Len() < 1e-6 {
		return common.YawRotation(t.yaw).Rotate(mgl32.Vec3{0, 0, -1})
	}
	return d.Normalize()
}
