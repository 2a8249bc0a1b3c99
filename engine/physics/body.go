package physics

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/locomotion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// Body is a dynamic circle on the ground plane with a synthetic height.
// It satisfies locomotion.RigidBody.
type Body interface {
	locomotion.RigidBody

	// Height returns the height above the ground.
	Height() float32

	// Airborne reports whether the body is above the ground.
	Airborne() bool

	// Radius returns the collision radius.
	Radius() float32

	// Velocity returns the planar velocity lifted into world space, with the vertical speed in Y.
	Velocity() mgl32.Vec3

	// CP exposes the underlying Chipmunk body.
	CP() *cp.Body
}

type bodyImpl struct {
	mu *sync.Mutex

	radius float32
	mass   float32
	start  mgl32.Vec3

	body  *cp.Body
	shape *cp.Shape

	height        float32
	verticalSpeed float32
	moveTarget    mgl32.Vec3
	hasMoveTarget bool
}

var _ Body = &bodyImpl{}

// attach creates the cp body and shape. Rotation is locked; yaw is set explicitly.
func (b *bodyImpl) attach(space *cp.Space) {
	b.body = space.AddBody(cp.NewBody(float64(b.mass), math.Inf(1)))
	b.body.SetPosition(toPlane(b.start))
	b.shape = space.AddShape(cp.NewCircle(b.body, float64(b.radius), cp.Vector{}))
	b.shape.SetFriction(0.7)
	b.height = max(b.start.Y(), 0)
}

// beginStep converts a pending move into the velocity that reaches it within deltaTime.
func (b *bodyImpl) beginStep(deltaTime float32) {
	if !b.hasMoveTarget {
		return
	}
	pos := b.body.Position()
	target := toPlane(b.moveTarget)
	dt := float64(deltaTime)
	b.body.SetVelocity((target.X-pos.X)/dt, (target.Y-pos.Y)/dt)
}

// endStep integrates the height and clears a consumed move.
func (b *bodyImpl) endStep(deltaTime, gravity float32) {
	if b.hasMoveTarget {
		b.body.SetVelocityVector(cp.Vector{})
		b.hasMoveTarget = false
	}

	if b.height <= 0 && b.verticalSpeed <= 0 {
		b.height, b.verticalSpeed = 0, 0
		return
	}
	b.verticalSpeed -= gravity * deltaTime
	b.height += b.verticalSpeed * deltaTime
	if b.height <= 0 {
		b.height, b.verticalSpeed = 0, 0
	}
}

func (b *bodyImpl) Position() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fromPlane(b.body.Position(), b.height)
}

func (b *bodyImpl) Yaw() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return common.WrapDegrees(mgl32.RadToDeg(float32(b.body.Angle())))
}

// MovePosition schedules a planar move that the next Tick carries out through
// the solver, so the body still collides on the way. The Y component is ignored.
func (b *bodyImpl) MovePosition(position mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.moveTarget = position
	b.hasMoveTarget = true
}

func (b *bodyImpl) SetYaw(yaw float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.body.SetAngle(float64(mgl32.DegToRad(common.WrapDegrees(yaw))))
}

// ApplyImpulse pushes the body. The planar part goes to the solver and the
// vertical part launches the synthetic height.
func (b *bodyImpl) ApplyImpulse(impulse mgl32.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if planar := toPlane(impulse); planar.X != 0 || planar.Y != 0 {
		b.body.ApplyImpulseAtWorldPoint(planar, b.body.Position())
	}
	if impulse.Y() != 0 && b.mass > 0 {
		b.verticalSpeed += impulse.Y() / b.mass
		if b.height <= 0 && b.verticalSpeed > 0 {
			// lift off so the next step does not treat the body as grounded
			b.height = 1e-4
		}
	}
}

func (b *bodyImpl) Height() float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.height
}

func (b *bodyImpl) Airborne() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.height > 0
}

func (b *bodyImpl) Radius() float32 {
	return b.radius
}

func (b *bodyImpl) Velocity() mgl32.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.body.Velocity()
	return mgl32.Vec3{float32(v.X), b.verticalSpeed, float32(v.Y)}
}

func (b *bodyImpl) CP() *cp.Body {
	return b.body
}
