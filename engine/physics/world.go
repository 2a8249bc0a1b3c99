// Package physics puts the rig and locomotion bodies into a Chipmunk space.
//
// The space lies on the ground plane: world X maps to space X and world Z maps
// to space Y. Height above the ground is kept outside the space and integrated
// with a synthetic gravity so jumps work on a top-down simulation.
package physics

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// World owns a cp.Space and the bodies created in it.
type World interface {
	// Tick advances the simulation. Pending MovePosition targets are turned into
	// velocities for this step, then height and gravity are integrated.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds, ignored when not positive
	Tick(deltaTime float32)

	// NewKinematicRig adds a kinematic body that mirrors a rig base position.
	//
	// Parameters:
	//   - options: transform options for the initial pose
	//
	// Returns:
	//   - KinematicRig: the rig transform backed by the body
	NewKinematicRig(options ...transform.RigTransformOption) KinematicRig

	// NewBody adds a dynamic circle body.
	//
	// Parameters:
	//   - options: functional options for radius, mass and start position
	//
	// Returns:
	//   - Body: the newly created body
	NewBody(options ...BodyOption) Body

	// Bodies returns the dynamic bodies in creation order.
	Bodies() []Body

	// Gravity returns the synthetic vertical gravity in units per second squared.
	Gravity() float32

	// Space exposes the underlying Chipmunk space.
	Space() *cp.Space
}

type worldImpl struct {
	mu      *sync.Mutex
	space   *cp.Space
	gravity float32
	damping float32
	bodies  []*bodyImpl
}

var _ World = &worldImpl{}

// NewWorld creates a World with no planar gravity and 9.81 vertical gravity.
//
// Parameters:
//   - options: functional options to configure the world
//
// Returns:
//   - World: the newly created world
func NewWorld(options ...WorldOption) World {
	w := &worldImpl{
		mu:      &sync.Mutex{},
		gravity: 9.81,
		damping: 1,
	}
	for _, option := range options {
		option(w)
	}

	w.space = cp.NewSpace()
	w.space.Iterations = 20
	w.space.SetGravity(cp.Vector{})
	w.space.SetDamping(float64(w.damping))
	return w
}

func (w *worldImpl) Tick(deltaTime float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if deltaTime <= 0 {
		return
	}

	for _, b := range w.bodies {
		b.beginStep(deltaTime)
	}
	w.space.Step(float64(deltaTime))
	for _, b := range w.bodies {
		b.endStep(deltaTime, w.gravity)
	}
}

func (w *worldImpl) NewKinematicRig(options ...transform.RigTransformOption) KinematicRig {
	w.mu.Lock()
	defer w.mu.Unlock()

	t := transform.NewRigTransform(options...)
	body := w.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(toPlane(t.Position()))
	return &kinematicRigImpl{
		RigTransform: t,
		mu:           w.mu,
		body:         body,
		height:       t.Position().Y(),
	}
}

func (w *worldImpl) NewBody(options ...BodyOption) Body {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := &bodyImpl{
		mu:     w.mu,
		radius: 0.5,
		mass:   1,
	}
	for _, option := range options {
		option(b)
	}
	b.attach(w.space)
	w.bodies = append(w.bodies, b)
	return b
}

func (w *worldImpl) Bodies() []Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Body, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b
	}
	return out
}

func (w *worldImpl) Gravity() float32 {
	return w.gravity
}

func (w *worldImpl) Space() *cp.Space {
	return w.space
}

// toPlane projects a world position onto the space plane.
func toPlane(p mgl32.Vec3) cp.Vector {
	return cp.Vector{X: float64(p.X()), Y: float64(p.Z())}
}

// fromPlane lifts a space position back into the world at the given height.
func fromPlane(v cp.Vector, height float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), height, float32(v.Y)}
}
