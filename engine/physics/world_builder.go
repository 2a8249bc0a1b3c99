package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// WorldOption is a functional option for configuring a World.
type WorldOption func(*worldImpl)

// BodyOption is a functional option for configuring a Body.
type BodyOption func(*bodyImpl)

// WithGravity sets the synthetic vertical gravity.
//
// Parameters:
//   - gravity: downward acceleration in units per second squared
//
// Returns:
//   - WorldOption: functional option to set the gravity
func WithGravity(gravity float32) WorldOption {
	return func(w *worldImpl) {
		w.gravity = gravity
	}
}

// WithDamping sets the fraction of planar velocity kept each second.
//
// Parameters:
//   - damping: 1 keeps all velocity, 0 stops bodies immediately
//
// Returns:
//   - WorldOption: functional option to set the damping
func WithDamping(damping float32) WorldOption {
	return func(w *worldImpl) {
		w.damping = damping
	}
}

// WithRadius sets the body's collision radius.
func WithRadius(radius float32) BodyOption {
	return func(b *bodyImpl) {
		if radius > 0 {
			b.radius = radius
		}
	}
}

// WithMass sets the body's mass.
func WithMass(mass float32) BodyOption {
	return func(b *bodyImpl) {
		if mass > 0 {
			b.mass = mass
		}
	}
}

// WithStartPosition places the body. The Y component becomes the initial height.
func WithStartPosition(position mgl32.Vec3) BodyOption {
	return func(b *bodyImpl) {
		b.start = position
	}
}
