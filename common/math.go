package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// WorldUp is the +Y axis of the right-handed, Y-up world.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Clamp restricts v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b by t. t is not clamped.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - t: interpolation factor
//
// Returns:
//   - T: a + (b-a)*t
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// ExpFactor returns the blend factor 1 - e^(-rate*dt) of an exponential approach.
// Applying it every frame converges toward a target independently of the frame rate.
// The result is in [0, 1] for non-negative rate and dt.
//
// Parameters:
//   - rate: approach rate per second
//   - dt: elapsed time in seconds
//
// Returns:
//   - float32: blend factor in [0, 1]
func ExpFactor(rate, dt float32) float32 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return Clamp(float32(1-math.Exp(-float64(rate)*float64(dt))), 0, 1)
}

// LerpFactor returns the blend factor rate*dt clamped to [0, 1].
// Unlike ExpFactor the resulting motion depends on the frame rate.
//
// Parameters:
//   - rate: approach rate per second
//   - dt: elapsed time in seconds
//
// Returns:
//   - float32: blend factor in [0, 1]
func LerpFactor(rate, dt float32) float32 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return Clamp(rate*dt, 0, 1)
}

// LerpVec3 interpolates each component of a toward b by t.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// FlattenXZ zeroes the Y component of v and normalizes the result.
// ok is false when the horizontal part is too short to normalize.
func FlattenXZ(v mgl32.Vec3) (flat mgl32.Vec3, ok bool) {
	flat = mgl32.Vec3{v.X(), 0, v.Z()}
	l := flat.Len()
	if l < 1e-6 {
		return mgl32.Vec3{}, false
	}
	return flat.Mul(1 / l), true
}

// WrapDegrees maps an angle in degrees to [0, 360).
func WrapDegrees(deg float32) float32 {
	w := float32(math.Mod(float64(deg), 360))
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}

// YawRotation returns the rotation of yaw degrees about world +Y.
//
// Parameters:
//   - yaw: angle in degrees, counter-clockwise when viewed from above
//
// Returns:
//   - mgl32.Quat: the rotation quaternion
func YawRotation(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(yaw), WorldUp)
}
