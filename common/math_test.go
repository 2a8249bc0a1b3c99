package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(5), Clamp(float32(1), 5, 50))
	assert.Equal(t, float32(50), Clamp(float32(80), 5, 50))
	assert.Equal(t, float32(12), Clamp(float32(12), 5, 50))
	assert.Equal(t, 3, Clamp(3, 0, 10))
}

func TestExpFactor(t *testing.T) {
	assert.Equal(t, float32(0), ExpFactor(0, 1))
	assert.Equal(t, float32(0), ExpFactor(10, 0))
	assert.InDelta(t, 1-math.Exp(-1), ExpFactor(10, 0.1), 1e-6)
	assert.InDelta(t, 1.0, ExpFactor(10, 100), 1e-6)

	// two half steps compose into one full step
	half := ExpFactor(10, 0.05)
	full := ExpFactor(10, 0.1)
	assert.InDelta(t, full, 1-(1-half)*(1-half), 1e-6)
}

func TestLerpFactorClampsToOne(t *testing.T) {
	assert.InDelta(t, 0.5, LerpFactor(10, 0.05), 1e-6)
	assert.Equal(t, float32(1), LerpFactor(10, 0.5))
	assert.Equal(t, float32(0), LerpFactor(-1, 0.5))
}

func TestFlattenXZ(t *testing.T) {
	flat, ok := FlattenXZ(mgl32.Vec3{3, 7, 4})
	assert.True(t, ok)
	assert.InDelta(t, 0.6, flat.X(), 1e-6)
	assert.Equal(t, float32(0), flat.Y())
	assert.InDelta(t, 0.8, flat.Z(), 1e-6)

	_, ok = FlattenXZ(mgl32.Vec3{0, -1, 0})
	assert.False(t, ok)
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-720, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapDegrees(tt.in), 1e-4, "wrap %v", tt.in)
	}
}

func TestYawRotationTurnsForwardLeft(t *testing.T) {
	forward := mgl32.Vec3{0, 0, -1}
	turned := YawRotation(90).Rotate(forward)
	assert.InDelta(t, -1, turned.X(), 1e-5)
	assert.InDelta(t, 0, turned.Z(), 1e-5)
}

func TestCoalesceAndSum(t *testing.T) {
	assert.Equal(t, "title", Coalesce("", "title", "other"))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, float32(1.5), Sum([]float32{0.5, 1, 0}))
	assert.Equal(t, float32(0), Sum[float32](nil))
}
