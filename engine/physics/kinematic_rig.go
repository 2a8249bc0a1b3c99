package physics

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/Carmen-Shannon/oxy-rts/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"
)

// KinematicRig is a RigTransform whose base position lives on a kinematic cp body.
// Yaw, offset and look target stay on the transform.
type KinematicRig interface {
	transform.RigTransform

	// CP exposes the underlying Chipmunk body.
	CP() *cp.Body
}

type kinematicRigImpl struct {
	transform.RigTransform

	mu     *sync.Mutex
	body   *cp.Body
	height float32
}

var (
	_ KinematicRig      = &kinematicRigImpl{}
	_ rig.TransformSink = &kinematicRigImpl{}
)

func (k *kinematicRigImpl) Position() mgl32.Vec3 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return fromPlane(k.body.Position(), k.height)
}

func (k *kinematicRigImpl) SetPosition(position mgl32.Vec3) {
	k.mu.Lock()
	k.body.SetPosition(toPlane(position))
	k.height = position.Y()
	k.mu.Unlock()

	k.RigTransform.SetPosition(position)
}

func (k *kinematicRigImpl) CP() *cp.Body {
	return k.body
}
