package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewpoint supplies the eye and look-at target the camera renders from.
// engine/transform.RigTransform satisfies it.
type Viewpoint interface {
	Eye() mgl32.Vec3
	Target() mgl32.Vec3
}

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	width  int
	height int

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	viewpoint Viewpoint
}

// Camera defines the interface for the perspective camera.
// The camera holds perspective and viewport settings and computes view/projection
// matrices from an attached Viewpoint. It also answers screen-to-world ray queries.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Width returns the viewport width in pixels.
	//
	// Returns:
	//   - int: viewport width
	Width() int

	// Height returns the viewport height in pixels.
	//
	// Returns:
	//   - int: viewport height
	Height() int

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the current combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: projection * view
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the view volume of the current matrices.
	//
	// Returns:
	//   - common.Frustum: planes extracted from the view-projection matrix
	Frustum() common.Frustum

	// Viewpoint returns the attached Viewpoint, or nil.
	//
	// Returns:
	//   - Viewpoint: the attached viewpoint or nil
	Viewpoint() Viewpoint

	// Update reads eye/target from the viewpoint and recomputes the matrices.
	// If no viewpoint is attached, this method does nothing.
	Update()

	// CastRay builds a world-space ray through a screen point.
	// Screen coordinates are in pixels with the origin at the bottom-left corner.
	// The matrices are refreshed from the viewpoint first.
	//
	// Parameters:
	//   - screen: pointer position in pixels
	//
	// Returns:
	//   - common.Ray: ray starting at the eye
	//   - bool: false if no viewpoint is attached or the viewport is empty
	CastRay(screen mgl32.Vec2) (common.Ray, bool)

	// IntersectPlane intersects a ray with a plane.
	//
	// Parameters:
	//   - ray: the ray to cast
	//   - plane: the plane to hit
	//
	// Returns:
	//   - float32: distance along the ray
	//   - mgl32.Vec3: hit point
	//   - bool: false if the ray misses
	IntersectPlane(ray common.Ray, plane common.Plane) (float32, mgl32.Vec3, bool)

	// Project maps a world-space point to screen coordinates (origin bottom-left).
	//
	// Parameters:
	//   - point: world-space point
	//
	// Returns:
	//   - mgl32.Vec2: screen position in pixels
	//   - bool: false if the point is behind the camera
	Project(point mgl32.Vec3) (mgl32.Vec2, bool)

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: up vector
	SetUp(up mgl32.Vec3)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetViewport sets the viewport size and derives the aspect ratio from it.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// SetViewpoint attaches a Viewpoint to the camera.
	//
	// Parameters:
	//   - vp: the viewpoint to attach
	SetViewpoint(vp Viewpoint)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings and an 800x600 viewport.
// A viewpoint must be attached via SetViewpoint or WithViewpoint before rays can be cast.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		up:                   common.WorldUp,
		fov:                  45.0 * (math.Pi / 180.0), // radians
		aspect:               800.0 / 600.0,
		near:                 0.1,
		far:                  1000.0,
		width:                800,
		height:               600,
		viewMatrix:           mgl32.Ident4(),
		projectionMatrix:     mgl32.Ident4(),
		viewProjectionMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

func (c *cameraImpl) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustum(c.viewProjectionMatrix)
}

func (c *cameraImpl) Viewpoint() Viewpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewpoint
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) CastRay(screen mgl32.Vec2) (common.Ray, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.viewpoint == nil || c.width <= 0 || c.height <= 0 {
		return common.Ray{}, false
	}
	c.updateMatrices()

	// view matrix rows are the camera's right, up and backward axes
	v := c.viewMatrix
	right := mgl32.Vec3{v[0], v[4], v[8]}
	up := mgl32.Vec3{v[1], v[5], v[9]}
	back := mgl32.Vec3{v[2], v[6], v[10]}

	ndcX := 2*screen.X()/float32(c.width) - 1
	ndcY := 2*screen.Y()/float32(c.height) - 1
	tanHalf := float32(math.Tan(float64(c.fov) / 2))

	dir := back.Mul(-1).
		Add(right.Mul(ndcX * tanHalf * c.aspect)).
		Add(up.Mul(ndcY * tanHalf))
	if dir.Len() < 1e-8 {
		return common.Ray{}, false
	}
	return common.Ray{Origin: c.viewpoint.Eye(), Direction: dir.Normalize()}, true
}

func (c *cameraImpl) IntersectPlane(ray common.Ray, plane common.Plane) (float32, mgl32.Vec3, bool) {
	return common.IntersectRayPlane(ray, plane)
}

func (c *cameraImpl) Project(point mgl32.Vec3) (mgl32.Vec2, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
	clip := c.viewProjectionMatrix.Mul4x1(point.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	win := mgl32.Project(point, c.viewMatrix, c.projectionMatrix, 0, 0, c.width, c.height)
	return mgl32.Vec2{win.X(), win.Y()}, true
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
	if width > 0 && height > 0 {
		c.aspect = float32(width) / float32(height)
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetViewpoint(vp Viewpoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewpoint = vp
	c.updateMatrices()
}

// updateMatrices recomputes view, projection and view-projection.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	if c.viewpoint != nil {
		eye := c.viewpoint.Eye()
		target := c.viewpoint.Target()
		up := c.up
		if f := target.Sub(eye); f.Len() > 1e-6 && f.Normalize().Cross(up).Len() < 1e-6 {
			// straight down the up axis: pick a horizontal up so LookAt stays defined
			up = mgl32.Vec3{0, 0, -1}
		}
		c.viewMatrix = mgl32.LookAtV(eye, target, up)
	}
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
