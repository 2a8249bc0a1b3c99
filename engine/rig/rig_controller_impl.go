package rig

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// rigControllerImpl is the single implementation of RigController.
// Every capability (drag-pan, edge scroll, zoom, rotate) is a config flag on the same type.
type rigControllerImpl struct {
	mu *sync.Mutex

	cfg    Config
	logger *slog.Logger

	source   input.Source
	sink     TransformSink
	rays     RayCaster
	viewport Viewport

	rig    CameraRig
	motion MotionState
	zoom   ZoomState
	drag   DragState

	resumeFrom *State
	closed     bool
}

// Compile-time interface compliance check
var _ RigController = &rigControllerImpl{}

// NewRigController creates a rig controller and pushes its initial pose to the sink.
// Drag-pan needs a RayCaster and edge scroll needs a Viewport; both are supplied as options.
//
// Parameters:
//   - source: input source read by Tick
//   - sink: transform that receives the rig pose
//   - options: functional options to configure the controller
//
// Returns:
//   - RigController: the newly created controller
//   - error: ErrMissingCollaborator or ErrInvalidConfig when construction is not possible
func NewRigController(source input.Source, sink TransformSink, options ...RigControllerOption) (RigController, error) {
	rc := &rigControllerImpl{
		mu:     &sync.Mutex{},
		cfg:    DefaultConfig(),
		logger: slog.Default(),
		source: source,
		sink:   sink,
	}
	for _, option := range options {
		option(rc)
	}

	if rc.source == nil {
		return nil, fmt.Errorf("%w: input source is nil", ErrMissingCollaborator)
	}
	if rc.sink == nil {
		return nil, fmt.Errorf("%w: transform sink is nil", ErrMissingCollaborator)
	}
	if err := rc.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating rig controller: %w", err)
	}
	if rc.cfg.EnableDragPan && rc.rays == nil {
		return nil, fmt.Errorf("%w: drag-pan is enabled but no ray caster was given", ErrMissingCollaborator)
	}
	if rc.cfg.UseScreenEdge && rc.viewport == nil {
		return nil, fmt.Errorf("%w: edge scroll is enabled but no viewport was given", ErrMissingCollaborator)
	}
	rc.cfg.Smoothing = common.Coalesce(rc.cfg.Smoothing, SmoothingExponential)

	rc.rig = CameraRig{
		BasePosition: rc.cfg.InitialPosition,
		BaseYaw:      common.WrapDegrees(rc.cfg.InitialYaw),
		Offset:       rc.cfg.InitialOffset,
	}
	rc.motion.LastBasePosition = rc.rig.BasePosition
	rc.zoom = ZoomState{TargetHeight: rc.rig.Offset.Y(), CurrentHeight: rc.rig.Offset.Y()}
	if rc.resumeFrom != nil {
		rc.resume(*rc.resumeFrom)
		rc.resumeFrom = nil
	}
	rc.push()

	rc.logger.Info("rig controller created",
		slog.Any("position", rc.rig.BasePosition),
		slog.Float64("height", float64(rc.rig.Offset.Y())),
		slog.String("smoothing", string(rc.cfg.Smoothing)),
		slog.Bool("drag_pan", rc.cfg.EnableDragPan),
		slog.Bool("screen_edge", rc.cfg.UseScreenEdge),
		slog.Bool("zoom", rc.cfg.EnableZoom),
		slog.Bool("rotate", rc.cfg.EnableRotate),
	)
	return rc, nil
}

func (rc *rigControllerImpl) Tick(deltaTime float32) {
	if !rc.Enabled() {
		return
	}
	rc.Update(rc.source.Frame(), deltaTime)
}

func (rc *rigControllerImpl) Update(frame input.Frame, deltaTime float32) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.closed || deltaTime <= 0 {
		return
	}
	cfg := &rc.cfg

	forward, right := planarBasis(rc.rig.BaseYaw, rc.rig.Offset)
	dir := aggregate(cfg, frame, forward, right, rc.viewport)

	if cfg.EnableRotate {
		rc.rig.BaseYaw = applyRotateEvents(cfg, rc.rig.BaseYaw, frame.RotateEvents, frame.RotateHeld)
	}

	if cfg.EnableZoom && rc.zoom.applyEvents(cfg, frame.ZoomEvents) {
		rc.logger.Debug("zoom target", slog.Float64("height", float64(rc.zoom.TargetHeight)))
	}

	if cfg.EnableDragPan {
		contribution, anchored := rc.drag.sample(frame, rc.rays)
		switch {
		case anchored:
			rc.logger.Debug("drag anchored", slog.Any("anchor", rc.drag.Anchor))
		case frame.DragPressed && frame.DragHeld:
			rc.logger.Debug("drag press missed the ground", slog.Any("pointer", frame.PointerScreenPos))
		}
		// the integrator never runs faster than this, so the drag step stays inside the gap
		dir = dir.Add(limitDragStep(contribution, max(rc.motion.CurrentSpeed, cfg.MaxSpeed), deltaTime))
	}

	rc.rig.BasePosition = rc.motion.integrate(cfg, rc.rig.BasePosition, dir, deltaTime)
	rc.rig.Offset = rc.zoom.dampOffset(cfg, rc.rig.Offset, deltaTime)
	rc.push()
}

func (rc *rigControllerImpl) State() State {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return State{Rig: rc.rig, Motion: rc.motion, Zoom: rc.zoom, Drag: rc.drag}
}

func (rc *rigControllerImpl) BasePosition() mgl32.Vec3 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.rig.BasePosition
}

func (rc *rigControllerImpl) Yaw() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.rig.BaseYaw
}

func (rc *rigControllerImpl) Height() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.rig.Offset.Y()
}

func (rc *rigControllerImpl) Config() Config {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg
}

func (rc *rigControllerImpl) Enabled() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return !rc.closed
}

func (rc *rigControllerImpl) Close() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.closed {
		return
	}
	rc.closed = true
	rc.drag = DragState{}
	rc.logger.Info("rig controller closed")
}

// resume continues from the pose and motion of another controller.
// Caller must hold the mutex or own rc exclusively.
func (rc *rigControllerImpl) resume(st State) {
	cfg := &rc.cfg
	rc.rig = st.Rig
	rc.rig.BaseYaw = common.WrapDegrees(st.Rig.BaseYaw)
	rc.rig.Offset[1] = common.Clamp(st.Rig.Offset.Y(), cfg.MinHeight, cfg.MaxHeight)
	rc.motion = st.Motion
	rc.zoom = ZoomState{
		TargetHeight:  common.Clamp(st.Zoom.TargetHeight, cfg.MinHeight, cfg.MaxHeight),
		CurrentHeight: rc.rig.Offset.Y(),
	}
}

// push writes the pose to the sink and re-aims the camera at the base.
// Caller must hold the mutex.
func (rc *rigControllerImpl) push() {
	rc.sink.SetYaw(rc.rig.BaseYaw)
	rc.sink.SetPosition(rc.rig.BasePosition)
	rc.sink.SetLocalOffset(rc.rig.Offset)
	rc.sink.LookAt(rc.rig.BasePosition)
}
