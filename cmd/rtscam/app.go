package main

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/config"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/Carmen-Shannon/oxy-rts/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/Carmen-Shannon/oxy-rts/engine/transform"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// app owns the rig, its camera and the presenter. It is registered with the
// engine as a single system so the camera matrices and the rig update in order.
type app struct {
	mu     *sync.Mutex
	logger *slog.Logger

	win  window.Window
	cam  camera.Camera
	pose transform.RigTransform
	r    renderer.Renderer

	cfg    *config.Config
	unbind func()
	rc     rig.RigController
}

func newApp(cfg *config.Config, win window.Window, r renderer.Renderer, logger *slog.Logger) (*app, error) {
	pose := transform.NewRigTransform(
		transform.WithPosition(cfg.Rig.InitialPosition),
		transform.WithYaw(cfg.Rig.InitialYaw),
		transform.WithLocalOffset(cfg.Rig.InitialOffset),
	)
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.Camera.FovDegrees)),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithViewport(win.Width(), win.Height()),
		camera.WithViewpoint(pose),
	)

	a := &app{
		mu:     &sync.Mutex{},
		logger: logger,
		win:    win,
		cam:    cam,
		pose:   pose,
		r:      r,
	}
	if err := a.install(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// install builds a buffer and controller from cfg and swaps them in.
// Must run on the window thread because it rebinds the window callbacks.
func (a *app) install(cfg *config.Config, extra ...rig.RigControllerOption) error {
	bufOpts, err := cfg.Input.BufferOptions()
	if err != nil {
		return err
	}
	buf := input.NewBuffer(bufOpts...)

	opts := append([]rig.RigControllerOption{
		rig.WithConfig(cfg.Rig),
		rig.WithRayCaster(a.cam),
		rig.WithViewport(a.cam),
		rig.WithLogger(a.logger),
	}, extra...)
	rc, err := rig.NewRigController(buf, a.pose, opts...)
	if err != nil {
		return fmt.Errorf("building rig controller: %w", err)
	}

	a.mu.Lock()
	old, oldUnbind := a.rc, a.unbind
	a.cfg, a.rc = cfg, rc
	a.mu.Unlock()

	if oldUnbind != nil {
		oldUnbind()
	}
	if old != nil {
		old.Close()
	}
	a.unbind = window.BindInput(a.win, buf)
	return nil
}

// Reload applies a new config while keeping the current pose, motion and zoom target.
// Heights are clamped into the new zoom bounds.
func (a *app) Reload(cfg *config.Config) {
	a.mu.Lock()
	st := a.rc.State()
	a.mu.Unlock()

	if err := a.install(cfg, rig.WithState(st)); err != nil {
		a.logger.Error("config reload rejected", "error", err)
		return
	}
	a.cam.SetFov(mgl32.DegToRad(cfg.Camera.FovDegrees))
	a.cam.SetNear(cfg.Camera.Near)
	a.cam.SetFar(cfg.Camera.Far)
	a.logger.Info("config reloaded", "smoothing", cfg.Rig.Smoothing, "max_speed", cfg.Rig.MaxSpeed)
}

func (a *app) Tick(deltaTime float32) {
	a.mu.Lock()
	rc := a.rc
	a.mu.Unlock()

	a.cam.Update()
	rc.Tick(deltaTime)
}

func (a *app) Name() string {
	return "rig"
}

func (a *app) Resize(width, height int) {
	a.cam.SetViewport(width, height)
	a.r.Resize(width, height)
}

func (a *app) Render(float32) {
	a.mu.Lock()
	rc, cfg := a.rc, a.cfg
	a.mu.Unlock()

	a.r.SetClearColor(renderer.HeightTint(rc.Height(), cfg.Rig.MinHeight, cfg.Rig.MaxHeight))
	if err := a.r.Draw(); err != nil {
		a.logger.Debug("frame skipped", "error", err)
	}
}

func (a *app) Close() {
	if a.unbind != nil {
		a.unbind()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rc != nil {
		a.rc.Close()
	}
}
