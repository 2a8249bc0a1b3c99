package rig

import "log/slog"

// RigControllerOption is a functional option for configuring a RigController.
type RigControllerOption func(*rigControllerImpl)

// WithConfig sets the rig tunables.
//
// Parameters:
//   - cfg: the tunables, validated by NewRigController
//
// Returns:
//   - RigControllerOption: functional option to set the config
func WithConfig(cfg Config) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.cfg = cfg
	}
}

// WithRayCaster sets the service used to project the pointer onto the ground for drag-pan.
//
// Parameters:
//   - rays: the ray caster, usually the active camera
//
// Returns:
//   - RigControllerOption: functional option to set the ray caster
func WithRayCaster(rays RayCaster) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.rays = rays
	}
}

// WithViewport sets the screen size source for edge scroll.
//
// Parameters:
//   - viewport: the viewport, usually the window or camera
//
// Returns:
//   - RigControllerOption: functional option to set the viewport
func WithViewport(viewport Viewport) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.viewport = viewport
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger to use; nil keeps slog.Default()
//
// Returns:
//   - RigControllerOption: functional option to set the logger
func WithLogger(logger *slog.Logger) RigControllerOption {
	return func(rc *rigControllerImpl) {
		if logger != nil {
			rc.logger = logger
		}
	}
}

// WithState starts the controller from a state taken from another controller
// instead of the initial pose in the config. Heights are clamped into the new
// bounds and an active drag is dropped.
//
// Parameters:
//   - st: the state to resume from, usually RigController.State() of the controller being replaced
//
// Returns:
//   - RigControllerOption: functional option to set the starting state
func WithState(st State) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.resumeFrom = &st
	}
}
