package rig

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid rig config")
	// ErrMissingCollaborator is returned when a required dependency is not supplied.
	ErrMissingCollaborator = errors.New("missing rig collaborator")
)
