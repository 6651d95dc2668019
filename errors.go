package mapoverlay

import "errors"

// Errors returned by overlay construction and lifecycle operations.
var (
	// ErrInvalidConfig indicates the configuration failed validation at
	// construction. The wrapped message names the offending field.
	ErrInvalidConfig = errors.New("mapoverlay: invalid configuration")

	// ErrNotAttached is returned by operations that require a host before
	// Attach has been called.
	ErrNotAttached = errors.New("mapoverlay: overlay not attached to a host")

	// ErrNotReady is returned by operations that require a live engine,
	// scene, and camera outside the ready state.
	ErrNotReady = errors.New("mapoverlay: overlay not ready")

	// ErrRemoved is returned by every lifecycle operation after the overlay
	// has been removed from its host. Removal is terminal.
	ErrRemoved = errors.New("mapoverlay: overlay removed")

	// ErrNoHostTransform is returned by Draw when the frame carries neither
	// a projection matrix nor a transformer callback.
	ErrNoHostTransform = errors.New("mapoverlay: frame carries no host transform")
)
