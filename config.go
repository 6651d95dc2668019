package mapoverlay

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/gogpu/mapoverlay/geo"
	"github.com/gogpu/mapoverlay/scene3d"
)

// AnimationMode selects how repaints are driven.
type AnimationMode int

// Animation modes.
const (
	// AnimationOnDemand repaints only when requested or when the host
	// redraws for its own reasons. After each draw the overlay asks for
	// another frame only while the scene declares itself animating or was
	// mutated during the draw. This is the default.
	AnimationOnDemand AnimationMode = iota

	// AnimationContinuous expects the host to repaint every frame
	// unconditionally; the overlay never schedules repaints itself.
	AnimationContinuous
)

// Config enumerates every recognized overlay option, its default, and its
// effect. It is validated once, at construction; there is no post-hoc option
// merging.
type Config struct {
	// Container identifies the host's mount element. Required: a missing
	// container fails construction fast rather than at first draw.
	Container string

	// Anchor is the geographic origin of the local Cartesian frame.
	// Default (0,0,0) is valid; a zero altitude is a value, not an error.
	Anchor geo.Coordinate

	// UpAxis names the configured up axis, "Y" (default) or "Z".
	// Ignored when UpVector is set.
	UpAxis string

	// UpVector, when non-nil, supplies an arbitrary up direction instead of
	// a named axis.
	UpVector *math32.Vector3

	// Engine constructs the embedded renderer against each host-provided
	// context. Required; called on every context-ready transition.
	Engine scene3d.EngineFactory

	// Camera, when non-nil, is an externally owned camera. It persists
	// across context recreations; when nil a fresh camera is created on
	// every context-ready transition.
	Camera *scene3d.Camera

	// Handedness of the embedded scene. Default right-handed.
	Handedness scene3d.Handedness

	// DefaultLights installs a soft ambient plus one directional light when
	// the scene is built.
	DefaultLights bool

	// Animation selects the repaint mode. Default on-demand.
	Animation AnimationMode
}

// validate reports the first configuration defect, naming the field.
func (c *Config) validate() error {
	if c.Container == "" {
		return fmt.Errorf("%w: missing container element identifier", ErrInvalidConfig)
	}
	if c.Engine == nil {
		return fmt.Errorf("%w: missing engine factory", ErrInvalidConfig)
	}
	if c.UpVector != nil && c.UpVector.Length() == 0 {
		return fmt.Errorf("%w: zero-length up vector", ErrInvalidConfig)
	}
	return nil
}
