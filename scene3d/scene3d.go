// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene3d defines the boundary between the overlay and the embedded
// 3D renderer: the engine contract, the scene container consumers populate,
// and the passive camera the overlay drives.
//
// The overlay never creates a rendering context. An EngineFactory receives
// the host-provided context handle and returns an Engine bound to it, the
// same receive-don't-create principle the rest of the module follows. On
// context loss the Engine and Scene are always rebuilt from scratch; only an
// externally supplied Camera survives, because it holds no context-owned
// resources.
package scene3d

import (
	"cogentcore.org/core/math32"

	"github.com/gogpu/mapoverlay/glstate"
)

// Handedness selects the scene's coordinate handedness. The local frame is
// right-handed; left-handed scenes exist to match engines whose content was
// authored against the opposite convention.
type Handedness int

// Handedness values.
const (
	RightHanded Handedness = iota
	LeftHanded
)

// Engine renders a scene into the shared context it was constructed
// against. Implementations wrap a concrete 3D renderer.
type Engine interface {
	// Render draws the scene through the camera's frozen projection.
	// It runs strictly between the arbiter's pre-render reset and
	// post-render handoff, inside the host's draw callback.
	Render(s *Scene, cam *Camera) error

	// WipeStateCache discards the engine's internal belief about current
	// context state. Called by the arbiter after every render so the
	// engine never reuses assumptions the host has since invalidated.
	WipeStateCache()

	// Dispose releases every context-owned resource. The engine must not
	// be used afterwards; a fresh one is constructed on the next
	// context-ready transition.
	Dispose()
}

// EngineFactory constructs an Engine bound to the host-provided context.
// It is called on every context-ready transition; returned engines are
// never reused across context losses.
type EngineFactory func(ctx glstate.Context) (Engine, error)

// LightKind distinguishes the default light types.
type LightKind int

// Light kinds.
const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Light is a minimal scene light description consumed by engines.
type Light struct {
	Kind      LightKind
	Color     [3]float32
	Intensity float32

	// Direction applies to directional lights only.
	Direction math32.Vector3
}

// Scene holds the embedded content: meshes and lights. It is cleared to
// transparent with manual clear control, so the host's already-rendered map
// beneath it is never wiped.
type Scene struct {
	meshes     []*Mesh
	lights     []Light
	handedness Handedness
	clearColor [4]float32
	autoClear  bool
	version    uint64
	animating  bool
	disposed   bool
}

// NewScene returns an empty scene with the given handedness, a transparent
// clear color, and automatic clearing off.
func NewScene(h Handedness) *Scene {
	return &Scene{handedness: h}
}

// Add appends a mesh to the scene.
func (s *Scene) Add(m *Mesh) {
	if m == nil {
		return
	}
	s.meshes = append(s.meshes, m)
	s.version++
}

// Remove removes a mesh from the scene. It reports whether the mesh was
// present.
func (s *Scene) Remove(m *Mesh) bool {
	for i, cur := range s.meshes {
		if cur == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			s.version++
			return true
		}
	}
	return false
}

// Meshes returns the scene's meshes. The slice is shared; do not mutate it.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// AddDefaultLights installs a soft ambient plus one directional light,
// enough to make unlit content readable without consumer setup.
func (s *Scene) AddDefaultLights() {
	s.lights = append(s.lights,
		Light{Kind: LightAmbient, Color: [3]float32{1, 1, 1}, Intensity: 0.6},
		Light{
			Kind:      LightDirectional,
			Color:     [3]float32{1, 1, 1},
			Intensity: 0.8,
			Direction: math32.Vec3(-0.5, -1, -0.3).Normal(),
		},
	)
	s.version++
}

// Lights returns the scene's lights.
func (s *Scene) Lights() []Light {
	return s.lights
}

// Handedness returns the scene's configured handedness.
func (s *Scene) Handedness() Handedness {
	return s.handedness
}

// ClearColor returns the scene clear color (always fully transparent).
func (s *Scene) ClearColor() [4]float32 {
	return s.clearColor
}

// AutoClear reports whether the engine may clear before rendering. Always
// false for overlay scenes: the host owns the pixels underneath.
func (s *Scene) AutoClear() bool {
	return s.autoClear
}

// Version increments on every content mutation. The overlay compares it
// across frames to decide whether an on-demand host needs another repaint.
func (s *Scene) Version() uint64 {
	return s.version
}

// SetAnimating marks the scene as continuously changing, forcing redraw
// requests in on-demand mode until cleared.
func (s *Scene) SetAnimating(on bool) {
	s.animating = on
}

// Animating reports whether the scene declared itself animating.
func (s *Scene) Animating() bool {
	return s.animating
}

// Dispose marks the scene dead. Engines drop their references on the next
// wipe; the overlay never reuses a disposed scene.
func (s *Scene) Dispose() {
	s.meshes = nil
	s.lights = nil
	s.disposed = true
}

// Disposed reports whether Dispose was called.
func (s *Scene) Disposed() bool {
	return s.disposed
}

// Camera is a passive projection sink. It never computes its own position
// or view direction: every frame the overlay composes the full projection
// from the host transform and freezes it here (see the viewsync package).
type Camera struct {
	projection math32.Matrix4
	frozen     bool
}

// NewCamera returns a camera with an identity projection.
func NewCamera() *Camera {
	c := &Camera{}
	c.projection.SetIdentity()
	return c
}

// SetFrozenProjection assigns the composed projection for the current
// frame. Host transforms are only valid for the frame that supplied them,
// so nothing is cached across frames.
func (c *Camera) SetFrozenProjection(m *math32.Matrix4) {
	c.projection = *m
	c.frozen = true
}

// Projection returns the current frozen projection.
func (c *Camera) Projection() math32.Matrix4 {
	return c.projection
}

// Frozen reports whether a projection has been assigned this lifecycle.
func (c *Camera) Frozen() bool {
	return c.frozen
}

// NullEngine is an Engine that renders nothing and counts calls. It serves
// headless operation and tests, the way a null device stands in for a GPU.
type NullEngine struct {
	renders  int
	wipes    int
	disposed bool
}

// NewNullEngine returns a fresh NullEngine.
func NewNullEngine() *NullEngine {
	return &NullEngine{}
}

// NullEngineFactory is an EngineFactory producing NullEngines.
func NullEngineFactory(glstate.Context) (Engine, error) {
	return NewNullEngine(), nil
}

// Render counts the call and succeeds.
func (e *NullEngine) Render(*Scene, *Camera) error {
	e.renders++
	return nil
}

// WipeStateCache counts the call.
func (e *NullEngine) WipeStateCache() {
	e.wipes++
}

// Dispose marks the engine disposed.
func (e *NullEngine) Dispose() {
	e.disposed = true
}

// Renders returns the number of Render calls.
func (e *NullEngine) Renders() int { return e.renders }

// Wipes returns the number of WipeStateCache calls.
func (e *NullEngine) Wipes() int { return e.wipes }

// Disposed reports whether Dispose was called.
func (e *NullEngine) Disposed() bool { return e.disposed }

// Ensure NullEngine implements Engine.
var _ Engine = (*NullEngine)(nil)
