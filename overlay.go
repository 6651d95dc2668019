package mapoverlay

import (
	"context"
	"sync"

	"cogentcore.org/core/math32"

	"github.com/gogpu/mapoverlay/geo"
	"github.com/gogpu/mapoverlay/glstate"
	"github.com/gogpu/mapoverlay/orient"
	"github.com/gogpu/mapoverlay/scene3d"
	"github.com/gogpu/mapoverlay/viewsync"
)

// Host is the surface the overlay consumes from the map renderer it is
// embedded in. Adapters in the host package implement it per provider.
type Host interface {
	// RequestRedraw asks the host to schedule another repaint. Used in
	// on-demand animation mode only.
	RequestRedraw()

	// RequestStateUpdate asks the host to re-read the overlay's bound
	// properties before the next frame.
	RequestStateUpdate()

	// Property and SetProperty are the host's MVC-style property
	// passthrough.
	Property(name string) (any, bool)
	SetProperty(name string, value any)

	// AddListener registers for a host event and returns a function that
	// removes the registration.
	AddListener(event string, fn func(payload any)) (remove func())
}

// Frame is one host draw callback's payload: the shared context plus exactly
// one of the two host transform shapes. Push hosts set Matrix; pull hosts
// set Transformer. The transform is only valid for this callback invocation.
type Frame struct {
	Context     glstate.Context
	Matrix      *math32.Matrix4
	Transformer viewsync.HostTransformer
}

// Overlay binds the coordinate transform, orientation, state arbitration, and
// view synchronization to a host-driven lifecycle. One Overlay owns at most
// one live engine/scene/camera triple at a time.
//
// All methods run on the host's callback goroutine; the overlay is
// single-threaded by contract. Only WhenReady and WaitReady may be used from
// other goroutines.
type Overlay struct {
	cfg     Config
	host    Host
	state   State
	arbiter *glstate.Arbiter
	view    *viewsync.Sync

	engine scene3d.Engine
	scene  *scene3d.Scene
	camera *scene3d.Camera

	ready     chan struct{}
	readyOnce sync.Once

	lastWidth  int
	lastHeight int
}

// New validates the configuration and returns an unattached overlay.
func New(cfg Config) (*Overlay, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var o orient.Orientation
	switch {
	case cfg.UpVector != nil:
		o = orient.FromUpVector(*cfg.UpVector)
	case cfg.UpAxis != "":
		o = orient.FromAxisName(cfg.UpAxis)
	default:
		o = orient.Identity()
	}

	ov := &Overlay{
		cfg:     cfg,
		state:   StateUnattached,
		arbiter: glstate.NewArbiter(Logger),
		view:    viewsync.New(cfg.Anchor, o, cfg.Camera),
		camera:  cfg.Camera,
		ready:   make(chan struct{}),
	}
	return ov, nil
}

// State returns the current lifecycle state.
func (o *Overlay) State() State {
	return o.state
}

// Attach binds the overlay to its host. Valid only once, before any context
// event.
func (o *Overlay) Attach(h Host) error {
	if o.state == StateRemoved {
		return ErrRemoved
	}
	if o.state != StateUnattached {
		return ErrNotAttached
	}
	o.host = h
	o.state = StateAttached
	Logger().Info("mapoverlay: attached", "container", o.cfg.Container)
	return nil
}

// ContextReady handles the host signaling rendering-context availability,
// from either the attached or the lost state. It constructs the engine
// against the provided context, builds a fresh scene, installs the camera
// (external one reused, otherwise created fresh), and fires the one-shot
// readiness notification on the first transition.
func (o *Overlay) ContextReady(ctx glstate.Context) error {
	switch o.state {
	case StateRemoved:
		return ErrRemoved
	case StateAttached, StateLost:
	default:
		return ErrNotAttached
	}

	scene := scene3d.NewScene(o.cfg.Handedness)
	if o.cfg.DefaultLights {
		scene.AddDefaultLights()
	}

	engine, err := o.cfg.Engine(ctx)
	if err != nil {
		return err
	}

	cam := o.cfg.Camera
	if cam == nil {
		cam = scene3d.NewCamera()
	}

	o.scene = scene
	o.engine = engine
	o.camera = cam
	o.view.SetCamera(cam)
	o.state = StateReady

	o.readyOnce.Do(func() { close(o.ready) })
	Logger().Info("mapoverlay: context ready", "container", o.cfg.Container)
	return nil
}

// ContextLost handles host-driven context loss. Scene and engine are
// disposed unconditionally; no handle from the lost context survives into
// the next ready transition.
func (o *Overlay) ContextLost() {
	if o.state != StateReady {
		return
	}
	o.disposeSceneHandle()
	o.state = StateLost
	Logger().Info("mapoverlay: context lost", "container", o.cfg.Container)
}

// Remove detaches the overlay from its host. Terminal: the overlay stops
// receiving draw callbacks and every subsequent lifecycle call fails with
// ErrRemoved.
func (o *Overlay) Remove() {
	if o.state == StateRemoved {
		return
	}
	o.disposeSceneHandle()
	o.state = StateRemoved
	Logger().Info("mapoverlay: removed", "container", o.cfg.Container)
}

func (o *Overlay) disposeSceneHandle() {
	if o.engine != nil {
		o.engine.Dispose()
		o.engine = nil
	}
	if o.scene != nil {
		o.scene.Dispose()
		o.scene = nil
	}
	// An externally supplied camera persists; a fresh one does not.
	if o.cfg.Camera == nil {
		o.camera = nil
	}
}

// Draw services one host draw callback. The sequence is fixed: pre-render
// state reset, projection composition and freeze, embedded render pass,
// post-render cache wipe, then (on-demand mode only) a repaint request while
// the scene is still changing.
//
// A draw already in flight when Remove is called runs to completion; the
// state check here only gates future callbacks.
func (o *Overlay) Draw(frame Frame) error {
	if o.state != StateReady {
		return ErrNotReady
	}
	if frame.Matrix == nil && frame.Transformer == nil {
		return ErrNoHostTransform
	}

	o.arbiter.PreRender(frame.Context)
	o.lastWidth, o.lastHeight = frame.Context.DrawingBufferSize()

	if frame.Matrix != nil {
		o.view.SyncFromMatrix(frame.Matrix)
	} else {
		o.view.SyncFromTransformer(frame.Transformer)
	}

	before := o.scene.Version()
	err := o.engine.Render(o.scene, o.camera)
	o.arbiter.PostRender(o.engine)
	if err != nil {
		return err
	}

	// In on-demand mode the host repaints only when asked. Keep the frames
	// coming while the scene declares itself animating or was mutated during
	// the render pass.
	if o.cfg.Animation == AnimationOnDemand {
		if o.scene.Animating() || o.scene.Version() != before {
			o.host.RequestRedraw()
		}
	}
	return nil
}

// WhenReady returns a channel closed the first time the overlay enters the
// ready state. It is store-and-fire: a caller that begins waiting after
// readiness occurred observes it immediately, and it fires exactly once per
// overlay.
func (o *Overlay) WhenReady() <-chan struct{} {
	return o.ready
}

// WaitReady blocks until the overlay has been ready at least once or the
// context is done.
func (o *Overlay) WaitReady(ctx context.Context) error {
	select {
	case <-o.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetAnchor replaces the local frame's origin wholesale. Independent of
// context state; valid in any non-removed state.
func (o *Overlay) SetAnchor(c geo.Coordinate) {
	o.view.SetAnchor(c)
	if o.host != nil {
		o.host.RequestRedraw()
	}
}

// Anchor returns the current anchor.
func (o *Overlay) Anchor() geo.Coordinate {
	return o.view.Anchor()
}

// SetUpAxis reconfigures the up axis by name. Unknown names log a warning
// and keep Y up.
func (o *Overlay) SetUpAxis(name string) {
	o.view.SetOrientation(orient.FromAxisName(name))
	if o.host != nil {
		o.host.RequestRedraw()
	}
}

// SetUpVector reconfigures the up axis from an arbitrary vector.
func (o *Overlay) SetUpVector(v math32.Vector3) {
	o.view.SetOrientation(orient.FromUpVector(v))
	if o.host != nil {
		o.host.RequestRedraw()
	}
}

// Orientation returns the current up-axis orientation.
func (o *Overlay) Orientation() orient.Orientation {
	return o.view.Orientation()
}

// Raycast casts a ray from a screen point through the last drawn frame's
// frozen projection and returns hits sorted nearest first. The optional
// filter restricts which meshes are considered. It requires at least one
// completed draw, since the projection and the drawing-buffer size both come
// from the host's frame.
func (o *Overlay) Raycast(x, y float64, filter func(*scene3d.Mesh) bool) ([]scene3d.Hit, error) {
	if o.state != StateReady || o.lastWidth == 0 || o.lastHeight == 0 {
		return nil, ErrNotReady
	}
	ray, err := scene3d.RayFromScreen(o.camera, float32(x), float32(y),
		o.lastWidth, o.lastHeight)
	if err != nil {
		return nil, err
	}
	return scene3d.RaycastScene(o.scene, ray, filter), nil
}

// RequestRedraw forwards a repaint request to the host.
func (o *Overlay) RequestRedraw() error {
	if o.host == nil {
		return ErrNotAttached
	}
	o.host.RequestRedraw()
	return nil
}

// RequestStateUpdate forwards a property re-read request to the host.
func (o *Overlay) RequestStateUpdate() error {
	if o.host == nil {
		return ErrNotAttached
	}
	o.host.RequestStateUpdate()
	return nil
}

// Property reads a bound host property through the host's MVC passthrough.
func (o *Overlay) Property(name string) (any, bool) {
	if o.host == nil {
		return nil, false
	}
	return o.host.Property(name)
}

// SetProperty writes a bound host property and asks the host to re-read its
// state before the next frame.
func (o *Overlay) SetProperty(name string, value any) error {
	if o.host == nil {
		return ErrNotAttached
	}
	o.host.SetProperty(name, value)
	o.host.RequestStateUpdate()
	return nil
}

// On registers a listener for a host event and returns the function that
// removes it.
func (o *Overlay) On(event string, fn func(payload any)) (remove func(), err error) {
	if o.host == nil {
		return nil, ErrNotAttached
	}
	return o.host.AddListener(event, fn), nil
}

// Scene returns the live scene for consumers to populate, or nil outside the
// ready state.
func (o *Overlay) Scene() *scene3d.Scene {
	return o.scene
}

// Camera returns the live camera, or nil outside the ready state when no
// external camera was configured.
func (o *Overlay) Camera() *scene3d.Camera {
	return o.camera
}
