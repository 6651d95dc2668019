package mapoverlay

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"cogentcore.org/core/math32"

	"github.com/gogpu/mapoverlay/geo"
	"github.com/gogpu/mapoverlay/glstate"
	"github.com/gogpu/mapoverlay/scene3d"
)

type fakeHost struct {
	redraws      int
	stateUpdates int
	props        map[string]any
}

func (h *fakeHost) RequestRedraw()      { h.redraws++ }
func (h *fakeHost) RequestStateUpdate() { h.stateUpdates++ }

func (h *fakeHost) Property(name string) (any, bool) {
	v, ok := h.props[name]
	return v, ok
}

func (h *fakeHost) SetProperty(name string, v any) {
	if h.props == nil {
		h.props = map[string]any{}
	}
	h.props[name] = v
}

func (h *fakeHost) AddListener(string, func(any)) func() {
	return func() {}
}

var _ Host = (*fakeHost)(nil)

// seqEngine records render-pass events into a shared sequence so tests can
// assert the per-frame ordering contract.
type seqEngine struct {
	seq            *[]string
	disposed       bool
	frozenAtRender bool
}

func (e *seqEngine) Render(_ *scene3d.Scene, cam *scene3d.Camera) error {
	*e.seq = append(*e.seq, "render")
	e.frozenAtRender = cam.Frozen()
	return nil
}

func (e *seqEngine) WipeStateCache() { *e.seq = append(*e.seq, "wipe") }
func (e *seqEngine) Dispose()        { e.disposed = true }

// seqContext marks the arbiter's reset in the shared sequence.
type seqContext struct {
	glstate.NullContext
	seq *[]string
}

func (c *seqContext) Disable(glstate.Capability) error {
	*c.seq = append(*c.seq, "reset")
	return nil
}

func testConfig(f scene3d.EngineFactory) Config {
	return Config{Container: "map", Engine: f}
}

func newReadyOverlay(t *testing.T, cfg Config) (*Overlay, *fakeHost) {
	t.Helper()
	ov, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := &fakeHost{}
	if err := ov.Attach(h); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady: %v", err)
	}
	return ov, h
}

func identityFrame() Frame {
	var m math32.Matrix4
	m.SetIdentity()
	return Frame{Context: &glstate.NullContext{}, Matrix: &m}
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Engine: scene3d.NullEngineFactory})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("missing container: err = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "container") {
		t.Errorf("error should name the missing identifier, got %q", err)
	}

	_, err = New(Config{Container: "map"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("missing engine: err = %v, want ErrInvalidConfig", err)
	}

	zero := math32.Vec3(0, 0, 0)
	_, err = New(Config{Container: "map", Engine: scene3d.NullEngineFactory, UpVector: &zero})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero up vector: err = %v, want ErrInvalidConfig", err)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	ov, err := New(testConfig(scene3d.NullEngineFactory))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ov.State() != StateUnattached {
		t.Fatalf("initial state = %v, want unattached", ov.State())
	}

	if err := ov.ContextReady(&glstate.NullContext{}); !errors.Is(err, ErrNotAttached) {
		t.Errorf("context ready before attach: err = %v, want ErrNotAttached", err)
	}

	h := &fakeHost{}
	if err := ov.Attach(h); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if ov.State() != StateAttached {
		t.Fatalf("state = %v, want attached", ov.State())
	}
	if err := ov.Attach(h); err == nil {
		t.Error("second Attach should fail")
	}

	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady: %v", err)
	}
	if ov.State() != StateReady {
		t.Fatalf("state = %v, want ready", ov.State())
	}
	if ov.Scene() == nil || ov.Camera() == nil {
		t.Fatal("scene and camera should be live in ready state")
	}

	ov.ContextLost()
	if ov.State() != StateLost {
		t.Fatalf("state = %v, want lost", ov.State())
	}
	if err := ov.Draw(identityFrame()); !errors.Is(err, ErrNotReady) {
		t.Errorf("draw while lost: err = %v, want ErrNotReady", err)
	}

	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady after loss: %v", err)
	}
	if ov.State() != StateReady {
		t.Fatalf("state = %v, want ready after reacquire", ov.State())
	}

	ov.Remove()
	if ov.State() != StateRemoved {
		t.Fatalf("state = %v, want removed", ov.State())
	}
	if err := ov.ContextReady(&glstate.NullContext{}); !errors.Is(err, ErrRemoved) {
		t.Errorf("context ready after removal: err = %v, want ErrRemoved", err)
	}
	ov.Remove() // idempotent
	if ov.State() != StateRemoved {
		t.Error("removal is terminal")
	}
}

func TestReadinessStoreAndFire(t *testing.T) {
	ov, err := New(testConfig(scene3d.NullEngineFactory))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := ov.WaitReady(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WaitReady before ready: err = %v, want deadline exceeded", err)
	}

	h := &fakeHost{}
	if err := ov.Attach(h); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady: %v", err)
	}

	// Store-and-fire: a waiter arriving after the transition must not miss it.
	select {
	case <-ov.WhenReady():
	default:
		t.Fatal("WhenReady should be resolved after the first ready transition")
	}
	if err := ov.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady after ready: %v", err)
	}

	// Firing exactly once: a second ready transition must not re-fire.
	ov.ContextLost()
	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady after loss: %v", err)
	}
}

func TestExternalCameraPersistsAcrossContextLoss(t *testing.T) {
	external := scene3d.NewCamera()
	cfg := testConfig(scene3d.NullEngineFactory)
	cfg.Camera = external

	ov, _ := newReadyOverlay(t, cfg)
	if ov.Camera() != external {
		t.Fatal("external camera should be installed as-is")
	}
	scene1 := ov.Scene()

	ov.ContextLost()
	if ov.Camera() != external {
		t.Error("external camera should survive context loss")
	}
	if !scene1.Disposed() {
		t.Error("scene should be disposed on context loss")
	}

	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady: %v", err)
	}
	if ov.Camera() != external {
		t.Error("external camera should be reused after reconstruction")
	}
	if ov.Scene() == scene1 {
		t.Error("scene must be rebuilt, never reused, after context loss")
	}
}

func TestFreshCameraRebuiltAcrossContextLoss(t *testing.T) {
	ov, _ := newReadyOverlay(t, testConfig(scene3d.NullEngineFactory))
	cam1 := ov.Camera()

	ov.ContextLost()
	if ov.Camera() != nil {
		t.Error("internally created camera should not survive context loss")
	}

	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady: %v", err)
	}
	if ov.Camera() == cam1 {
		t.Error("camera should be created fresh after context loss")
	}
}

func TestEngineDisposedOnLossAndRemoval(t *testing.T) {
	var seq []string
	e1 := &seqEngine{seq: &seq}
	engines := []*seqEngine{e1, {seq: &seq}}
	i := 0
	factory := func(glstate.Context) (scene3d.Engine, error) {
		e := engines[i]
		i++
		return e, nil
	}

	ov, _ := newReadyOverlay(t, testConfig(factory))
	ov.ContextLost()
	if !e1.disposed {
		t.Error("engine should be disposed on context loss")
	}

	if err := ov.ContextReady(&glstate.NullContext{}); err != nil {
		t.Fatalf("ContextReady: %v", err)
	}
	ov.Remove()
	if !engines[1].disposed {
		t.Error("engine should be disposed on removal")
	}
}

func TestDrawSequence(t *testing.T) {
	var seq []string
	engine := &seqEngine{seq: &seq}
	factory := func(glstate.Context) (scene3d.Engine, error) { return engine, nil }

	ov, _ := newReadyOverlay(t, testConfig(factory))

	var m math32.Matrix4
	m.SetIdentity()
	frame := Frame{Context: &seqContext{seq: &seq}, Matrix: &m}
	if err := ov.Draw(frame); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if len(seq) < 3 || seq[0] != "reset" {
		t.Fatalf("sequence should start with the state reset, got %v", seq)
	}
	if seq[len(seq)-2] != "render" || seq[len(seq)-1] != "wipe" {
		t.Fatalf("sequence should end reset…, render, wipe, got %v", seq)
	}
	if !engine.frozenAtRender {
		t.Error("camera projection must be frozen before the render pass")
	}
}

func TestDrawRequiresHostTransform(t *testing.T) {
	ov, _ := newReadyOverlay(t, testConfig(scene3d.NullEngineFactory))

	err := ov.Draw(Frame{Context: &glstate.NullContext{}})
	if !errors.Is(err, ErrNoHostTransform) {
		t.Errorf("err = %v, want ErrNoHostTransform", err)
	}
}

func TestOnDemandRedrawWhileAnimating(t *testing.T) {
	ov, h := newReadyOverlay(t, testConfig(scene3d.NullEngineFactory))

	if err := ov.Draw(identityFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if h.redraws != 0 {
		t.Fatalf("idle scene requested %d redraws, want 0", h.redraws)
	}

	ov.Scene().SetAnimating(true)
	if err := ov.Draw(identityFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if h.redraws != 1 {
		t.Errorf("animating scene requested %d redraws, want 1", h.redraws)
	}

	ov.Scene().SetAnimating(false)
	if err := ov.Draw(identityFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if h.redraws != 1 {
		t.Errorf("settled scene requested %d redraws, want still 1", h.redraws)
	}
}

func TestContinuousModeNeverRequestsRedraw(t *testing.T) {
	cfg := testConfig(scene3d.NullEngineFactory)
	cfg.Animation = AnimationContinuous

	ov, h := newReadyOverlay(t, cfg)
	ov.Scene().SetAnimating(true)
	if err := ov.Draw(identityFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if h.redraws != 0 {
		t.Errorf("continuous mode requested %d redraws, want 0", h.redraws)
	}
}

func TestRaycastRequiresACompletedDraw(t *testing.T) {
	ov, _ := newReadyOverlay(t, testConfig(scene3d.NullEngineFactory))

	if _, err := ov.Raycast(10, 10, nil); !errors.Is(err, ErrNotReady) {
		t.Fatalf("raycast before first draw: err = %v, want ErrNotReady", err)
	}

	if err := ov.Draw(identityFrame()); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if _, err := ov.Raycast(10, 10, nil); err != nil {
		t.Errorf("raycast after draw: %v", err)
	}
}

func TestSetAnchorRequestsRedraw(t *testing.T) {
	ov, h := newReadyOverlay(t, testConfig(scene3d.NullEngineFactory))

	next := geo.Coord3D(48.8584, 2.2945, 35)
	ov.SetAnchor(next)
	if ov.Anchor() != next {
		t.Errorf("anchor = %+v, want %+v", ov.Anchor(), next)
	}
	if h.redraws == 0 {
		t.Error("anchor change should request a repaint")
	}
}

func TestSetUpAxisReconfiguresOrientation(t *testing.T) {
	ov, _ := newReadyOverlay(t, testConfig(scene3d.NullEngineFactory))

	ov.SetUpAxis("Z")
	got := ov.Orientation().Apply(math32.Vec3(0, 0, 1))
	if got.Y < 0.999 {
		t.Errorf("Z up should rotate (0,0,1) onto (0,1,0), got %+v", got)
	}
}

// failingContext rejects every capability toggle, standing in for a host
// context that has gone bad mid-frame.
type failingContext struct {
	glstate.NullContext
}

func (c *failingContext) Disable(glstate.Capability) error {
	return errors.New("context lost mid-frame")
}

func TestLateLoggerConfigurationReachesResetWarnings(t *testing.T) {
	ov, _ := newReadyOverlay(t, testConfig(scene3d.NullEngineFactory))

	// The logger is configured after the overlay was constructed; reset
	// warnings from a later frame must still reach it.
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	var m math32.Matrix4
	m.SetIdentity()
	if err := ov.Draw(Frame{Context: &failingContext{}, Matrix: &m}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !strings.Contains(buf.String(), "context reset call failed") {
		t.Errorf("reset warnings should honor a logger set after New, got %q", buf.String())
	}
}

func TestHostPropertyPassthrough(t *testing.T) {
	ov, err := New(testConfig(scene3d.NullEngineFactory))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := ov.SetProperty("tilt", 45); !errors.Is(err, ErrNotAttached) {
		t.Errorf("set before attach: err = %v, want ErrNotAttached", err)
	}
	if _, err := ov.On("click", func(any) {}); !errors.Is(err, ErrNotAttached) {
		t.Errorf("listen before attach: err = %v, want ErrNotAttached", err)
	}

	h := &fakeHost{}
	if err := ov.Attach(h); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if err := ov.SetProperty("tilt", 45); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if v, ok := ov.Property("tilt"); !ok || v != 45 {
		t.Errorf("Property(tilt) = %v, %v, want 45, true", v, ok)
	}
	if h.stateUpdates != 1 {
		t.Errorf("property write triggered %d state updates, want 1", h.stateUpdates)
	}

	remove, err := ov.On("click", func(any) {})
	if err != nil {
		t.Fatalf("On: %v", err)
	}
	remove()
}

func TestEngineFactoryFailureKeepsStateAttached(t *testing.T) {
	boom := errors.New("no adapter")
	factory := func(glstate.Context) (scene3d.Engine, error) { return nil, boom }

	ov, err := New(testConfig(factory))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ov.Attach(&fakeHost{}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := ov.ContextReady(&glstate.NullContext{}); !errors.Is(err, boom) {
		t.Fatalf("ContextReady: err = %v, want factory error", err)
	}
	if ov.State() != StateAttached {
		t.Errorf("state = %v, want attached after factory failure", ov.State())
	}

	select {
	case <-ov.WhenReady():
		t.Error("readiness must not fire when engine construction fails")
	default:
	}
}
