// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host adapts the two map-provider callback shapes onto one overlay.
//
// Both providers drive the same lifecycle (add, context lost/restored,
// remove, per-frame draw); they differ only in how the per-frame transform
// arrives. Push hosts hand over a ready-made projection matrix; pull hosts
// hand over a transformer callback the overlay invokes with its anchor and
// orientation. Each adapter documents its own matrix layout and
// multiplication-order convention; the two conventions are host-specific
// and must not be assumed to match.
package host

import (
	"cogentcore.org/core/math32"

	"github.com/gogpu/mapoverlay"
	"github.com/gogpu/mapoverlay/glstate"
	"github.com/gogpu/mapoverlay/viewsync"
)

// lifecycle is the provider-independent half of an adapter: the host's
// add/lose/restore/remove notifications mapped onto overlay transitions.
type lifecycle struct {
	ov *mapoverlay.Overlay
}

// Overlay returns the adapted overlay.
func (l *lifecycle) Overlay() *mapoverlay.Overlay {
	return l.ov
}

// OnAdd is the host's add-to-map notification, delivered together with the
// first usable rendering context.
func (l *lifecycle) OnAdd(ctx glstate.Context) error {
	return l.ov.ContextReady(ctx)
}

// OnContextLost is the host's context-loss notification.
func (l *lifecycle) OnContextLost() {
	l.ov.ContextLost()
}

// OnContextRestored is the host's context-reacquired notification. The
// overlay rebuilds engine and scene in full against the new context.
func (l *lifecycle) OnContextRestored(ctx glstate.Context) error {
	return l.ov.ContextReady(ctx)
}

// OnRemove is the host's remove-from-map notification. Terminal.
func (l *lifecycle) OnRemove() {
	l.ov.Remove()
}

// MatrixAdapter integrates with push hosts: each draw callback delivers the
// projection as a flat 16-element array.
//
// Convention: the array is column-major and maps projected Mercator
// coordinates to clip space. The overlay composes final = host · world, with
// the world matrix supplying anchor translation, orientation, and the
// latitude-dependent meter scale.
type MatrixAdapter struct {
	lifecycle
}

// NewMatrixAdapter attaches the overlay to the host and returns the adapter
// its callback glue calls into.
func NewMatrixAdapter(ov *mapoverlay.Overlay, h mapoverlay.Host) (*MatrixAdapter, error) {
	if err := ov.Attach(h); err != nil {
		return nil, err
	}
	return &MatrixAdapter{lifecycle{ov: ov}}, nil
}

// OnDraw services one push-host draw callback.
func (a *MatrixAdapter) OnDraw(ctx glstate.Context, matrix [16]float32) error {
	var m math32.Matrix4
	m.FromArray(matrix[:], 0)
	return a.ov.Draw(mapoverlay.Frame{Context: ctx, Matrix: &m})
}

// TransformerAdapter integrates with pull hosts: each draw callback delivers
// a transformer the overlay invokes with its anchor point and Euler angle
// triple.
//
// Convention: the transformer returns a column-major matrix with anchor
// position, orientation, and meter scale already baked in by the host; the
// overlay freezes it onto the camera directly, without further composition.
type TransformerAdapter struct {
	lifecycle
}

// NewTransformerAdapter attaches the overlay to the host and returns the
// adapter its callback glue calls into.
func NewTransformerAdapter(ov *mapoverlay.Overlay, h mapoverlay.Host) (*TransformerAdapter, error) {
	if err := ov.Attach(h); err != nil {
		return nil, err
	}
	return &TransformerAdapter{lifecycle{ov: ov}}, nil
}

// OnDraw services one pull-host draw callback.
func (a *TransformerAdapter) OnDraw(ctx glstate.Context, tr viewsync.HostTransformer) error {
	return a.ov.Draw(mapoverlay.Frame{Context: ctx, Transformer: tr})
}
