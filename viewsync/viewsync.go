// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package viewsync recomputes the embedded camera's projection every frame
// from the transform the host renderer supplies.
//
// The camera is a passive sink: it never derives position or view direction
// on its own. Each frame the host hands over either a ready-made projection
// matrix (push hosts) or a transformer callback (pull hosts); Sync composes
// the local frame's world matrix into it and freezes the result onto the
// camera. Nothing is cached across frames: host transforms are only valid
// for the callback that delivered them, and they change continuously while
// the map pans, zooms, and tilts.
//
// Matrix conventions are host-specific and deliberately not unified here
// beyond the two documented composition paths; see SyncFromMatrix and
// SyncFromTransformer for the per-path convention.
package viewsync

import (
	"cogentcore.org/core/math32"

	"github.com/gogpu/mapoverlay/geo"
	"github.com/gogpu/mapoverlay/orient"
	"github.com/gogpu/mapoverlay/scene3d"
)

// HostTransformer is the pull-based host callback shape: given a geographic
// point and an Euler angle triple (radians, XYZ order) it returns a
// column-major 16-element matrix that maps meters in a frame anchored and
// oriented at that point into clip space. The host bakes anchor position,
// orientation, and meter scale into the result.
type HostTransformer func(anchor geo.Coordinate, euler math32.Vector3) [16]float32

// localToProjected rotates the local frame (X east, Y up, Z south) into
// projected Mercator axes (X east, Y north, Z up): +90° about X.
var localToProjected = math32.NewQuatAxisAngle(math32.Vec3(1, 0, 0), math32.Pi/2)

// Sync owns the per-frame projection composition for one overlay.
type Sync struct {
	anchor      geo.Coordinate
	orientation orient.Orientation
	camera      *scene3d.Camera
}

// New returns a Sync freezing projections onto cam.
func New(anchor geo.Coordinate, o orient.Orientation, cam *scene3d.Camera) *Sync {
	return &Sync{anchor: anchor, orientation: o, camera: cam}
}

// SetAnchor replaces the anchor snapshot wholesale.
func (s *Sync) SetAnchor(a geo.Coordinate) {
	s.anchor = a
}

// Anchor returns the current anchor snapshot.
func (s *Sync) Anchor() geo.Coordinate {
	return s.anchor
}

// SetOrientation replaces the orientation.
func (s *Sync) SetOrientation(o orient.Orientation) {
	s.orientation = o
}

// Orientation returns the current orientation.
func (s *Sync) Orientation() orient.Orientation {
	return s.orientation
}

// SetCamera retargets the Sync at a different camera, used when an external
// camera is installed after construction.
func (s *Sync) SetCamera(cam *scene3d.Camera) {
	s.camera = cam
}

// Camera returns the camera receiving frozen projections.
func (s *Sync) Camera() *scene3d.Camera {
	return s.camera
}

// ProjectedUnitsPerMeter returns the scale factor applied by the world
// matrix: projected Mercator units per ground meter at the anchor latitude.
// It is the reciprocal of geo.MetersPerProjectedUnit and equals 1 at the
// equator.
func (s *Sync) ProjectedUnitsPerMeter() float64 {
	return 1 / geo.MetersPerProjectedUnit(s.anchor.Lat)
}

// WorldMatrix maps local meters to projected Mercator coordinates:
// translate(anchor projected) · rotate(axis remap · orientation) ·
// scale(units per meter), applied to points scale-first.
func (s *Sync) WorldMatrix() math32.Matrix4 {
	mx, my := geo.Mercator(s.anchor)
	pos := math32.Vec3(float32(mx), float32(my), float32(s.anchor.Alt))
	rot := localToProjected.Mul(s.orientation.Quat)
	k := float32(s.ProjectedUnitsPerMeter())

	var world math32.Matrix4
	world.SetTransform(pos, rot, math32.Vec3(k, k, k))
	return world
}

// SyncFromMatrix composes and freezes the projection for a push host.
//
// Convention (push path): the host matrix is column-major and maps projected
// Mercator coordinates to clip space, so the composition is
// final = host · world. The composed matrix is assigned to the camera as
// this frame's frozen projection.
func (s *Sync) SyncFromMatrix(host *math32.Matrix4) {
	world := s.WorldMatrix()
	var final math32.Matrix4
	final.MulMatrices(host, &world)
	s.camera.SetFrozenProjection(&final)
}

// SyncFromTransformer composes and freezes the projection for a pull host.
//
// Convention (pull path): the transformer is invoked with the anchor point
// and the orientation's Euler triple; the host bakes anchor, orientation,
// and meter scale into the returned column-major matrix, which is frozen
// onto the camera directly.
func (s *Sync) SyncFromTransformer(tr HostTransformer) {
	arr := tr(s.anchor, s.orientation.Euler)
	var final math32.Matrix4
	final.FromArray(arr[:], 0)
	s.camera.SetFrozenProjection(&final)
}
