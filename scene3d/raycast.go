// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene3d

import (
	"errors"
	"sort"

	"cogentcore.org/core/math32"
)

// ErrNoProjection is returned when a pick ray is requested before the camera
// has received a frozen projection for the frame.
var ErrNoProjection = errors.New("scene3d: camera has no frozen projection")

const rayEpsilon = 1e-7

// Hit is one ray-mesh intersection.
type Hit struct {
	// Point is the intersection in the local frame.
	Point math32.Vector3

	// Distance is the ray-parameter distance from the ray origin.
	Distance float32

	// Mesh is the intersected object.
	Mesh *Mesh
}

// Ray is a pick ray in the local frame.
type Ray struct {
	Origin math32.Vector3
	Dir    math32.Vector3
}

// RayFromScreen builds a pick ray from a screen point in pixels, using the
// camera's frozen projection and the drawing-buffer size. The screen origin
// is top-left, matching host pointer events.
func RayFromScreen(cam *Camera, x, y float32, width, height int) (Ray, error) {
	if !cam.Frozen() {
		return Ray{}, ErrNoProjection
	}
	proj := cam.Projection()
	inv, err := proj.Inverse()
	if err != nil {
		return Ray{}, err
	}

	nx := 2*x/float32(width) - 1
	ny := 1 - 2*y/float32(height)

	near := math32.Vector4{X: nx, Y: ny, Z: -1, W: 1}.MulMatrix4(inv).PerspDiv()
	far := math32.Vector4{X: nx, Y: ny, Z: 1, W: 1}.MulMatrix4(inv).PerspDiv()

	return Ray{Origin: near, Dir: far.Sub(near).Normal()}, nil
}

// IntersectMesh returns all intersections of the ray with the mesh's
// triangles, unsorted. Both triangle sides are considered: picking should
// not depend on winding fix-ups.
func (r Ray) IntersectMesh(m *Mesh) []Hit {
	var hits []Hit
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Position(m.Indices[i])
		b := m.Position(m.Indices[i+1])
		c := m.Position(m.Indices[i+2])
		if t, ok := r.intersectTriangle(a, b, c); ok {
			hits = append(hits, Hit{
				Point:    r.Origin.Add(r.Dir.MulScalar(t)),
				Distance: t,
				Mesh:     m,
			})
		}
	}
	return hits
}

// intersectTriangle is the Möller–Trumbore intersection test, double-sided.
func (r Ray) intersectTriangle(a, b, c math32.Vector3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det
	tv := r.Origin.Sub(a)
	u := tv.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := tv.Cross(e1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * invDet
	if t < rayEpsilon {
		return 0, false
	}
	return t, true
}

// RaycastScene intersects the ray with every scene mesh accepted by the
// filter (nil accepts all) and returns the hits sorted nearest first.
func RaycastScene(s *Scene, r Ray, filter func(*Mesh) bool) []Hit {
	var hits []Hit
	for _, m := range s.Meshes() {
		if filter != nil && !filter(m) {
			continue
		}
		hits = append(hits, r.IntersectMesh(m)...)
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
