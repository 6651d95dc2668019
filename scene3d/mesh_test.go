// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene3d

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
)

// unitQuad is two CCW triangles in the XY plane facing +Z.
func unitQuad() *Mesh {
	return &Mesh{
		Name: "quad",
		Positions: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestFlipWindingIsItsOwnInverse(t *testing.T) {
	m := unitQuad()
	orig := append([]uint32(nil), m.Indices...)

	FlipWinding(m)
	for tri := 0; tri+2 < len(orig); tri += 3 {
		if m.Indices[tri] != orig[tri] ||
			m.Indices[tri+1] != orig[tri+2] ||
			m.Indices[tri+2] != orig[tri+1] {
			t.Fatalf("triangle at %d not swapped: got %v, want 2nd/3rd of %v exchanged",
				tri, m.Indices, orig)
		}
	}

	FlipWinding(m)
	for i := range orig {
		if m.Indices[i] != orig[i] {
			t.Fatalf("winding not restored after double flip: got %v, want %v",
				m.Indices, orig)
		}
	}
}

func TestFlipWindingReversesNormals(t *testing.T) {
	m := unitQuad()
	RecomputeNormals(m)
	if m.Normals[2] <= 0 {
		t.Fatalf("CCW quad in XY plane should have +Z normals, got %v", m.Normals[2])
	}

	FlipWinding(m)
	if m.Normals[2] >= 0 {
		t.Errorf("flipped quad should have -Z normals, got %v", m.Normals[2])
	}
}

func TestRecomputeNormalsUnitLength(t *testing.T) {
	m := unitQuad()
	RecomputeNormals(m)

	for v := 0; v+2 < len(m.Normals); v += 3 {
		l := math.Sqrt(float64(m.Normals[v]*m.Normals[v] +
			m.Normals[v+1]*m.Normals[v+1] +
			m.Normals[v+2]*m.Normals[v+2]))
		if math.Abs(l-1) > 1e-5 {
			t.Errorf("vertex %d: normal length %v, want 1", v/3, l)
		}
	}
}

func TestRecomputeNormalsSkipsUnreferencedVertices(t *testing.T) {
	m := unitQuad()
	m.Indices = m.Indices[:3] // second triangle removed; vertex 3 unreferenced
	RecomputeNormals(m)

	if m.Normals[9] != 0 || m.Normals[10] != 0 || m.Normals[11] != 0 {
		t.Error("unreferenced vertex should keep a zero normal")
	}
}

func TestRaycastHitsTriangle(t *testing.T) {
	m := &Mesh{
		Positions: []float32{
			-1, -1, 0,
			1, -1, 0,
			0, 1, 0,
		},
		Indices: []uint32{0, 1, 2},
	}

	r := Ray{Origin: math32.Vec3(0, 0, -2), Dir: math32.Vec3(0, 0, 1)}
	hits := r.IntersectMesh(m)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if math.Abs(float64(hits[0].Distance-2)) > 1e-5 {
		t.Errorf("hit distance = %v, want 2", hits[0].Distance)
	}
	if math.Abs(float64(hits[0].Point.Z)) > 1e-5 {
		t.Errorf("hit point Z = %v, want 0", hits[0].Point.Z)
	}
}

func TestRaycastMissesOutsideTriangle(t *testing.T) {
	m := &Mesh{
		Positions: []float32{-1, -1, 0, 1, -1, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2},
	}

	r := Ray{Origin: math32.Vec3(5, 5, -2), Dir: math32.Vec3(0, 0, 1)}
	if hits := r.IntersectMesh(m); len(hits) != 0 {
		t.Errorf("expected miss, got %d hits", len(hits))
	}
}

func TestRaycastSceneSortsAndFilters(t *testing.T) {
	near := &Mesh{
		Name:      "near",
		Positions: []float32{-1, -1, 1, 1, -1, 1, 0, 1, 1},
		Indices:   []uint32{0, 1, 2},
	}
	far := &Mesh{
		Name:      "far",
		Positions: []float32{-1, -1, 5, 1, -1, 5, 0, 1, 5},
		Indices:   []uint32{0, 1, 2},
	}

	s := NewScene(RightHanded)
	s.Add(far)
	s.Add(near)

	r := Ray{Origin: math32.Vec3(0, 0, 0), Dir: math32.Vec3(0, 0, 1)}

	hits := RaycastScene(s, r, nil)
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Mesh != near || hits[1].Mesh != far {
		t.Error("hits should be sorted nearest first")
	}

	only := RaycastScene(s, r, func(m *Mesh) bool { return m.Name == "far" })
	if len(only) != 1 || only[0].Mesh != far {
		t.Error("filter should restrict hit candidates")
	}
}

func TestRayFromScreenRequiresFrozenProjection(t *testing.T) {
	cam := NewCamera()

	if _, err := RayFromScreen(cam, 10, 10, 100, 100); err == nil {
		t.Error("expected ErrNoProjection before the first frame")
	}
}

func TestRayFromScreenCenterWithIdentityProjection(t *testing.T) {
	cam := NewCamera()
	var ident math32.Matrix4
	ident.SetIdentity()
	cam.SetFrozenProjection(&ident)

	r, err := RayFromScreen(cam, 50, 50, 100, 100)
	if err != nil {
		t.Fatalf("RayFromScreen: %v", err)
	}
	// Center of the screen with identity projection unprojects onto the
	// Z axis, pointing from the near plane to the far plane.
	if math.Abs(float64(r.Origin.X)) > 1e-5 || math.Abs(float64(r.Origin.Y)) > 1e-5 {
		t.Errorf("ray origin = %+v, want on Z axis", r.Origin)
	}
	if r.Dir.Z <= 0 {
		t.Errorf("ray direction = %+v, want +Z", r.Dir)
	}
}

func TestSceneVersionTracksMutation(t *testing.T) {
	s := NewScene(RightHanded)
	v0 := s.Version()

	m := unitQuad()
	s.Add(m)
	if s.Version() == v0 {
		t.Error("Add should bump the scene version")
	}

	v1 := s.Version()
	if !s.Remove(m) {
		t.Fatal("Remove should find the mesh")
	}
	if s.Version() == v1 {
		t.Error("Remove should bump the scene version")
	}
	if s.Remove(m) {
		t.Error("Remove of absent mesh should report false")
	}
}
