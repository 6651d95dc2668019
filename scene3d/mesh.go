// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene3d

import "cogentcore.org/core/math32"

// Mesh is indexed triangle geometry in the local frame. Positions and
// normals are packed xyz triplets; indices form a triangle list.
type Mesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i's position.
func (m *Mesh) Position(i uint32) math32.Vector3 {
	return math32.Vec3(m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2])
}

// FlipWinding reverses every triangle's winding order by swapping its second
// and third vertex index, then recomputes all vertex normals from the
// reversed index buffer and the existing positions.
//
// This is a workaround for the handedness mismatch between some embedded
// engines' authoring conventions and the host context's front-face
// convention. It is an explicit per-mesh opt-in, never applied
// automatically. Applying it twice restores the original winding; normals
// are recomputed fresh each time, not restored bit for bit.
func FlipWinding(m *Mesh) {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
	}
	RecomputeNormals(m)
}

// RecomputeNormals rebuilds per-vertex normals from the index and position
// buffers: face normals are accumulated area-weighted per vertex and then
// normalized. The normal buffer is reallocated to match the positions.
func RecomputeNormals(m *Mesh) {
	m.Normals = make([]float32, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a := m.Position(ia)
		b := m.Position(ib)
		c := m.Position(ic)
		// Cross product magnitude carries triangle area, so larger faces
		// weigh more in the shared-vertex accumulation.
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range []uint32{ia, ib, ic} {
			m.Normals[3*idx] += n.X
			m.Normals[3*idx+1] += n.Y
			m.Normals[3*idx+2] += n.Z
		}
	}
	for v := 0; v+2 < len(m.Normals); v += 3 {
		n := math32.Vec3(m.Normals[v], m.Normals[v+1], m.Normals[v+2])
		if n.Length() == 0 {
			continue
		}
		n = n.Normal()
		m.Normals[v], m.Normals[v+1], m.Normals[v+2] = n.X, n.Y, n.Z
	}
}
