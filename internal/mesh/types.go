// Package mesh builds the triangle meshes of generated creatures: revolved
// Bezier profiles for bodies and legs, and unit primitives for decorations.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/creatura/pkg/math"
)

// Resolution limits. Anything outside is clamped before meshing.
const (
	MinResolution = 3
	MaxResolution = 64
)

// ErrDegenerateResolution is returned when a resolution below MinResolution
// reaches the mesher.
var ErrDegenerateResolution = errors.New("degenerate mesh resolution")

// Vertex is a mesh vertex with position and normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// emptyBounds is inverted so the first point always wins.
func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh holds indexed triangle geometry. Indices holds three entries per
// triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// Validate checks that the index buffer describes whole triangles that only
// reference existing vertices.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d references vertex %d of %d", i, idx, n)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
		Bounds:   m.Bounds,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Indices, m.Indices)
	return c
}

// RecalculateNormals rebuilds vertex normals from the triangle set. Each
// face contributes its area-weighted normal to its three corners.
func (m *Mesh) RecalculateNormals() {
	sums := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		va, vb, vc := m.Vertices[ia].Position, m.Vertices[ib].Position, m.Vertices[ic].Position
		n := vb.Sub(va).Cross(vc.Sub(va))
		sums[ia] = sums[ia].Add(n)
		sums[ib] = sums[ib].Add(n)
		sums[ic] = sums[ic].Add(n)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = normalizeOrUp(sums[i])
	}
}

// RecalculateBounds rebuilds the bounding box from vertex positions.
func (m *Mesh) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := emptyBounds()
	for _, v := range m.Vertices {
		b.Extend(v.Position)
	}
	m.Bounds = b
}

// normalizeOrUp falls back to +Y for vertices only touched by degenerate
// faces, such as the apex rings of a revolved profile.
func normalizeOrUp(v math.Vec3) math.Vec3 {
	if v.Length() < 1e-8 {
		return math.Vec3{Y: 1}
	}
	return v.Normalize()
}
