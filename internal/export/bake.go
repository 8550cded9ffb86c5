// Package export writes generated trees out as Wavefront OBJ geometry, MTL
// materials and a YAML placement manifest.
package export

import (
	"fmt"
	"strings"

	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/scene"
	"github.com/Faultbox/creatura/pkg/math"
)

// Part is one visual baked into world space.
type Part struct {
	Path     string
	Material *material.Material
	Mesh     *mesh.Mesh
}

// Baked is a whole tree flattened into world-space parts.
type Baked struct {
	Parts     []Part
	Materials []*material.Material

	names map[*material.Material]string
}

// Bake flattens every visual under root into world space. Mirrored
// transforms have their winding reversed so faces keep pointing outward.
// Visuals carry a single mesh with no per-slot submeshes, so each part is
// drawn with the first material slot. The placement manifest still lists
// every slot.
func Bake(root *scene.Node) *Baked {
	b := &Baked{names: make(map[*material.Material]string)}
	used := make(map[string]int)

	root.Walk(func(n *scene.Node, world math.Mat4) bool {
		if n.Visual == nil {
			return true
		}
		src := n.Visual.Geometry()
		if src == nil {
			return true
		}
		var mat *material.Material
		if len(n.Visual.Materials) > 0 {
			mat = n.Visual.Materials[0]
		}
		if mat != nil {
			if _, ok := b.names[mat]; !ok {
				b.names[mat] = uniqueName(used, n, mat)
				b.Materials = append(b.Materials, mat)
			}
		}
		b.Parts = append(b.Parts, Part{Path: n.Path(), Material: mat, Mesh: transform(src, world)})
		return true
	})
	return b
}

// MaterialName returns the exported name of m, or "" if m was not baked.
func (b *Baked) MaterialName(m *material.Material) string {
	return b.names[m]
}

// Bounds returns the box enclosing every part.
func (b *Baked) Bounds() mesh.Bounds {
	var out mesh.Bounds
	for i, p := range b.Parts {
		if i == 0 {
			out = p.Mesh.Bounds
			continue
		}
		out.Extend(p.Mesh.Bounds.Min)
		out.Extend(p.Mesh.Bounds.Max)
	}
	return out
}

// TriangleCount returns the number of triangles across all parts.
func (b *Baked) TriangleCount() int {
	n := 0
	for _, p := range b.Parts {
		n += p.Mesh.TriangleCount()
	}
	return n
}

func transform(src *mesh.Mesh, world math.Mat4) *mesh.Mesh {
	out := src.Clone()
	normals := world.NormalMatrix()
	for i, v := range out.Vertices {
		out.Vertices[i].Position = world.TransformPoint(v.Position)
		out.Vertices[i].Normal = normals.TransformDirection(v.Normal).Normalize()
	}
	if world.Determinant3() < 0 {
		for i := 0; i+2 < len(out.Indices); i += 3 {
			out.Indices[i+1], out.Indices[i+2] = out.Indices[i+2], out.Indices[i+1]
		}
	}
	out.RecalculateBounds()
	return out
}

// uniqueName builds a material name from the owning creature and the
// material's own name, e.g. "Crab_2_MainBody".
func uniqueName(used map[string]int, n *scene.Node, m *material.Material) string {
	base := sanitize(m.Name)
	if owner := topAncestor(n); owner != nil {
		base = sanitize(owner.Name) + "_" + base
	}
	used[base]++
	if c := used[base]; c > 1 {
		return fmt.Sprintf("%s_%d", base, c)
	}
	return base
}

// topAncestor returns the ancestor directly below the tree root, which is a
// creature when baking a colony.
func topAncestor(n *scene.Node) *scene.Node {
	if n.Parent() == nil {
		return nil
	}
	for n.Parent().Parent() != nil {
		n = n.Parent()
	}
	return n
}

func sanitize(name string) string {
	if name == "" {
		return "Material"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
