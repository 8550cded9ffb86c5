// Package scene is the placement tree generated creatures are built into.
// Parents own their children; a host instantiates the finished tree.
package scene

import (
	"strings"

	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/pkg/math"
)

// Host consumes a finished tree, for example by exporting or rendering it.
type Host interface {
	Instantiate(root *Node) error
}

// Transform is a local position, rotation and scale relative to the parent.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.One}
}

// Matrix returns T·R·S.
func (t Transform) Matrix() math.Mat4 {
	return math.TRS(t.Position, t.Rotation, t.Scale)
}

// Visual is the renderable attached to a node: either a mesh or a unit
// primitive, drawn with one material per surface slot.
type Visual struct {
	Mesh      *mesh.Mesh
	Primitive *mesh.Primitive
	Materials []*material.Material
}

// Geometry returns the mesh to draw, building primitives on demand.
func (v *Visual) Geometry() *mesh.Mesh {
	if v.Mesh != nil {
		return v.Mesh
	}
	if v.Primitive != nil {
		return mesh.BuildPrimitive(*v.Primitive)
	}
	return nil
}

// Node is one element of the placement tree.
type Node struct {
	Name      string
	Transform Transform
	Visual    *Visual
	Children  []*Node

	parent *Node
}

// NewNode returns a detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: IdentityTransform()}
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// AddChild attaches child under n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// NewChild creates a named child with an identity transform.
func (n *Node) NewChild(name string) *Node {
	return n.AddChild(NewNode(name))
}

// RemoveChild detaches child if n owns it.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Find resolves a slash separated path of child names, e.g. "Body/TopShell".
func (n *Node) Find(path string) *Node {
	cur := n
	for _, name := range strings.Split(path, "/") {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Walk visits n and its descendants depth first with their world matrices.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, world math.Mat4) bool) {
	n.walk(n.parentMatrix(), fn)
}

func (n *Node) walk(parent math.Mat4, fn func(*Node, math.Mat4) bool) {
	world := parent.Mul(n.Transform.Matrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.Children {
		c.walk(world, fn)
	}
}

// LocalMatrix returns the node's own T·R·S matrix.
func (n *Node) LocalMatrix() math.Mat4 {
	return n.Transform.Matrix()
}

// WorldMatrix returns the product of the local matrices from the root down.
func (n *Node) WorldMatrix() math.Mat4 {
	return n.parentMatrix().Mul(n.LocalMatrix())
}

func (n *Node) parentMatrix() math.Mat4 {
	if n.parent == nil {
		return math.Identity()
	}
	return n.parent.WorldMatrix()
}

// TransformPoint converts a point from the node's local space to world space.
func (n *Node) TransformPoint(p math.Vec3) math.Vec3 {
	return n.WorldMatrix().TransformPoint(p)
}

// InverseTransformPoint converts a world point into the node's local space.
func (n *Node) InverseTransformPoint(p math.Vec3) math.Vec3 {
	return n.WorldMatrix().Inverse().TransformPoint(p)
}

// SetWorldPosition places the node so its origin lands on a world point,
// storing the result as a position local to its parent.
func (n *Node) SetWorldPosition(p math.Vec3) {
	if n.parent == nil {
		n.Transform.Position = p
		return
	}
	n.Transform.Position = n.parent.InverseTransformPoint(p)
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// Path returns the slash separated names from the root to n.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.Name
	}
	return n.parent.Path() + "/" + n.Name
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
