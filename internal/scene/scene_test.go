package scene

import (
	"testing"

	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/pkg/math"
)

func near(a, b math.Vec3) bool {
	return a.Distance(b) < 1e-4
}

func TestWorldMatrixChain(t *testing.T) {
	root := NewNode("Crab_1")
	root.Transform.Position = math.Vec3{X: 7}

	leg := root.NewChild("Front_Left_Leg")
	leg.Transform.Position = math.Vec3{X: -0.7, Y: 0.2}

	legMesh := leg.NewChild("LegMesh")
	legMesh.Transform.Scale = math.Vec3{X: 0.3, Y: 0.8, Z: 0.3}

	got := legMesh.TransformPoint(math.Vec3{X: 1, Y: 1})
	want := math.Vec3{X: 7 - 0.7 + 0.3, Y: 0.2 + 0.8}
	if !near(got, want) {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
}

func TestSetWorldPosition(t *testing.T) {
	root := NewNode("root")
	leg := root.NewChild("leg")
	leg.Transform.Position = math.Vec3{X: 0.7, Y: 0.2, Z: 0.5}
	leg.Transform.Rotation = math.QuatFromEuler(0, -40, -120)

	legMesh := leg.NewChild("LegMesh")
	legMesh.Transform.Scale = math.Vec3{X: 0.3, Y: 0.8, Z: 0.25}

	barnacle := leg.NewChild("leg_Barnacle_1")
	curvePoint := math.Vec3{X: 1.4, Y: 1.5}
	world := legMesh.TransformPoint(curvePoint)
	barnacle.SetWorldPosition(world)

	if !near(barnacle.WorldPosition(), world) {
		t.Errorf("WorldPosition() = %v, want %v", barnacle.WorldPosition(), world)
	}
	// LegMesh only scales, so the parent-local position is the scaled point.
	if want := curvePoint.Mul(legMesh.Transform.Scale); !near(barnacle.Transform.Position, want) {
		t.Errorf("local position = %v, want %v", barnacle.Transform.Position, want)
	}
}

func TestInverseTransformPoint(t *testing.T) {
	n := NewNode("n")
	n.Transform = Transform{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: math.QuatFromEuler(30, 60, 90),
		Scale:    math.Vec3{X: -1.2, Y: 1.2, Z: 1.2},
	}
	p := math.Vec3{X: 0.5, Y: -0.25, Z: 2}
	if got := n.InverseTransformPoint(n.TransformPoint(p)); !near(got, p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := a.NewChild("c")

	b.AddChild(c)
	if len(a.Children) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children))
	}
	if c.Parent() != b {
		t.Error("child not reparented")
	}
	if c.Path() != "b/c" {
		t.Errorf("Path() = %q, want b/c", c.Path())
	}
}

func TestFindAndCount(t *testing.T) {
	root := NewNode("Crab_1")
	body := root.NewChild("Body")
	body.NewChild("TopShell")
	body.NewChild("Underside")

	if got := root.Find("Body/Underside"); got == nil || got.Name != "Underside" {
		t.Errorf("Find(Body/Underside) = %v", got)
	}
	if got := root.Find("Body/Missing"); got != nil {
		t.Errorf("Find(Body/Missing) = %v, want nil", got)
	}
	if got := root.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := NewNode("root")
	a := root.NewChild("a")
	a.NewChild("a1")
	root.NewChild("b")

	var visited []string
	root.Walk(func(n *Node, _ math.Mat4) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})

	want := []string{"root", "a", "b"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
		}
	}
}

func TestVisualGeometry(t *testing.T) {
	kind := mesh.Capsule
	v := &Visual{Primitive: &kind}
	if g := v.Geometry(); g == nil || g.TriangleCount() == 0 {
		t.Error("primitive visual has no geometry")
	}
	if g := (&Visual{}).Geometry(); g != nil {
		t.Error("empty visual should have no geometry")
	}
}
