package creature

import (
	"errors"
	"fmt"
	stdmath "math"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/creatura/internal/assets"
	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/params"
	"github.com/Faultbox/creatura/internal/rng"
	"github.com/Faultbox/creatura/internal/scene"
	"github.com/Faultbox/creatura/pkg/math"
)

func newComposer(t *testing.T, opts ...Option) (*Composer, *assets.Manager) {
	t.Helper()
	mgr, err := assets.Builtin(material.NewStandardShaders())
	if err != nil {
		t.Fatalf("Builtin() error = %v", err)
	}
	c, err := New(mgr, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, mgr
}

func compose(t *testing.T, c *Composer, seed int64) *Creature {
	t.Helper()
	cr, err := c.Compose(seed)
	if err != nil {
		t.Fatalf("Compose(%d) error = %v", seed, err)
	}
	return cr
}

type nodeState struct {
	Path      string
	Transform scene.Transform
	Vertices  []mesh.Vertex
	Indices   []uint32
	Primitive string
	Colors    []material.Color
}

func snapshot(root *scene.Node) []nodeState {
	var out []nodeState
	root.Walk(func(n *scene.Node, _ math.Mat4) bool {
		st := nodeState{Path: n.Path(), Transform: n.Transform}
		if v := n.Visual; v != nil {
			if v.Mesh != nil {
				st.Vertices = v.Mesh.Vertices
				st.Indices = v.Mesh.Indices
			}
			if v.Primitive != nil {
				st.Primitive = v.Primitive.String()
			}
			for _, m := range v.Materials {
				st.Colors = append(st.Colors, m.Color)
			}
		}
		out = append(out, st)
		return true
	})
	return out
}

func near(a, b math.Vec3) bool {
	const eps = 1e-4
	return stdmath.Abs(float64(a.X-b.X)) < eps &&
		stdmath.Abs(float64(a.Y-b.Y)) < eps &&
		stdmath.Abs(float64(a.Z-b.Z)) < eps
}

func TestComposeDeterministic(t *testing.T) {
	c, _ := newComposer(t)
	for _, seed := range []int64{0, 1, 42, 1000, -7, 123456789} {
		a := snapshot(compose(t, c, seed).Root)
		b := snapshot(compose(t, c, seed).Root)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("seed %d: two compositions differ", seed)
		}
	}
}

func TestComposeSeedsDiffer(t *testing.T) {
	c, _ := newComposer(t)
	a := compose(t, c, 0)
	b := compose(t, c, 1000)
	if a.Materials.Main.Color == b.Materials.Main.Color && a.Body.Params == b.Body.Params {
		t.Error("seeds 0 and 1000 produced the same creature")
	}
}

func TestMainColorScenario(t *testing.T) {
	c, _ := newComposer(t)
	cr := compose(t, c, 0)

	s := rng.New()
	s.Reseed(0 + 4)
	f := s.Range(0, 1)
	want := material.Color{R: 0.6, G: 0, B: 0}.Lerp(material.Color{R: 1, G: 0.5, B: 0}, f)
	if cr.Materials.Main.Color != want {
		t.Errorf("main color = %v, want %v", cr.Materials.Main.Color, want)
	}
	if cr.Materials.Main.Shader.Name != material.StandardShader {
		t.Errorf("shader = %q, want %q", cr.Materials.Main.Shader.Name, material.StandardShader)
	}
}

func TestJointedDrawnFromBarnacleStream(t *testing.T) {
	c, _ := newComposer(t)
	s := rng.New()
	for seed := int64(0); seed < 50; seed++ {
		cr := compose(t, c, seed)
		s.Reseed(seed + rng.PhaseBarnacleMaterial)
		s.Value()
		want := s.Value() < 0.5
		if cr.Jointed != want {
			t.Errorf("seed %d: jointed = %v, want %v", seed, cr.Jointed, want)
		}
		for _, leg := range cr.Legs {
			if leg.Jointed != cr.Jointed {
				t.Errorf("seed %d: leg %s jointed = %v, creature %v", seed, leg.Slot.Name, leg.Jointed, cr.Jointed)
			}
		}
		d1, d2 := cr.LegShape.Direction1, cr.LegShape.Direction2
		if cr.Jointed && (d1 <= 0 || d2 >= 0) {
			t.Errorf("seed %d: jointed leg directions %v, %v not opposite", seed, d1, d2)
		}
		if !cr.Jointed && d1 != d2 {
			t.Errorf("seed %d: straight leg directions %v, %v differ", seed, d1, d2)
		}
	}
}

func TestTreeLayout(t *testing.T) {
	c, _ := newComposer(t)
	cr := compose(t, c, 5)

	if cr.Root.Name != RootName || cr.Root.Parent() != nil {
		t.Errorf("root = %q (parent %v), want detached %q", cr.Root.Name, cr.Root.Parent(), RootName)
	}
	if cr.Root.Transform != scene.IdentityTransform() {
		t.Errorf("root transform = %+v, want identity", cr.Root.Transform)
	}
	for _, path := range []string{
		"Body/TopShell", "Body/Underside",
		"Front_Left_Leg/LegMesh", "Front_Right_Leg/LegMesh",
		"Back_Left_Leg/LegMesh", "Back_Right_Leg/LegMesh",
		"Left_Claw", "Right_Claw", "Eyes",
	} {
		if cr.Root.Find(path) == nil {
			t.Errorf("Find(%q) = nil", path)
		}
	}
}

func TestUnderside(t *testing.T) {
	c, _ := newComposer(t)
	for seed := int64(0); seed < 20; seed++ {
		b := compose(t, c, seed).Body
		if b.Underside.Transform.Position != UndersideOffset {
			t.Errorf("underside position = %v, want %v", b.Underside.Transform.Position, UndersideOffset)
		}
		if b.Underside.Transform.Scale != b.TopShell.Transform.Scale {
			t.Errorf("underside scale %v != shell scale %v", b.Underside.Transform.Scale, b.TopShell.Transform.Scale)
		}
		if b.Underside.Visual.Mesh != b.TopShell.Visual.Mesh {
			t.Error("underside does not share the body mesh")
		}
		if b.Underside.Visual.Materials[0] == b.TopShell.Visual.Materials[0] {
			t.Error("underside uses the shell material")
		}
	}
}

func TestLegSlots(t *testing.T) {
	c, _ := newComposer(t)
	cr := compose(t, c, 9)
	for i, leg := range cr.Legs {
		slot := Slots[i]
		if leg.Node.Name != slot.Name {
			t.Errorf("leg %d name = %q, want %q", i, leg.Node.Name, slot.Name)
		}
		if leg.Node.Transform.Position != slot.Position {
			t.Errorf("%s position = %v, want %v", slot.Name, leg.Node.Transform.Position, slot.Position)
		}
		want := math.QuatFromEuler(0, slot.RotationY, slot.RotationZ)
		if leg.Node.Transform.Rotation != want {
			t.Errorf("%s rotation = %v, want %v", slot.Name, leg.Node.Transform.Rotation, want)
		}
		if leg.Mesh != cr.Legs[0].Mesh {
			t.Errorf("%s does not share the leg mesh", slot.Name)
		}
		sc := leg.MeshNode.Transform.Scale
		if sc.X < 0.25 || sc.X > 0.35 || sc.Y < 0.7 || sc.Y > 0.9 {
			t.Errorf("%s mesh scale = %v out of range", slot.Name, sc)
		}
	}
}

func TestBarnaclesOnLegCurve(t *testing.T) {
	c, _ := newComposer(t)
	found := 0
	for seed := int64(0); seed < 30; seed++ {
		cr := compose(t, c, seed)
		curve := cr.LegShape.Curve()
		for _, leg := range cr.Legs {
			for i, b := range leg.Barnacles {
				found++
				wantName := fmt.Sprintf("%s_Barnacle_%d", leg.Slot.Name, i+1)
				if b.Node.Name != wantName {
					t.Errorf("barnacle name = %q, want %q", b.Node.Name, wantName)
				}
				if b.Node.Parent() != leg.Node {
					t.Errorf("%s is not a child of its leg", b.Node.Name)
				}
				want := leg.MeshNode.TransformPoint(curve.Point(b.T))
				if got := b.Node.WorldPosition(); !near(got, want) {
					t.Errorf("%s world position = %v, want %v", b.Node.Name, got, want)
				}
				if b.Node.Visual.Materials[0] != cr.Materials.Barnacle {
					t.Errorf("%s does not use the barnacle material", b.Node.Name)
				}
			}
			if len(leg.Barnacles) > 3 {
				t.Errorf("%s has %d barnacles", leg.Slot.Name, len(leg.Barnacles))
			}
		}
	}
	if found == 0 {
		t.Error("no barnacles generated over 30 seeds")
	}
}

func TestClawMirroring(t *testing.T) {
	c, _ := newComposer(t)
	for seed := int64(0); seed < 100; seed++ {
		cr := compose(t, c, seed)
		l, r := cr.LeftClaw, cr.RightClaw

		if got := l.Node.Transform.Position; got != ClawPositions[l.Variant] {
			t.Errorf("seed %d: left claw position = %v, want %v", seed, got, ClawPositions[l.Variant])
		}
		base := ClawPositions[r.Variant]
		pos := r.Node.Transform.Position
		if pos.X != -base.X || pos.Y != base.Y || pos.Z != base.Z {
			t.Errorf("seed %d: right claw position = %v, want mirror of %v", seed, pos, base)
		}
		sc := r.Node.Transform.Scale
		if sc.X != -r.Scale || sc.Y != r.Scale || sc.Z != r.Scale {
			t.Errorf("seed %d: right claw scale = %v, want (-%v, %v, %v)", seed, sc, r.Scale, r.Scale, r.Scale)
		}
		if l.Node.Transform.Scale != math.Uniform(l.Scale) {
			t.Errorf("seed %d: left claw scale = %v", seed, l.Node.Transform.Scale)
		}
		if r.Node.WorldMatrix().Determinant3() >= 0 {
			t.Errorf("seed %d: right claw is not mirrored", seed)
		}
	}
}

func TestClawRecolor(t *testing.T) {
	c, mgr := newComposer(t)
	cr := compose(t, c, 3)
	for _, claw := range []*Claw{cr.LeftClaw, cr.RightClaw} {
		for _, surf := range claw.Template.Surfaces {
			for _, m := range surf.Materials {
				if m != cr.Materials.Main {
					t.Errorf("%s/%s material %q not recoloured", claw.Node.Name, surf.Name, m.Name)
				}
			}
		}
	}
	for _, tpl := range mgr.Claws() {
		for _, surf := range tpl.Surfaces {
			for _, m := range surf.Materials {
				if m == cr.Materials.Main || !strings.HasPrefix(m.Name, "Claw") {
					t.Errorf("template %s was mutated", tpl.Name)
				}
			}
		}
	}
}

func TestEyeRecolorMarkedOnly(t *testing.T) {
	c, mgr := newComposer(t)
	seen := map[int]bool{}
	for seed := int64(0); seed < 40; seed++ {
		cr := compose(t, c, seed)
		eyes := cr.Eyes
		seen[eyes.Variant] = true
		if eyes.Recolored != 1 {
			t.Errorf("seed %d: recoloured %d eye materials, want 1", seed, eyes.Recolored)
		}
		if got := eyes.Node.Transform.Position; got != EyePositions[eyes.Variant] {
			t.Errorf("seed %d: eye position = %v, want %v", seed, got, EyePositions[eyes.Variant])
		}
		for _, surf := range eyes.Template.Surfaces {
			for _, m := range surf.Materials {
				if m == cr.Materials.Main {
					continue
				}
				if strings.Contains(m.Name, assets.EyeShellMarker) {
					t.Errorf("seed %d: marker material %q left in place", seed, m.Name)
				}
			}
		}
	}
	if len(seen) < 2 {
		t.Errorf("only %d eye variants drawn over 40 seeds", len(seen))
	}
	for _, tpl := range mgr.Eyes() {
		if !tpl.HasMarker(assets.EyeShellMarker) {
			t.Errorf("template %s lost its marker", tpl.Name)
		}
	}
}

func TestCreaturesOwnTheirMeshes(t *testing.T) {
	c, _ := newComposer(t)
	a := compose(t, c, 8)
	b := compose(t, c, 8)
	if a.Body.Mesh == b.Body.Mesh || a.Legs[0].Mesh == b.Legs[0].Mesh {
		t.Error("meshes shared across creatures")
	}
	if a.Materials.Main == b.Materials.Main {
		t.Error("materials shared across creatures")
	}
}

func TestResolutionClamped(t *testing.T) {
	c, _ := newComposer(t, WithResolution(mesh.Resolution{Curve: 1, Radial: 200}))
	if got := c.Resolution(); got != (mesh.Resolution{Curve: 3, Radial: 64}) {
		t.Fatalf("Resolution() = %v, want {3 64}", got)
	}
	cr := compose(t, c, 0)
	if n := cr.Body.Mesh.VertexCount(); n != 3*64 {
		t.Errorf("body vertices = %d, want %d", n, 3*64)
	}
}

type stubProvider struct {
	claws, eyes []*assets.Template
}

func (p stubProvider) Claws() []*assets.Template { return p.claws }
func (p stubProvider) Eyes() []*assets.Template  { return p.eyes }

func TestMissingAssets(t *testing.T) {
	mgr, err := assets.Builtin(material.NewStandardShaders())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(nil); !errors.Is(err, ErrMissingAsset) {
		t.Errorf("New(nil) error = %v, want ErrMissingAsset", err)
	}

	short := stubProvider{claws: mgr.Claws()[:2], eyes: mgr.Eyes()}
	if _, err := New(short); !errors.Is(err, ErrMissingAsset) {
		t.Errorf("two claws: error = %v, want ErrMissingAsset", err)
	}

	holey := stubProvider{claws: mgr.Claws(), eyes: append([]*assets.Template{nil}, mgr.Eyes()[1:]...)}
	if _, err := New(holey); !errors.Is(err, ErrMissingAsset) {
		t.Errorf("nil eye: error = %v, want ErrMissingAsset", err)
	}

	plain := &assets.Template{Name: "Plain", Surfaces: []assets.Surface{{
		Name:      "Balls",
		Materials: []*material.Material{{Name: "PupilMaterial"}},
	}}}
	unmarked := stubProvider{claws: mgr.Claws(), eyes: append([]*assets.Template{plain}, mgr.Eyes()[1:]...)}
	if _, err := New(unmarked); !errors.Is(err, assets.ErrMissingMarker) {
		t.Errorf("unmarked eye: error = %v, want ErrMissingMarker", err)
	}
}

func TestComposerKeepsTemplatesFromNew(t *testing.T) {
	c, mgr := newComposer(t)
	want := snapshot(compose(t, c, 7).Root)

	mgr.AddClaw(&assets.Template{Name: "Extra"})
	for seed := int64(0); seed < 200; seed++ {
		compose(t, c, seed)
	}
	mgr.Clear()
	if got := snapshot(compose(t, c, 7).Root); !reflect.DeepEqual(got, want) {
		t.Error("changing the manager after New changed the composed creature")
	}

	// A provider that hands out its own slice cannot reach the copy either.
	fresh, err := assets.Builtin(material.NewStandardShaders())
	if err != nil {
		t.Fatal(err)
	}
	p := stubProvider{claws: fresh.Claws(), eyes: fresh.Eyes()}
	sc, err := New(p)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	p.claws[0], p.eyes[0] = nil, nil
	for seed := int64(0); seed < 50; seed++ {
		compose(t, sc, seed)
	}
}

type noShaders struct{}

func (noShaders) Find(name string) (material.Shader, error) {
	return material.Shader{}, fmt.Errorf("%w: %q", material.ErrShaderNotFound, name)
}

func TestMissingShader(t *testing.T) {
	c, _ := newComposer(t, WithShaders(noShaders{}))
	cr, err := c.Compose(0)
	if !errors.Is(err, ErrMissingAsset) || !errors.Is(err, material.ErrShaderNotFound) {
		t.Errorf("Compose() error = %v, want ErrMissingAsset wrapping ErrShaderNotFound", err)
	}
	if cr != nil {
		t.Error("Compose() returned a partial creature")
	}
}

func TestInvalidRanges(t *testing.T) {
	mgr, _ := assets.Builtin(material.NewStandardShaders())
	r := params.DefaultRanges()
	r.MinXDistance, r.MaxXDistance = 6, 4
	if _, err := New(mgr, WithRanges(r)); err == nil {
		t.Error("New() accepted inverted ranges")
	}
}
