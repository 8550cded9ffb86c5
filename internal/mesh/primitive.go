package mesh

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/creatura/pkg/math"
)

// Primitive identifies a unit shape used for barnacles and placeholder
// visuals.
type Primitive int

// Primitive kinds, in the order barnacle sampling indexes them.
const (
	Sphere Primitive = iota
	Capsule
	Cylinder
	Cube
)

// Primitives lists every kind in sampling order.
var Primitives = [...]Primitive{Sphere, Capsule, Cylinder, Cube}

var primitiveNames = [...]string{"sphere", "capsule", "cylinder", "cube"}

func (p Primitive) String() string {
	if p < 0 || int(p) >= len(primitiveNames) {
		return fmt.Sprintf("primitive(%d)", int(p))
	}
	return primitiveNames[p]
}

// ParsePrimitive maps a name back to its kind.
func ParsePrimitive(name string) (Primitive, error) {
	for i, n := range primitiveNames {
		if n == name {
			return Primitive(i), nil
		}
	}
	return 0, fmt.Errorf("unknown primitive %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Primitive) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Primitive) UnmarshalText(text []byte) error {
	v, err := ParsePrimitive(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

const primitiveSegments = 12

// BuildPrimitive returns a new mesh for a unit primitive: a cube and sphere
// one unit across, a cylinder and capsule two units tall with radius 0.5.
func BuildPrimitive(kind Primitive) *Mesh {
	switch kind {
	case Sphere:
		return lathe(arc(math.Vec3{}, 0.5, -gomath.Pi/2, gomath.Pi/2, primitiveSegments), primitiveSegments+1)
	case Capsule:
		profile := arc(math.Vec3{Y: -0.5}, 0.5, -gomath.Pi/2, 0, primitiveSegments/2)
		profile = append(profile, arc(math.Vec3{Y: 0.5}, 0.5, 0, gomath.Pi/2, primitiveSegments/2)...)
		return lathe(profile, primitiveSegments+1)
	case Cylinder:
		// Rim points are doubled so caps and side get separate normals.
		profile := []math.Vec3{
			{X: 0, Y: -1}, {X: 0.5, Y: -1},
			{X: 0.5, Y: -1}, {X: 0.5, Y: 1},
			{X: 0.5, Y: 1}, {X: 0, Y: 1},
		}
		return lathe(profile, primitiveSegments+1)
	default:
		return cube(0.5)
	}
}

// arc samples a profile quarter/half circle from angle lo to hi (radians,
// measured from +X toward +Y) around center.
func arc(center math.Vec3, radius float64, lo, hi float64, segments int) []math.Vec3 {
	points := make([]math.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := lo + (hi-lo)*float64(i)/float64(segments)
		x := radius * gomath.Cos(a)
		if x < 1e-7 {
			x = 0
		}
		points = append(points, math.Vec3{
			X: float32(x),
			Y: center.Y + float32(radius*gomath.Sin(a)),
		})
	}
	return points
}

func cube(h float32) *Mesh {
	faces := [6][3]math.Vec3{
		// normal, u, v with u × v = normal
		{{X: 1}, {Y: 1}, {Z: 1}},
		{{X: -1}, {Z: 1}, {Y: 1}},
		{{Y: 1}, {Z: 1}, {X: 1}},
		{{Y: -1}, {X: 1}, {Z: 1}},
		{{Z: 1}, {X: 1}, {Y: 1}},
		{{Z: -1}, {Y: 1}, {X: 1}},
	}

	m := &Mesh{}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(m.Vertices))
		center := n.Scale(h)
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := center.Add(u.Scale(c[0] * h)).Add(v.Scale(c[1] * h))
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
		}
		m.Indices = append(m.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	m.RecalculateBounds()
	return m
}
