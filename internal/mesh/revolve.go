package mesh

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/creatura/pkg/math"
)

// Resolution controls mesh density: Curve samples along the profile and
// Radial vertices around each ring.
type Resolution struct {
	Curve  int `yaml:"curve"`
	Radial int `yaml:"radial"`
}

// DefaultResolution is the density used when none is configured.
var DefaultResolution = Resolution{Curve: 16, Radial: 16}

// Clamp returns r with both components limited to [MinResolution, MaxResolution].
func (r Resolution) Clamp() Resolution {
	return Resolution{
		Curve:  clampInt(r.Curve, MinResolution, MaxResolution),
		Radial: clampInt(r.Radial, MinResolution, MaxResolution),
	}
}

// VertexCount returns the number of vertices a revolved mesh will have.
func (r Resolution) VertexCount() int {
	return r.Curve * r.Radial
}

// TriangleCount returns the number of triangles a revolved mesh will have.
func (r Resolution) TriangleCount() int {
	return (r.Curve - 1) * (r.Radial - 1) * 2
}

// Revolve sweeps the curve's profile around the Y axis. The X coordinate of
// each curve sample is the ring radius. Ring j sits at angle j·2π/(Radial-1),
// so the first and last vertex of every ring coincide on the seam.
func Revolve(curve Curve, res Resolution) (*Mesh, error) {
	if res.Curve < MinResolution || res.Radial < MinResolution {
		return nil, fmt.Errorf("%w: curve=%d radial=%d", ErrDegenerateResolution, res.Curve, res.Radial)
	}

	profile := make([]math.Vec3, res.Curve)
	for i := range profile {
		profile[i] = curve.Point(float32(i) / float32(res.Curve-1))
	}
	return lathe(profile, res.Radial), nil
}

// lathe revolves profile points around the Y axis and triangulates each
// quad cell between neighbouring rings as (a,c,b) and (b,c,d), which faces
// outward for profiles that climb in Y at a positive radius.
func lathe(profile []math.Vec3, radialRes int) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, len(profile)*radialRes),
		Indices:  make([]uint32, 0, (len(profile)-1)*(radialRes-1)*6),
	}

	step := 2 * gomath.Pi / float64(radialRes-1)
	for _, p := range profile {
		for j := 0; j < radialRes; j++ {
			angle := float64(j) * step
			m.Vertices = append(m.Vertices, Vertex{
				Position: math.Vec3{
					X: p.X * float32(gomath.Cos(angle)),
					Y: p.Y,
					Z: p.X * float32(gomath.Sin(angle)),
				},
			})
		}
	}

	radial := uint32(radialRes)
	for i := uint32(0); i < uint32(len(profile)-1); i++ {
		for j := uint32(0); j < radial-1; j++ {
			a := i*radial + j
			b := i*radial + j + 1
			c := (i+1)*radial + j
			d := (i+1)*radial + j + 1

			m.Indices = append(m.Indices,
				a, c, b,
				b, c, d,
			)
		}
	}

	m.RecalculateNormals()
	m.RecalculateBounds()
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
