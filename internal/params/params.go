// Package params draws the concrete numbers a creature is built from. Every
// function consumes the sequencer in a fixed order; changing that order
// changes every creature a seed produces.
package params

import (
	"fmt"

	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/rng"
	"github.com/Faultbox/creatura/pkg/math"
)

// Curve anchors shared by body and leg profiles.
var (
	P0 = math.Vec3{}
	P3 = math.Vec3{Y: 3}
)

// Ranges are the tunable bounds of the body profile.
type Ranges struct {
	MinDirection float32 `yaml:"min_direction"`
	MaxDirection float32 `yaml:"max_direction"`
	MinXDistance float32 `yaml:"min_x_distance"`
	MaxXDistance float32 `yaml:"max_x_distance"`
	MinY         float32 `yaml:"min_y"`
	MaxY         float32 `yaml:"max_y"`
}

// DefaultRanges returns the stock body profile bounds.
func DefaultRanges() Ranges {
	return Ranges{
		MinDirection: 0.3,
		MaxDirection: 0.7,
		MinXDistance: 4,
		MaxXDistance: 6,
		MinY:         1,
		MaxY:         2,
	}
}

// Validate rejects inverted ranges and directions outside [0, 1].
func (r Ranges) Validate() error {
	if r.MinDirection < 0 || r.MaxDirection > 1 {
		return fmt.Errorf("direction range [%v, %v] must lie within [0, 1]", r.MinDirection, r.MaxDirection)
	}
	if r.MinDirection > r.MaxDirection {
		return fmt.Errorf("direction range [%v, %v] is inverted", r.MinDirection, r.MaxDirection)
	}
	if r.MinXDistance > r.MaxXDistance {
		return fmt.Errorf("x distance range [%v, %v] is inverted", r.MinXDistance, r.MaxXDistance)
	}
	if r.MinY > r.MaxY {
		return fmt.Errorf("height range [%v, %v] is inverted", r.MinY, r.MaxY)
	}
	return nil
}

// Body holds the sampled body profile.
type Body struct {
	Direction float32
	Flipped   bool
	XDistance float32
	Y1, Y2    float32
}

// Curve returns the body's Bezier profile. Both handles share one x.
func (b Body) Curve() mesh.Curve {
	x := b.Direction * b.XDistance
	return mesh.Curve{
		P0: P0,
		P1: math.Vec3{X: x, Y: b.Y1},
		P2: math.Vec3{X: x, Y: b.Y2},
		P3: P3,
	}
}

// SampleBody draws direction, sign flip, x distance then both handle heights.
func SampleBody(s *rng.Sequencer, r Ranges) Body {
	var b Body
	b.Direction = s.Range(r.MinDirection, r.MaxDirection)
	if s.Value() > 0.5 {
		b.Direction = -b.Direction
		b.Flipped = true
	}
	b.XDistance = s.Range(r.MinXDistance, r.MaxXDistance)
	b.Y1 = s.Range(r.MinY, r.MaxY)
	b.Y2 = s.Range(r.MinY, r.MaxY)
	return b
}

// SampleShellScale draws the shell scale. The draw order is z, y, x.
func SampleShellScale(s *rng.Sequencer) math.Vec3 {
	z := s.Range(0.5, 0.7)
	y := s.Range(0.2, 0.4)
	x := s.Range(0.89, 0.9)
	return math.Vec3{X: x, Y: y, Z: z}
}

// SampleJointed is the creature-wide coin flip between jointed and straight
// legs.
func SampleJointed(s *rng.Sequencer) bool {
	return s.Value() < 0.5
}

// SampleLegFlags draws the barnacle presence flag of each leg slot.
func SampleLegFlags(s *rng.Sequencer) [4]bool {
	var flags [4]bool
	for i := range flags {
		flags[i] = s.Value() < 0.5
	}
	return flags
}

// LegShape holds the sampled leg profile handles.
type LegShape struct {
	Jointed    bool
	Direction1 float32
	Direction2 float32
	Y1, Y2     float32
}

// Curve returns the leg's Bezier profile.
func (l LegShape) Curve() mesh.Curve {
	return mesh.Curve{
		P0: P0,
		P1: math.Vec3{X: l.Direction1, Y: l.Y1},
		P2: math.Vec3{X: l.Direction2, Y: l.Y2},
		P3: P3,
	}
}

// SampleLegShape draws the leg profile. Jointed legs bend their two handles
// to opposite sides to form an elbow; straight legs reuse one direction.
func SampleLegShape(s *rng.Sequencer, jointed bool) LegShape {
	l := LegShape{Jointed: jointed}
	if jointed {
		l.Direction1 = s.Range(1, 2)
		l.Direction2 = -s.Range(1, 2)
	} else {
		l.Direction1 = s.Range(1, 2)
		l.Direction2 = l.Direction1
	}
	l.Y1 = s.Range(0.5, 1)
	l.Y2 = s.Range(2, 3)
	return l
}

// SampleLegScale draws a leg mesh scale in x, y, z order.
func SampleLegScale(s *rng.Sequencer) math.Vec3 {
	x := s.Range(0.25, 0.35)
	y := s.Range(0.7, 0.9)
	z := s.Range(0.25, 0.35)
	return math.Vec3{X: x, Y: y, Z: z}
}

// SampleBarnacleCount draws how many barnacles a flagged leg carries, 1 to 3.
func SampleBarnacleCount(s *rng.Sequencer) int {
	return s.IntRange(1, 4)
}

// Barnacle holds one sampled barnacle.
type Barnacle struct {
	T        float32
	Kind     mesh.Primitive
	Rotation math.Quat
	Scale    math.Vec3
}

// BarnacleFlatten squashes barnacles against the leg surface.
const BarnacleFlatten = 0.3

// SampleBarnacle draws curve position, primitive, rotation, base scale and
// per-axis jitter, then flattens y.
func SampleBarnacle(s *rng.Sequencer) Barnacle {
	var b Barnacle
	b.T = s.Range(0.1, 0.9)
	b.Kind = mesh.Primitives[s.IntRange(0, len(mesh.Primitives))]
	b.Rotation = s.Rotation()
	base := s.Range(0.1, 0.2)
	b.Scale = math.Vec3{
		X: base * s.Range(0.8, 1.2),
		Y: base * s.Range(0.8, 1.2),
		Z: base * s.Range(0.8, 1.2),
	}
	b.Scale.Y *= BarnacleFlatten
	return b
}

// Claws holds the sampled claw variants and scale factors.
type Claws struct {
	Left, Right           int
	LeftScale, RightScale float32
}

// SampleClaws draws left variant, right variant, left scale, right scale.
func SampleClaws(s *rng.Sequencer, variants int) Claws {
	var c Claws
	c.Left = s.IntRange(0, variants)
	c.Right = s.IntRange(0, variants)
	c.LeftScale = s.Range(1, 1.3)
	c.RightScale = s.Range(1, 1.3)
	return c
}

// SampleEye draws the eye variant.
func SampleEye(s *rng.Sequencer, variants int) int {
	return s.IntRange(0, variants)
}

// SampleHue draws a material blend factor in [0, 1).
func SampleHue(s *rng.Sequencer) float32 {
	return s.Range(0, 1)
}
