// Package material builds the flat-coloured materials creatures are painted
// with.
package material

import (
	"errors"
	"fmt"
)

// StandardShader is the only shader the generator asks for.
const StandardShader = "Standard"

// ErrShaderNotFound is returned by a ShaderLookup that does not know a name.
var ErrShaderNotFound = errors.New("shader not found")

// Color is a linear RGB colour.
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

// Lerp blends from c to other by t.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// RGBA8 returns the colour quantised to 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), 255
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Shader is a handle returned by the host's shader lookup.
type Shader struct {
	Name string
}

// ShaderLookup resolves shader names to handles.
type ShaderLookup interface {
	Find(name string) (Shader, error)
}

// Material is a shader with a single flat colour.
type Material struct {
	Name   string
	Shader Shader
	Color  Color
}

// Clone returns an independent copy.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// Kind selects one of the generated material palettes.
type Kind int

// Material kinds.
const (
	MainBody Kind = iota
	Underside
	Barnacle
)

func (k Kind) String() string {
	switch k {
	case MainBody:
		return "MainBody"
	case Underside:
		return "Underside"
	case Barnacle:
		return "Barnacle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Palette is the pair of colours a material's hue is blended between.
type Palette struct {
	From Color
	To   Color
}

// Palettes holds the endpoint colours of each kind.
var Palettes = map[Kind]Palette{
	MainBody:  {From: Color{0.6, 0, 0}, To: Color{1, 0.5, 0}},
	Underside: {From: Color{0.95, 0.9, 0.8}, To: Color{1, 0.6, 0.4}},
	Barnacle:  {From: Color{0.6, 0.7, 0.6}, To: Color{0.2, 0.3, 0.2}},
}

// New creates a material of the given kind, blending its palette by t.
func New(kind Kind, shaders ShaderLookup, t float32) (*Material, error) {
	palette, ok := Palettes[kind]
	if !ok {
		return nil, fmt.Errorf("no palette for %v", kind)
	}
	shader, err := shaders.Find(StandardShader)
	if err != nil {
		return nil, fmt.Errorf("creating %v material: %w", kind, err)
	}
	return &Material{
		Name:   kind.String(),
		Shader: shader,
		Color:  palette.From.Lerp(palette.To, t),
	}, nil
}

// StandardShaders is a ShaderLookup that knows the names it was built with.
type StandardShaders struct {
	names map[string]struct{}
}

// NewStandardShaders returns a lookup knowing StandardShader plus extra names.
func NewStandardShaders(extra ...string) *StandardShaders {
	s := &StandardShaders{names: map[string]struct{}{StandardShader: {}}}
	for _, n := range extra {
		s.names[n] = struct{}{}
	}
	return s
}

// Find implements ShaderLookup.
func (s *StandardShaders) Find(name string) (Shader, error) {
	if _, ok := s.names[name]; !ok {
		return Shader{}, fmt.Errorf("%w: %q", ErrShaderNotFound, name)
	}
	return Shader{Name: name}, nil
}
