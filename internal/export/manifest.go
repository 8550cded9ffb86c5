package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/creatura/internal/colony"
	"github.com/Faultbox/creatura/internal/creature"
	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/scene"
	"github.com/Faultbox/creatura/pkg/math"
)

// Manifest describes a generated colony: the inputs that reproduce it and
// the placement of every node.
type Manifest struct {
	BaseSeed   int64           `yaml:"base_seed"`
	Count      int             `yaml:"count"`
	Spacing    float32         `yaml:"spacing"`
	Resolution mesh.Resolution `yaml:"resolution"`
	Crabs      []CrabEntry     `yaml:"crabs"`
}

// CrabEntry is one creature of the manifest.
type CrabEntry struct {
	Name     string                    `yaml:"name"`
	Seed     int64                     `yaml:"seed"`
	Position math.Vec3                 `yaml:"position"`
	Jointed  bool                      `yaml:"jointed"`
	Colors   map[string]material.Color `yaml:"colors"`
	Body     BodyEntry                 `yaml:"body"`
	Legs     []LegEntry                `yaml:"legs"`
	Claws    map[string]ClawEntry      `yaml:"claws"`
	Eyes     EyesEntry                 `yaml:"eyes"`
	Nodes    []NodeEntry               `yaml:"nodes"`
}

// BodyEntry records the sampled body profile.
type BodyEntry struct {
	Direction float32   `yaml:"direction"`
	XDistance float32   `yaml:"x_distance"`
	Y1        float32   `yaml:"y1"`
	Y2        float32   `yaml:"y2"`
	Scale     math.Vec3 `yaml:"scale"`
}

// LegEntry records one leg and its barnacles.
type LegEntry struct {
	Name      string          `yaml:"name"`
	Barnacles []BarnacleEntry `yaml:"barnacles,omitempty"`
}

// BarnacleEntry records one barnacle.
type BarnacleEntry struct {
	Kind mesh.Primitive `yaml:"kind"`
	T    float32        `yaml:"t"`
}

// ClawEntry records one claw.
type ClawEntry struct {
	Template string  `yaml:"template"`
	Variant  int     `yaml:"variant"`
	Scale    float32 `yaml:"scale"`
}

// EyesEntry records the eye choice.
type EyesEntry struct {
	Template  string `yaml:"template"`
	Variant   int    `yaml:"variant"`
	Recolored int    `yaml:"recolored"`
}

// NodeEntry is the local transform of one node below a creature.
type NodeEntry struct {
	Path      string    `yaml:"path"`
	Position  math.Vec3 `yaml:"position"`
	Rotation  math.Quat `yaml:"rotation"`
	Scale     math.Vec3 `yaml:"scale"`
	Materials []string  `yaml:"materials,omitempty"`
}

// NewManifest describes col. Failed creatures are left out.
func NewManifest(col *colony.Colony, res mesh.Resolution) *Manifest {
	m := &Manifest{
		BaseSeed:   col.Layout.BaseSeed,
		Count:      col.Layout.Count,
		Spacing:    col.Layout.Spacing,
		Resolution: res,
	}
	for _, cr := range col.Generated() {
		m.Crabs = append(m.Crabs, crabEntry(cr))
	}
	return m
}

func crabEntry(cr *creature.Creature) CrabEntry {
	e := CrabEntry{
		Name:     cr.Root.Name,
		Seed:     cr.Seed,
		Position: cr.Root.Transform.Position,
		Jointed:  cr.Jointed,
		Colors: map[string]material.Color{
			"main":      cr.Materials.Main.Color,
			"underside": cr.Materials.Underside.Color,
			"barnacle":  cr.Materials.Barnacle.Color,
		},
		Body: BodyEntry{
			Direction: cr.Body.Params.Direction,
			XDistance: cr.Body.Params.XDistance,
			Y1:        cr.Body.Params.Y1,
			Y2:        cr.Body.Params.Y2,
			Scale:     cr.Body.Scale,
		},
		Claws: map[string]ClawEntry{
			"left":  clawEntry(cr.LeftClaw),
			"right": clawEntry(cr.RightClaw),
		},
		Eyes: EyesEntry{
			Template:  cr.Eyes.Template.Name,
			Variant:   cr.Eyes.Variant,
			Recolored: cr.Eyes.Recolored,
		},
	}
	for _, leg := range cr.Legs {
		le := LegEntry{Name: leg.Slot.Name}
		for _, b := range leg.Barnacles {
			le.Barnacles = append(le.Barnacles, BarnacleEntry{Kind: b.Kind, T: b.T})
		}
		e.Legs = append(e.Legs, le)
	}
	for _, child := range cr.Root.Children {
		child.Walk(func(n *scene.Node, _ math.Mat4) bool {
			ne := NodeEntry{
				Path:     relativePath(cr.Root, n),
				Position: n.Transform.Position,
				Rotation: n.Transform.Rotation,
				Scale:    n.Transform.Scale,
			}
			if n.Visual != nil {
				for _, mat := range n.Visual.Materials {
					if mat != nil {
						ne.Materials = append(ne.Materials, mat.Name)
					}
				}
			}
			e.Nodes = append(e.Nodes, ne)
			return true
		})
	}
	return e
}

func clawEntry(c *creature.Claw) ClawEntry {
	return ClawEntry{Template: c.Template.Name, Variant: c.Variant, Scale: c.Scale}
}

func relativePath(root, n *scene.Node) string {
	if n.Parent() == root || n.Parent() == nil {
		return n.Name
	}
	return relativePath(root, n.Parent()) + "/" + n.Name
}

// WriteManifest encodes m as YAML.
func WriteManifest(w io.Writer, m *Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return enc.Close()
}

// ReadManifest decodes a manifest written by WriteManifest.
func ReadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
