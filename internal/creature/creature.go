// Package creature composes one seeded crab out of sampled parameters,
// revolution meshes and recoloured templates.
package creature

import (
	"github.com/Faultbox/creatura/internal/assets"
	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/params"
	"github.com/Faultbox/creatura/internal/scene"
	"github.com/Faultbox/creatura/pkg/math"
)

// ErrMissingAsset reports an unassigned template or an unknown shader.
var ErrMissingAsset = assets.ErrMissingAsset

// Node names used inside a creature tree.
const (
	RootName      = "Crab"
	BodyName      = "Body"
	TopShellName  = "TopShell"
	UndersideName = "Underside"
	LegMeshName   = "LegMesh"
	LeftClawName  = "Left_Claw"
	RightClawName = "Right_Claw"
	EyesName      = "Eyes"
)

// Materials are the three colours generated per creature.
type Materials struct {
	Main      *material.Material
	Underside *material.Material
	Barnacle  *material.Material
}

// Body is the revolved shell and its underside copy.
type Body struct {
	Node      *scene.Node
	TopShell  *scene.Node
	Underside *scene.Node
	Mesh      *mesh.Mesh
	Params    params.Body
	Scale     math.Vec3
}

// Barnacle is one decoration placed along a leg.
type Barnacle struct {
	Kind mesh.Primitive
	T    float32
	Node *scene.Node
}

// Leg is one of the four legs. All legs of a creature share Mesh.
type Leg struct {
	Slot      Slot
	Node      *scene.Node
	MeshNode  *scene.Node
	Mesh      *mesh.Mesh
	Jointed   bool
	Barnacles []Barnacle
}

// Claw is an instantiated claw template.
type Claw struct {
	Variant  int
	Template *assets.Template
	Node     *scene.Node
	Scale    float32
}

// Eyes is the instantiated eye template.
type Eyes struct {
	Variant   int
	Template  *assets.Template
	Node      *scene.Node
	Recolored int
}

// Creature is the result of one Compose call. Root is detached and placed at
// the origin; callers position and attach it.
type Creature struct {
	Seed      int64
	Root      *scene.Node
	Materials Materials
	Jointed   bool
	Body      Body
	LegShape  params.LegShape
	Legs      [4]*Leg
	LeftClaw  *Claw
	RightClaw *Claw
	Eyes      *Eyes
}

// BarnacleCount returns the total number of barnacles on all legs.
func (c *Creature) BarnacleCount() int {
	n := 0
	for _, l := range c.Legs {
		n += len(l.Barnacles)
	}
	return n
}
