package creature

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/creatura/internal/assets"
	"github.com/Faultbox/creatura/internal/logger"
	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/params"
	"github.com/Faultbox/creatura/internal/rng"
	"github.com/Faultbox/creatura/internal/scene"
	"github.com/Faultbox/creatura/pkg/math"
)

// Composer builds creatures from a fixed asset set and tuning. A Composer is
// read-only after New and safe for concurrent Compose calls.
type Composer struct {
	templates  *assets.Set
	shaders    material.ShaderLookup
	ranges     params.Ranges
	resolution mesh.Resolution
}

// Option configures a Composer.
type Option func(*Composer)

// WithShaders sets the shader lookup used for generated materials.
func WithShaders(s material.ShaderLookup) Option {
	return func(c *Composer) { c.shaders = s }
}

// WithRanges sets the body profile bounds.
func WithRanges(r params.Ranges) Option {
	return func(c *Composer) { c.ranges = r }
}

// WithResolution sets the mesh resolution. Values are clamped to the
// supported range.
func WithResolution(r mesh.Resolution) Option {
	return func(c *Composer) { c.resolution = r }
}

// New returns a composer dressing creatures with provider's templates. The
// templates are copied, so later changes to provider do not affect it.
func New(provider assets.Provider, opts ...Option) (*Composer, error) {
	c := &Composer{
		shaders:    material.NewStandardShaders(),
		ranges:     params.DefaultRanges(),
		resolution: mesh.DefaultResolution,
	}
	for _, opt := range opts {
		opt(c)
	}

	set, err := assets.Snapshot(provider)
	if err != nil {
		return nil, err
	}
	c.templates = set
	for i, eye := range set.Eyes() {
		if !eye.HasMarker(assets.EyeShellMarker) {
			return nil, fmt.Errorf("eye template %d (%s): %w", i, eye.Name, assets.ErrMissingMarker)
		}
	}
	if c.shaders == nil {
		return nil, fmt.Errorf("%w: no shader lookup", ErrMissingAsset)
	}
	if err := c.ranges.Validate(); err != nil {
		return nil, fmt.Errorf("body ranges: %w", err)
	}
	c.resolution = c.resolution.Clamp()
	return c, nil
}

// Resolution returns the clamped mesh resolution in use.
func (c *Composer) Resolution() mesh.Resolution {
	return c.resolution
}

// Compose builds the creature for seed. The result is detached and rooted at
// the origin. On error nothing is returned, so no partial tree escapes.
func (c *Composer) Compose(seed int64) (*Creature, error) {
	log := logger.Named("creature").With(zap.Int64("seed", seed))
	s := rng.New()
	cr := &Creature{Seed: seed, Root: scene.NewNode(RootName)}

	log.Debug("generating", zap.String("phase", "materials"))
	if err := c.composeMaterials(s, cr); err != nil {
		return nil, err
	}
	// The leg style shares the barnacle colour stream.
	cr.Jointed = params.SampleJointed(s)

	log.Debug("generating", zap.String("phase", "body"))
	if err := c.composeBody(s, cr); err != nil {
		return nil, err
	}

	log.Debug("generating", zap.String("phase", "legs"), zap.Bool("jointed", cr.Jointed))
	if err := c.composeLegs(s, cr); err != nil {
		return nil, err
	}

	log.Debug("generating", zap.String("phase", "claws"))
	c.composeClaws(s, cr)

	log.Debug("generating", zap.String("phase", "eyes"))
	c.composeEyes(s, cr)

	log.Debug("creature complete",
		zap.Int("nodes", cr.Root.Count()),
		zap.Int("barnacles", cr.BarnacleCount()))
	return cr, nil
}

func (c *Composer) composeMaterials(s *rng.Sequencer, cr *Creature) error {
	kinds := []struct {
		phase int64
		kind  material.Kind
		dst   **material.Material
	}{
		{rng.PhaseMainMaterial, material.MainBody, &cr.Materials.Main},
		{rng.PhaseUndersideMaterial, material.Underside, &cr.Materials.Underside},
		{rng.PhaseBarnacleMaterial, material.Barnacle, &cr.Materials.Barnacle},
	}
	for _, k := range kinds {
		s.Reseed(cr.Seed + k.phase)
		m, err := material.New(k.kind, c.shaders, params.SampleHue(s))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMissingAsset, err)
		}
		*k.dst = m
	}
	return nil
}

func (c *Composer) composeBody(s *rng.Sequencer, cr *Creature) error {
	s.Reseed(cr.Seed + rng.PhaseBody)
	b := params.SampleBody(s, c.ranges)
	m, err := mesh.Revolve(b.Curve(), c.resolution)
	if err != nil {
		return fmt.Errorf("body mesh: %w", err)
	}
	scale := params.SampleShellScale(s)

	node := cr.Root.NewChild(BodyName)
	top := node.NewChild(TopShellName)
	top.Transform.Scale = scale
	top.Visual = &scene.Visual{Mesh: m, Materials: []*material.Material{cr.Materials.Main}}

	under := node.NewChild(UndersideName)
	under.Transform.Position = UndersideOffset
	under.Transform.Scale = scale
	under.Visual = &scene.Visual{Mesh: m, Materials: []*material.Material{cr.Materials.Underside}}

	cr.Body = Body{Node: node, TopShell: top, Underside: under, Mesh: m, Params: b, Scale: scale}
	return nil
}

func (c *Composer) composeLegs(s *rng.Sequencer, cr *Creature) error {
	s.Reseed(cr.Seed + rng.PhaseLegs)
	flags := params.SampleLegFlags(s)
	shape := params.SampleLegShape(s, cr.Jointed)
	curve := shape.Curve()
	m, err := mesh.Revolve(curve, c.resolution)
	if err != nil {
		return fmt.Errorf("leg mesh: %w", err)
	}
	cr.LegShape = shape

	for i, slot := range Slots {
		s.Reseed(cr.Seed + slot.SeedOffset)

		node := cr.Root.NewChild(slot.Name)
		node.Transform.Position = slot.Position
		node.Transform.Rotation = math.QuatFromEuler(0, slot.RotationY, slot.RotationZ)

		meshNode := node.NewChild(LegMeshName)
		meshNode.Transform.Scale = params.SampleLegScale(s)
		meshNode.Visual = &scene.Visual{Mesh: m, Materials: []*material.Material{cr.Materials.Main}}

		leg := &Leg{Slot: slot, Node: node, MeshNode: meshNode, Mesh: m, Jointed: cr.Jointed}
		if flags[i] {
			count := params.SampleBarnacleCount(s)
			for j := 0; j < count; j++ {
				leg.Barnacles = append(leg.Barnacles, addBarnacle(s, leg, curve, j+1, cr.Materials.Barnacle))
			}
		}
		cr.Legs[i] = leg
	}
	return nil
}

// addBarnacle places a barnacle at a point of the leg profile. The point is
// taken through the leg mesh's scale into world space and stored relative to
// the leg node.
func addBarnacle(s *rng.Sequencer, leg *Leg, curve mesh.Curve, index int, mat *material.Material) Barnacle {
	p := params.SampleBarnacle(s)
	world := leg.MeshNode.TransformPoint(curve.Point(p.T))

	kind := p.Kind
	node := leg.Node.NewChild(fmt.Sprintf("%s_Barnacle_%d", leg.Slot.Name, index))
	node.SetWorldPosition(world)
	node.Transform.Rotation = p.Rotation
	node.Transform.Scale = p.Scale
	node.Visual = &scene.Visual{Primitive: &kind, Materials: []*material.Material{mat}}
	return Barnacle{Kind: kind, T: p.T, Node: node}
}

func (c *Composer) composeClaws(s *rng.Sequencer, cr *Creature) {
	s.Reseed(cr.Seed + rng.PhaseClaws)
	templates := c.templates.Claws()
	picks := params.SampleClaws(s, len(templates))

	cr.LeftClaw = c.addClaw(cr, LeftClawName, templates[picks.Left], picks.Left, picks.LeftScale, false)
	cr.RightClaw = c.addClaw(cr, RightClawName, templates[picks.Right], picks.Right, picks.RightScale, true)
}

func (c *Composer) addClaw(cr *Creature, name string, tpl *assets.Template, variant int, factor float32, mirrored bool) *Claw {
	inst := tpl.Instantiate()
	assets.RecolorAll(inst, cr.Materials.Main)

	node := templateNode(name, inst)
	node.Transform.Position = ClawPositions[variant]
	node.Transform.Scale = math.Uniform(factor)
	if mirrored {
		node.Transform.Position = MirrorX(node.Transform.Position)
		node.Transform.Scale = MirrorX(node.Transform.Scale)
	}
	cr.Root.AddChild(node)
	return &Claw{Variant: variant, Template: inst, Node: node, Scale: factor}
}

func (c *Composer) composeEyes(s *rng.Sequencer, cr *Creature) {
	s.Reseed(cr.Seed + rng.PhaseEyes)
	templates := c.templates.Eyes()
	variant := params.SampleEye(s, len(templates))

	inst := templates[variant].Instantiate()
	n := assets.RecolorMarked(inst, assets.EyeShellMarker, cr.Materials.Main)

	node := templateNode(EyesName, inst)
	node.Transform.Position = EyePositions[variant]
	cr.Root.AddChild(node)
	cr.Eyes = &Eyes{Variant: variant, Template: inst, Node: node, Recolored: n}
}

// templateNode turns an instantiated template into a node with one child per
// surface. Surfaces with a placeholder get a primitive visual.
func templateNode(name string, t *assets.Template) *scene.Node {
	root := scene.NewNode(name)
	for _, surf := range t.Surfaces {
		child := root.NewChild(surf.Name)
		v := &scene.Visual{Materials: surf.Materials}
		if ph := surf.Placeholder; ph != nil {
			kind := ph.Primitive
			v.Primitive = &kind
			child.Transform.Position = ph.Offset
			child.Transform.Scale = ph.Scale
		}
		child.Visual = v
	}
	return root
}
