// Package colony lays out a row of creatures under a parent node.
package colony

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/creatura/internal/creature"
	"github.com/Faultbox/creatura/internal/logger"
	"github.com/Faultbox/creatura/internal/rng"
	"github.com/Faultbox/creatura/internal/scene"
	"github.com/Faultbox/creatura/pkg/math"
)

// ErrMissingSelection reports that there is no node to build the colony under.
var ErrMissingSelection = errors.New("no parent selected for colony")

// Composer builds one creature per seed.
type Composer interface {
	Compose(seed int64) (*creature.Creature, error)
}

// Layout is a row of Count creatures along +X.
type Layout struct {
	Count    int
	Spacing  float32
	BaseSeed int64
	// Workers > 1 composes creatures in parallel. The resulting tree is the
	// same as a sequential run.
	Workers  int
}

// Seed returns the seed of creature i.
func (l Layout) Seed(i int) int64 {
	return l.BaseSeed + int64(i)*rng.CreatureStride
}

// Position returns the local position of creature i.
func (l Layout) Position(i int) math.Vec3 {
	return math.Vec3{X: float32(i) * l.Spacing}
}

// Name returns the node name of creature i.
func Name(i int) string {
	return fmt.Sprintf("Crab_%d", i+1)
}

// Colony is the outcome of Generate. Creatures has one entry per index; a
// failed creature leaves a nil entry and is not attached.
type Colony struct {
	Parent    *scene.Node
	Layout    Layout
	Creatures []*creature.Creature
}

// Generated returns the creatures that were built successfully.
func (c *Colony) Generated() []*creature.Creature {
	out := make([]*creature.Creature, 0, len(c.Creatures))
	for _, cr := range c.Creatures {
		if cr != nil {
			out = append(out, cr)
		}
	}
	return out
}

// Generate composes every creature of the layout and attaches them under
// parent in index order. Failures of single creatures are combined into the
// returned error; the other creatures are still attached.
func Generate(parent *scene.Node, composer Composer, layout Layout) (*Colony, error) {
	if parent == nil {
		return nil, ErrMissingSelection
	}
	if composer == nil {
		return nil, fmt.Errorf("%w: no composer", creature.ErrMissingAsset)
	}
	if layout.Count < 0 {
		return nil, fmt.Errorf("negative creature count %d", layout.Count)
	}

	log := logger.Named("colony")
	log.Info("generating colony",
		zap.Int("count", layout.Count),
		zap.Float32("spacing", layout.Spacing),
		zap.Int64("base_seed", layout.BaseSeed),
		zap.Int("workers", layout.Workers))

	results := make([]*creature.Creature, layout.Count)
	errs := make([]error, layout.Count)
	build := func(i int) {
		seed := layout.Seed(i)
		cr, err := composer.Compose(seed)
		if err != nil {
			errs[i] = fmt.Errorf("%s (seed %d): %w", Name(i), seed, err)
			log.Error("creature failed", zap.String("crab", Name(i)), zap.Int64("seed", seed), zap.Error(err))
			return
		}
		results[i] = cr
	}

	if layout.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(layout.Workers)
		for i := 0; i < layout.Count; i++ {
			g.Go(func() error {
				build(i)
				return nil
			})
		}
		// Failures stay per index in errs, so one crab never stops the rest.
		_ = g.Wait()
	} else {
		for i := 0; i < layout.Count; i++ {
			build(i)
		}
	}

	col := &Colony{Parent: parent, Layout: layout, Creatures: results}
	var err error
	for i, cr := range results {
		if cr == nil {
			err = multierr.Append(err, errs[i])
			continue
		}
		cr.Root.Name = Name(i)
		cr.Root.Transform.Position = layout.Position(i)
		parent.AddChild(cr.Root)
	}

	log.Info("colony generated",
		zap.Int("generated", len(col.Generated())),
		zap.Int("failed", len(multierr.Errors(err))))
	return col, err
}
