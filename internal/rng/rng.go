// Package rng provides the reseedable random stream every generation phase
// draws from.
package rng

import (
	"errors"
	"math"
	"math/rand/v2"

	cmath "github.com/Faultbox/creatura/pkg/math"
)

// ErrNotSeeded is the panic value for a draw before the first Reseed.
var ErrNotSeeded = errors.New("rng: draw before reseed")

// Phase offsets added to a creature seed. They decorrelate the sub-streams of
// one creature and must never change: they are part of a creature's identity.
const (
	PhaseBody              int64 = 1
	PhaseLegs              int64 = 3
	PhaseMainMaterial      int64 = 4
	PhaseUndersideMaterial int64 = 5
	PhaseBarnacleMaterial  int64 = 6
	PhaseClaws             int64 = 7
	PhaseEyes              int64 = 8

	// CreatureStride separates the seeds of neighbouring creatures in a colony.
	CreatureStride int64 = 1000
)

// Sequencer is a deterministic random stream. The zero value is unseeded.
// A Sequencer is not safe for concurrent use; give each goroutine its own.
type Sequencer struct {
	r     *rand.Rand
	pcg   *rand.PCG
	key   int64
	draws int
}

// New returns an unseeded sequencer.
func New() *Sequencer {
	return &Sequencer{}
}

// Reseed resets the stream so that the following draws depend only on key.
func (s *Sequencer) Reseed(key int64) {
	if s.pcg == nil {
		s.pcg = rand.NewPCG(0, 0)
		s.r = rand.New(s.pcg)
	}
	s.pcg.Seed(uint64(key), uint64(key)^0x9e3779b97f4a7c15)
	s.key = key
	s.draws = 0
}

// Key returns the key of the last Reseed.
func (s *Sequencer) Key() int64 {
	return s.key
}

// Draws returns the number of values drawn since the last Reseed.
func (s *Sequencer) Draws() int {
	return s.draws
}

func (s *Sequencer) next() float32 {
	if s.r == nil {
		panic(ErrNotSeeded)
	}
	s.draws++
	return s.r.Float32()
}

// Value returns a float in [0, 1).
func (s *Sequencer) Value() float32 {
	return s.next()
}

// Range returns a float in [lo, hi). lo == hi returns lo.
func (s *Sequencer) Range(lo, hi float32) float32 {
	v := lo + (hi-lo)*s.next()
	// Rounding can land exactly on hi.
	if v >= hi && hi > lo {
		return math.Nextafter32(hi, lo)
	}
	return v
}

// IntRange returns an int in [lo, hiExclusive). An empty range returns lo
// but still consumes a draw so call sequences stay aligned.
func (s *Sequencer) IntRange(lo, hiExclusive int) int {
	if s.r == nil {
		panic(ErrNotSeeded)
	}
	s.draws++
	if hiExclusive <= lo {
		_ = s.r.Uint64()
		return lo
	}
	return lo + s.r.IntN(hiExclusive-lo)
}

// Chance reports whether a draw falls below p.
func (s *Sequencer) Chance(p float32) bool {
	return s.next() < p
}

// Rotation returns a uniformly distributed unit quaternion.
func (s *Sequencer) Rotation() cmath.Quat {
	// Shoemake's subgroup algorithm.
	u1 := float64(s.next())
	u2 := float64(s.next()) * 2 * math.Pi
	u3 := float64(s.next()) * 2 * math.Pi

	a := math.Sqrt(1 - u1)
	b := math.Sqrt(u1)
	return cmath.Quat{
		X: float32(a * math.Sin(u2)),
		Y: float32(a * math.Cos(u2)),
		Z: float32(b * math.Sin(u3)),
		W: float32(b * math.Cos(u3)),
	}
}
