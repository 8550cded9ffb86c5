package params

import (
	"testing"

	"github.com/Faultbox/creatura/internal/mesh"
	"github.com/Faultbox/creatura/internal/rng"
)

func within(v, lo, hi float32) bool {
	return v >= lo && v <= hi
}

func TestRangeCompliance(t *testing.T) {
	r := DefaultRanges()
	s := rng.New()

	for seed := int64(0); seed < 10000; seed++ {
		s.Reseed(seed + rng.PhaseBody)
		b := SampleBody(s, r)
		mag := b.Direction
		if b.Flipped {
			mag = -mag
		}
		if !within(mag, r.MinDirection, r.MaxDirection) || mag < 0 {
			t.Fatalf("seed %d: direction %v out of range", seed, b.Direction)
		}
		if !within(b.XDistance, r.MinXDistance, r.MaxXDistance) {
			t.Fatalf("seed %d: x distance %v out of range", seed, b.XDistance)
		}
		if !within(b.Y1, r.MinY, r.MaxY) || !within(b.Y2, r.MinY, r.MaxY) {
			t.Fatalf("seed %d: heights %v, %v out of range", seed, b.Y1, b.Y2)
		}
		shell := SampleShellScale(s)
		if !within(shell.X, 0.89, 0.9) || !within(shell.Y, 0.2, 0.4) || !within(shell.Z, 0.5, 0.7) {
			t.Fatalf("seed %d: shell scale %v out of range", seed, shell)
		}

		s.Reseed(seed + rng.PhaseLegs)
		SampleLegFlags(s)
		jointed := seed%2 == 0
		leg := SampleLegShape(s, jointed)
		if !within(leg.Direction1, 1, 2) {
			t.Fatalf("seed %d: direction1 %v out of range", seed, leg.Direction1)
		}
		if jointed && !within(leg.Direction2, -2, -1) {
			t.Fatalf("seed %d: direction2 %v out of range", seed, leg.Direction2)
		}
		if !jointed && leg.Direction2 != leg.Direction1 {
			t.Fatalf("seed %d: straight leg directions differ", seed)
		}
		if !within(leg.Y1, 0.5, 1) || !within(leg.Y2, 2, 3) {
			t.Fatalf("seed %d: leg heights %v, %v out of range", seed, leg.Y1, leg.Y2)
		}

		s.Reseed(seed + 1)
		scale := SampleLegScale(s)
		if !within(scale.X, 0.25, 0.35) || !within(scale.Y, 0.7, 0.9) || !within(scale.Z, 0.25, 0.35) {
			t.Fatalf("seed %d: leg scale %v out of range", seed, scale)
		}
		n := SampleBarnacleCount(s)
		if n < 1 || n > 3 {
			t.Fatalf("seed %d: barnacle count %d, want 1..3", seed, n)
		}
		bn := SampleBarnacle(s)
		if !within(bn.T, 0.1, 0.9) {
			t.Fatalf("seed %d: barnacle t %v out of range", seed, bn.T)
		}
		if bn.Kind < mesh.Sphere || bn.Kind > mesh.Cube {
			t.Fatalf("seed %d: barnacle kind %v", seed, bn.Kind)
		}
		if !within(bn.Scale.X, 0.08, 0.24) || !within(bn.Scale.Z, 0.08, 0.24) {
			t.Fatalf("seed %d: barnacle scale %v out of range", seed, bn.Scale)
		}
		if !within(bn.Scale.Y, 0.08*BarnacleFlatten, 0.24*BarnacleFlatten) {
			t.Fatalf("seed %d: barnacle y scale %v not flattened", seed, bn.Scale.Y)
		}

		s.Reseed(seed + rng.PhaseClaws)
		c := SampleClaws(s, 3)
		if c.Left < 0 || c.Left > 2 || c.Right < 0 || c.Right > 2 {
			t.Fatalf("seed %d: claw variants %d, %d", seed, c.Left, c.Right)
		}
		if !within(c.LeftScale, 1, 1.3) || !within(c.RightScale, 1, 1.3) {
			t.Fatalf("seed %d: claw scales %v, %v", seed, c.LeftScale, c.RightScale)
		}

		s.Reseed(seed + rng.PhaseEyes)
		if e := SampleEye(s, 4); e < 0 || e > 3 {
			t.Fatalf("seed %d: eye variant %d", seed, e)
		}

		s.Reseed(seed + rng.PhaseMainMaterial)
		if h := SampleHue(s); !within(h, 0, 1) {
			t.Fatalf("seed %d: hue %v", seed, h)
		}
	}
}

func TestBarnacleCountNeverZero(t *testing.T) {
	s := rng.New()
	seen := map[int]bool{}
	for seed := int64(0); seed < 5000; seed++ {
		s.Reseed(seed)
		n := SampleBarnacleCount(s)
		if n == 0 {
			t.Fatalf("seed %d drew zero barnacles", seed)
		}
		seen[n] = true
	}
	for _, n := range []int{1, 2, 3} {
		if !seen[n] {
			t.Errorf("count %d never drawn", n)
		}
	}
}

func TestDrawCounts(t *testing.T) {
	s := rng.New()
	tests := []struct {
		name string
		draw func()
		want int
	}{
		{"body", func() { SampleBody(s, DefaultRanges()) }, 5},
		{"shell", func() { SampleShellScale(s) }, 3},
		{"flags", func() { SampleLegFlags(s) }, 4},
		{"jointed leg", func() { SampleLegShape(s, true) }, 4},
		{"straight leg", func() { SampleLegShape(s, false) }, 3},
		{"leg scale", func() { SampleLegScale(s) }, 3},
		{"barnacle", func() { SampleBarnacle(s) }, 9},
		{"claws", func() { SampleClaws(s, 3) }, 4},
		{"eye", func() { SampleEye(s, 4) }, 1},
	}
	for _, tt := range tests {
		s.Reseed(11)
		tt.draw()
		if s.Draws() != tt.want {
			t.Errorf("%s drew %d values, want %d", tt.name, s.Draws(), tt.want)
		}
	}
}

func TestBodyCurve(t *testing.T) {
	b := Body{Direction: -0.5, XDistance: 4, Y1: 1.2, Y2: 1.8}
	c := b.Curve()
	if c.P0 != P0 || c.P3 != P3 {
		t.Errorf("anchors = %v, %v", c.P0, c.P3)
	}
	if c.P1.X != -2 || c.P2.X != -2 {
		t.Errorf("handle x = %v, %v, want -2", c.P1.X, c.P2.X)
	}
	if c.P1.Y != 1.2 || c.P2.Y != 1.8 {
		t.Errorf("handle y = %v, %v", c.P1.Y, c.P2.Y)
	}
}

func TestRangesValidate(t *testing.T) {
	if err := DefaultRanges().Validate(); err != nil {
		t.Errorf("DefaultRanges().Validate() = %v", err)
	}
	r := DefaultRanges()
	r.MinY, r.MaxY = 3, 1
	if err := r.Validate(); err == nil {
		t.Error("inverted height range accepted")
	}
	r = DefaultRanges()
	r.MaxDirection = 1.5
	if err := r.Validate(); err == nil {
		t.Error("direction above 1 accepted")
	}
}
