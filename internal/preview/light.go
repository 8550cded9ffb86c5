package preview

import "math"

// Light is a key light plus a hemisphere fill.
type Light struct {
	Dir     [3]float64 // unit vector towards the light, view space
	Ambient float64
	Direct  float64
	Hemi    float64
}

// DefaultLight returns the three-quarter key light used for previews.
func DefaultLight() Light {
	d := [3]float64{-0.4, 0.7, 0.6}
	l := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	return Light{
		Dir:     [3]float64{d[0] / l, d[1] / l, d[2] / l},
		Ambient: 0.25,
		Direct:  0.65,
		Hemi:    0.2,
	}
}

// shade returns the light intensity for a unit face normal. Faces are lit
// from either side.
func (l *Light) shade(nx, ny, nz float64) float64 {
	ndl := math.Abs(nx*l.Dir[0] + ny*l.Dir[1] + nz*l.Dir[2])
	hemi := (ny*0.5 + 0.5) * l.Hemi
	return l.Ambient + hemi + ndl*l.Direct
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
