package preview

import (
	"image"
	"math"

	"github.com/Faultbox/creatura/internal/export"
	cmath "github.com/Faultbox/creatura/pkg/math"
)

// Options control the preview camera and output size.
type Options struct {
	Size        int     // output width and height in pixels
	Supersample int     // render at Size*Supersample, then downsample
	Yaw         float32 // degrees about Y
	Pitch       float32 // degrees about X
}

// DefaultOptions returns a 512px three-quarter view rendered at 2x.
func DefaultOptions() Options {
	return Options{Size: 512, Supersample: 2, Yaw: -35, Pitch: 25}
}

// Render draws every baked part with an orthographic camera fitted to the
// scene bounds. An empty scene gives a transparent image.
func Render(b *export.Baked, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	renderSize := opts.Size * opts.Supersample
	fb := NewFrameBuffer(renderSize, renderSize)
	if len(b.Parts) == 0 {
		return Downsample(fb.Image(), opts.Size)
	}

	view := cmath.QuatFromEuler(opts.Pitch, opts.Yaw, 0).Conjugate().ToMat4()

	// Fit the view-space bounds of all vertices into the frame.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range b.Parts {
		for _, v := range p.Mesh.Vertices {
			q := view.TransformPoint(v.Position)
			minX, maxX = math.Min(minX, float64(q.X)), math.Max(maxX, float64(q.X))
			minY, maxY = math.Min(minY, float64(q.Y)), math.Max(maxY, float64(q.Y))
		}
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span < 1e-3 {
		span = 1e-3
	}
	margin := float64(8 * opts.Supersample)
	scale := (float64(renderSize) - 2*margin) / span
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	half := float64(renderSize) / 2

	light := DefaultLight()
	for _, p := range b.Parts {
		var r, g, bl float64 = 0.63, 0.63, 0.67
		if p.Material != nil {
			r, g, bl = float64(p.Material.Color.R), float64(p.Material.Color.G), float64(p.Material.Color.B)
		}

		proj := make([]vertex, len(p.Mesh.Vertices))
		viewPos := make([]cmath.Vec3, len(p.Mesh.Vertices))
		for i, v := range p.Mesh.Vertices {
			q := view.TransformPoint(v.Position)
			viewPos[i] = q
			proj[i] = vertex{
				x: (float64(q.X)-cx)*scale + half,
				y: half - (float64(q.Y)-cy)*scale,
				z: float64(q.Z),
			}
		}
		for t := 0; t < p.Mesh.TriangleCount(); t++ {
			tri := p.Mesh.Triangle(t)
			a, c, d := viewPos[tri[0]], viewPos[tri[1]], viewPos[tri[2]]
			n := c.Sub(a).Cross(d.Sub(a))
			rasterizeTriangle(fb, proj[tri[0]], proj[tri[1]], proj[tri[2]],
				[3]float64{float64(n.X), float64(n.Y), float64(n.Z)}, r, g, bl, &light)
		}
	}
	return Downsample(fb.Image(), opts.Size)
}
