package preview

import "math"

// vertex is a projected point: x, y in pixels and z as depth.
type vertex struct {
	x, y, z float64
}

// rasterizeTriangle fills one flat-shaded triangle with z-buffering. The
// face normal is taken from the view-space positions.
func rasterizeTriangle(fb *FrameBuffer, v0, v1, v2 vertex, n [3]float64, r, g, b float64, l *Light) {
	nl := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if nl < 1e-12 {
		return
	}
	s := l.shade(n[0]/nl, n[1]/nl, n[2]/nl)
	cr, cg, cb := clamp255(r*s*255), clamp255(g*s*255), clamp255(b*s*255)

	minX := int(math.Floor(math.Min(math.Min(v0.x, v1.x), v2.x)))
	maxX := int(math.Ceil(math.Max(math.Max(v0.x, v1.x), v2.x)))
	minY := int(math.Floor(math.Min(math.Min(v0.y, v1.y), v2.y)))
	maxY := int(math.Ceil(math.Max(math.Max(v0.y, v1.y), v2.y)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (v1.y-v2.y)*(v0.x-v2.x) + (v2.x-v1.x)*(v0.y-v2.y)
	if det > -1e-9 && det < 1e-9 {
		return
	}
	invDet := 1 / det
	dy12 := v1.y - v2.y
	dx21 := v2.x - v1.x
	dy20 := v2.y - v0.y
	dx02 := v0.x - v2.x

	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5 - v2.y
		row := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5 - v2.x
			w0 := (dy12*px + dx21*py) * invDet
			w1 := (dy20*px + dx02*py) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*v0.z + w1*v1.z + w2*v2.z
			i := row + sx
			if z <= fb.ZBuf[i] {
				continue
			}
			fb.ZBuf[i] = z
			p := i * 4
			fb.Color[p] = cr
			fb.Color[p+1] = cg
			fb.Color[p+2] = cb
			fb.Color[p+3] = 255
		}
	}
}
