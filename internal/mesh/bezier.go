package mesh

import "github.com/Faultbox/creatura/pkg/math"

// Curve is a cubic Bezier curve: P0 and P3 are the end points, P1 and P2 the
// control handles.
type Curve struct {
	P0, P1, P2, P3 math.Vec3
}

// Point evaluates the curve at t.
func (c Curve) Point(t float32) math.Vec3 {
	return BezierPoint(t, c.P0, c.P1, c.P2, c.P3)
}

// BezierPoint evaluates a cubic Bezier curve at t using the Bernstein
// weights u³, 3u²t, 3ut², t³ with u = 1 - t.
func BezierPoint(t float32, p0, p1, p2, p3 math.Vec3) math.Vec3 {
	u := 1 - t
	tt := t * t
	uu := u * u
	uuu := uu * u
	ttt := tt * t

	point := p0.Scale(uuu)
	point = point.Add(p1.Scale(3 * uu * t))
	point = point.Add(p2.Scale(3 * u * tt))
	point = point.Add(p3.Scale(ttt))
	return point
}
