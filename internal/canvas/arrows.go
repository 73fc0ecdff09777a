package canvas

import (
	"image/color"
	"math"
)

// headSpread is the half-angle of an arrowhead in radians
const headSpread = 0.4

// QuadPoints samples a quadratic Bézier p0→p2 with control point p1
func QuadPoints(p0, p1, p2 Point, steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		pts = append(pts, Point{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		})
	}
	return pts
}

// ArrowHead returns the triangle of a head of length l at tip, pointing
// along the direction from → tip.
func ArrowHead(from, tip Point, l float64) []Point {
	angle := math.Atan2(tip.Y-from.Y, tip.X-from.X)
	return []Point{
		tip,
		{X: tip.X - l*math.Cos(angle-headSpread), Y: tip.Y - l*math.Sin(angle-headSpread)},
		{X: tip.X - l*math.Cos(angle+headSpread), Y: tip.Y - l*math.Sin(angle+headSpread)},
	}
}

// Arrow draws a straight arrow from a to b
func (c *Canvas) Arrow(a, b Point, width, head float64, col color.Color) {
	c.Line(a, b, width, col)
	c.Polygon(ArrowHead(a, b, head), col)
}

// CurveArrow draws a quadratic curved arrow; the head follows the tangent at p2
func (c *Canvas) CurveArrow(p0, ctrl, p2 Point, width, head float64, col color.Color) {
	pts := QuadPoints(p0, ctrl, p2, 50)
	c.Polyline(pts, width, col)
	c.Polygon(ArrowHead(pts[len(pts)-2], pts[len(pts)-1], head), col)
}

// BowArrow bends an arrow upward by curve*140px at its midpoint; curve 0 is straight
func (c *Canvas) BowArrow(a, b Point, width, head, curve float64, col color.Color) {
	if curve == 0 {
		c.Arrow(a, b, width, head, col)
		return
	}
	mid := Point{X: (a.X + b.X) / 2, Y: (a.Y+b.Y)/2 - 140*curve}
	c.CurveArrow(a, mid, b, width, head, col)
}
