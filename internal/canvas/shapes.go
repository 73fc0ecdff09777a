package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa approximates a quarter circle with a cubic Bézier
const kappa = 0.5522847498

// Point is a float position on the canvas
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned box given by origin and size
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{x, y, w, h}
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Inset shrinks the rect by d on every side (negative d grows it)
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Offset moves the rect
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Center returns the middle of the rect
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Right returns the middle of the right edge
func (r Rect) Right() Point {
	return Point{X: r.X + r.W, Y: r.Y + r.H/2}
}

// Left returns the middle of the left edge
func (r Rect) Left() Point {
	return Point{X: r.X, Y: r.Y + r.H/2}
}

// fill rasterizes the path produced by build and composites col over the frame
func (c *Canvas) fill(col color.Color, build func(z *vector.Rasterizer)) {
	z := vector.NewRasterizer(c.W, c.H)
	z.DrawOp = draw.Over
	build(z)
	z.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{})
}

func roundRectPath(z *vector.Rasterizer, r Rect, radius float64, reverse bool) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	rad := math.Min(radius, math.Min(r.W, r.H)/2)
	if rad < 0 {
		rad = 0
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	k := rad * kappa

	f := func(v float64) float32 { return float32(v) }

	if !reverse {
		z.MoveTo(f(x0+rad), f(y0))
		z.LineTo(f(x1-rad), f(y0))
		z.CubeTo(f(x1-rad+k), f(y0), f(x1), f(y0+rad-k), f(x1), f(y0+rad))
		z.LineTo(f(x1), f(y1-rad))
		z.CubeTo(f(x1), f(y1-rad+k), f(x1-rad+k), f(y1), f(x1-rad), f(y1))
		z.LineTo(f(x0+rad), f(y1))
		z.CubeTo(f(x0+rad-k), f(y1), f(x0), f(y1-rad+k), f(x0), f(y1-rad))
		z.LineTo(f(x0), f(y0+rad))
		z.CubeTo(f(x0), f(y0+rad-k), f(x0+rad-k), f(y0), f(x0+rad), f(y0))
	} else {
		z.MoveTo(f(x0+rad), f(y0))
		z.CubeTo(f(x0+rad-k), f(y0), f(x0), f(y0+rad-k), f(x0), f(y0+rad))
		z.LineTo(f(x0), f(y1-rad))
		z.CubeTo(f(x0), f(y1-rad+k), f(x0+rad-k), f(y1), f(x0+rad), f(y1))
		z.LineTo(f(x1-rad), f(y1))
		z.CubeTo(f(x1-rad+k), f(y1), f(x1), f(y1-rad+k), f(x1), f(y1-rad))
		z.LineTo(f(x1), f(y0+rad))
		z.CubeTo(f(x1), f(y0+rad-k), f(x1-rad+k), f(y0), f(x1-rad), f(y0))
		z.LineTo(f(x0+rad), f(y0))
	}
	z.ClosePath()
}

// FillRoundRect draws a filled rounded rectangle
func (c *Canvas) FillRoundRect(r Rect, radius float64, col color.Color) {
	c.fill(col, func(z *vector.Rasterizer) {
		roundRectPath(z, r, radius, false)
	})
}

// StrokeRoundRect draws a rounded outline of the given width inside r
func (c *Canvas) StrokeRoundRect(r Rect, radius, width float64, col color.Color) {
	if width <= 0 {
		return
	}
	c.fill(col, func(z *vector.Rasterizer) {
		roundRectPath(z, r, radius, false)
		inner := r.Inset(width)
		if inner.W > 0 && inner.H > 0 {
			roundRectPath(z, inner, math.Max(0, radius-width), true)
		}
	})
}

// RoundRect fills and optionally outlines a rounded rectangle. A nil color skips that part.
func (c *Canvas) RoundRect(r Rect, radius float64, fill, outline color.Color, width float64) {
	if fill != nil {
		c.FillRoundRect(r, radius, fill)
	}
	if outline != nil {
		c.StrokeRoundRect(r, radius, width, outline)
	}
}

// Polygon fills a closed polygon
func (c *Canvas) Polygon(pts []Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.fill(col, func(z *vector.Rasterizer) {
		z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		for _, p := range pts[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
	})
}

func segmentPath(z *vector.Rasterizer, a, b Point, width float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
}

// Line draws a straight segment of the given width
func (c *Canvas) Line(a, b Point, width float64, col color.Color) {
	c.Polyline([]Point{a, b}, width, col)
}

// Polyline draws connected segments of the given width
func (c *Canvas) Polyline(pts []Point, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	c.fill(col, func(z *vector.Rasterizer) {
		for i := 0; i < len(pts)-1; i++ {
			segmentPath(z, pts[i], pts[i+1], width)
		}
	})
}

func ellipsePath(z *vector.Rasterizer, cx, cy, rx, ry float64, reverse bool) {
	kx, ky := rx*kappa, ry*kappa
	f := func(v float64) float32 { return float32(v) }
	z.MoveTo(f(cx+rx), f(cy))
	if !reverse {
		z.CubeTo(f(cx+rx), f(cy+ky), f(cx+kx), f(cy+ry), f(cx), f(cy+ry))
		z.CubeTo(f(cx-kx), f(cy+ry), f(cx-rx), f(cy+ky), f(cx-rx), f(cy))
		z.CubeTo(f(cx-rx), f(cy-ky), f(cx-kx), f(cy-ry), f(cx), f(cy-ry))
		z.CubeTo(f(cx+kx), f(cy-ry), f(cx+rx), f(cy-ky), f(cx+rx), f(cy))
	} else {
		z.CubeTo(f(cx+rx), f(cy-ky), f(cx+kx), f(cy-ry), f(cx), f(cy-ry))
		z.CubeTo(f(cx-kx), f(cy-ry), f(cx-rx), f(cy-ky), f(cx-rx), f(cy))
		z.CubeTo(f(cx-rx), f(cy+ky), f(cx-kx), f(cy+ry), f(cx), f(cy+ry))
		z.CubeTo(f(cx+kx), f(cy+ry), f(cx+rx), f(cy+ky), f(cx+rx), f(cy))
	}
	z.ClosePath()
}

// FillCircle draws a filled circle
func (c *Canvas) FillCircle(center Point, r float64, col color.Color) {
	c.fill(col, func(z *vector.Rasterizer) {
		ellipsePath(z, center.X, center.Y, r, r, false)
	})
}

// StrokeCircle draws a ring of the given width inside radius r
func (c *Canvas) StrokeCircle(center Point, r, width float64, col color.Color) {
	c.fill(col, func(z *vector.Rasterizer) {
		ellipsePath(z, center.X, center.Y, r, r, false)
		if r-width > 0 {
			ellipsePath(z, center.X, center.Y, r-width, r-width, true)
		}
	})
}

// Arc draws a circular arc between two angles in degrees (clockwise in screen space)
func (c *Canvas) Arc(center Point, r, startDeg, endDeg, width float64, col color.Color) {
	steps := int(math.Ceil(math.Abs(endDeg-startDeg) / 6))
	if steps < 2 {
		steps = 2
	}
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := (startDeg + (endDeg-startDeg)*float64(i)/float64(steps)) * math.Pi / 180
		pts = append(pts, Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)})
	}
	c.Polyline(pts, width, col)
}
