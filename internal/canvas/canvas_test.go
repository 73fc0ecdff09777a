package canvas

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func newTestCanvas(w, h int) *Canvas {
	c := New(image.NewRGBA(image.Rect(0, 0, w, h)), nil)
	c.Fill(color.RGBA{A: 255})
	return c
}

func TestQuadPointsAndHead(t *testing.T) {
	p0, p1, p2 := Pt(0, 0), Pt(50, 100), Pt(100, 0)
	pts := QuadPoints(p0, p1, p2, 50)

	if len(pts) != 51 {
		t.Fatalf("Expected 51 points, got %d", len(pts))
	}
	if pts[0] != p0 || pts[50] != p2 {
		t.Errorf("Endpoints mismatch: %v %v", pts[0], pts[50])
	}
	if math.Abs(pts[25].Y-50) > 1e-9 {
		t.Errorf("Midpoint of symmetric curve should be y=50, got %f", pts[25].Y)
	}

	// Касательная в конце направлена вверх-вправо: база наконечника ниже и левее острия
	head := ArrowHead(pts[49], pts[50], 16)
	if head[0] != p2 {
		t.Errorf("Head tip must be the endpoint")
	}
	for _, p := range head[1:] {
		if p.X >= p2.X || p.Y <= p2.Y-16 {
			t.Errorf("Head base %v not behind the tip along the tangent", p)
		}
	}
}

func TestRoundRectFillAndStroke(t *testing.T) {
	c := newTestCanvas(100, 100)
	red := color.RGBA{R: 255, A: 255}

	c.FillRoundRect(R(10, 10, 40, 40), 8, red)
	if got := c.Img.RGBAAt(30, 30); got.R < 250 || got.G != 0 {
		t.Errorf("Center of filled rect: %v", got)
	}
	if got := c.Img.RGBAAt(10, 10); got.R == 255 {
		t.Errorf("Rounded corner should not be fully covered: %v", got)
	}
	if got := c.Img.RGBAAt(70, 70); got.R != 0 {
		t.Errorf("Outside pixel touched: %v", got)
	}

	c2 := newTestCanvas(100, 100)
	c2.StrokeRoundRect(R(10, 10, 80, 80), 10, 3, red)
	if got := c2.Img.RGBAAt(50, 50); got.R != 0 {
		t.Errorf("Stroke must leave the inside empty: %v", got)
	}
	if got := c2.Img.RGBAAt(50, 11); got.R < 200 {
		t.Errorf("Stroke edge not drawn: %v", got)
	}
}

func TestWrap(t *testing.T) {
	c := newTestCanvas(10, 10)
	st := Regular(20)

	text := "Too many shards means more overhead and more heap pressure"
	lines := c.Wrap(text, st, 200)
	if len(lines) < 2 {
		t.Fatalf("Expected wrapping, got %v", lines)
	}
	for _, ln := range lines {
		if w, _ := c.Measure(ln, st); w > 200 && len(splitWords(ln)) > 1 {
			t.Errorf("Line %q exceeds width: %.1f", ln, w)
		}
	}

	withBreaks := c.Wrap("• one\n• two", st, 1000)
	if len(withBreaks) != 2 {
		t.Errorf("Explicit newlines must be kept: %v", withBreaks)
	}
}

func splitWords(s string) []string {
	var out []string
	word := ""
	for _, r := range s {
		if r == ' ' {
			if word != "" {
				out = append(out, word)
			}
			word = ""
			continue
		}
		word += string(r)
	}
	if word != "" {
		out = append(out, word)
	}
	return out
}

func TestGradients(t *testing.T) {
	top := color.RGBA{R: 10, G: 16, B: 31, A: 255}
	bottom := color.RGBA{R: 14, G: 22, B: 42, A: 255}
	g := VerticalGradient(64, 36, top, bottom)
	if g.RGBAAt(5, 0) != top || g.RGBAAt(5, 35) != bottom {
		t.Errorf("Gradient endpoints: %v %v", g.RGBAAt(5, 0), g.RGBAAt(5, 35))
	}

	d := DiagonalGradient(320, 180, top, color.RGBA{R: 60, G: 20, B: 90, A: 255}, top)
	if d.Bounds().Dx() != 320 || d.Bounds().Dy() != 180 {
		t.Errorf("Unexpected size %v", d.Bounds())
	}
}

func TestTextAndQRDraw(t *testing.T) {
	c := newTestCanvas(200, 200)
	c.Text(10, 10, "Lag", Bold(32), color.RGBA{R: 255, G: 255, B: 255, A: 255})

	lit := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 100; x++ {
			if c.Img.RGBAAt(x, y).R > 128 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("Text rendered no pixels")
	}

	if err := c.QR(100, 100, 80, "https://example.com/article"); err != nil {
		t.Fatalf("QR failed: %v", err)
	}
	white := 0
	for y := 100; y < 180; y++ {
		for x := 100; x < 180; x++ {
			if c.Img.RGBAAt(x, y).R == 255 {
				white++
			}
		}
	}
	if white == 0 {
		t.Error("QR code not drawn")
	}
}

func TestBlendAndScale(t *testing.T) {
	a := color.RGBA{R: 0, G: 207, B: 173, A: 255}
	b := color.RGBA{R: 255, G: 187, B: 72, A: 255}
	if Blend(a, b, 0) != a || Blend(a, b, 1) != b {
		t.Errorf("Blend endpoints: %v %v", Blend(a, b, 0), Blend(a, b, 1))
	}
	if got := Scale(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 2); got.R != 255 || got.G != 200 {
		t.Errorf("Scale must clamp: %v", got)
	}
}
