package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

// ShadowBox draws a rounded box with a drop shadow offset by (3,4)
func (c *Canvas) ShadowBox(r Rect, radius float64, fill, outline, shadow color.Color, width float64) {
	c.FillRoundRect(r.Offset(3, 4), radius, shadow)
	c.RoundRect(r, radius, fill, outline, width)
}

// Meter draws a horizontal bar filled to value in [0,1]
func (c *Canvas) Meter(r Rect, value float64, track, border, fill color.Color) {
	radius := r.H / 2
	if radius > 12 {
		radius = 12
	}
	c.RoundRect(r, radius, track, border, 2)
	if value <= 0 {
		return
	}
	if value > 1 {
		value = 1
	}
	fw := r.W * value
	c.FillRoundRect(Rect{X: r.X, Y: r.Y, W: fw, H: r.H}, radius, fill)
}

// Badge draws text inside a rounded outline and returns the badge bounds
func (c *Canvas) Badge(x, y float64, text string, st Style, fg, bg, border color.Color) Rect {
	const padX, padY = 14, 8
	tw, th := c.Measure(text, st)
	r := Rect{X: x, Y: y, W: tw + 2*padX, H: th + 2*padY}
	c.RoundRect(r, 16, bg, border, 2)
	c.Text(x+padX, y+padY, text, st, fg)
	return r
}

// Pill draws a horizontally centered badge at top y
func (c *Canvas) Pill(y float64, text string, st Style, fg, bg color.Color) Rect {
	tw, th := c.Measure(text, st)
	w, h := tw+34, th+18
	r := Rect{X: (float64(c.W) - w) / 2, Y: y, W: w, H: h}
	c.RoundRect(r, 22, bg, fg, 3)
	c.Text(r.X+17, y+9, text, st, fg)
	return r
}

// Glow draws concentric fading outlines around r; strength in [0,1]
func (c *Canvas) Glow(r Rect, radius float64, col color.RGBA, strength float64) {
	if strength <= 0 {
		return
	}
	spread := 10 + 18*strength
	for i := 3; i >= 1; i-- {
		d := spread * float64(i) / 3
		a := uint8(90 * strength / float64(i))
		c.StrokeRoundRect(r.Inset(-d), radius+d, 2, Alpha(col, a))
	}
}

// Check draws a check mark icon inside a size×size box at (x, y)
func (c *Canvas) Check(x, y, size float64, col color.Color) {
	c.Polyline([]Point{
		{X: x + size*0.15, Y: y + size*0.55},
		{X: x + size*0.4, Y: y + size*0.8},
		{X: x + size*0.85, Y: y + size*0.2},
	}, size*0.14, col)
}

// Cross draws an X icon inside a size×size box at (x, y)
func (c *Canvas) Cross(x, y, size float64, col color.Color) {
	w := size * 0.14
	c.Line(Pt(x+size*0.2, y+size*0.2), Pt(x+size*0.8, y+size*0.8), w, col)
	c.Line(Pt(x+size*0.8, y+size*0.2), Pt(x+size*0.2, y+size*0.8), w, col)
}

// Spinner draws a 240° arc rotated by angle degrees
func (c *Canvas) Spinner(center Point, r, angle, width float64, col color.Color) {
	c.Arc(center, r, angle, angle+240, width, col)
}

// Credit draws a credit line anchored to the bottom-right corner
func (c *Canvas) Credit(text string, st Style, col color.Color, marginX, marginY float64) {
	if text == "" {
		return
	}
	w, h := c.Measure(text, st)
	c.Text(float64(c.W)-w-marginX, float64(c.H)-h-marginY, text, st, col)
}

// QR draws a QR code for content with its top-left corner at (x, y)
func (c *Canvas) QR(x, y, size int, content string) error {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return err
	}
	q.DisableBorder = true
	img := q.Image(size)

	dst := image.Rect(x, y, x+size, y+size)
	draw.Draw(c.Img, dst, img, img.Bounds().Min, draw.Src)
	return nil
}
