package oversharding

import (
	"image/color"
	"math"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/timeline"
)

var (
	fontMain      = canvas.Bold(74)
	fontSub       = canvas.Regular(34)
	fontCopyright = canvas.Regular(20)
)

// iconSize matches a 72pt glyph with padding
const iconSize = 92.0

// Renderer draws oversharding slides
type Renderer struct {
	theme     config.Theme
	bg        color.RGBA
	sub       color.RGBA
	copyright color.RGBA
	w, h      float64
}

func newRenderer(cfg config.Config, theme config.Theme) *Renderer {
	return &Renderer{
		theme:     theme,
		bg:        theme.Color("bg"),
		sub:       theme.Color("sub"),
		copyright: theme.Color("copyright"),
		w:         float64(cfg.Width),
		h:         float64(cfg.Height),
	}
}

// Render draws one frame
func (r *Renderer) Render(c *canvas.Canvas, pos timeline.Position) error {
	st := Resolve(pos.Scene, pos.Local)
	c.Fill(r.bg)

	r.lines(c, st.Slide.Text, fontMain, r.theme.Color(pos.Scene.Name), r.w-220, r.h*MainY+st.MainOffset)
	if st.SubVisible {
		r.lines(c, st.Slide.Sub, fontSub, r.sub, r.w-260, r.h*SubY+st.SubOffset)
	}

	x, y := r.w*st.IconX, r.h*st.IconY+st.IconDY
	r.icon(c, pos.Scene.Kind, x+10, y+10, r.theme.Color(pos.Scene.Kind))

	if st.Wash > 0 {
		c.Wash(canvas.Alpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, uint8(255*st.Wash)))
	}

	c.Credit(r.theme.Credit, fontCopyright, r.copyright, 26, 22)
	return nil
}

// lines draws wrapped, individually centered lines with their top at y
func (r *Renderer) lines(c *canvas.Canvas, text string, st canvas.Style, col color.RGBA, maxW, y float64) {
	for _, ln := range c.Wrap(text, st, maxW) {
		c.TextHCenter(y, ln, st, col)
		_, h := c.Measure(ln, st)
		y += h
	}
}

func (r *Renderer) icon(c *canvas.Canvas, kind string, x, y float64, col color.RGBA) {
	const s = iconSize - 20
	box := canvas.R(x, y, s, s)
	center := box.Center()

	switch kind {
	case IconWarning:
		c.Polygon([]canvas.Point{
			{X: center.X, Y: y + 4},
			{X: x + s, Y: y + s - 4},
			{X: x, Y: y + s - 4},
		}, col)
		c.Line(canvas.Pt(center.X, y+24), canvas.Pt(center.X, y+s-26), 7, color.White)
		c.FillCircle(canvas.Pt(center.X, y+s-15), 4, color.White)

	case IconRocket:
		body := canvas.R(center.X-12, y+8, 24, s-22)
		c.FillRoundRect(body, 12, col)
		c.Polygon([]canvas.Point{{X: body.X, Y: y + s - 30}, {X: body.X - 14, Y: y + s - 8}, {X: body.X, Y: y + s - 14}}, col)
		c.Polygon([]canvas.Point{{X: body.X + body.W, Y: y + s - 30}, {X: body.X + body.W + 14, Y: y + s - 8}, {X: body.X + body.W, Y: y + s - 14}}, col)
		c.FillCircle(canvas.Pt(center.X, y+30), 6, color.White)
		c.Polygon([]canvas.Point{{X: center.X - 8, Y: y + s - 14}, {X: center.X + 8, Y: y + s - 14}, {X: center.X, Y: y + s}}, color.RGBA{R: 255, G: 160, B: 40, A: 255})

	case IconBricks:
		const rows, bh = 4, 16.0
		for i := 0; i < rows; i++ {
			off := 0.0
			if i%2 == 1 {
				off = -s / 4
			}
			for bx := x + off; bx < x+s; bx += s / 2 {
				left := math.Max(bx, x)
				right := math.Min(bx+s/2, x+s)
				c.FillRoundRect(canvas.R(left+1, y+float64(i)*(bh+2)+1, right-left-2, bh), 2, col)
			}
		}

	case IconFire:
		c.Polygon(flame(center.X, y+s, s*0.5, s), col)
		c.Polygon(flame(center.X, y+s, s*0.25, s*0.55), color.RGBA{R: 255, G: 190, B: 60, A: 255})

	case IconStopwatch:
		face := canvas.Pt(center.X, center.Y+6)
		c.StrokeCircle(face, s/2-6, 6, col)
		c.FillRoundRect(canvas.R(center.X-7, y, 14, 8), 3, col)
		c.Line(face, canvas.Pt(face.X, face.Y-18), 5, col)
		c.Line(face, canvas.Pt(face.X+12, face.Y+6), 5, col)

	case IconCheck:
		c.FillRoundRect(box, 14, col)
		c.Check(x+8, y+8, s-16, color.White)
	}
}

// flame returns the outline of a flame standing on base with half-width hw and height h
func flame(cx, base, hw, h float64) []canvas.Point {
	pts := make([]canvas.Point, 0, 24)
	cy := base - hw*0.9
	for i := 0; i <= 12; i++ {
		a := math.Pi * float64(i) / 12
		pts = append(pts, canvas.Point{X: cx + hw*math.Cos(a), Y: cy + hw*0.9*math.Sin(a)})
	}
	// Язык пламени
	pts = append(pts,
		canvas.Point{X: cx - hw*0.9, Y: base - h*0.55},
		canvas.Point{X: cx - hw*0.3, Y: base - h*0.7},
		canvas.Point{X: cx, Y: base - h},
		canvas.Point{X: cx + hw*0.4, Y: base - h*0.6},
		canvas.Point{X: cx + hw*0.9, Y: base - h*0.75},
	)
	return pts
}
