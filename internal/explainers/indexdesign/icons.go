package indexdesign

import (
	"image/color"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/interp"
)

const iconW, iconH = 150.0, 90.0

func (r *Renderer) iconFrame(c *canvas.Canvas, x, y float64) canvas.Rect {
	box := canvas.R(x, y, iconW, iconH)
	c.FillRoundRect(box, 16, r.pal.iconBg)
	return box
}

// iconShards splits one block into a growing grid of shards
func (r *Renderer) iconShards(c *canvas.Canvas, x, y, t float64) {
	box := r.iconFrame(c, x, y)
	n := 1 + int(t*5) // 1..6 столбцов
	if n > 6 {
		n = 6
	}
	inner := box.Inset(14)
	w := (inner.W - float64(n-1)*4) / float64(n)
	for i := 0; i < n; i++ {
		cell := canvas.R(inner.X+float64(i)*(w+4), inner.Y, w, inner.H)
		col := r.pal.blue
		if n > 3 && i >= 3 {
			col = r.pal.red
		}
		c.FillRoundRect(cell, 4, col)
	}
}

// iconRefresh is a ring that spins faster as t grows
func (r *Renderer) iconRefresh(c *canvas.Canvas, x, y, t float64) {
	box := r.iconFrame(c, x, y)
	center := box.Center()
	c.StrokeCircle(center, 30, 6, r.pal.iconTrack)
	c.StrokeCircle(center, 30, 1, r.pal.iconTrackBorder)
	angle := 360 * interp.Lerp(0, 3, t)
	c.Spinner(center, 30, angle, 6, r.pal.amber)
}

// iconReplicas stacks copies of a document; each copy is extra write work
func (r *Renderer) iconReplicas(c *canvas.Canvas, x, y, t float64) {
	box := r.iconFrame(c, x, y)
	copies := 1 + int(t*3)
	if copies > 3 {
		copies = 3
	}
	for i := copies - 1; i >= 0; i-- {
		d := float64(i) * 10
		doc := canvas.R(box.X+40+d, box.Y+14+d, 50, 56)
		col := r.pal.blue
		if i > 0 {
			col = r.pal.red
		}
		c.RoundRect(doc, 6, r.pal.iconTrack, col, 3)
	}
}

// iconILM is a track with a dot moving through hot, warm and cold
func (r *Renderer) iconILM(c *canvas.Canvas, x, y, t float64) {
	box := r.iconFrame(c, x, y)
	track := canvas.R(box.X+14, box.Y+box.H/2-8, box.W-28, 16)
	c.RoundRect(track, 8, r.pal.iconTrack, r.pal.iconTrackBorder, 1)

	seg := track.W / 3
	cols := []color.RGBA{r.pal.red, r.pal.amber, r.pal.blue}
	for i, col := range cols {
		c.FillCircle(canvas.Pt(track.X+seg*(float64(i)+0.5), track.Y-12), 5, col)
	}
	c.FillCircle(canvas.Pt(track.X+8+(track.W-16)*t, track.Y+8), 9, r.pal.green)
}
