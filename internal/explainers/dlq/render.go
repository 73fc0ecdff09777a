package dlq

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/interp"
	"github.com/ivlev/scene2video/internal/timeline"
)

// Layout constants for a 1280×720 frame
const (
	headerY    = 18
	pillY      = 162
	contentTop = 220
	pad        = 24
	colGap     = 24
	cardH      = 430
	rowH       = 58
	rowGap     = 10
)

var (
	fontXL   = canvas.Bold(52)
	fontL    = canvas.Bold(30)
	fontM    = canvas.Regular(22)
	fontMB   = canvas.Bold(22)
	fontS    = canvas.Regular(18)
	fontMono = canvas.Mono(20)
	fontBig  = canvas.Bold(92)
)

var black = color.RGBA{A: 255}
var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Renderer draws DLQ frames
type Renderer struct {
	model     Model
	theme     config.Theme
	bg        *image.RGBA
	credit    string
	creditURL string
}

// NewRenderer prepares the background and the error pattern for a run
func NewRenderer(cfg config.Config, theme config.Theme) *Renderer {
	edge, mid := theme.Color("bg_edge"), theme.Color("bg_mid")
	return &Renderer{
		model:     NewModel(cfg.Seed),
		theme:     theme,
		bg:        canvas.DiagonalGradient(cfg.Width, cfg.Height, edge, mid, edge),
		credit:    theme.Credit,
		creditURL: theme.CreditURL,
	}
}

// Model returns the resolved error assignment
func (r *Renderer) Model() Model {
	return r.model
}

func (r *Renderer) col(name string) color.RGBA {
	return r.theme.Color(name)
}

// Render draws one frame
func (r *Renderer) Render(c *canvas.Canvas, pos timeline.Position) error {
	st := r.model.Resolve(pos.Scene, pos.Local)

	c.Paste(r.bg)
	r.header(c, st.HeaderAlpha)
	c.Credit(r.credit, fontS, canvas.Alpha(r.col("credit"), 220), 18, 14)

	switch st.Mode {
	case ModeDLQ:
		c.Pill(pillY, "With DLQ (Recoverable)", fontMB, r.col("green"), canvas.Alpha(black, 120))
	case ModeNoDLQ:
		c.Pill(pillY, "Without DLQ (Broken)", fontMB, r.col("red"), canvas.Alpha(black, 120))
	case ModeTransition:
		c.Pill(pillY, "Switching scenario…", fontMB, r.col("blue"), canvas.Alpha(black, 120))
	case ModeOutro:
		c.Pill(pillY, "Key takeaway", fontMB, r.col("accent"), canvas.Alpha(black, 120))
		return r.outro(c)
	}

	cardW := float64(c.W-pad*2-colGap) / 2
	left := canvas.R(pad, contentTop, math.Floor(cardW), cardH)
	right := canvas.R(pad+math.Floor(cardW)+colGap, contentTop, math.Floor(cardW), cardH)

	r.card(c, left, "Main Pipeline", r.col("blue"), canvas.Alpha(white, 22))
	switch st.Mode {
	case ModeDLQ:
		r.card(c, right, "Dead Letter Queue", r.col("green"), canvas.Alpha(r.col("green"), 20))
	case ModeNoDLQ:
		r.card(c, right, "Lost Forever", r.col("red"), canvas.Alpha(r.col("red"), 20))
	default:
		r.card(c, right, "Outcome", r.col("gray"), canvas.Alpha(white, 20))
	}

	r.pipeline(c, left, st, pos.Time)

	switch st.Mode {
	case ModeDLQ:
		r.deadLetters(c, right, st.DLQ)
	case ModeNoDLQ:
		r.lost(c, right, st.Lost)
	case ModeTransition:
		box := canvas.R(pad, contentTop+90, float64(c.W-pad*2), 240)
		c.RoundRect(box, 26, canvas.Alpha(black, 110), r.col("blue"), 2)
		c.TextHCenter(box.Y+36, "Resetting…", fontXL, canvas.Alpha(white, 240))
		c.TextHCenter(box.Y+130, "Same traffic. Different outcome.", fontL, canvas.Alpha(white, 240))
	}

	return nil
}

func (r *Renderer) header(c *canvas.Canvas, a float64) {
	alpha := func(k float64) uint8 { return uint8(k * a) }
	c.TextHCenter(headerY, "Dead Letter Queues", fontXL, canvas.Alpha(white, alpha(255)))
	c.TextHCenter(headerY+58, "Are Not Optional", fontXL, canvas.Alpha(r.col("accent"), alpha(255)))
	c.TextHCenter(headerY+118, "They’re the difference between “Recoverable” and “Broken” pipelines",
		fontM, canvas.Alpha(r.col("subtitle"), alpha(235)))
}

func (r *Renderer) card(c *canvas.Canvas, box canvas.Rect, title string, border color.RGBA, fill color.Color) {
	c.RoundRect(box, 16, fill, border, 2)
	c.Text(box.X+18, box.Y+14, title, fontL, canvas.Alpha(white, 240))
}

func (r *Renderer) pipeline(c *canvas.Canvas, card canvas.Rect, st State, t float64) {
	x, y := card.X+18, card.Y+74
	w := card.W - 36

	if st.Starting {
		c.Text(x, y+10, "Starting…", fontM, canvas.Alpha(r.col("gray"), 220))
	}

	for i, m := range st.Pipeline {
		row := canvas.R(x, y+float64(i)*(rowH+rowGap), w, rowH)
		r.message(c, row, m, t)
	}
}

func (r *Renderer) message(c *canvas.Canvas, row canvas.Rect, m Message, t float64) {
	var border, fill, label color.RGBA
	var text string

	switch m.Phase {
	case interp.PhaseProcessing:
		border, fill, label, text = r.col("blue"), r.col("blue_fill"), r.col("blue_text"), "processing"
	case interp.PhaseError:
		border, fill, label, text = r.col("red_light"), r.col("red"), r.col("red_text"), "error"
	default:
		border, fill, label, text = r.col("green_light"), r.col("green"), r.col("green_text"), "success"
	}

	c.RoundRect(row, 14, canvas.Alpha(fill, 46), border, 2)
	c.Text(row.X+14, row.Y+10, fmt.Sprintf("Message #%d", m.ID), fontMono, canvas.Alpha(white, 235))
	c.Text(row.X+14, row.Y+row.H-28, text, fontS, canvas.Alpha(label, 220))

	icon := row.X + row.W - 38
	switch m.Phase {
	case interp.PhaseProcessing:
		// 15°/кадр при 15 fps
		angle := math.Mod(t*225, 360)
		c.Spinner(canvas.Pt(icon+13, row.Y+row.H/2), 11, angle, 3, border)
	case interp.PhaseError:
		c.Cross(icon, row.Y+8, 26, border)
	default:
		c.Check(icon, row.Y+8, 26, border)
	}
}

func (r *Renderer) deadLetters(c *canvas.Canvas, card canvas.Rect, ids []int) {
	x, y := card.X+18, card.Y+74
	w := card.W - 36

	if len(ids) == 0 {
		c.Text(x, y+10, "Failed messages land here for retry.", fontM, canvas.Alpha(r.col("subtitle"), 220))
		return
	}

	if len(ids) > MaxRows {
		ids = ids[len(ids)-MaxRows:]
	}
	amber := r.col("accent")
	light := r.col("amber_light")
	for i, id := range ids {
		row := canvas.R(x, y+float64(i)*(rowH+rowGap), w, rowH)
		c.RoundRect(row, 14, canvas.Alpha(amber, 46), amber, 2)
		c.Text(row.X+14, row.Y+10, fmt.Sprintf("Message #%d", id), fontMono, canvas.Alpha(white, 235))
		c.Text(row.X+14, row.Y+row.H-28, "recoverable (stored for replay)", fontS, canvas.Alpha(light, 230))
		c.Spinner(canvas.Pt(row.X+row.W-24, row.Y+20), 10, -60, 3, light)
	}
}

func (r *Renderer) lost(c *canvas.Canvas, card canvas.Rect, n int) {
	if n == 0 {
		c.Text(card.X+18, card.Y+110, "Any failed message is lost permanently.", fontM, canvas.Alpha(r.col("subtitle"), 220))
		return
	}

	s := strconv.Itoa(n)
	sw, _ := c.Measure(s, fontBig)
	c.Text(card.X+(card.W-sw)/2, card.Y+180, s, fontBig, r.col("red_light"))
	c.Text(card.X+70, card.Y+290, "messages lost forever", fontL, canvas.Alpha(r.col("red_soft"), 240))
	c.Text(card.X+70, card.Y+330, "no replay • no audit • no fix", fontM, canvas.Alpha(r.col("red_text"), 220))
	c.Text(card.X+70, card.Y+375, "…and the dashboard data stays wrong.", fontM, canvas.Alpha(r.col("red_text"), 220))
	c.Cross(card.X+card.W-120, card.Y+165, 100, canvas.Alpha(r.col("red_light"), 180))
}

func (r *Renderer) outro(c *canvas.Canvas) error {
	panel := canvas.R(120, 250, float64(c.W-240), 360)
	c.RoundRect(panel, 26, canvas.Alpha(black, 110), canvas.Alpha(white, 60), 2)

	c.TextHCenter(290, "“One bad event shouldn’t break your whole stream.”", fontL, canvas.Alpha(r.col("outro_quote"), 245))
	c.TextHCenter(342, "Seasoned data engineers never skip DLQs.", fontM, canvas.Alpha(r.col("gray"), 235))

	bullets := []string{
		"Isolate failures (don’t block good traffic)",
		"Store bad events for investigation + replay",
		"Control retries (avoid infinite retry storms)",
	}
	green := canvas.Alpha(r.col("green_light"), 240)
	bx, by := panel.X+90, 410.0
	for i, b := range bullets {
		y := by + float64(i)*56
		c.Check(bx, y, 24, green)
		c.Text(bx+40, y, b, fontMB, green)
	}

	if r.creditURL != "" {
		const size = 96
		return c.QR(int(panel.X+panel.W)-size-20, int(panel.Y+panel.H)-size-20, size, r.creditURL)
	}
	return nil
}
