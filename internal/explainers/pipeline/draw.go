package pipeline

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/interp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Colors is the dark palette of the pipeline explainers
func Colors() map[string]string {
	return map[string]string{
		"bg_top":        "#0a101f",
		"bg_bottom":     "#0e162a",
		"panel":         "#141c32",
		"text":          "#ebc8cf",
		"muted":         "#a8b4cd",
		"teal":          "#00cfad",
		"blue":          "#2f92ff",
		"purple":        "#a474ff",
		"amber":         "#ffb000",
		"cyan":          "#00d4ff",
		"error":         "#ff5a5f",
		"warn":          "#d0c146",
		"outline":       "#32508c",
		"shadow":        "#080c16",
		"track":         "#152244",
		"track_outline": "#394a7a",
		"consumer_tile": "#14203c",
		"meter_track":   "#1a2849",
		"dash_tile":     "#0f1a33",
	}
}

// Palette is a theme resolved to concrete colors
type Palette struct {
	BgTop, BgBottom, Panel, Text, Muted        color.RGBA
	Teal, Blue, Purple, Amber, Cyan, Err, Warn color.RGBA
	Outline, Shadow, Track, TrackOutline       color.RGBA
	ConsumerTile, MeterTrack, DashTile         color.RGBA
}

// NewPalette resolves the named colors of a theme
func NewPalette(t config.Theme) Palette {
	return Palette{
		BgTop:        t.Color("bg_top"),
		BgBottom:     t.Color("bg_bottom"),
		Panel:        t.Color("panel"),
		Text:         t.Color("text"),
		Muted:        t.Color("muted"),
		Teal:         t.Color("teal"),
		Blue:         t.Color("blue"),
		Purple:       t.Color("purple"),
		Amber:        t.Color("amber"),
		Cyan:         t.Color("cyan"),
		Err:          t.Color("error"),
		Warn:         t.Color("warn"),
		Outline:      t.Color("outline"),
		Shadow:       t.Color("shadow"),
		Track:        t.Color("track"),
		TrackOutline: t.Color("track_outline"),
		ConsumerTile: t.Color("consumer_tile"),
		MeterTrack:   t.Color("meter_track"),
		DashTile:     t.Color("dash_tile"),
	}
}

// Severity color of the status line
func (p Palette) Severity(s Severity) color.RGBA {
	switch s {
	case SevWarn:
		return p.Warn
	case SevError:
		return p.Err
	}
	return p.Teal
}

// Layout positions the pipeline boxes
type Layout struct {
	Source    canvas.Rect
	Kafka     canvas.Rect
	Consumers canvas.Rect
	ES        canvas.Rect
	Dash      canvas.Rect
}

// DefaultLayout fits a 1280×720 frame
var DefaultLayout = Layout{
	Source:    canvas.R(80, 315, 220, 90),
	Kafka:     canvas.R(330, 300, 340, 120),
	Consumers: canvas.R(700, 300, 340, 120),
	ES:        canvas.R(1080, 300, 180, 120),
	Dash:      canvas.R(1050, 470, 210, 100),
}

// Painter draws pipeline widgets with a fixed palette and fonts.
// It holds no mutable state and may be shared between workers.
type Painter struct {
	Pal       Palette
	Title     canvas.Style // Box titles
	Small     canvas.Style // Badges and counters
	CurveBend float64      // Horizontal push of the ES→Dashboards curve
}

// NewPainter creates a painter with the default fonts
func NewPainter(pal Palette) Painter {
	return Painter{
		Pal:       pal,
		Title:     canvas.Regular(22),
		Small:     canvas.Regular(18),
		CurveBend: 80,
	}
}

var printer = message.NewPrinter(language.English)

// Thousands formats n with comma separators: 120000 → "120,000"
func Thousands(n int) string {
	return printer.Sprintf("%d", n)
}

// Box draws a shadowed panel with a title and an accent bar at the bottom
func (p Painter) Box(c *canvas.Canvas, r canvas.Rect, title string, accent color.RGBA) {
	c.ShadowBox(r, 16, p.Pal.Panel, p.Pal.Outline, p.Pal.Shadow, 3)
	c.Text(r.X+12, r.Y+10, title, p.Title, p.Pal.Text)
	c.FillRoundRect(canvas.R(r.X+12, r.Y+r.H-12, r.W-24, 4), 4, accent)
}

// Link draws a straight pulsing arrow between the facing edges of two boxes
func (p Painter) Link(c *canvas.Canvas, from, to canvas.Rect, pulse float64) {
	c.Arrow(from.Right(), to.Left(), 5, 14, canvas.Scale(p.Pal.Outline, pulse))
}

// CurvedLink draws the arc from the bottom of es to the top of dash
func (p Painter) CurvedLink(c *canvas.Canvas, es, dash canvas.Rect) {
	p0 := canvas.Pt(es.X+es.W/2, es.Y+es.H+8)
	p2 := canvas.Pt(dash.X+dash.W/2, dash.Y-8)
	ctrl := canvas.Pt(math.Max(es.X, dash.X)+math.Abs(dash.X-es.X)/2+p.CurveBend, (p0.Y+p2.Y)/2)
	c.CurveArrow(p0, ctrl, p2, 7, 16, p.Pal.Outline)
}

// Flow draws the five boxes and their links. sourceTitle names the first box
// ("Source" or "App").
func (p Painter) Flow(c *canvas.Canvas, l Layout, sourceTitle string, pulse float64) {
	p.Box(c, l.Source, sourceTitle, p.Pal.Teal)
	p.Box(c, l.Kafka, "Kafka Topic", p.Pal.Blue)
	p.Box(c, l.Consumers, fmt.Sprintf("Consumers (%d)", Partitions), p.Pal.Purple)
	p.Box(c, l.ES, "Elasticsearch", p.Pal.Amber)
	p.Box(c, l.Dash, "Dashboards", p.Pal.Cyan)

	p.Link(c, l.Source, l.Kafka, pulse)
	p.Link(c, l.Kafka, l.Consumers, pulse)
	p.Link(c, l.Consumers, l.ES, pulse)
	p.CurvedLink(c, l.ES, l.Dash)
}

// Partitions draws the partition fill gauges inside the Kafka box
func (p Painter) Partitions(c *canvas.Canvas, r canvas.Rect, st State) {
	const pad, gap, ph = 12.0, 6.0, 20.0
	slot := (r.W - 2*pad - (Partitions-1)*gap) / Partitions
	py := r.Y + 60

	for i := 0; i < Partitions; i++ {
		px := r.X + pad + float64(i)*(slot+gap)
		c.RoundRect(canvas.R(px, py, slot, ph), 6, p.Pal.Track, p.Pal.TrackOutline, 2)

		fw := math.Floor(slot * math.Max(0.02, math.Min(1, st.PartFill[i])))
		fill := p.Pal.Blue
		if st.PartHot[i] {
			fill = p.Pal.Err
		}
		c.FillRoundRect(canvas.R(px, py, fw, ph), 6, fill)

		if st.PartHot[i] {
			c.StrokeRoundRect(canvas.R(px-2, py-2, slot+4, ph+4), 8, 2, p.Pal.Err)
		}
	}
}

// Consumers draws one tile with a throughput bar per consumer
func (p Painter) Consumers(c *canvas.Canvas, r canvas.Rect, st State) {
	const pad, gap, sh = 12.0, 6.0, 44.0
	slot := math.Floor((r.W - 2*pad - (Partitions-1)*gap) / Partitions)
	sy := r.Y + 58

	for i := 0; i < Partitions; i++ {
		sx := math.Floor(r.X + pad + float64(i)*(slot+gap))

		outline, bar := p.Pal.Outline, p.Pal.Purple
		switch st.Consumers[i] {
		case Waiting:
			outline, bar = p.Pal.Warn, p.Pal.Amber
		case Blocked:
			outline, bar = p.Pal.Err, p.Pal.Err
		}
		c.RoundRect(canvas.R(sx, sy, slot, sh), 6, p.Pal.ConsumerTile, outline, 2)

		bw := math.Floor(slot * math.Max(0, math.Min(1, st.ConsumerBar[i])))
		c.FillRoundRect(canvas.R(sx+4, sy+sh-12, bw, 5), 3, bar)
	}
}

// ESMeter draws the indexing pressure gauge and latency inside the ES box
func (p Painter) ESMeter(c *canvas.Canvas, r canvas.Rect, meter float64) {
	mw := r.W - 20
	mx, my := r.X+12, r.Y+70
	c.RoundRect(canvas.R(mx, my, mw, 14), 6, p.Pal.MeterTrack, p.Pal.TrackOutline, 2)
	if meter > 0 {
		c.FillRoundRect(canvas.R(mx, my, math.Floor(mw*math.Min(1, meter)), 14), 6, p.Pal.Amber)
	}
	if meter > 0.85 {
		c.StrokeRoundRect(r, 16, 3, p.Pal.Err)
	}
	latency := State{ESMeter: meter}.IndexingLatency()
	c.Text(r.X+12, r.Y+94, fmt.Sprintf("Indexing latency: %dms", latency), p.Small, p.Pal.Muted)
}

// Dashboards draws three tiles that turn yellow when data is stale
func (p Painter) Dashboards(c *canvas.Canvas, r canvas.Rect, stale bool, delay float64) {
	const gap = 8.0
	tw := math.Floor((r.W - 20 - 2*gap) / 3)
	ty := r.Y + 52
	outline := p.Pal.Outline
	if stale {
		outline = p.Pal.Warn
	}
	for i := 0; i < 3; i++ {
		tx := r.X + 12 + float64(i)*(tw+gap)
		c.RoundRect(canvas.R(tx, ty, tw, 22), 6, p.Pal.DashTile, outline, 2)
	}
	c.Text(r.X+12, r.Y+28, fmt.Sprintf("Delay: %ds", int(delay)), p.Small, p.Pal.Muted)
}

// Details draws the per-frame gauges of a resolved state over a Flow
func (p Painter) Details(c *canvas.Canvas, l Layout, st State) {
	c.Text(l.Source.X+12, l.Source.Y+58, "events/sec: "+Thousands(st.SourceRate), p.Small, p.Pal.Muted)
	p.Partitions(c, l.Kafka, st)
	p.Consumers(c, l.Consumers, st)
	p.ESMeter(c, l.ES, st.ESMeter)
	p.Dashboards(c, l.Dash, st.DashStale, st.DashDelay)
	c.Text(l.Kafka.X+l.Kafka.W-210, l.Kafka.Y+l.Kafka.H-28, "Total lag: "+Thousands(st.Lag), p.Small, p.Pal.Muted)
}

// ArrowPulse is the brightness factor of the straight links at time t
func ArrowPulse(t float64) float64 {
	return interp.Wave(t, 0.8, 0.2, 1)
}
