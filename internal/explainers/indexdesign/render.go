package indexdesign

import (
	"image/color"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/timeline"
)

var (
	fontTitle = canvas.Bold(44)
	fontH2    = canvas.Bold(32)
	fontBody  = canvas.Regular(24)
	fontSmall = canvas.Regular(20)
	fontBadge = canvas.Bold(22)
)

const nodeW, nodeH = 160.0, 86.0

// nodeY is the row of the pipeline nodes
const nodeY = 320.0

type node struct {
	key   string
	label string
	x     float64 // Center
}

var nodes = []node{
	{"app", "App", 140},
	{"kafka", "Kafka", 340},
	{"consumer", "Consumer", 560},
	{"es", "Elasticsearch", 820},
	{"dash", "Dashboards", 1120},
}

type palette struct {
	bg, panel, panelAlt, outline, text, muted     color.RGBA
	green, red, amber, blue, badge, meterTrack    color.RGBA
	calmArrow, iconBg, iconTrack, iconTrackBorder color.RGBA
}

// Renderer draws index design frames
type Renderer struct {
	pal       palette
	w         float64
	credit    string
	creditURL string
}

func newRenderer(cfg config.Config, theme config.Theme) *Renderer {
	return &Renderer{
		pal: palette{
			bg:              theme.Color("bg"),
			panel:           theme.Color("panel"),
			panelAlt:        theme.Color("panel_alt"),
			outline:         theme.Color("outline"),
			text:            theme.Color("text"),
			muted:           theme.Color("muted"),
			green:           theme.Color("green"),
			red:             theme.Color("red"),
			amber:           theme.Color("amber"),
			blue:            theme.Color("blue"),
			badge:           theme.Color("badge"),
			meterTrack:      theme.Color("meter_track"),
			calmArrow:       theme.Color("calm_arrow"),
			iconBg:          theme.Color("icon_bg"),
			iconTrack:       theme.Color("icon_track"),
			iconTrackBorder: theme.Color("icon_track_outline"),
		},
		w:         float64(cfg.Width),
		credit:    theme.Credit,
		creditURL: theme.CreditURL,
	}
}

// Render draws one frame
func (r *Renderer) Render(c *canvas.Canvas, pos timeline.Position) error {
	st := Resolve(pos.Scene, pos.Local)
	c.Fill(r.pal.bg)

	var err error
	switch st.Mode {
	case ModeSetup:
		r.setup(c)
	case ModeTraffic:
		r.traffic(c, st)
	case ModeMisconception:
		r.misconception(c, st)
	case ModeFactors:
		r.factors(c, st)
	default:
		err = r.optimized(c, st)
	}

	c.Credit(r.credit, fontBody, r.pal.muted, 24, 18)
	return err
}

// pipeline draws the five nodes joined by arrows; alarm rings nodes by key
func (r *Renderer) pipeline(c *canvas.Canvas, arrow color.RGBA, width float64, alarm map[string]float64) {
	for i := 0; i < len(nodes)-1; i++ {
		from := canvas.Pt(nodes[i].x+nodeW/2, nodeY)
		to := canvas.Pt(nodes[i+1].x-nodeW/2, nodeY)
		c.Arrow(from, to, width, 16, arrow)
	}
	for _, n := range nodes {
		r.node(c, n, alarm[n.key])
	}
}

func (r *Renderer) node(c *canvas.Canvas, n node, alarm float64) {
	box := canvas.R(n.x-nodeW/2, nodeY-nodeH/2, nodeW, nodeH)
	c.RoundRect(box, 22, r.pal.panelAlt, r.pal.green, 3)
	if alarm > 0 {
		c.StrokeRoundRect(box.Inset(-6), 24, 2+8*alarm, canvas.Alpha(r.pal.red, uint8(80+150*alarm)))
	}

	st := fontBody
	if w, _ := c.Measure(n.label, st); w > nodeW-24 {
		st = fontSmall
	}
	c.TextCentered(n.x, nodeY, n.label, st, r.pal.text)
}

func (r *Renderer) title(c *canvas.Canvas, text string) {
	c.TextCentered(r.w/2, 90, text, fontTitle, r.pal.text)
}

func (r *Renderer) caption(c *canvas.Canvas, text string) {
	c.TextCentered(r.w/2, 660, text, fontBody, r.pal.muted)
}

func (r *Renderer) badge(c *canvas.Canvas, x, y float64, text string, border color.RGBA) {
	c.Badge(x, y, text, fontBadge, r.pal.text, r.pal.badge, border)
}

func (r *Renderer) popup(c *canvas.Canvas, x, y float64, text string, border color.RGBA, alpha float64) {
	a := uint8(255 * alpha)
	tw, th := c.Measure(text, fontBody)
	c.RoundRect(canvas.R(x, y, tw+28, th+18), 16, canvas.Alpha(r.pal.badge, a), canvas.Alpha(border, a), 2)
	c.Text(x+14, y+8, text, fontBody, canvas.Alpha(r.pal.text, a))
}

func (r *Renderer) meter(c *canvas.Canvas, box canvas.Rect, label string, value float64, fill color.RGBA) {
	c.RoundRect(box, 14, r.pal.badge, r.pal.outline, 2)
	c.Text(box.X+14, box.Y+10, label, fontSmall, r.pal.muted)
	bar := canvas.R(box.X+14, box.Y+46, box.W-28, box.H-62)
	c.Meter(bar, value, r.pal.meterTrack, r.pal.outline, fill)
}

func (r *Renderer) setup(c *canvas.Canvas) {
	r.title(c, "Kafka Indexing: What Looks Fast… Until Production")
	c.TextCentered(r.w/2, 140, "App → Kafka → Consumer → Elasticsearch → Dashboards", fontBody, r.pal.muted)
	r.pipeline(c, r.pal.green, 6, nil)
	r.badge(c, 70, 580, "confidence: high", r.pal.green)
}

func (r *Renderer) traffic(c *canvas.Canvas, st State) {
	r.title(c, "Traffic Grows. The Cluster Starts Screaming.")

	arrow := canvas.Blend(r.pal.green, r.pal.amber, st.Traffic)
	alarm := st.Pulse * st.Traffic
	r.pipeline(c, arrow, st.ArrowWidth, map[string]float64{"kafka": alarm, "es": alarm})

	fill := r.pal.amber
	if st.Heap >= 0.8 {
		fill = r.pal.red
	}
	r.meter(c, canvas.R(40, 420, 260, 170), "Heap pressure", st.Heap, fill)

	if st.Popups > 0 {
		r.popup(c, 760, 520, "Write Rejections", r.pal.red, st.Popups)
		r.popup(c, 760, 570, "Indexing Slowdown", r.pal.red, st.Popups)
		r.popup(c, 760, 620, "Dashboards Lagging", r.pal.amber, st.Popups)
	}
}

func (r *Renderer) misconception(c *canvas.Canvas, st State) {
	r.title(c, "The Most Common (Wrong) Reaction")
	r.pipeline(c, r.pal.calmArrow, 6, nil)

	bubble := canvas.R(260, 400, 760, 170)
	c.RoundRect(bubble, 28, r.pal.panel, r.pal.outline, 2)
	tail := []canvas.Point{
		{X: bubble.X + 120, Y: bubble.Y + bubble.H - 1},
		{X: bubble.X + 160, Y: bubble.Y + bubble.H - 1},
		{X: bubble.X + 145, Y: bubble.Y + bubble.H + 28},
	}
	c.Polygon(tail, r.pal.panel)

	thought := "“We need bigger machines!”"
	cx := bubble.X + bubble.W/2
	c.TextCentered(cx, bubble.Y+60, thought, fontH2, r.pal.text)

	tw, _ := c.Measure(thought, fontH2)
	x1, y1 := bubble.X+(bubble.W-tw)/2, bubble.Y+60
	c.Line(canvas.Pt(x1, y1), canvas.Pt(x1+tw*st.Strike, y1-22*st.Strike), 10, r.pal.red)

	if st.Reveal >= 0 {
		y := bubble.Y + 118 + (1-st.Reveal)*25
		c.TextCentered(cx, y, "Index design is the real culprit.", fontH2, r.pal.green)
	}

	r.caption(c, "Hardware helps sometimes — but bad index settings can bottleneck writes permanently.")
}

type factorCard struct {
	title  string
	body   string
	icon   func(r *Renderer, c *canvas.Canvas, x, y, t float64)
	accent func(p palette) color.RGBA
}

var factorCards = [Factors]factorCard{
	{"Shards", "Too many shards → more overhead, more heap pressure.", (*Renderer).iconShards, func(p palette) color.RGBA { return p.blue }},
	{"Refresh Interval", "Refreshing too often steals cycles from ingestion.", (*Renderer).iconRefresh, func(p palette) color.RGBA { return p.amber }},
	{"Replicas", "Replicas multiply write work during heavy ingestion.", (*Renderer).iconReplicas, func(p palette) color.RGBA { return p.red }},
	{"ILM", "No lifecycle strategy → old indices pile up and metadata grows.", (*Renderer).iconILM, func(p palette) color.RGBA { return p.blue }},
}

func (r *Renderer) factors(c *canvas.Canvas, st State) {
	r.title(c, "The 4 Index Settings That Usually Break Writes")

	const x0, y0 = 80.0, 160.0
	const gapX, gapY = 30.0, 26.0
	const cw, ch = 560.0, 130.0

	for i, card := range factorCards {
		box := canvas.R(x0+float64(i%2)*(cw+gapX), y0+float64(i/2)*(ch+gapY), cw, ch)
		accent := card.accent(r.pal)

		c.RoundRect(box, 22, r.pal.panel, r.pal.outline, 2)
		c.FillRoundRect(canvas.R(box.X, box.Y, 10, box.H), 5, accent)

		progress := 0.0
		if i == st.Active {
			progress = st.Factor
		}
		card.icon(r, c, box.X+20, box.Y+20, progress)

		tx, ty := box.X+190, box.Y+22
		c.Text(tx, ty, card.title, fontH2, r.pal.text)
		_, th := c.Measure(card.title, fontH2)
		c.TextBlock(tx, ty+th+8, card.body, fontBody, r.pal.muted, box.X+box.W-tx-20, 6, 2)

		if i == st.Active {
			c.StrokeRoundRect(box.Inset(-2), 24, 2+6*st.Emphasis, accent)
		}
	}

	r.caption(c, "Fix these, and your write throughput usually jumps without any hardware changes.")
}

func (r *Renderer) optimized(c *canvas.Canvas, st State) error {
	r.title(c, "Optimized Setup (Write-Friendly)")
	r.pipeline(c, r.pal.green, 7, nil)

	panel := canvas.R(720, 430, 520, 240)
	c.RoundRect(panel, 18, r.pal.panel, r.pal.outline, 2)
	c.FillRoundRect(canvas.R(panel.X, panel.Y, 10, panel.H), 5, r.pal.green)
	c.Text(panel.X+30, panel.Y+18, "Ingestion Tuning", fontH2, r.pal.text)
	_, th := c.Measure("Ingestion Tuning", fontH2)
	body := "• Fewer shards (right-sized)\n• Refresh interval: 30–60s\n• Replicas = 0 during ingestion\n• ILM: Hot → Warm → Cold"
	c.TextBlock(panel.X+30, panel.Y+18+th+10, body, fontBody, r.pal.muted, panel.W-66, 6, 0)

	track := canvas.R(80, 500, 560, 130)
	c.RoundRect(track, 22, r.pal.panel, r.pal.outline, 2)
	c.Text(track.X+18, track.Y+14, "ILM Phases", fontH2, r.pal.text)

	phases := []struct {
		name string
		col  color.RGBA
	}{{"Hot", r.pal.red}, {"Warm", r.pal.amber}, {"Cold", r.pal.blue}}

	const pillW, pillGap = 160.0, 20.0
	for i, ph := range phases {
		pill := canvas.R(track.X+18+float64(i)*(pillW+pillGap), track.Y+70, pillW, 44)
		c.RoundRect(pill, 18, color.White, ph.col, 3)
		center := pill.Center()
		c.TextCentered(center.X, center.Y, ph.name, fontBody, r.pal.text)
	}

	// Точка идёт по фазам слева направо
	span := 2*(pillW+pillGap) + pillW - 36
	dot := track.X + 18 + 18 + span*st.PhaseShift
	c.FillCircle(canvas.Pt(dot, track.Y+70+44+6), 6, phases[st.Phase].col)

	r.badge(c, 80, 170, "Outcome: stable writes, fresher dashboards", r.pal.green)

	if r.creditURL != "" {
		return c.QR(1120, 170, 110, r.creditURL)
	}
	return nil
}
