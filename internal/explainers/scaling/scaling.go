// Package scaling renders "What We Thought Would Change vs What Actually Did":
// an unbuffered pipeline collapsing under a spike, then the Kafka-buffered
// redesign going through the same failure scenarios.
package scaling

import (
	"fmt"
	"image"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/explainers/pipeline"
	"github.com/ivlev/scene2video/internal/timeline"
)

const Name = "scaling"

// Vertical offsets of the three caption lines
const (
	sceneY   = 160
	statusY  = 200
	taglineY = 240
)

// BeforeLayout positions the unbuffered pipeline
type BeforeLayout struct {
	App, Logstash, ES, Dash canvas.Rect
}

var DefaultBeforeLayout = BeforeLayout{
	App:      canvas.R(80, 315, 220, 90),
	Logstash: canvas.R(420, 300, 260, 120),
	ES:       canvas.R(780, 300, 220, 120),
	Dash:     canvas.R(760, 470, 240, 100),
}

type Explainer struct{}

func New() *Explainer {
	return &Explainer{}
}

func (e *Explainer) Name() string  { return Name }
func (e *Explainer) Title() string { return "What We Thought Would Change vs What Actually Did" }

func (e *Explainer) Defaults() config.Defaults {
	return config.Defaults{Width: 1280, Height: 720, FPS: 20, FallbackFPS: 12}
}

func (e *Explainer) Theme() config.Theme {
	return config.Theme{
		Colors: pipeline.Colors(),
		Credit: "Credits: Chaitanya Pothuraju",
	}
}

func (e *Explainer) Scenes() []timeline.Scene {
	after := func(name string, dur float64, kind pipeline.Scenario, lag float64) timeline.Scene {
		return timeline.Scene{
			Name: name, Duration: dur, Mode: ModeAfter, Kind: string(kind),
			Params: map[string]float64{"lag_target": lag},
		}
	}
	return []timeline.Scene{
		{Name: "Title", Duration: 2, Mode: ModeTitle},
		{Name: "Before — 10K/day", Duration: 4, Mode: ModeBefore, Kind: KindSteady,
			Params: map[string]float64{"events": 10_000}},
		{Name: "Before — Spike hits", Duration: 5, Mode: ModeBefore, Kind: KindSpike,
			Params: map[string]float64{"events": 200_000}},
		{Name: "Shift — Insert Kafka buffer", Duration: 3, Mode: ModeTransition},
		after("After — Baseline", 4, pipeline.Baseline, 0),
		after("After — Peak load", 5, pipeline.Peak, 120_000),
		after("After — Hot Partition", 5, pipeline.HotPartition, 500_000),
		after("After — Downstream Slow", 5, pipeline.SlowDownstream, 220_000),
		after("After — Retry Storm", 5, pipeline.RetryStorm, 800_000),
		{Name: "Observability — What we debug", Duration: 4, Mode: ModeObs},
		{Name: "Closing", Duration: 2, Mode: ModeClosing},
	}
}

func (e *Explainer) NewRenderer(cfg config.Config, theme config.Theme) (explainers.Renderer, error) {
	pal := pipeline.NewPalette(theme)
	paint := pipeline.NewPainter(pal)
	paint.Title = canvas.Bold(22)

	return &Renderer{
		paint:     paint,
		after:     pipeline.DefaultLayout,
		before:    DefaultBeforeLayout,
		bg:        canvas.VerticalGradient(cfg.Width, cfg.Height, pal.BgTop, pal.BgBottom),
		credit:    theme.Credit,
		creditURL: theme.CreditURL,
	}, nil
}

// Renderer draws scaling frames
type Renderer struct {
	paint     pipeline.Painter
	after     pipeline.Layout
	before    BeforeLayout
	bg        *image.RGBA
	credit    string
	creditURL string
}

var (
	fontTitle = canvas.Bold(31)
	fontSub   = canvas.Bold(22)
	fontSmall = canvas.Regular(18)
)

func (r *Renderer) Render(c *canvas.Canvas, pos timeline.Position) error {
	pal := r.paint.Pal
	st := Resolve(pos.Scene, pos.Local)
	pulse := pipeline.ArrowPulse(pos.Time)

	c.Paste(r.bg)
	c.Text(40, 40, "What We Thought Would Change vs What Actually Did", fontTitle, pal.Text)
	c.Text(40, 105, "Scaling observability pipelines", fontSub, pal.Muted)

	switch st.Mode {
	case ModeTitle:
		c.Text(40, sceneY, "Scaling exposes assumptions. Search engines are not buffers.", fontSmall, pal.Muted)
		c.Text(40, 210, "Before: App → Logstash → Elasticsearch → Dashboards", fontSub, pal.Text)
		c.Text(40, 250, "After:   App → Kafka → Consumers → Elasticsearch → Dashboards", fontSub, pal.Text)

	case ModeBefore:
		r.drawBefore(c, st.Before, pulse)
		r.captions(c, "Scene: "+pos.Scene.Name, st.Before.Severity, st.Status, "Search engines are not buffers.")

	case ModeTransition:
		r.paint.Flow(c, r.after, "App", pulse)
		c.Text(40, sceneY, "The shift that saves systems:", fontSub, pal.Text)
		c.Text(40, statusY, "Insert a durable queue (Kafka) to absorb spikes.", fontSmall, pal.Muted)
		c.Text(40, taglineY, "Let Elasticsearch focus on search. Failures stop cascading.", fontSmall, pal.Muted)

	case ModeAfter:
		r.paint.Flow(c, r.after, "App", pulse)
		r.paint.Details(c, r.after, st.After)
		r.captions(c, "Scene: "+pos.Scene.Name, st.After.Severity, st.Status, "Backpressure keeps systems predictable.")

	case ModeObs:
		r.paint.Box(c, r.after.Kafka, "Kafka Topic", pal.Blue)
		r.paint.Partitions(c, r.after.Kafka, st.After)
		r.paint.Box(c, r.after.Consumers, fmt.Sprintf("Consumers (%d)", pipeline.Partitions), pal.Purple)
		r.paint.Consumers(c, r.after.Consumers, st.After)
		r.paint.Box(c, r.after.ES, "Elasticsearch", pal.Amber)
		c.Text(40, sceneY, "Observability beats raw throughput:", fontSub, pal.Text)
		c.Text(40, statusY, "Consumer lag • Ingestion vs indexing • Queue depth • P95/P99 latencies", fontSmall, pal.Muted)
		c.Text(40, taglineY, "Dashboards become survival tools.", fontSmall, pal.Muted)

	default:
		c.Text(40, sceneY, "Scaling isn't about bigger machines or more threads.", fontSub, pal.Text)
		c.Text(40, statusY, "Design for failure: buffer ingestion, apply backpressure, handle retries idempotently.", fontSmall, pal.Muted)
		c.Text(40, taglineY, "At 10K/day the happy path dominates; at 10M/day, the failure path is the system.", fontSmall, pal.Muted)
		if r.creditURL != "" {
			if err := c.QR(40, 320, 140, r.creditURL); err != nil {
				return err
			}
		}
	}

	c.Credit(r.credit, fontSmall, pal.Muted, 20, 16)
	return nil
}

func (r *Renderer) captions(c *canvas.Canvas, scene string, sev pipeline.Severity, status, tagline string) {
	pal := r.paint.Pal
	c.Text(40, sceneY, scene, fontSub, pal.Text)
	c.Text(40, statusY, "Status: "+sev.String()+" — "+status, fontSub, pal.Severity(sev))
	c.Text(40, taglineY, tagline, fontSmall, pal.Muted)
}

func (r *Renderer) drawBefore(c *canvas.Canvas, st BeforeState, pulse float64) {
	pal := r.paint.Pal
	l := r.before

	r.paint.Box(c, l.App, "App", pal.Teal)
	r.paint.Box(c, l.Logstash, "Logstash", pal.Blue)
	r.paint.Box(c, l.ES, "Elasticsearch", pal.Amber)
	r.paint.Box(c, l.Dash, "Dashboards", pal.Cyan)

	r.paint.Link(c, l.App, l.Logstash, pulse)
	r.paint.Link(c, l.Logstash, l.ES, pulse)
	curved := r.paint
	curved.CurveBend = 60
	curved.CurvedLink(c, l.ES, l.Dash)

	c.Text(l.App.X+12, l.App.Y+58, "events/day: "+pipeline.Thousands(st.Events), fontSmall, pal.Muted)
	r.paint.ESMeter(c, l.ES, st.ESMeter)
	r.paint.Dashboards(c, l.Dash, st.DashStale, float64(st.DashDelay))

	c.Text(l.Logstash.X+12, l.Logstash.Y+50, fmt.Sprintf("GC pause: %dms", int(st.GCPause)), fontSmall, pal.Muted)
	c.Text(l.Logstash.X+120, l.Logstash.Y+90, fmt.Sprintf("Retry rate: %d%%", int(st.RetryRate*100)), fontSmall, pal.Muted)
}
