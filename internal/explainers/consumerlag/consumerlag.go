// Package consumerlag renders "Consumer Lag Is a Symptom, Not the Problem":
// one Kafka pipeline pushed through five failure scenarios.
package consumerlag

import (
	"image"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/explainers/pipeline"
	"github.com/ivlev/scene2video/internal/interp"
	"github.com/ivlev/scene2video/internal/timeline"
)

const Name = "consumer-lag"

// Scene modes
const (
	ModeTitle    = "title"
	ModeScenario = "scenario"
	ModeClosing  = "closing"
)

var statusText = map[pipeline.Scenario]string{
	pipeline.Baseline:       "Balanced production & consumption.",
	pipeline.Peak:           "Peak load. Lag rises because downstream throughput is capped.",
	pipeline.HotPartition:   "Hot partition. One consumer bottlenecks; more consumers do not help.",
	pipeline.SlowDownstream: "Downstream slow. Elasticsearch throttles; consumers wait.",
	pipeline.HeavyLogic:     "Heavy transforms & sync calls reduce throughput.",
	pipeline.RetryStorm:     "Retry storm. Duplicates amplify load; lag is a side effect.",
}

type Explainer struct{}

func New() *Explainer {
	return &Explainer{}
}

func (e *Explainer) Name() string  { return Name }
func (e *Explainer) Title() string { return "Consumer Lag Is a Symptom — Not the Problem" }

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
	scenario := func(name string, dur float64, kind pipeline.Scenario, lag float64) timeline.Scene {
		return timeline.Scene{
			Name:     name,
			Duration: dur,
			Mode:     ModeScenario,
			Kind:     string(kind),
			Params:   map[string]float64{"lag_target": lag},
		}
	}
	return []timeline.Scene{
		{Name: "Title", Duration: 2, Mode: ModeTitle},
		scenario("Normal", 4, pipeline.Baseline, 0),
		scenario("Peak", 5, pipeline.Peak, 120_000),
		scenario("Hot Partition", 5, pipeline.HotPartition, 500_000),
		scenario("Slow Downstream", 5, pipeline.SlowDownstream, 220_000),
		scenario("Heavy Logic", 5, pipeline.HeavyLogic, 300_000),
		scenario("Retry Storm", 5, pipeline.RetryStorm, 800_000),
		{Name: "Closing", Duration: 2, Mode: ModeClosing},
	}
}

func (e *Explainer) NewRenderer(cfg config.Config, theme config.Theme) (explainers.Renderer, error) {
	pal := pipeline.NewPalette(theme)
	return &Renderer{
		paint:     pipeline.NewPainter(pal),
		layout:    pipeline.DefaultLayout,
		bg:        canvas.VerticalGradient(cfg.Width, cfg.Height, pal.BgTop, pal.BgBottom),
		credit:    theme.Credit,
		creditURL: theme.CreditURL,
	}, nil
}

// State is the resolved content of a frame
type State struct {
	Mode     string
	Pipeline pipeline.State
	Status   string
}

// Resolve computes the frame state for a scene at local time t
func Resolve(s timeline.Scene, t float64) State {
	st := State{Mode: s.Mode}
	if s.Mode != ModeScenario {
		return st
	}

	sc := pipeline.Scenario(s.Kind)
	st.Pipeline = pipeline.Resolve(sc, interp.Ratio(t, s.Duration), s.Param("lag_target", 0))
	st.Status = statusText[sc]
	return st
}

// Renderer draws consumer-lag frames
type Renderer struct {
	paint     pipeline.Painter
	layout    pipeline.Layout
	bg        *image.RGBA
	credit    string
	creditURL string
}

var (
	fontTitle = canvas.Regular(38)
	fontSub   = canvas.Regular(22)
	fontSmall = canvas.Regular(18)
)

func (r *Renderer) Render(c *canvas.Canvas, pos timeline.Position) error {
	pal := r.paint.Pal
	st := Resolve(pos.Scene, pos.Local)

	c.Paste(r.bg)
	c.Text(40, 40, "Consumer Lag Is a Symptom — Not the Problem", fontTitle, pal.Text)
	c.Text(40, 88, "Kafka → Consumers → Elasticsearch → Dashboards", fontSub, pal.Muted)

	r.paint.Flow(c, r.layout, "Source", pipeline.ArrowPulse(pos.Time))

	switch st.Mode {
	case ModeTitle:
		c.Text(40, 130, "Lag is your most honest signal. Find the bottleneck; don’t just add consumers.", fontSub, pal.Text)
	case ModeClosing:
		c.Text(40, 130, "Junior react to lag. Senior investigate lag.", fontSub, pal.Text)
		if r.creditURL != "" {
			if err := c.QR(40, 560, 120, r.creditURL); err != nil {
				return err
			}
		}
	default:
		r.paint.Details(c, r.layout, st.Pipeline)
		sev := st.Pipeline.Severity
		c.Text(40, 180, "Scene: "+pos.Scene.Name, fontSub, pal.Text)
		c.Text(40, 204, "Status: "+sev.String()+" — "+st.Status, fontSub, pal.Severity(sev))
		c.Text(40, 232, "Lag shows WHERE the pain is, not WHAT to fix.", fontSmall, pal.Muted)
	}

	c.Credit(r.credit, fontSmall, pal.Muted, 20, 16)
	return nil
}
