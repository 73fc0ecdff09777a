package config

// Config describes one render run. It is built once in cmd and treated as
// read-only afterwards.
type Config struct {
	Video        string
	OutputDir    string
	Width        int
	Height       int
	FPS          int
	FallbackFPS  int
	Fallback     string // "gif" или "none"
	Workers      int
	VideoEncoder string
	Quality      int
	Seed         int64
	TimelinePath string
	ShowStats    bool
	Progress     bool
	BuildVersion string
}

// Defaults are the per-explainer render settings
type Defaults struct {
	Width       int
	Height      int
	FPS         int
	FallbackFPS int
}

// Apply fills zero fields of cfg from d and returns the result
func (d Defaults) Apply(cfg Config) Config {
	if cfg.Width <= 0 {
		cfg.Width = d.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = d.Height
	}
	if cfg.FPS <= 0 {
		cfg.FPS = d.FPS
	}
	if cfg.FallbackFPS <= 0 {
		cfg.FallbackFPS = d.FallbackFPS
	}
	if cfg.FallbackFPS <= 0 {
		cfg.FallbackFPS = 12
	}
	return cfg
}

// HasFallback reports whether a failed primary encode should be retried as an image sequence
func (c Config) HasFallback() bool {
	return c.Fallback != "" && c.Fallback != "none"
}
