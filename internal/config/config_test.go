package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsApply(t *testing.T) {
	d := Defaults{Width: 1280, Height: 720, FPS: 15}

	cfg := d.Apply(Config{FPS: 30})
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("Expected 1280x720, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 {
		t.Errorf("Explicit FPS must win, got %d", cfg.FPS)
	}
	if cfg.FallbackFPS != 12 {
		t.Errorf("Expected fallback FPS 12, got %d", cfg.FallbackFPS)
	}

	if (Config{Fallback: "none"}).HasFallback() || !(Config{Fallback: "gif"}).HasFallback() {
		t.Error("HasFallback mismatch")
	}
}

func TestThemeColorAndMerge(t *testing.T) {
	base := Theme{
		Colors: map[string]string{"text": "#ebc8cf", "err": "#ff5a5f"},
		Credit: "Credits: someone",
	}

	if got := base.Color("err"); got != (color.RGBA{R: 255, G: 90, B: 95, A: 255}) {
		t.Errorf("Unexpected color: %v", got)
	}
	if got := base.Color("missing"); got != (color.RGBA{R: 255, B: 255, A: 255}) {
		t.Errorf("Missing color should be magenta, got %v", got)
	}

	merged := base.Merge(Theme{Colors: map[string]string{"err": "#000000"}, CreditURL: "https://example.com"})
	if merged.Color("err") != (color.RGBA{A: 255}) {
		t.Error("Override color not applied")
	}
	if merged.Credit != base.Credit || merged.CreditURL == "" {
		t.Errorf("Unexpected credits: %+v", merged)
	}
	if base.Colors["err"] != "#ff5a5f" {
		t.Error("Merge must not mutate the base theme")
	}
}

func TestReadTheme(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	os.WriteFile(good, []byte("colors:\n  teal: \"#00cfad\"\ncredit: \"Credits: me\"\n"), 0644)
	th, err := ReadTheme(good)
	if err != nil {
		t.Fatalf("ReadTheme failed: %v", err)
	}
	if th.Credit != "Credits: me" || th.Colors["teal"] != "#00cfad" {
		t.Errorf("Unexpected theme: %+v", th)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("colors:\n  teal: \"green\"\n"), 0644)
	if _, err := ReadTheme(bad); err == nil {
		t.Error("Expected error for malformed color")
	}
}
