package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Field.Count != 100 {
		t.Errorf("expected 100 particles, got %d", cfg.Field.Count)
	}
	if cfg.Field.ConnectionDistance != 120 {
		t.Errorf("expected connection distance 120, got %g", cfg.Field.ConnectionDistance)
	}
	if len(cfg.Derived.Palette) != len(cfg.Field.Palette) {
		t.Errorf("expected %d palette colours, got %d", len(cfg.Field.Palette), len(cfg.Derived.Palette))
	}
	if cfg.Derived.ConnectionColor != (color.RGBA{R: 0, G: 255, B: 255, A: 255}) {
		t.Errorf("unexpected connection colour %v", cfg.Derived.ConnectionColor)
	}
	if cfg.Derived.DT <= 0 {
		t.Errorf("expected positive DT, got %g", cfg.Derived.DT)
	}
	if !strings.Contains(cfg.Rain.Charset, `\`) || !strings.Contains(cfg.Rain.Charset, `"`) {
		t.Errorf("rain charset lost escaped characters: %q", cfg.Rain.Charset)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "field:\n  count: 42\n  connection_distance: 150\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Field.Count != 42 {
		t.Errorf("expected overridden count 42, got %d", cfg.Field.Count)
	}
	if cfg.Field.ConnectionDistance != 150 {
		t.Errorf("expected overridden distance 150, got %g", cfg.Field.ConnectionDistance)
	}
	// Untouched fields keep their defaults
	if cfg.Field.SpeedFactor != 0.5 {
		t.Errorf("expected default speed factor 0.5, got %g", cfg.Field.SpeedFactor)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative count", "field:\n  count: -1\n"},
		{"zero distance", "field:\n  connection_distance: 0\n"},
		{"inverted opacity", "field:\n  opacity_range: {min: 0.9, max: 0.1}\n"},
		{"bad palette colour", "field:\n  palette: [\"#zzzzzz\"]\n"},
		{"zero screen", "screen:\n  width: 0\n"},
		{"empty phrase", "typing:\n  phrases: [\"\"]\n"},
	}

	dir := t.TempDir()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHuePalette(t *testing.T) {
	p := HuePalette(180, 240, 4)
	if len(p) != 4 {
		t.Fatalf("expected 4 colours, got %d", len(p))
	}
	// Hue 180 at full saturation is cyan
	if p[0].R > 5 || p[0].G < 250 || p[0].B < 250 {
		t.Errorf("expected cyan at hue 180, got %v", p[0])
	}
	// Hue 240 is blue
	if p[3].B < 250 || p[3].R > 5 || p[3].G > 5 {
		t.Errorf("expected blue at hue 240, got %v", p[3])
	}
	if HuePalette(0, 360, 0) != nil {
		t.Error("expected nil palette for zero steps")
	}
}

func TestParseColorAlpha(t *testing.T) {
	c, err := ParseColor("#001428", 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if c.R != 0 || c.G != 20 || c.B != 40 {
		t.Errorf("unexpected rgb %v", c)
	}
	if c.A != 26 {
		t.Errorf("expected alpha 26, got %d", c.A)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if reloaded.Field.Count != cfg.Field.Count || reloaded.Rain.Charset != cfg.Rain.Charset {
		t.Error("snapshot did not preserve values")
	}
}
