package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/systems"
)

func TestLayerRegistryDefaults(t *testing.T) {
	reg := NewLayerRegistry()
	for _, id := range []LayerID{LayerField, LayerRain, LayerIcons, LayerSentinel, LayerTyping} {
		if !reg.IsEnabled(id) {
			t.Errorf("expected %s enabled by default", id)
		}
	}
	if reg.IsEnabled(LayerStats) || reg.IsEnabled(LayerInspector) {
		t.Error("expected HUD panels off by default")
	}
	if cats := reg.Categories(); len(cats) != 2 || cats[0] != "scene" || cats[1] != "hud" {
		t.Errorf("unexpected categories %v", cats)
	}
}

func TestLayerRegistryExclusive(t *testing.T) {
	reg := NewLayerRegistry()
	reg.Toggle(LayerStats)
	if !reg.IsEnabled(LayerStats) {
		t.Fatal("expected stats enabled")
	}
	reg.Toggle(LayerPerf)
	if reg.IsEnabled(LayerStats) || !reg.IsEnabled(LayerPerf) {
		t.Error("expected perf to replace stats")
	}
	if reg.Toggle("missing") {
		t.Error("unknown layer toggled on")
	}
}

func TestLayerRegistryKeys(t *testing.T) {
	reg := NewLayerRegistry()
	id, on, ok := reg.HandleKeyPress(rl.KeyTwo)
	if !ok || id != LayerRain || on {
		t.Errorf("expected rain toggled off, got %s %v %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key handled")
	}
}

func TestCursorVisible(t *testing.T) {
	tests := []struct {
		elapsed float64
		want    bool
	}{
		{0, true},
		{0.49, true},
		{0.5, false},
		{0.99, false},
		{1.2, true},
		{7.75, false},
	}
	for _, tt := range tests {
		if got := CursorVisible(tt.elapsed); got != tt.want {
			t.Errorf("CursorVisible(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestSectionHeightSkipsHidden(t *testing.T) {
	r := NewRenderer()
	withRain := StatsData{RainColumns: 64}
	without := StatsData{}
	if r.SectionHeight(statsSections[1], withRain)-r.SectionHeight(statsSections[1], without) != r.Theme.LineHeight {
		t.Error("expected hidden rain row to take no height")
	}
	if h := r.SectionHeight(inspectorSection, InspectorData{Particle: systems.Particle{Opacity: 0.5}}); h <= 0 {
		t.Errorf("unexpected inspector height %d", h)
	}
}
