package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/ui"
)

// handleLayerKeys checks for layer toggle key presses.
func (g *Game) handleLayerKeys() {
	for _, desc := range g.layers.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.ToggleLayer(desc.ID)
		}
	}
}

// ToggleLayer switches a layer and returns its new state.
func (g *Game) ToggleLayer(id ui.LayerID) bool {
	on := g.layers.Toggle(id)
	if id == ui.LayerInspector && !on {
		g.selected = -1
	}
	return on
}

// drawHUDLayers renders the enabled HUD layers on top of the scene.
func (g *Game) drawHUDLayers() {
	screenW, screenH := int32(g.width), int32(g.height)

	if g.layers.IsEnabled(ui.LayerTyping) && g.typing != nil {
		g.hud.DrawTyping(ui.HUDData{
			Typed:        g.typing.Text(),
			Elapsed:      rl.GetTime(),
			ScreenWidth:  screenW,
			ScreenHeight: screenH,
		})
	}

	g.hud.DrawStatus(ui.HUDData{Paused: g.paused, HomeActive: g.homeActive})
	g.hud.DrawControls(screenH, controlsLegend)

	switch {
	case g.layers.IsEnabled(ui.LayerStats):
		g.stats.Draw(g.statsData())
	case g.layers.IsEnabled(ui.LayerPerf):
		g.perfPanel.Draw(g.perfCollector.Stats(), perfPhases)
	}

	if g.layers.IsEnabled(ui.LayerInspector) {
		if data, ok := g.inspected(); ok {
			g.inspector.Draw(data, screenW, screenH)
		}
	}

	g.controls.Draw(g.layers)
}

// statsData gathers the stats panel readout.
func (g *Game) statsData() ui.StatsData {
	links := g.field.Connections()
	var alpha float64
	for _, c := range links {
		alpha += c.Alpha
	}
	if len(links) > 0 {
		alpha /= float64(len(links))
	}
	return ui.StatsData{
		Particles:   g.field.Count(),
		Connections: len(links),
		AvgAlpha:    alpha,
		Icons:       g.icons.Counts().Total(),
		Emblems:     g.icons.Emblems(),
		RainColumns: g.rain.Columns(),
		DrawCalls:   g.lastDrawCalls,
		Tick:        g.tick,
		FPS:         rl.GetFPS(),
	}
}
