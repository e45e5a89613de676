package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/systems"
	"github.com/pthm-cable/cyberfield/telemetry"
	"github.com/pthm-cable/cyberfield/ui"
)

var perfPhases = telemetry.Phases()

// Draw renders the frame and records it in telemetry.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	g.canvas.ResetDrawCalls()
	drawCalls := 0

	// The rain layer keeps its trails, so it only advances on stepped frames
	// and must be drawn into outside BeginDrawing
	if g.rainLayer != nil && g.ticked && g.layers.IsEnabled(ui.LayerRain) {
		g.rainLayer.ResetDrawCalls()
		g.rainLayer.Update(g.rain)
		drawCalls += g.rainLayer.DrawCalls()
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if g.rainLayer != nil && g.layers.IsEnabled(ui.LayerRain) {
		g.rainLayer.Draw()
	}
	g.renderScene(g.canvas)
	drawCalls += g.canvas.DrawCalls()

	g.drawHUDLayers()

	rl.EndDrawing()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.endFrame(drawCalls)
	g.perfCollector.EndTick()
}

// renderScene draws the enabled scene layers in order: field, icons, sentinel.
// Digital rain is drawn separately because it needs a persistent surface.
func (g *Game) renderScene(c systems.Canvas) {
	if g.layers.IsEnabled(ui.LayerField) {
		g.field.Render(c)
	}
	if g.layers.IsEnabled(ui.LayerIcons) {
		g.icons.Render(c)
	}
	if g.layers.IsEnabled(ui.LayerSentinel) {
		g.figure.Draw(c, g.sentinel.State())
	}
}
