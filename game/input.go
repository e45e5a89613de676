package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/systems"
	"github.com/pthm-cable/cyberfield/telemetry"
)

// controlsLegend is shown at the bottom of the screen.
const controlsLegend = "[Space] pause  [R] reset  [H] home  [Tab] layers  [F5] snapshot  [L] log  [F11] fullscreen"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.SetPaused(!g.paused)
		Logf("paused=%v at tick %d", g.paused, g.tick)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
		Logf("field reset at tick %d", g.tick)
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.SetHomeActive(!g.homeActive)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot(nil)
	}

	if rl.IsKeyPressed(rl.KeyL) {
		g.logFieldState()
	}

	g.handleLayerKeys()
	g.handleMouse()
}

// handleMouse feeds the cursor to the sentinel and picks particles.
func (g *Game) handleMouse() {
	mp := rl.GetMousePosition()
	g.Track(systems.Vec2{X: float64(mp.X), Y: float64(mp.Y)})

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.Click()
	}
	if rl.GetMouseWheelMove() != 0 {
		g.Scroll()
	}
}

// Track moves the cursor the sentinel's eyes follow.
func (g *Game) Track(mouse systems.Vec2) {
	g.mouse = mouse
	g.sentinel.Track(mouse)
}

// Click reacts to a click at the tracked cursor position.
func (g *Game) Click() {
	g.sentinel.Click()
	g.collector.Record(telemetry.EventClick)
	g.selectAt(g.mouse)
}

// Scroll flashes the sentinel's antenna.
func (g *Game) Scroll() {
	g.sentinel.Scroll()
	g.collector.Record(telemetry.EventScroll)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
}

// Resize propagates new surface dimensions to every system and renderer.
// Only stored bounds change; particles are clamped, not regenerated.
func (g *Game) Resize(width, height int) {
	w, h := float64(width), float64(height)
	if w == g.width && h == g.height {
		return
	}
	b := systems.Bounds{Width: w, Height: h}
	if !b.Valid() {
		slog.Warn("ignoring resize", "width", width, "height", height)
		return
	}
	if err := g.field.Resize(b); err != nil {
		slog.Warn("ignoring resize", "width", width, "height", height, "error", err)
		return
	}
	g.width, g.height = w, h

	g.rain.Resize(b)
	g.icons.Resize(b)
	g.sentinel.Place(b)

	if g.canvas != nil {
		g.canvas.Resize(int32(width), int32(height))
	}
	if g.rainLayer != nil {
		g.rainLayer.Resize(int32(width), int32(height))
	}
	if g.stats != nil {
		g.layoutPanels()
	}
	g.collector.Record(telemetry.EventResize)
}

// layoutPanels anchors the HUD panels to the current screen edges.
func (g *Game) layoutPanels() {
	x := int32(g.width) - panelWidth - panelMargin
	g.stats.SetPosition(x, panelMargin)
	g.perfPanel.SetPosition(x, panelMargin)
	g.controls.SetPosition(panelMargin, controlsTop)
}
