// Field preview tool - live particle field with sliders for tuning.
//
// Usage: go run ./cmd/fieldpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/cyberfield/config"
	"github.com/pthm-cable/cyberfield/game"
	"github.com/pthm-cable/cyberfield/renderer"
	"github.com/pthm-cable/cyberfield/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	panelWidth   = 340
	previewWidth = windowWidth - panelWidth
)

// FieldParams holds the tunable field settings.
type FieldParams struct {
	Count              int
	ConnectionDistance float32
	OpacityScale       float32
	ConnectionWidth    float32
	SpeedFactor        float32
	Glow               float32
	Seed               int64
}

func paramsFrom(cfg *config.Config) FieldParams {
	f := cfg.Field
	return FieldParams{
		Count:              f.Count,
		ConnectionDistance: float32(f.ConnectionDistance),
		OpacityScale:       float32(f.ConnectionOpacityScale),
		ConnectionWidth:    float32(f.ConnectionWidth),
		SpeedFactor:        float32(f.SpeedFactor),
		Glow:               float32(f.Glow),
		Seed:               12345,
	}
}

// apply writes the params into a copy of the loaded config.
func (p FieldParams) apply(base *config.Config) *config.Config {
	cfg := *base
	cfg.Field.Count = p.Count
	cfg.Field.ConnectionDistance = float64(p.ConnectionDistance)
	cfg.Field.ConnectionOpacityScale = float64(p.OpacityScale)
	cfg.Field.ConnectionWidth = float64(p.ConnectionWidth)
	cfg.Field.SpeedFactor = float64(p.SpeedFactor)
	cfg.Field.Glow = float64(p.Glow)
	return &cfg
}

func (p FieldParams) yaml() string {
	return fmt.Sprintf(`field:
  count: %d
  connection_distance: %.0f
  connection_opacity_scale: %.2f
  connection_width: %.2f
  speed_factor: %.2f
  glow: %.1f`,
		p.Count, p.ConnectionDistance, p.OpacityScale, p.ConnectionWidth, p.SpeedFactor, p.Glow)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	base := config.Cfg()

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(base.Screen.TargetFPS))

	canvas := renderer.NewRaylibCanvas(previewWidth, windowHeight)
	defer canvas.Unload()

	bounds := systems.Bounds{Width: previewWidth, Height: windowHeight}
	params := paramsFrom(base)

	var field *systems.ParticleField
	var fieldErr error
	needsRegen := true
	paused := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			field, fieldErr = game.NewField(params.apply(base), bounds, params.Seed)
			needsRegen = false
		}
		if !paused {
			field.Tick()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		// Field preview
		rl.BeginScissorMode(0, 0, previewWidth, windowHeight)
		canvas.ResetDrawCalls()
		field.Render(canvas)
		rl.EndScissorMode()

		if fieldErr != nil {
			rl.DrawText(fieldErr.Error(), 15, windowHeight-50, 16, rl.Red)
		}
		rl.DrawText(fmt.Sprintf("Links: %d  Draws: %d  FPS: %d", len(field.Connections()), canvas.DrawCalls(), rl.GetFPS()),
			15, windowHeight-25, 16, rl.LightGray)

		// Control panel
		rl.DrawRectangle(previewWidth, 0, panelWidth, windowHeight, rl.RayWhite)
		panelX := float32(previewWidth + 15)
		panelY := float32(10)
		sliderWidth := float32(panelWidth - 100)

		rl.DrawText("Particle Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Count slider
		rl.DrawText("Count (0 disables the field)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"0", "400",
			float32(params.Count), 0, 400,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Count), int32(panelX+sliderWidth+10), int32(panelY+2), 16, rl.DarkGray)
		if int(newCount) != params.Count {
			params.Count = int(newCount)
			needsRegen = true
		}
		panelY += 35

		// Connection distance slider
		rl.DrawText("Connection distance (px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDistance := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"10", "300",
			params.ConnectionDistance, 10, 300,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.ConnectionDistance), int32(panelX+sliderWidth+10), int32(panelY+2), 16, rl.DarkGray)
		if newDistance != params.ConnectionDistance {
			params.ConnectionDistance = newDistance
			needsRegen = true
		}
		panelY += 35

		// Opacity scale slider
		rl.DrawText("Connection opacity scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"0", "1",
			params.OpacityScale, 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.OpacityScale), int32(panelX+sliderWidth+10), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.OpacityScale {
			params.OpacityScale = newScale
			needsRegen = true
		}
		panelY += 35

		// Connection width slider
		rl.DrawText("Connection width", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newWidth := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"0.1", "4",
			params.ConnectionWidth, 0.1, 4,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.ConnectionWidth), int32(panelX+sliderWidth+10), int32(panelY+2), 16, rl.DarkGray)
		if newWidth != params.ConnectionWidth {
			params.ConnectionWidth = newWidth
			needsRegen = true
		}
		panelY += 35

		// Speed slider
		rl.DrawText("Speed factor", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSpeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"0", "3",
			params.SpeedFactor, 0, 3,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.SpeedFactor), int32(panelX+sliderWidth+10), int32(panelY+2), 16, rl.DarkGray)
		if newSpeed != params.SpeedFactor {
			params.SpeedFactor = newSpeed
			needsRegen = true
		}
		panelY += 35

		// Glow slider
		rl.DrawText("Glow (halo radius multiplier)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newGlow := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"0", "8",
			params.Glow, 0, 8,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Glow), int32(panelX+sliderWidth+10), int32(panelY+2), 16, rl.DarkGray)
		if newGlow != params.Glow {
			params.Glow = newGlow
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: panelY, Width: 140, Height: 30}, "Reset") {
			field.Reset()
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: panelY, Width: 140, Height: 30}, "Reset All") {
			params = paramsFrom(base)
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText(fmt.Sprintf("YAML Config (seed %d):", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(params.yaml(), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(params.yaml())
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
