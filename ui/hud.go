package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Typed        string  // Current typing line text
	Elapsed      float64 // Seconds since start, drives the cursor blink
	Paused       bool
	HomeActive   bool
	ScreenWidth  int32
	ScreenHeight int32
}

// CursorVisible reports whether the typing cursor is lit at elapsed seconds.
// The cursor blinks with a one second period, lit for the first half.
func CursorVisible(elapsed float64) bool {
	_, frac := math.Modf(elapsed)
	return frac < 0.5
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// DrawTyping renders the typing line centred horizontally in the upper third.
func (h *HUD) DrawTyping(data HUDData) {
	t := h.renderer.Theme
	text := data.Typed
	if CursorVisible(data.Elapsed) {
		text += "|"
	}
	w := rl.MeasureText(text, t.TitleFontSize)
	x := (data.ScreenWidth - w) / 2
	y := data.ScreenHeight / 3
	rl.DrawText(text, x+2, y+2, t.TitleFontSize, rl.Color{R: 0, G: 0, B: 0, A: 160})
	rl.DrawText(text, x, y, t.TitleFontSize, t.Accent)
}

// DrawStatus renders pause and view state in the top-left corner.
func (h *HUD) DrawStatus(data HUDData) {
	t := h.renderer.Theme
	view := "HOME"
	if !data.HomeActive {
		view = "AWAY"
	}
	rl.DrawText(view, 10, 10, t.HeaderFontSize, t.SectionHeader)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 28, t.HeaderFontSize, t.Warning)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.LabelColor)
}

// StatsData holds the values shown in the stats panel.
type StatsData struct {
	Particles   int
	Connections int
	AvgAlpha    float64
	Icons       int
	Emblems     int
	RainColumns int
	DrawCalls   int
	Tick        int64
	FPS         int32
}

var statsSections = []SectionDescriptor{
	{
		ID:    "field",
		Title: "Field",
		Fields: []FieldDescriptor{
			{ID: "particles", Label: "Particles", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float64 { return float64(d.(StatsData).Particles) }},
			{ID: "connections", Label: "Links", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float64 { return float64(d.(StatsData).Connections) }},
			{ID: "alpha", Label: "Link alpha", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 0.3},
				Getter: func(d any) float64 { return d.(StatsData).AvgAlpha }},
		},
	},
	{
		ID:    "effects",
		Title: "Effects",
		Fields: []FieldDescriptor{
			{ID: "icons", Label: "Icons", Widget: WidgetText,
				TextGetter: func(d any) string {
					s := d.(StatsData)
					return fmt.Sprintf("%d (%d emblems)", s.Icons, s.Emblems)
				}},
			{ID: "rain", Label: "Rain cols", Widget: WidgetText, Format: "%.0f",
				Getter:  func(d any) float64 { return float64(d.(StatsData).RainColumns) },
				Visible: func(d any) bool { return d.(StatsData).RainColumns > 0 }},
		},
	},
	{
		ID:    "frame",
		Title: "Frame",
		Fields: []FieldDescriptor{
			{ID: "tick", Label: "Tick", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float64 { return float64(d.(StatsData).Tick) }},
			{ID: "fps", Label: "FPS", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float64 { return float64(d.(StatsData).FPS) }},
			{ID: "draws", Label: "Draw calls", Widget: WidgetText, Format: "%.0f",
				Getter: func(d any) float64 { return float64(d.(StatsData).DrawCalls) }},
		},
	},
}

// StatsPanel renders field and frame counters.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a stats panel at x, y.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *StatsPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel.
func (p *StatsPanel) Draw(data StatsData) {
	r := p.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range statsSections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + padding
	for _, sd := range statsSections {
		y = r.DrawSection(p.x+padding, y, sd, data, p.width-padding*2)
	}
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []telemetry.Phase) {
	t := p.renderer.Theme
	x, y := p.x, p.y

	rl.DrawText("Frame Performance", x, y, 16, t.ValueColor)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  P90: %s  FPS: %.0f",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P90TickDuration.Round(time.Microsecond),
		stats.FPS), x, y, 14, t.SectionHeader)
	y += 16

	for _, ph := range phases {
		pct := stats.PhasePct[ph]
		color := t.LabelColor
		if pct > 50 {
			color = t.Warning
		} else if pct > 25 {
			color = t.Accent
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph, stats.PhaseAvg[ph].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
