package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/systems"
)

// InspectorData holds the particle being inspected.
type InspectorData struct {
	Index    int
	Particle systems.Particle
	Degree   int // Connections touching the particle
}

var inspectorSection = SectionDescriptor{
	ID:    "particle",
	Title: "Particle",
	Fields: []FieldDescriptor{
		{ID: "index", Label: "Index", Widget: WidgetText, Format: "#%.0f",
			Getter: func(d any) float64 { return float64(d.(InspectorData).Index) }},
		{ID: "pos", Label: "Position", Widget: WidgetText,
			TextGetter: func(d any) string {
				p := d.(InspectorData).Particle.Pos
				return fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
			}},
		{ID: "vel", Label: "Velocity", Widget: WidgetText,
			TextGetter: func(d any) string {
				v := d.(InspectorData).Particle.Vel
				return fmt.Sprintf("%+.2f, %+.2f", v.X, v.Y)
			}},
		{ID: "radius", Label: "Radius", Widget: WidgetText, Format: "%.2f",
			Getter: func(d any) float64 { return d.(InspectorData).Particle.Radius }},
		{ID: "opacity", Label: "Opacity", Widget: WidgetBar, Range: DefaultRange(),
			Getter: func(d any) float64 { return d.(InspectorData).Particle.Opacity }},
		{ID: "pulse", Label: "Pulse", Widget: WidgetText,
			TextGetter: func(d any) string {
				p := d.(InspectorData).Particle
				dir := "rising"
				if p.PulseDir < 0 {
					dir = "falling"
				}
				return fmt.Sprintf("%s %.3f", dir, p.PulseSpeed)
			}},
		{ID: "color", Label: "Colour", Widget: WidgetColorSwatch,
			ColorGetter: func(d any) rl.Color { return d.(InspectorData).Particle.Color }},
		{ID: "degree", Label: "Links", Widget: WidgetText, Format: "%.0f",
			Getter: func(d any) float64 { return float64(d.(InspectorData).Degree) }},
	},
}

// Inspector renders a particle inspection panel next to the particle.
type Inspector struct {
	renderer *Renderer
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), width: width}
}

// Draw highlights the particle and renders the panel, keeping it on screen.
func (ins *Inspector) Draw(data InspectorData, screenW, screenH int32) {
	r := ins.renderer
	p := data.Particle
	rl.DrawCircleLines(int32(p.Pos.X), int32(p.Pos.Y), float32(p.Radius)+6, r.Theme.Accent)

	height := r.SectionHeight(inspectorSection, data) + r.Theme.Padding*2
	x := int32(p.Pos.X) + 16
	y := int32(p.Pos.Y) + 16
	if x+ins.width > screenW {
		x = int32(p.Pos.X) - 16 - ins.width
	}
	if y+height > screenH {
		y = screenH - height
	}
	x = max(x, 0)
	y = max(y, 0)

	r.DrawPanel(x, y, ins.width, height)
	r.DrawSection(x+r.Theme.Padding, y+r.Theme.Padding, inspectorSection, data, ins.width-r.Theme.Padding*2)
}
