// Package ui draws the heads-up display over the visuals: the typing line,
// stats panels, a particle inspector and layer toggles. Panels are described
// by data so new readouts need no layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float64
	Max float64
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text (e.g., "%.2f")
	Range       FieldRange         // Value range for bars
	Color       rl.Color           // Optional color override
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float64  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Accent         rl.Color
	Warning        rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme: dark translucent panels with
// cyan and green accents.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 0, G: 10, B: 20, A: 200},
		PanelBorder:    rl.Color{R: 0, G: 255, B: 255, A: 90},
		SectionHeader:  rl.Color{R: 0, G: 255, B: 255, A: 255},
		LabelColor:     rl.Color{R: 150, G: 170, B: 180, A: 255},
		ValueColor:     rl.Color{R: 220, G: 235, B: 240, A: 255},
		Accent:         rl.Color{R: 0, G: 255, B: 136, A: 255},
		Warning:        rl.Color{R: 255, G: 0, B: 102, A: 255},
		BarBg:          rl.Color{R: 20, G: 30, B: 40, A: 255},
		BarFill:        rl.Color{R: 0, G: 136, B: 255, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  28,
	}
}
