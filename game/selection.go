package game

import (
	"github.com/pthm-cable/cyberfield/systems"
	"github.com/pthm-cable/cyberfield/ui"
)

// selectAt selects the particle under p while the inspector is shown.
// Clicking empty space clears the selection.
func (g *Game) selectAt(p systems.Vec2) {
	if !g.layers.IsEnabled(ui.LayerInspector) {
		return
	}
	if i, ok := g.field.Nearest(p, pickRadius); ok {
		g.selected = i
	} else {
		g.selected = -1
	}
}

// Selected returns the selected particle index.
func (g *Game) Selected() (int, bool) {
	return g.selected, g.selected >= 0
}

// inspected returns the particle to show in the inspector: the selected one,
// or else the one under the cursor.
func (g *Game) inspected() (ui.InspectorData, bool) {
	i := g.selected
	if i < 0 {
		var ok bool
		if i, ok = g.field.Nearest(g.mouse, pickRadius); !ok {
			return ui.InspectorData{}, false
		}
	}
	p, ok := g.field.At(i)
	if !ok {
		return ui.InspectorData{}, false
	}
	return ui.InspectorData{Index: i, Particle: p, Degree: g.field.Degree(i)}, true
}
