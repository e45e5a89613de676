package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// LayerID uniquely identifies a toggleable visual layer.
type LayerID string

// Standard layer IDs.
const (
	LayerField     LayerID = "field"
	LayerRain      LayerID = "rain"
	LayerIcons     LayerID = "icons"
	LayerSentinel  LayerID = "sentinel"
	LayerTyping    LayerID = "typing"
	LayerStats     LayerID = "stats"
	LayerPerf      LayerID = "perf"
	LayerInspector LayerID = "inspector"
)

// LayerDescriptor defines a layer that can be toggled.
type LayerDescriptor struct {
	ID          LayerID   // Unique identifier
	Name        string    // Display name
	Description string    // What this layer shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "S", "V")
	Category    string    // Grouping ("scene" or "hud")
	Default     bool      // Enabled at startup
	Exclusive   []LayerID // Other layers to disable when this is enabled
}

// LayerRegistry manages layer state and metadata.
type LayerRegistry struct {
	descriptors []LayerDescriptor
	byID        map[LayerID]LayerDescriptor
	enabled     map[LayerID]bool
}

// NewLayerRegistry creates a registry with the default layers.
func NewLayerRegistry() *LayerRegistry {
	reg := &LayerRegistry{
		byID:    make(map[LayerID]LayerDescriptor),
		enabled: make(map[LayerID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *LayerRegistry) registerDefaults() {
	r.Register(LayerDescriptor{
		ID:          LayerField,
		Name:        "Particle Field",
		Description: "Drifting particles and proximity lines",
		Key:         rl.KeyOne,
		KeyLabel:    "1",
		Category:    "scene",
		Default:     true,
	})
	r.Register(LayerDescriptor{
		ID:          LayerRain,
		Name:        "Digital Rain",
		Description: "Falling glyph columns behind the field",
		Key:         rl.KeyTwo,
		KeyLabel:    "2",
		Category:    "scene",
		Default:     true,
	})
	r.Register(LayerDescriptor{
		ID:          LayerIcons,
		Name:        "Iconography",
		Description: "Shields, locks, code glyphs and emblems",
		Key:         rl.KeyThree,
		KeyLabel:    "3",
		Category:    "scene",
		Default:     true,
	})
	r.Register(LayerDescriptor{
		ID:          LayerSentinel,
		Name:        "Sentinel",
		Description: "Figure tracking the cursor on the home view",
		Key:         rl.KeyFour,
		KeyLabel:    "4",
		Category:    "scene",
		Default:     true,
	})
	r.Register(LayerDescriptor{
		ID:          LayerTyping,
		Name:        "Typing Line",
		Description: "Cycling title phrases",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "hud",
		Default:     true,
	})
	r.Register(LayerDescriptor{
		ID:          LayerStats,
		Name:        "Stats",
		Description: "Field counts and frame rate",
		Key:         rl.KeyS,
		KeyLabel:    "S",
		Category:    "hud",
		Exclusive:   []LayerID{LayerPerf},
	})
	r.Register(LayerDescriptor{
		ID:          LayerPerf,
		Name:        "Perf",
		Description: "Frame phase timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "hud",
		Exclusive:   []LayerID{LayerStats},
	})
	r.Register(LayerDescriptor{
		ID:          LayerInspector,
		Name:        "Inspector",
		Description: "Details of the particle under the cursor",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "hud",
	})
}

// Register adds a layer to the registry.
func (r *LayerRegistry) Register(desc LayerDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches a layer on/off and handles exclusivity.
func (r *LayerRegistry) Toggle(id LayerID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets a layer's state.
func (r *LayerRegistry) SetEnabled(id LayerID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether a layer is active.
func (r *LayerRegistry) IsEnabled(id LayerID) bool {
	return r.enabled[id]
}

// Get returns a layer descriptor by ID.
func (r *LayerRegistry) Get(id LayerID) (LayerDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// All returns all registered layers in registration order.
func (r *LayerRegistry) All() []LayerDescriptor {
	return r.descriptors
}

// ByCategory returns layers filtered by category.
func (r *LayerRegistry) ByCategory(category string) []LayerDescriptor {
	var result []LayerDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *LayerRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to a layer toggle.
// Returns the layer ID and new state if a toggle occurred.
func (r *LayerRegistry) HandleKeyPress(key int32) (LayerID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
