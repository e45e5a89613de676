// Package components defines ECS components for the drifting iconography.
package components

// IconKind identifies how an icon is drawn.
type IconKind uint8

const (
	KindShield IconKind = iota // Rotating hexagonal outline
	KindLock                   // Rotating padlock, open or closed
	KindCode                   // Drifting code glyph that wraps at the edges
	KindEmblem                 // Labelled badge that crosses the screen once
)

// String returns the kind's name.
func (k IconKind) String() string {
	switch k {
	case KindShield:
		return "shield"
	case KindLock:
		return "lock"
	case KindCode:
		return "code"
	case KindEmblem:
		return "emblem"
	}
	return "unknown"
}

// Position represents an icon's screen position.
type Position struct {
	X, Y float64
}

// Velocity represents an icon's velocity. Code glyphs move in pixels per
// tick; emblems move in pixels per second and are integrated with dt.
type Velocity struct {
	X, Y float64
}

// Spin rotates an icon in place.
type Spin struct {
	Speed float64 // radians per tick
}

// Icon holds the drawable state shared by every icon.
type Icon struct {
	Kind    IconKind
	Size    float64
	Opacity float64
	Angle   float64 // radians
	Locked  bool    // Locks only
	Text    string  // Codes and emblems
}

// Lifetime bounds how long an emblem lives, in seconds.
type Lifetime struct {
	Age float64
	Max float64
}

// Wrap tags icons that reappear on the opposite edge instead of leaving.
type Wrap struct{}
