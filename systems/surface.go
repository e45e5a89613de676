package systems

import "image/color"

// Background is a radial gradient from the surface centre (Inner) to the
// farthest edge (Outer). Alpha below 255 leaves a trail of the previous frame
// on surfaces that keep their contents.
type Background struct {
	Inner color.RGBA
	Outer color.RGBA
}

// Surface is the drawing target a ParticleField renders into.
// Opacity values are in [0, 1] and multiply the colour's own alpha.
type Surface interface {
	PaintBackground(b Bounds, bg Background)
	DrawLine(a, b Vec2, c color.RGBA, opacity, width float64)
	DrawCircle(center Vec2, radius float64, c color.RGBA, opacity float64)
}

// GlowSurface is implemented by surfaces that can draw a soft halo.
// ParticleField uses it when the surface supports it and glow is enabled.
type GlowSurface interface {
	DrawGlow(center Vec2, radius float64, c color.RGBA, opacity float64)
}

// TextSurface draws text runs with the top-left corner at pos.
type TextSurface interface {
	DrawText(text string, pos Vec2, size float64, c color.RGBA, opacity float64)
}

// ShapeSurface draws outlines and filled convex polygons.
type ShapeSurface interface {
	DrawPolyline(points []Vec2, closed bool, c color.RGBA, opacity, width float64)
	FillPolygon(points []Vec2, c color.RGBA, opacity float64)
}

// Washer darkens the whole surface by blending a colour over it.
type Washer interface {
	Wash(b Bounds, c color.RGBA, alpha float64)
}

// LayerSurface is a persistent layer that keeps its contents between frames.
type LayerSurface interface {
	Washer
	TextSurface
}

// Canvas is everything the visuals need from a backend.
type Canvas interface {
	Surface
	TextSurface
	ShapeSurface
	Washer
}
