package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/systems"
)

// textSpacing is the glyph spacing passed to DrawTextEx, as a fraction of the font size.
const textSpacing = 0.1

// RaylibCanvas draws onto the active raylib target: the window between
// BeginDrawing/EndDrawing, or a render texture between BeginTextureMode/EndTextureMode.
type RaylibCanvas struct {
	background *BackgroundRenderer
	font       rl.Font
	hasFont    bool
	draws      int
}

// NewRaylibCanvas creates a canvas for a screen of the given size.
func NewRaylibCanvas(screenW, screenH int32) *RaylibCanvas {
	return &RaylibCanvas{background: NewBackgroundRenderer(screenW, screenH)}
}

// Resize updates the canvas for a new screen size.
func (c *RaylibCanvas) Resize(screenW, screenH int32) {
	c.background.Resize(screenW, screenH)
}

func (c *RaylibCanvas) defaultFont() rl.Font {
	if !c.hasFont {
		c.font = rl.GetFontDefault()
		c.hasFont = true
	}
	return c.font
}

// PaintBackground paints the radial gradient.
func (c *RaylibCanvas) PaintBackground(_ systems.Bounds, bg systems.Background) {
	c.background.Draw(bg.Inner, bg.Outer)
	c.draws++
}

// DrawLine draws a segment.
func (c *RaylibCanvas) DrawLine(a, b systems.Vec2, col color.RGBA, opacity, width float64) {
	rl.DrawLineEx(vec(a), vec(b), float32(width), withOpacity(col, opacity))
	c.draws++
}

// DrawCircle draws a filled circle.
func (c *RaylibCanvas) DrawCircle(center systems.Vec2, radius float64, col color.RGBA, opacity float64) {
	rl.DrawCircleV(vec(center), float32(radius), withOpacity(col, opacity))
	c.draws++
}

// DrawGlow draws a soft halo that fades to transparent at radius.
func (c *RaylibCanvas) DrawGlow(center systems.Vec2, radius float64, col color.RGBA, opacity float64) {
	inner := withOpacity(col, opacity*0.35)
	outer := col
	outer.A = 0
	rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(radius), inner, outer)
	c.draws++
}

// DrawText draws text with the default font.
func (c *RaylibCanvas) DrawText(text string, pos systems.Vec2, size float64, col color.RGBA, opacity float64) {
	rl.DrawTextEx(c.defaultFont(), text, vec(pos), float32(size), float32(size*textSpacing), withOpacity(col, opacity))
	c.draws++
}

// DrawPolyline strokes consecutive points, closing the loop if asked.
func (c *RaylibCanvas) DrawPolyline(points []systems.Vec2, closed bool, col color.RGBA, opacity, width float64) {
	if len(points) < 2 {
		return
	}
	tint := withOpacity(col, opacity)
	for i := 0; i < len(points)-1; i++ {
		rl.DrawLineEx(vec(points[i]), vec(points[i+1]), float32(width), tint)
	}
	if closed {
		rl.DrawLineEx(vec(points[len(points)-1]), vec(points[0]), float32(width), tint)
	}
	c.draws++
}

// FillPolygon fills a convex polygon as a triangle fan.
func (c *RaylibCanvas) FillPolygon(points []systems.Vec2, col color.RGBA, opacity float64) {
	if len(points) < 3 {
		return
	}
	tint := withOpacity(col, opacity)
	for i := 1; i < len(points)-1; i++ {
		a, b, d := points[0], points[i], points[i+1]
		// raylib culls triangles that are not counter-clockwise on screen
		if cross(a, b, d) > 0 {
			b, d = d, b
		}
		rl.DrawTriangle(vec(a), vec(b), vec(d), tint)
	}
	c.draws++
}

// Wash blends a colour over the whole target.
func (c *RaylibCanvas) Wash(b systems.Bounds, col color.RGBA, alpha float64) {
	rl.DrawRectangle(0, 0, int32(b.Width), int32(b.Height), withOpacity(col, alpha))
	c.draws++
}

// DrawCalls returns the number of primitives drawn since the last reset.
func (c *RaylibCanvas) DrawCalls() int {
	return c.draws
}

// ResetDrawCalls zeroes the draw counter.
func (c *RaylibCanvas) ResetDrawCalls() {
	c.draws = 0
}

// Unload frees GPU resources.
func (c *RaylibCanvas) Unload() {
	c.background.Unload()
}

func vec(v systems.Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

func cross(a, b, c systems.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// withOpacity scales the colour's alpha by opacity in [0, 1].
func withOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity <= 0 {
		c.A = 0
		return c
	}
	if opacity < 1 {
		c.A = uint8(float64(c.A)*opacity + 0.5)
	}
	return c
}
