package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/cyberfield/systems"
)

// Terminal cell size in surface pixels.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Runes used by the terminal canvas.
const (
	runeLine       = '·'
	runeSmallDot   = '•'
	runeDot        = '●'
	runeOutline    = '+'
	runeFill       = '█'
	bigDotMinWidth = 2.0
)

// TermCanvas draws onto a tcell screen. Surface coordinates are pixels; each
// terminal cell covers CellWidth x CellHeight of them. Colours are blended
// over the cell's background instead of using alpha.
type TermCanvas struct {
	screen tcell.Screen
	cols   int
	rows   int
	bg     []colorful.Color
	draws  int
}

// NewTermCanvas wraps an initialized screen.
func NewTermCanvas(screen tcell.Screen) *TermCanvas {
	c := &TermCanvas{screen: screen}
	c.Sync()
	return c
}

// Sync picks up the screen's current size.
func (c *TermCanvas) Sync() {
	c.cols, c.rows = c.screen.Size()
	if n := c.cols * c.rows; cap(c.bg) >= n {
		c.bg = c.bg[:n]
	} else {
		c.bg = make([]colorful.Color, n)
	}
}

// Bounds returns the screen size in surface pixels.
func (c *TermCanvas) Bounds() systems.Bounds {
	return systems.Bounds{Width: float64(c.cols * CellWidth), Height: float64(c.rows * CellHeight)}
}

// CellAt maps a surface point to a terminal cell.
func CellAt(p systems.Vec2) (x, y int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

// PixelAt maps a terminal cell to the surface point at its centre.
func PixelAt(x, y int) systems.Vec2 {
	return systems.Vec2{X: (float64(x) + 0.5) * CellWidth, Y: (float64(y) + 0.5) * CellHeight}
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (c *TermCanvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.cols && y < c.rows
}

// put blends col over the cell background by opacity and sets the rune.
func (c *TermCanvas) put(x, y int, r rune, col color.RGBA, opacity float64) {
	if !c.inside(x, y) {
		return
	}
	bg := c.bg[y*c.cols+x]
	a := opacity * float64(col.A) / 255
	fg := bg.BlendRgb(toColorful(col), math.Max(0, math.Min(1, a)))
	style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
	c.screen.SetContent(x, y, r, nil, style)
}

// PaintBackground fills every cell with the radial gradient composed over black.
func (c *TermCanvas) PaintBackground(b systems.Bounds, bg systems.Background) {
	black := colorful.Color{}
	inner := black.BlendRgb(toColorful(bg.Inner), float64(bg.Inner.A)/255)
	outer := black.BlendRgb(toColorful(bg.Outer), float64(bg.Outer.A)/255)
	center := b.Center()
	maxDist := center.Len()

	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			t := 0.0
			if maxDist > 0 {
				t = math.Min(1, PixelAt(x, y).Sub(center).Len()/maxDist)
			}
			cell := inner.BlendRgb(outer, t)
			c.bg[y*c.cols+x] = cell
			c.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(toTcell(cell)))
		}
	}
	c.draws++
}

// DrawLine plots the cells a segment passes through.
func (c *TermCanvas) DrawLine(a, b systems.Vec2, col color.RGBA, opacity, width float64) {
	c.line(a, b, runeLine, col, opacity)
	c.draws++
}

func (c *TermCanvas) line(a, b systems.Vec2, r rune, col color.RGBA, opacity float64) {
	x0, y0 := CellAt(a)
	x1, y1 := CellAt(b)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.put(x0, y0, r, col, opacity)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawCircle marks the cell under the centre.
func (c *TermCanvas) DrawCircle(center systems.Vec2, radius float64, col color.RGBA, opacity float64) {
	r := runeSmallDot
	if radius >= bigDotMinWidth {
		r = runeDot
	}
	x, y := CellAt(center)
	c.put(x, y, r, col, opacity)
	c.draws++
}

// DrawText writes one rune per cell starting at pos.
func (c *TermCanvas) DrawText(text string, pos systems.Vec2, size float64, col color.RGBA, opacity float64) {
	x, y := CellAt(pos)
	for _, r := range text {
		c.put(x, y, r, col, opacity)
		x++
	}
	c.draws++
}

// DrawPolyline plots each edge.
func (c *TermCanvas) DrawPolyline(points []systems.Vec2, closed bool, col color.RGBA, opacity, width float64) {
	for i := 0; i+1 < len(points); i++ {
		c.line(points[i], points[i+1], runeOutline, col, opacity)
	}
	if closed && len(points) > 2 {
		c.line(points[len(points)-1], points[0], runeOutline, col, opacity)
	}
	c.draws++
}

// FillPolygon fills the cells whose centres lie inside a convex polygon.
func (c *TermCanvas) FillPolygon(points []systems.Vec2, col color.RGBA, opacity float64) {
	if len(points) < 3 {
		return
	}
	minX, minY := CellAt(points[0])
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		x, y := CellAt(p)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if insideConvex(points, PixelAt(x, y)) {
				c.put(x, y, runeFill, col, opacity)
			}
		}
	}
	c.draws++
}

// Wash is a no-op: every frame repaints the cells from the background up.
func (c *TermCanvas) Wash(systems.Bounds, color.RGBA, float64) {}

// Show presents the frame.
func (c *TermCanvas) Show() {
	c.screen.Show()
}

// DrawCalls returns the number of primitives drawn since the last reset.
func (c *TermCanvas) DrawCalls() int {
	return c.draws
}

// ResetDrawCalls zeroes the draw counter.
func (c *TermCanvas) ResetDrawCalls() {
	c.draws = 0
}

func insideConvex(points []systems.Vec2, p systems.Vec2) bool {
	sign := 0.0
	for i := range points {
		a, b := points[i], points[(i+1)%len(points)]
		cr := cross(a, b, p)
		if cr == 0 {
			continue
		}
		if sign == 0 {
			sign = cr
		} else if (cr > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
