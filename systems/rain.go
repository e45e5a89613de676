package systems

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
)

// RainOptions configures a MatrixRain.
type RainOptions struct {
	ColumnWidth    float64 // Horizontal and vertical glyph spacing
	FontSize       float64
	ResetThreshold float64 // A drop past the bottom restarts when rand exceeds this
	FadeAlpha      float64 // Black wash applied before each frame's glyphs
	Color          color.RGBA
	Charset        string
}

// DefaultRainOptions returns the classic green rain.
func DefaultRainOptions() RainOptions {
	return RainOptions{
		ColumnWidth:    20,
		FontSize:       15,
		ResetThreshold: 0.975,
		FadeAlpha:      0.05,
		Color:          color.RGBA{R: 0, G: 255, B: 65, A: 255},
		Charset:        "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$%^&*()_+-={}[]|\\:\";'<>?,./ ",
	}
}

// Glyph is one character drawn by the rain this frame.
type Glyph struct {
	Text string
	Pos  Vec2
}

// MatrixRain is a column-based falling-glyph effect. It expects to draw onto
// a persistent layer: each frame washes the layer slightly darker and adds one
// glyph per column, so older glyphs fade into trails.
type MatrixRain struct {
	opts   RainOptions
	chars  []string
	drops  []float64
	heads  []Glyph
	bounds Bounds
	rng    *rand.Rand
}

// NewMatrixRain creates one drop per column across bounds.
func NewMatrixRain(bounds Bounds, opts RainOptions, rng *rand.Rand) (*MatrixRain, error) {
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidBounds, bounds.Width, bounds.Height)
	}
	if opts.ColumnWidth <= 0 || opts.Charset == "" {
		return nil, fmt.Errorf("%w: rain needs a positive column width and a charset", ErrInvalidOptions)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	r := &MatrixRain{opts: opts, rng: rng}
	for _, c := range opts.Charset {
		r.chars = append(r.chars, string(c))
	}
	r.Resize(bounds)
	return r, nil
}

// Resize recreates the drops for the new width. Every column restarts at the top.
func (r *MatrixRain) Resize(b Bounds) {
	if r == nil || !b.Valid() {
		return
	}
	r.bounds = b
	columns := int(math.Floor(b.Width / r.opts.ColumnWidth))
	r.drops = make([]float64, columns)
	for i := range r.drops {
		r.drops[i] = 1
	}
	r.heads = make([]Glyph, 0, columns)
}

// Tick picks a glyph for every column and advances the drops.
func (r *MatrixRain) Tick() {
	if r == nil {
		return
	}
	cw := r.opts.ColumnWidth
	r.heads = r.heads[:0]
	for i := range r.drops {
		r.heads = append(r.heads, Glyph{
			Text: r.chars[r.rng.Intn(len(r.chars))],
			Pos:  Vec2{float64(i) * cw, r.drops[i] * cw},
		})
		if r.drops[i]*cw > r.bounds.Height && r.rng.Float64() > r.opts.ResetThreshold {
			r.drops[i] = 0
		}
		r.drops[i]++
	}
}

// Render washes the layer and draws this frame's glyphs.
func (r *MatrixRain) Render(s LayerSurface) {
	if r == nil {
		return
	}
	s.Wash(r.bounds, color.RGBA{A: 255}, r.opts.FadeAlpha)
	for _, g := range r.heads {
		s.DrawText(g.Text, g.Pos, r.opts.FontSize, r.opts.Color, 1)
	}
}

// Columns returns the number of drops.
func (r *MatrixRain) Columns() int {
	if r == nil {
		return 0
	}
	return len(r.drops)
}

// Heads returns the glyphs chosen by the last Tick.
func (r *MatrixRain) Heads() []Glyph {
	if r == nil {
		return nil
	}
	return r.heads
}

// Drops returns the current row of every column.
func (r *MatrixRain) Drops() []float64 {
	if r == nil {
		return nil
	}
	return r.drops
}
