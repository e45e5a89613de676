package systems

import (
	"errors"
	"image/color"
	"math/rand"
	"strings"
	"testing"
)

// textLog records washes and text draws.
type textLog struct {
	washes int
	texts  []Glyph
	order  []string
}

func (l *textLog) Wash(b Bounds, c color.RGBA, alpha float64) {
	l.washes++
	l.order = append(l.order, "wash")
}

func (l *textLog) DrawText(text string, pos Vec2, size float64, c color.RGBA, opacity float64) {
	l.texts = append(l.texts, Glyph{Text: text, Pos: pos})
	l.order = append(l.order, "text")
}

func TestMatrixRain_Columns(t *testing.T) {
	r, err := NewMatrixRain(Bounds{810, 600}, DefaultRainOptions(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if r.Columns() != 40 {
		t.Errorf("expected 40 columns for width 810, got %d", r.Columns())
	}
	for i, d := range r.Drops() {
		if d != 1 {
			t.Errorf("column %d starts at %g, expected 1", i, d)
		}
	}
}

func TestMatrixRain_RejectsInvalid(t *testing.T) {
	if _, err := NewMatrixRain(Bounds{0, 100}, DefaultRainOptions(), nil); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
	opts := DefaultRainOptions()
	opts.Charset = ""
	if _, err := NewMatrixRain(Bounds{100, 100}, opts, nil); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestMatrixRain_TickAdvancesAndPlacesHeads(t *testing.T) {
	opts := DefaultRainOptions()
	r, _ := NewMatrixRain(Bounds{100, 1000}, opts, rand.New(rand.NewSource(2)))

	r.Tick()
	heads := r.Heads()
	if len(heads) != 5 {
		t.Fatalf("expected 5 heads, got %d", len(heads))
	}
	for i, g := range heads {
		want := Vec2{float64(i) * opts.ColumnWidth, opts.ColumnWidth}
		if g.Pos != want {
			t.Errorf("head %d at %v, expected %v", i, g.Pos, want)
		}
		if !strings.Contains(opts.Charset, g.Text) {
			t.Errorf("head %d glyph %q not in charset", i, g.Text)
		}
	}
	for i, d := range r.Drops() {
		if d != 2 {
			t.Errorf("column %d at %g after one tick, expected 2", i, d)
		}
	}
}

func TestMatrixRain_ResetsPastBottom(t *testing.T) {
	opts := DefaultRainOptions()
	opts.ResetThreshold = 0 // Any draw resets
	r, _ := NewMatrixRain(Bounds{40, 100}, opts, rand.New(rand.NewSource(3)))

	// 100px tall with 20px rows: the drop passes the bottom after row 5
	for i := 0; i < 6; i++ {
		r.Tick()
	}
	for i, d := range r.Drops() {
		if d != 1 {
			t.Errorf("column %d expected to restart at 1, got %g", i, d)
		}
	}
}

func TestMatrixRain_NeverResetsAboveBottom(t *testing.T) {
	opts := DefaultRainOptions()
	opts.ResetThreshold = 0
	r, _ := NewMatrixRain(Bounds{40, 10000}, opts, rand.New(rand.NewSource(4)))
	for i := 0; i < 100; i++ {
		r.Tick()
	}
	for i, d := range r.Drops() {
		if d != 101 {
			t.Errorf("column %d expected at 101, got %g", i, d)
		}
	}
}

func TestMatrixRain_ResizeRecreatesDrops(t *testing.T) {
	r, _ := NewMatrixRain(Bounds{200, 200}, DefaultRainOptions(), nil)
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	r.Resize(Bounds{400, 200})
	if r.Columns() != 20 {
		t.Errorf("expected 20 columns, got %d", r.Columns())
	}
	for i, d := range r.Drops() {
		if d != 1 {
			t.Errorf("column %d expected to restart at 1, got %g", i, d)
		}
	}
}

func TestMatrixRain_RenderWashesFirst(t *testing.T) {
	r, _ := NewMatrixRain(Bounds{60, 200}, DefaultRainOptions(), nil)
	r.Tick()

	var l textLog
	r.Render(&l)
	if l.washes != 1 {
		t.Fatalf("expected one wash, got %d", l.washes)
	}
	if l.order[0] != "wash" {
		t.Errorf("expected wash before glyphs, got %v", l.order)
	}
	if len(l.texts) != 3 {
		t.Errorf("expected 3 glyphs, got %d", len(l.texts))
	}
}

func TestMatrixRain_Nil(t *testing.T) {
	var r *MatrixRain
	r.Tick()
	r.Resize(Bounds{10, 10})
	var l textLog
	r.Render(&l)
	if r.Columns() != 0 || l.washes != 0 {
		t.Error("expected nil rain to be inert")
	}
}
