package renderer

import (
	"image/color"

	"github.com/pthm-cable/cyberfield/systems"
)

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	OpBackground OpKind = iota
	OpLine
	OpCircle
	OpGlow
	OpText
	OpPolyline
	OpFill
	OpWash
)

var opNames = [...]string{"background", "line", "circle", "glow", "text", "polyline", "fill", "wash"}

// String returns the op's name.
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "unknown"
}

// Op is one recorded draw call.
type Op struct {
	Kind    OpKind
	Pos     systems.Vec2 // Centre, line start, text origin or first point
	End     systems.Vec2 // Line end
	Size    float64      // Radius, width or font size
	Color   color.RGBA
	Opacity float64
	Text    string
}

// Recorder is a canvas that records draw calls instead of drawing.
// It runs the visuals without a display.
type Recorder struct {
	Ops    []Op
	counts [len(opNames)]int
	keep   bool
}

// NewRecorder returns a recorder. With keep false only per-kind counts are
// tracked, so it can run for long sessions without growing.
func NewRecorder(keep bool) *Recorder {
	return &Recorder{keep: keep}
}

func (r *Recorder) record(op Op) {
	r.counts[op.Kind]++
	if r.keep {
		r.Ops = append(r.Ops, op)
	}
}

// PaintBackground records a background paint.
func (r *Recorder) PaintBackground(b systems.Bounds, bg systems.Background) {
	r.record(Op{Kind: OpBackground, End: systems.Vec2{X: b.Width, Y: b.Height}, Color: bg.Inner})
}

// DrawLine records a line.
func (r *Recorder) DrawLine(a, b systems.Vec2, c color.RGBA, opacity, width float64) {
	r.record(Op{Kind: OpLine, Pos: a, End: b, Size: width, Color: c, Opacity: opacity})
}

// DrawCircle records a circle.
func (r *Recorder) DrawCircle(center systems.Vec2, radius float64, c color.RGBA, opacity float64) {
	r.record(Op{Kind: OpCircle, Pos: center, Size: radius, Color: c, Opacity: opacity})
}

// DrawGlow records a halo.
func (r *Recorder) DrawGlow(center systems.Vec2, radius float64, c color.RGBA, opacity float64) {
	r.record(Op{Kind: OpGlow, Pos: center, Size: radius, Color: c, Opacity: opacity})
}

// DrawText records a text run.
func (r *Recorder) DrawText(text string, pos systems.Vec2, size float64, c color.RGBA, opacity float64) {
	r.record(Op{Kind: OpText, Pos: pos, Size: size, Color: c, Opacity: opacity, Text: text})
}

// DrawPolyline records an outline.
func (r *Recorder) DrawPolyline(points []systems.Vec2, closed bool, c color.RGBA, opacity, width float64) {
	op := Op{Kind: OpPolyline, Size: width, Color: c, Opacity: opacity}
	if len(points) > 0 {
		op.Pos = points[0]
		op.End = points[len(points)-1]
	}
	r.record(op)
}

// FillPolygon records a filled polygon.
func (r *Recorder) FillPolygon(points []systems.Vec2, c color.RGBA, opacity float64) {
	op := Op{Kind: OpFill, Color: c, Opacity: opacity}
	if len(points) > 0 {
		op.Pos = points[0]
	}
	r.record(op)
}

// Wash records a wash.
func (r *Recorder) Wash(b systems.Bounds, c color.RGBA, alpha float64) {
	r.record(Op{Kind: OpWash, End: systems.Vec2{X: b.Width, Y: b.Height}, Color: c, Opacity: alpha})
}

// Count returns the number of recorded calls of kind k.
func (r *Recorder) Count(k OpKind) int {
	return r.counts[k]
}

// DrawCalls returns the total number of recorded calls.
func (r *Recorder) DrawCalls() int {
	n := 0
	for _, c := range r.counts {
		n += c
	}
	return n
}

// Reset clears recorded calls and counts.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.counts = [len(opNames)]int{}
}
