package renderer

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/pthm-cable/cyberfield/systems"
)

var testPalette = []color.RGBA{{R: 0, G: 255, B: 255, A: 255}}

func TestRecorderFieldFrame(t *testing.T) {
	f, err := systems.NewParticleField(10, systems.Bounds{Width: 400, Height: 300}, testPalette,
		systems.DefaultFieldOptions(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRecorder(true)
	f.Render(rec)

	if rec.Count(OpBackground) != 1 {
		t.Errorf("expected 1 background, got %d", rec.Count(OpBackground))
	}
	if rec.Count(OpCircle) != 10 || rec.Count(OpGlow) != 10 {
		t.Errorf("expected 10 circles and glows, got %d and %d", rec.Count(OpCircle), rec.Count(OpGlow))
	}
	if rec.Count(OpLine) != len(f.Connections()) {
		t.Errorf("expected %d lines, got %d", len(f.Connections()), rec.Count(OpLine))
	}
	if rec.Ops[0].Kind != OpBackground {
		t.Errorf("expected background first, got %v", rec.Ops[0].Kind)
	}

	// Lines come before any particle
	seenCircle := false
	for _, op := range rec.Ops {
		switch op.Kind {
		case OpCircle, OpGlow:
			seenCircle = true
		case OpLine:
			if seenCircle {
				t.Fatal("line drawn after a particle")
			}
		}
	}
}

func TestRecorderCountOnly(t *testing.T) {
	rec := NewRecorder(false)
	rec.DrawCircle(systems.Vec2{}, 1, color.RGBA{}, 1)
	rec.DrawText("x", systems.Vec2{}, 10, color.RGBA{}, 1)
	if len(rec.Ops) != 0 {
		t.Errorf("expected no stored ops, got %d", len(rec.Ops))
	}
	if rec.DrawCalls() != 2 {
		t.Errorf("expected 2 draw calls, got %d", rec.DrawCalls())
	}
	rec.Reset()
	if rec.DrawCalls() != 0 {
		t.Errorf("expected reset counts, got %d", rec.DrawCalls())
	}
}

func TestOpKindString(t *testing.T) {
	if OpWash.String() != "wash" || OpKind(200).String() != "unknown" {
		t.Error("unexpected op names")
	}
}

func TestSentinelRendererHidden(t *testing.T) {
	s := systems.NewSentinel(systems.Bounds{Width: 1280, Height: 800}, systems.DefaultSentinelOptions())
	rec := NewRecorder(true)
	NewSentinelRenderer().Draw(rec, s.State())
	if rec.DrawCalls() != 0 {
		t.Errorf("expected nothing drawn while hidden, got %d", rec.DrawCalls())
	}
}

func TestSentinelRendererShown(t *testing.T) {
	opts := systems.DefaultSentinelOptions()
	s := systems.NewSentinel(systems.Bounds{Width: 1280, Height: 800}, opts)
	s.SetHomeActive(true)
	s.Update(opts.Fade)
	s.Track(systems.Vec2{X: 1280, Y: s.State().EyeCenter.Y})

	rec := NewRecorder(true)
	r := NewSentinelRenderer()
	r.Draw(rec, s.State())
	withWave := rec.Count(OpPolyline)
	if rec.DrawCalls() == 0 {
		t.Fatal("expected sentinel to draw")
	}

	// Pupils follow the cursor
	var pupils []systems.Vec2
	for _, op := range rec.Ops {
		if op.Kind == OpCircle && op.Color == sentinelPupil {
			pupils = append(pupils, op.Pos)
		}
	}
	if len(pupils) != 2 {
		t.Fatalf("expected 2 pupils, got %d", len(pupils))
	}

	s.Track(systems.Vec2{X: 0, Y: s.State().EyeCenter.Y})
	s.Update(opts.Wave)
	rec.Reset()
	r.Draw(rec, s.State())
	if rec.Count(OpPolyline) != withWave-1 {
		t.Errorf("expected the wave ring to disappear, got %d polylines (was %d)", rec.Count(OpPolyline), withWave)
	}
	n := 0
	for _, op := range rec.Ops {
		if op.Kind == OpCircle && op.Color == sentinelPupil {
			if op.Pos.X >= pupils[n].X {
				t.Errorf("expected pupil %d to move left, was %v now %v", n, pupils[n], op.Pos)
			}
			n++
		}
	}
}
