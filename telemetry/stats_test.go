package telemetry

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/cyberfield/systems"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	d := Summarize(values)

	if math.Abs(d.Mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", d.Mean)
	}
	wantStd := math.Sqrt(8.25)
	if math.Abs(d.Std-wantStd) > 1e-9 {
		t.Errorf("std = %v, want %v", d.Std, wantStd)
	}
	if d.P10 != 1 || d.P50 != 5 || d.P90 != 9 || d.Max != 10 {
		t.Errorf("unexpected percentiles %+v", d)
	}
	if values[0] != 10 {
		t.Error("Summarize sorted its input")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if d := Summarize(nil); d != (Distribution{}) {
		t.Errorf("empty slice should return all zeros, got %+v", d)
	}
	if d := Summarize([]float64{4}); d.Mean != 4 || d.Std != 0 || d.Max != 4 {
		t.Errorf("single value: unexpected %+v", d)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1, 0.25) // 4 ticks per window
	if c.WindowDurationTicks() != 4 {
		t.Fatalf("expected 4 ticks per window, got %d", c.WindowDurationTicks())
	}

	for tick := int64(1); tick <= 4; tick++ {
		c.RecordFrame(int(tick)*10, 100)
		if tick < 4 && c.ShouldFlush(tick) {
			t.Fatalf("flush requested early at tick %d", tick)
		}
	}
	c.Record(EventClick)
	c.Record(EventClick)
	c.Record(EventResize)
	if !c.ShouldFlush(4) {
		t.Fatal("expected flush at tick 4")
	}

	stats := c.Flush(4, FieldState{Particles: 50, Emblems: 2})
	if stats.ConnectionsMean != 25 || stats.ConnectionsMax != 40 {
		t.Errorf("unexpected connection stats mean=%v max=%v", stats.ConnectionsMean, stats.ConnectionsMax)
	}
	if stats.DrawCallsMean != 100 {
		t.Errorf("expected 100 draw calls, got %v", stats.DrawCallsMean)
	}
	if stats.Clicks != 2 || stats.Resizes != 1 || stats.Resets != 0 {
		t.Errorf("unexpected event counts %+v", stats)
	}
	if stats.SimTimeSec != 1 || stats.Particles != 50 || stats.Emblems != 2 {
		t.Errorf("unexpected window fields %+v", stats)
	}

	// Next window starts clean
	if c.ShouldFlush(5) {
		t.Error("expected new window after flush")
	}
	next := c.Flush(8, FieldState{})
	if next.WindowStartTick != 4 || next.Clicks != 0 || next.ConnectionsMean != 0 {
		t.Errorf("expected reset window, got %+v", next)
	}
}

func TestCollectorStartAt(t *testing.T) {
	c := NewCollector(1, 0.25)
	c.StartAt(20)
	if c.ShouldFlush(23) {
		t.Error("window starting at 20 should not flush at 23")
	}
	if !c.ShouldFlush(24) {
		t.Fatal("expected flush at tick 24")
	}
	if stats := c.Flush(24, FieldState{}); stats.WindowStartTick != 20 {
		t.Errorf("expected window start 20, got %d", stats.WindowStartTick)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.RecordFrame(1, 1)
	c.Record(EventReset)
	if c.ShouldFlush(1000) {
		t.Error("nil collector should never flush")
	}
}

func TestObserve(t *testing.T) {
	f, err := systems.NewParticleField(30, systems.Bounds{Width: 400, Height: 300},
		[]color.RGBA{{R: 0, G: 255, B: 255, A: 255}},
		systems.DefaultFieldOptions(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	icons := systems.NewIconSystem(f.Bounds(), systems.DefaultIconOptions(), rand.New(rand.NewSource(3)))

	state, buf := Observe(f, icons, nil)
	if state.Particles != 30 || len(buf) != 30 {
		t.Errorf("expected 30 particles, got %d", state.Particles)
	}
	opts := systems.DefaultFieldOptions()
	if state.OpacityMean < opts.OpacityRange.Min || state.OpacityMean > opts.OpacityRange.Max {
		t.Errorf("opacity mean %v outside range", state.OpacityMean)
	}
	maxSpeed := 2 * opts.SpeedFactor * math.Sqrt2
	if state.SpeedMean <= 0 || state.SpeedMean > maxSpeed {
		t.Errorf("speed mean %v outside (0, %v]", state.SpeedMean, maxSpeed)
	}
	if len(f.Connections()) > 0 && (state.AlphaMean <= 0 || state.AlphaMean > opts.ConnectionOpacityScale) {
		t.Errorf("alpha mean %v outside (0, %v]", state.AlphaMean, opts.ConnectionOpacityScale)
	}
	io := systems.DefaultIconOptions()
	if state.Icons != io.Shields+io.Locks+io.Codes {
		t.Errorf("expected %d icons, got %d", io.Shields+io.Locks+io.Codes, state.Icons)
	}

	empty, _ := Observe(nil, nil, buf)
	if empty != (FieldState{}) {
		t.Errorf("expected zero state for nil inputs, got %+v", empty)
	}
}
