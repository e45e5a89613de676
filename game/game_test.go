package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/cyberfield/config"
	"github.com/pthm-cable/cyberfield/systems"
	"github.com/pthm-cable/cyberfield/telemetry"
	"github.com/pthm-cable/cyberfield/ui"
)

func init() {
	config.MustInit("")
	SetLogWriter(os.Stderr)
}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func run(g *Game, frames int) {
	for i := 0; i < frames; i++ {
		g.UpdateHeadless()
	}
}

func TestHeadlessFlushesWindows(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newHeadless(t, Options{
		Seed:           1,
		StatsWindowSec: 1,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	run(g, 130)

	if g.Tick() != 130 {
		t.Fatalf("expected 130 ticks, got %d", g.Tick())
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	w := windows[1]
	if w.WindowStartTick != 60 || w.WindowEndTick != 120 {
		t.Errorf("unexpected window bounds [%d, %d]", w.WindowStartTick, w.WindowEndTick)
	}
	if w.Particles != config.Cfg().Field.Count {
		t.Errorf("expected %d particles, got %d", config.Cfg().Field.Count, w.Particles)
	}
	if w.DrawCallsMean <= float64(w.Particles) {
		t.Errorf("expected more draw calls than particles, got %.1f", w.DrawCallsMean)
	}
	if w.ConnectionsMax < w.ConnectionsP50 {
		t.Errorf("max %v below median %v", w.ConnectionsMax, w.ConnectionsP50)
	}
}

func TestStepsPerUpdate(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1, StepsPerUpdate: 4})
	run(g, 5)
	if g.Tick() != 20 {
		t.Errorf("expected 20 ticks, got %d", g.Tick())
	}
}

func TestPauseStopsScheduling(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1})
	run(g, 3)

	g.SetPaused(true)
	before := g.Field().Particles(nil)
	run(g, 10)
	if g.Tick() != 3 {
		t.Errorf("paused game advanced to tick %d", g.Tick())
	}
	after := g.Field().Particles(nil)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d moved while paused", i)
		}
	}

	g.SetPaused(false)
	run(g, 2)
	if g.Tick() != 5 {
		t.Errorf("expected tick 5 after resume, got %d", g.Tick())
	}
}

func TestSameSeedSameField(t *testing.T) {
	a := newHeadless(t, Options{Seed: 99})
	b := newHeadless(t, Options{Seed: 99})
	run(a, 30)
	run(b, 30)

	pa, pb := a.Field().Particles(nil), b.Field().Particles(nil)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs between runs with the same seed", i)
		}
	}
}

func TestResizeClampsAndRecords(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newHeadless(t, Options{
		Seed:           3,
		StatsWindowSec: 1,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	count := g.Field().Count()

	g.Resize(400, 300)
	for i, p := range g.Field().Particles(nil) {
		if p.Pos.X < 0 || p.Pos.X > 400 || p.Pos.Y < 0 || p.Pos.Y > 300 {
			t.Fatalf("particle %d outside resized bounds: %+v", i, p.Pos)
		}
	}
	if g.Field().Count() != count {
		t.Errorf("resize changed particle count to %d", g.Field().Count())
	}

	g.Resize(0, 300)
	if b := g.Field().Bounds(); b.Width != 400 {
		t.Errorf("invalid resize applied: %+v", b)
	}

	run(g, 60)
	if len(windows) != 1 || windows[0].Resizes != 1 {
		t.Errorf("expected one recorded resize, got %+v", windows)
	}
}

func TestResizeZeroWithoutField(t *testing.T) {
	cfg := config.Cfg()
	count := cfg.Field.Count
	cfg.Field.Count = 0
	t.Cleanup(func() { cfg.Field.Count = count })

	var windows []telemetry.WindowStats
	g := newHeadless(t, Options{
		Seed:           1,
		StatsWindowSec: 1,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if g.Field() != nil {
		t.Fatal("expected no field with count 0")
	}
	before, columns := g.bounds(), g.rain.Columns()

	g.Resize(0, 0)
	g.Resize(640, 0)
	if b := g.bounds(); b != before {
		t.Errorf("zero-sized resize applied: %+v -> %+v", before, b)
	}
	if c := g.rain.Columns(); c != columns {
		t.Errorf("zero-sized resize reached the rain: %d columns, want %d", c, columns)
	}

	run(g, 60)
	if len(windows) != 1 || windows[0].Resizes != 0 {
		t.Errorf("ignored resizes should not be recorded, got %+v", windows)
	}
}

func TestEventsAndSpawnsRecorded(t *testing.T) {
	var clicks, scrolls, resets, spawns int
	g := newHeadless(t, Options{
		Seed:           5,
		StatsWindowSec: 1,
		StatsCallback: func(s telemetry.WindowStats) {
			clicks += s.Clicks
			scrolls += s.Scrolls
			resets += s.Resets
			spawns += s.Spawns
		},
	})

	g.Click()
	g.Scroll()
	g.Scroll()
	g.Reset()
	// First emblem spawns three seconds in
	run(g, 240)

	if clicks != 1 || scrolls != 2 || resets != 1 {
		t.Errorf("unexpected events: clicks=%d scrolls=%d resets=%d", clicks, scrolls, resets)
	}
	if spawns != 1 {
		t.Errorf("expected 1 emblem spawn, got %d", spawns)
	}
}

func TestClickSelectsParticle(t *testing.T) {
	g := newHeadless(t, Options{Seed: 7})
	p, _ := g.Field().At(0)

	g.Track(p.Pos)
	g.Click()
	if _, ok := g.Selected(); ok {
		t.Fatal("selection made while the inspector is hidden")
	}

	g.ToggleLayer(ui.LayerInspector)
	g.Click()
	i, ok := g.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	sel, _ := g.Field().At(i)
	if d := sel.Pos.Sub(p.Pos).Len(); d > pickRadius {
		t.Errorf("selected particle %d is %.1f away from the cursor", i, d)
	}
	data, ok := g.inspected()
	if !ok || data.Index != i || data.Degree != g.Field().Degree(i) {
		t.Errorf("unexpected inspector data %+v", data)
	}

	g.ToggleLayer(ui.LayerInspector)
	if _, ok := g.Selected(); ok {
		t.Error("hiding the inspector should clear the selection")
	}
}

func TestLayersGateRendering(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1})
	run(g, 1)
	all := g.lastDrawCalls

	g.ToggleLayer(ui.LayerField)
	run(g, 1)
	if g.lastDrawCalls > all-g.Field().Count() {
		t.Errorf("hiding the field removed too few draws: %d -> %d", all, g.lastDrawCalls)
	}
	if g.Tick() != 2 {
		t.Errorf("hidden layers should keep stepping, tick %d", g.Tick())
	}
}

func TestOutputFilesWritten(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGameWithOptions(Options{Seed: 1, Headless: true, OutputDir: dir, StatsWindowSec: 1})
	if err != nil {
		t.Fatal(err)
	}
	run(g, 61)
	g.saveSnapshot(nil)
	g.Unload()

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv", "bookmarks.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "snapshots", "snapshot_61.json"))
	if len(matches) != 1 {
		t.Errorf("expected snapshot at tick 61, found %v", matches)
	}
}

func TestReplayRestoresField(t *testing.T) {
	src := newHeadless(t, Options{Seed: 11})
	run(src, 20)
	snap := telemetry.CaptureSnapshot(src.Field(), 11)
	path, err := telemetry.SaveSnapshot(snap, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var windows []telemetry.WindowStats
	g := newHeadless(t, Options{
		Seed:           1,
		ReplayPath:     path,
		StatsWindowSec: 1,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if g.Tick() != 20 {
		t.Errorf("expected replay to resume at tick 20, got %d", g.Tick())
	}
	want := src.Field().Particles(nil)
	got := g.Field().Particles(nil)
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("particle %d not restored: %+v vs %+v", i, got[i], want[i])
		}
	}
	if g.seed != 11 {
		t.Errorf("expected replay seed 11, got %d", g.seed)
	}

	run(src, 5)
	run(g, 5)
	want, got = src.Field().Particles(want[:0]), g.Field().Particles(got[:0])
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("particle %d diverged after replay", i)
		}
	}

	run(g, 55)
	if len(windows) != 1 || windows[0].WindowStartTick != 20 || windows[0].WindowEndTick != 80 {
		t.Errorf("expected one window [20, 80] after replay, got %+v", windows)
	}
}

func TestReplayMissingFile(t *testing.T) {
	_, err := NewGameWithOptions(Options{Headless: true, ReplayPath: filepath.Join(t.TempDir(), "none.json")})
	if err == nil {
		t.Error("expected error for missing snapshot")
	}
}

func TestHomeViewDrivesSentinel(t *testing.T) {
	g := newHeadless(t, Options{Seed: 1})
	run(g, 30)
	if st := g.sentinel.State(); st.Opacity != 1 {
		t.Errorf("expected sentinel fully shown, opacity %v", st.Opacity)
	}

	g.SetHomeActive(false)
	run(g, 30)
	if st := g.sentinel.State(); st.Opacity != 0 {
		t.Errorf("expected sentinel hidden, opacity %v", st.Opacity)
	}
}

func TestFieldOptionsFromConfig(t *testing.T) {
	cfg := config.Cfg()
	opts := FieldOptions(cfg)
	if opts.ConnectionDistance != cfg.Field.ConnectionDistance || opts.OpacityRange != systems.Range(cfg.Field.OpacityRange) {
		t.Errorf("unexpected field options %+v", opts)
	}
	if opts.Background.Inner != cfg.Derived.BackgroundInner {
		t.Errorf("background not mapped: %+v", opts.Background)
	}

	timings := TypingTimings(cfg)
	if timings.Type.Milliseconds() != int64(cfg.Typing.TypeMS) || timings.Hold.Milliseconds() != int64(cfg.Typing.HoldMS) {
		t.Errorf("unexpected typing timings %+v", timings)
	}
	if s := SentinelOptions(cfg); s.Fade.Seconds() != cfg.Sentinel.FadeSec {
		t.Errorf("unexpected sentinel fade %v", s.Fade)
	}
}

func TestZeroCountFieldIsNil(t *testing.T) {
	cfg := *config.Cfg()
	cfg.Field.Count = 0
	f, err := NewField(&cfg, systems.Bounds{Width: 100, Height: 100}, 1)
	if err != nil || f != nil {
		t.Errorf("expected nil field without error, got %v, %v", f, err)
	}
	f.Tick()
	if f.Count() != 0 {
		t.Error("nil field should be empty")
	}
}
