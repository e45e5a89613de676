package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPerf(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc, clock := newTestPerf(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseField)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		clock.advance(300 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 400*time.Microsecond {
		t.Errorf("expected 400us average tick, got %v", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseField] != 100*time.Microsecond {
		t.Errorf("expected 100us field phase, got %v", stats.PhaseAvg[PhaseField])
	}
	if stats.PhasePct[PhaseRender] != 75 {
		t.Errorf("expected render at 75%%, got %v", stats.PhasePct[PhaseRender])
	}
	if stats.PhaseAvg[PhaseRain] != 0 {
		t.Errorf("expected untouched phase to be zero, got %v", stats.PhaseAvg[PhaseRain])
	}
	if stats.TicksPerSecond != 2500 {
		t.Errorf("expected 2500 ticks/sec, got %v", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc, clock := newTestPerf(5)

	// Five slow frames followed by five fast ones push the slow ones out
	for i := 0; i < 10; i++ {
		pc.StartTick()
		if i < 5 {
			clock.advance(10 * time.Millisecond)
		} else {
			clock.advance(time.Millisecond)
		}
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != time.Millisecond {
		t.Errorf("expected only the last 5 frames averaged, got %v", stats.AvgTickDuration)
	}
	if stats.MaxTickDuration != time.Millisecond {
		t.Errorf("expected max 1ms, got %v", stats.MaxTickDuration)
	}
}

func TestPerfCollector_P90(t *testing.T) {
	pc, clock := newTestPerf(10)
	for i := 1; i <= 10; i++ {
		pc.StartTick()
		clock.advance(time.Duration(i) * time.Millisecond)
		pc.EndTick()
	}
	stats := pc.Stats()
	if stats.P90TickDuration != 9*time.Millisecond {
		t.Errorf("expected p90 9ms, got %v", stats.P90TickDuration)
	}
	if stats.MaxTickDuration != 10*time.Millisecond {
		t.Errorf("expected max 10ms, got %v", stats.MaxTickDuration)
	}
}

func TestPerfCollector_RepeatedPhaseAccumulates(t *testing.T) {
	pc, clock := newTestPerf(4)
	pc.StartTick()
	pc.StartPhase(PhaseIcons)
	clock.advance(time.Millisecond)
	pc.StartPhase(PhaseRender)
	clock.advance(time.Millisecond)
	pc.StartPhase(PhaseIcons)
	clock.advance(time.Millisecond)
	pc.EndTick()

	if got := pc.Stats().PhaseAvg[PhaseIcons]; got != 2*time.Millisecond {
		t.Errorf("expected 2ms in icons, got %v", got)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)
	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Error("expected zero stats for empty collector")
	}

	var nilPC *PerfCollector
	nilPC.StartTick()
	nilPC.StartPhase(PhaseField)
	nilPC.EndTick()
	nilPC.RecordFrame()
	if nilPC.Stats() != (PerfStats{}) {
		t.Error("expected zero stats from nil collector")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc, clock := newTestPerf(10)

	pc.RecordFrame()
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("expected 20ms frame, got %v", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("expected 50 FPS, got %v", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseTelemetry.String() != "telemetry" || Phase(99).String() != "unknown" {
		t.Error("unexpected phase names")
	}
	phases := Phases()
	if len(phases) != int(numPhases) || phases[0] != PhaseField || phases[len(phases)-1] != PhaseTelemetry {
		t.Errorf("unexpected phase list %v", phases)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 1500 * time.Microsecond
	s.PhasePct[PhaseRain] = 12.5
	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 1500 || row.RainPct != 12.5 {
		t.Errorf("unexpected csv row %+v", row)
	}
}
