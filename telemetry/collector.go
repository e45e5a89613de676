package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/cyberfield/systems"
)

// FieldState is a point-in-time summary of the visuals, taken at flush time.
type FieldState struct {
	Particles   int
	OpacityMean float64
	OpacityStd  float64
	SpeedMean   float64
	AlphaMean   float64
	Icons       int
	Emblems     int
}

// Observe summarizes the field and icons. Either may be nil.
// buf is scratch space reused between calls and is returned grown.
func Observe(f *systems.ParticleField, icons *systems.IconSystem, buf []systems.Particle) (FieldState, []systems.Particle) {
	var s FieldState
	buf = f.Particles(buf[:0])
	s.Particles = len(buf)

	if n := len(buf); n > 0 {
		opacity := make([]float64, n)
		speed := make([]float64, n)
		for i := range buf {
			opacity[i] = buf[i].Opacity
			speed[i] = buf[i].Vel.Len()
		}
		s.OpacityMean, s.OpacityStd = stat.PopMeanStdDev(opacity, nil)
		s.SpeedMean = stat.Mean(speed, nil)
	}

	if links := f.Connections(); len(links) > 0 {
		alpha := make([]float64, len(links))
		for i, c := range links {
			alpha[i] = c.Alpha
		}
		s.AlphaMean = stat.Mean(alpha, nil)
	}

	counts := icons.Counts()
	s.Icons = counts.Total()
	s.Emblems = counts.Emblems
	return s, buf
}

// Collector accumulates per-frame samples and events within windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	connections []float64
	drawCalls   []float64
	events      eventCounts
}

// NewCollector creates a collector.
// windowDurationSec: how long each window lasts in seconds
// dt: seconds per frame
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(math.Round(windowDurationSec / dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		connections:         make([]float64, 0, ticksPerWindow),
		drawCalls:           make([]float64, 0, ticksPerWindow),
	}
}

// StartAt begins the first window at tick instead of 0.
func (c *Collector) StartAt(tick int64) {
	if c == nil {
		return
	}
	c.windowStartTick = tick
}

// RecordFrame records one frame's connection count and draw calls.
func (c *Collector) RecordFrame(connections, drawCalls int) {
	if c == nil {
		return
	}
	c.connections = append(c.connections, float64(connections))
	c.drawCalls = append(c.drawCalls, float64(drawCalls))
}

// Record counts a host event.
func (c *Collector) Record(e EventType) {
	if c == nil {
		return
	}
	c.events.add(e)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	if c == nil {
		return false
	}
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets the window.
func (c *Collector) Flush(currentTick int64, state FieldState) WindowStats {
	if c == nil {
		return WindowStats{}
	}
	conn := Summarize(c.connections)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Particles:   state.Particles,
		OpacityMean: state.OpacityMean,
		OpacityStd:  state.OpacityStd,
		SpeedMean:   state.SpeedMean,
		AlphaMean:   state.AlphaMean,

		ConnectionsMean: conn.Mean,
		ConnectionsP50:  conn.P50,
		ConnectionsP90:  conn.P90,
		ConnectionsMax:  conn.Max,

		Icons:   state.Icons,
		Emblems: state.Emblems,

		Resizes: c.events[EventResize],
		Resets:  c.events[EventReset],
		Clicks:  c.events[EventClick],
		Scrolls: c.events[EventScroll],
		Spawns:  c.events[EventEmblemSpawn],
	}
	if len(c.drawCalls) > 0 {
		stats.DrawCallsMean = stat.Mean(c.drawCalls, nil)
	}

	c.windowStartTick = currentTick
	c.connections = c.connections[:0]
	c.drawCalls = c.drawCalls[:0]
	c.events = eventCounts{}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	if c == nil {
		return 0
	}
	return c.windowDurationTicks
}
