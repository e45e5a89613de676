// Package game wires the visuals together: it owns every system, drives them
// from the frame scheduler, renders them and feeds telemetry.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/cyberfield/config"
	"github.com/pthm-cable/cyberfield/frame"
	"github.com/pthm-cable/cyberfield/renderer"
	"github.com/pthm-cable/cyberfield/systems"
	"github.com/pthm-cable/cyberfield/telemetry"
	"github.com/pthm-cable/cyberfield/ui"
)

// UI layout.
const (
	panelWidth     = 220
	panelMargin    = 10
	controlsTop    = 50
	inspectorWidth = 200
	pickRadius     = 24.0 // Max cursor distance when picking a particle
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 uses the config value
	SnapshotDir    string  // Bookmark snapshots go here instead of the output dir
	OutputDir      string
	ReplayPath     string // Snapshot restored into the field at startup
	Headless       bool
	StepsPerUpdate int

	// StatsCallback receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete visual state.
type Game struct {
	cfg  *config.Config
	seed int64
	dt   float64

	// Systems
	field    *systems.ParticleField
	rain     *systems.MatrixRain
	icons    *systems.IconSystem
	typing   *systems.TypingEffect
	sentinel *systems.Sentinel

	// Frame driving
	sched *frame.Scheduler
	loop  *frame.Loop

	// Rendering
	canvas    *renderer.RaylibCanvas
	rainLayer *renderer.RainLayer
	figure    *renderer.SentinelRenderer
	recorder  *renderer.Recorder

	// UI
	layers    *ui.LayerRegistry
	hud       *ui.HUD
	stats     *ui.StatsPanel
	perfPanel *ui.PerfPanel
	inspector *ui.Inspector
	controls  *ui.ControlsPanel

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string
	observeBuf       []systems.Particle
	lastSpawned      int64
	lastDrawCalls    int

	// State
	tick           int64
	ticked         bool // A step ran since the last telemetry record
	paused         bool
	homeActive     bool
	headless       bool
	stepsPerUpdate int
	selected       int // Clicked particle, -1 for none
	mouse          systems.Vec2
	width, height  float64
}

// NewGameWithOptions creates a game using the global config.
// In graphical mode the raylib window must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	var replay *telemetry.Snapshot
	if opts.ReplayPath != "" {
		snap, err := telemetry.LoadSnapshot(opts.ReplayPath)
		if err != nil {
			return nil, err
		}
		replay = snap
		opts.Seed = snap.RNGSeed
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		seed:           opts.Seed,
		dt:             cfg.Derived.DT,
		sched:          &frame.Scheduler{},
		figure:         renderer.NewSentinelRenderer(),
		layers:         ui.NewLayerRegistry(),
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		homeActive:     true,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		selected:       -1,
		width:          float64(cfg.Screen.Width),
		height:         float64(cfg.Screen.Height),
	}
	bounds := g.bounds()

	var err error
	if g.field, err = NewField(cfg, bounds, g.seed); err != nil {
		return nil, err
	}
	if g.rain, err = NewRain(cfg, bounds, g.seed); err != nil {
		return nil, err
	}
	if g.icons, g.typing, g.sentinel, err = newEffects(cfg, bounds, g.seed); err != nil {
		return nil, err
	}
	g.sentinel.SetHomeActive(g.homeActive)
	g.lastSpawned = g.icons.Spawned()

	if replay != nil {
		if err := replay.Apply(g.field); err != nil {
			return nil, fmt.Errorf("replaying %s: %w", opts.ReplayPath, err)
		}
		g.tick = replay.Tick
		slog.Info("replaying snapshot", "path", opts.ReplayPath, "tick", replay.Tick, "seed", replay.RNGSeed)
	}

	// Telemetry
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.collector = telemetry.NewCollector(statsWindow, g.dt)
	g.collector.StartAt(g.tick)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)
	if g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir); err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if g.headless {
		g.recorder = renderer.NewRecorder(false)
	} else {
		w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
		g.canvas = renderer.NewRaylibCanvas(w, h)
		if g.rain != nil {
			g.rainLayer = renderer.NewRainLayer(w, h, cfg.Rain.LayerOpacity)
		}
		g.hud = ui.NewHUD()
		g.stats = ui.NewStatsPanel(0, panelMargin, panelWidth)
		g.perfPanel = ui.NewPerfPanel(0, panelMargin)
		g.inspector = ui.NewInspector(inspectorWidth)
		g.controls = ui.NewControlsPanel(panelMargin, controlsTop, panelWidth)
		g.layoutPanels()
	}

	g.loop = frame.Animate(g.sched, g.step)
	return g, nil
}

// bounds returns the current surface bounds.
func (g *Game) bounds() systems.Bounds {
	return systems.Bounds{Width: g.width, Height: g.height}
}

// Update handles input and runs the scheduled frame.
func (g *Game) Update() {
	g.handleInput()

	g.perfCollector.StartTick()
	g.sched.Step()
}

// UpdateHeadless runs stepsPerUpdate frames without a window, rendering into
// a recorder so draw-call telemetry stays meaningful.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.StartTick()
		g.sched.Step()

		g.perfCollector.StartPhase(telemetry.PhaseRender)
		g.recorder.Reset()
		if g.layers.IsEnabled(ui.LayerRain) {
			g.rain.Render(g.recorder)
		}
		g.renderScene(g.recorder)

		g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		g.endFrame(g.recorder.DrawCalls())
		g.perfCollector.EndTick()
	}
}

// step advances every system by one frame. It runs from the scheduler.
func (g *Game) step() {
	frameDur := seconds(g.dt)

	g.perfCollector.StartPhase(telemetry.PhaseField)
	g.field.Tick()

	g.perfCollector.StartPhase(telemetry.PhaseRain)
	g.rain.Tick()

	g.perfCollector.StartPhase(telemetry.PhaseIcons)
	g.icons.Tick(g.dt)

	g.perfCollector.StartPhase(telemetry.PhaseEffects)
	g.typing.Update(frameDur)
	g.sentinel.Update(frameDur)

	g.tick++
	g.ticked = true
}

// endFrame records the frame in telemetry once per step.
func (g *Game) endFrame(drawCalls int) {
	g.lastDrawCalls = drawCalls
	if !g.ticked {
		return
	}
	g.ticked = false
	g.collector.RecordFrame(len(g.field.Connections()), drawCalls)
	g.recordSpawns()
	g.flushTelemetry()
}

// SetPaused stops or restarts the frame loop. While paused nothing is
// scheduled; the last frame keeps being drawn.
func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		g.loop.Stop()
	} else {
		g.loop = frame.Animate(g.sched, g.step)
	}
}

// Paused reports whether the frame loop is stopped.
func (g *Game) Paused() bool {
	return g.paused
}

// SetHomeActive marks the home view as shown or hidden.
func (g *Game) SetHomeActive(active bool) {
	g.homeActive = active
	g.sentinel.SetHomeActive(active)
}

// Reset replaces every particle.
func (g *Game) Reset() {
	g.field.Reset()
	g.collector.Record(telemetry.EventReset)
}

// Tick returns the number of frames stepped.
func (g *Game) Tick() int64 {
	return g.tick
}

// Field returns the particle field, which may be nil.
func (g *Game) Field() *systems.ParticleField {
	return g.field
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	g.loop.Stop()
	if g.canvas != nil {
		g.canvas.Unload()
	}
	if g.rainLayer != nil {
		g.rainLayer.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// elapsed returns simulated seconds.
func (g *Game) elapsed() time.Duration {
	return seconds(float64(g.tick) * g.dt)
}
