package game

import (
	"log/slog"

	"github.com/pthm-cable/cyberfield/telemetry"
)

// recordSpawns counts emblems launched since the last frame.
func (g *Game) recordSpawns() {
	spawned := g.icons.Spawned()
	for ; g.lastSpawned < spawned; g.lastSpawned++ {
		g.collector.Record(telemetry.EventEmblemSpawn)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	var state telemetry.FieldState
	state, g.observeBuf = telemetry.Observe(g.field, g.icons, g.observeBuf)

	stats := g.collector.Flush(g.tick, state)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats, perfStats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		g.saveSnapshot(&bm)
	}
}

// saveSnapshot writes the field state, tagged with the bookmark if any.
// Snapshots go to the snapshot dir when set, else under the output dir.
func (g *Game) saveSnapshot(bm *telemetry.Bookmark) {
	if g.field == nil || (g.snapshotDir == "" && g.outputManager == nil) {
		return
	}
	snap := telemetry.CaptureSnapshot(g.field, g.seed)
	snap.Bookmark = bm

	var path string
	var err error
	if g.snapshotDir != "" {
		path, err = telemetry.SaveSnapshot(snap, g.snapshotDir)
	} else {
		path, err = g.outputManager.WriteSnapshot(snap)
	}
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", snap.Tick)
}
