package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkConnectionSurge BookmarkType = "connection_surge"
	BookmarkConnectionLull  BookmarkType = "connection_lull"
	BookmarkSteadyMesh      BookmarkType = "steady_mesh"
	BookmarkFrameSpike      BookmarkType = "frame_spike"
)

// Bookmark marks a notable window.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable windows against a rolling history.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	steadyFlagged bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest window and returns any triggered bookmarks.
// perf may be zero when timings are not collected.
func (bd *BookmarkDetector) Check(stats WindowStats, perf PerfStats) []Bookmark {
	if bd == nil {
		return nil
	}
	var bookmarks []Bookmark

	if b := bd.checkConnectionShift(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSteadyMesh(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := checkFrameSpike(stats, perf); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkConnectionShift flags windows whose mean connection count is at least
// double, or at most half, the rolling average.
func (bd *BookmarkDetector) checkConnectionShift(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	means := make([]float64, len(history))
	for i, h := range history {
		means[i] = h.ConnectionsMean
	}
	avg := stat.Mean(means, nil)
	if avg < 1 {
		return nil
	}

	cur := stats.ConnectionsMean
	switch {
	case cur >= avg*2:
		return &Bookmark{
			Type:        BookmarkConnectionSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Connections %.1f are %.1fx average (%.1f)", cur, cur/avg, avg),
		}
	case cur <= avg*0.5:
		return &Bookmark{
			Type:        BookmarkConnectionLull,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Connections %.1f fell to %.0f%% of average (%.1f)", cur, cur/avg*100, avg),
		}
	}
	return nil
}

// checkSteadyMesh fires once when the last 4 windows, including this one,
// have a coefficient of variation below 10%. It rearms after the mesh changes.
func (bd *BookmarkDetector) checkSteadyMesh(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if stats.Particles == 0 || len(history) < 3 {
		return nil
	}

	recent := make([]float64, 0, 4)
	n := len(history)
	for i := n - 3; i < n; i++ {
		// Oldest entry sits at the write index once the ring is full
		idx := i
		if bd.historyFull {
			idx = (bd.historyIdx + i) % bd.historySize
		}
		recent = append(recent, history[idx].ConnectionsMean)
	}
	recent = append(recent, stats.ConnectionsMean)

	mean, std := stat.PopMeanStdDev(recent, nil)
	if mean < 1 || std/mean >= 0.1 {
		bd.steadyFlagged = false
		return nil
	}
	if bd.steadyFlagged {
		return nil
	}
	bd.steadyFlagged = true
	return &Bookmark{
		Type:        BookmarkSteadyMesh,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Connections steady at %.1f (cv %.2f)", mean, std/mean),
	}
}

// checkFrameSpike flags windows whose slowest frame took over 4x the average.
func checkFrameSpike(stats WindowStats, perf PerfStats) *Bookmark {
	if perf.AvgTickDuration <= 0 || perf.MaxTickDuration <= 4*perf.AvgTickDuration {
		return nil
	}
	return &Bookmark{
		Type: BookmarkFrameSpike,
		Tick: stats.WindowEndTick,
		Description: fmt.Sprintf("Slowest frame %dus is %.1fx average (%dus)",
			perf.MaxTickDuration.Microseconds(),
			float64(perf.MaxTickDuration)/float64(perf.AvgTickDuration),
			perf.AvgTickDuration.Microseconds()),
	}
}
