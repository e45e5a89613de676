package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one telemetry window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Field state at window end
	Particles   int     `csv:"particles"`
	OpacityMean float64 `csv:"opacity_mean"`
	OpacityStd  float64 `csv:"opacity_std"`
	SpeedMean   float64 `csv:"speed_mean"`
	AlphaMean   float64 `csv:"alpha_mean"` // Mean connection alpha

	// Connections per frame over the window
	ConnectionsMean float64 `csv:"connections_mean"`
	ConnectionsP50  float64 `csv:"connections_p50"`
	ConnectionsP90  float64 `csv:"connections_p90"`
	ConnectionsMax  float64 `csv:"connections_max"`

	// Icons and effects at window end
	Icons   int `csv:"icons"`
	Emblems int `csv:"emblems"`

	// Host events during the window
	Resizes int `csv:"resizes"`
	Resets  int `csv:"resets"`
	Clicks  int `csv:"clicks"`
	Scrolls int `csv:"scrolls"`
	Spawns  int `csv:"emblem_spawns"`

	DrawCallsMean float64 `csv:"draw_calls_mean"`
}

// Percentile returns the p-th quantile of sorted, p in [0, 1].
// It returns the smallest sample at or above the fraction p, or 0 when empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution summarizes values with mean, standard deviation and percentiles.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes a Distribution. values is not modified.
func Summarize(values []float64) Distribution {
	var d Distribution
	n := len(values)
	if n == 0 {
		return d
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n > 1 {
		d.Mean, d.Std = stat.PopMeanStdDev(sorted, nil)
	} else {
		d.Mean = sorted[0]
	}
	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	d.Max = sorted[n-1]
	return d
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Float64("opacity_mean", s.OpacityMean),
		slog.Float64("opacity_std", s.OpacityStd),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Float64("connections_mean", s.ConnectionsMean),
		slog.Float64("connections_p50", s.ConnectionsP50),
		slog.Float64("connections_p90", s.ConnectionsP90),
		slog.Float64("connections_max", s.ConnectionsMax),
		slog.Int("icons", s.Icons),
		slog.Int("emblems", s.Emblems),
		slog.Int("resizes", s.Resizes),
		slog.Int("resets", s.Resets),
		slog.Int("clicks", s.Clicks),
		slog.Int("scrolls", s.Scrolls),
		slog.Int("emblem_spawns", s.Spawns),
		slog.Float64("draw_calls_mean", s.DrawCallsMean),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"connections_mean", s.ConnectionsMean,
		"connections_p90", s.ConnectionsP90,
		"connections_max", s.ConnectionsMax,
		"opacity_mean", s.OpacityMean,
		"speed_mean", s.SpeedMean,
		"emblems", s.Emblems,
		"draw_calls_mean", s.DrawCallsMean,
	)
}
