package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`
	Ticks           int    `csv:"ticks"`

	// Population at window end and over the window
	Alive     int     `csv:"alive"`
	AliveMean float64 `csv:"alive_mean"`
	AliveStd  float64 `csv:"alive_std"`
	AliveMin  int     `csv:"alive_min"`
	AliveMax  int     `csv:"alive_max"`
	AliveP50  float64 `csv:"alive_p50"`
	Density   float64 `csv:"density"` // Alive / cells

	// Transitions summed over the window
	Births int `csv:"births"`
	Deaths int `csv:"deaths"`

	// Mean bucket fractions over the window
	YoungMean  float64 `csv:"young_mean"`
	MiddleMean float64 `csv:"middle_mean"`
	OldMean    float64 `csv:"old_mean"`

	// Running age average at window end (adaptive policy only)
	AverageAge float64 `csv:"average_age"`

	// Wall-clock throughput of the tick loop
	AvgTickUS   int64   `csv:"avg_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summary holds mean, standard deviation and range of a sample.
type Summary struct {
	Mean, Std, Min, Max, P50 float64
}

// Summarize computes population statistics for values. The slice is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(values),
		Max:  floats.Max(values),
		P50:  Percentile(sorted, 0.5),
	}
}

// CV returns the coefficient of variation, or 0 for a zero mean.
func (s Summary) CV() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.Std / s.Mean
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("alive", s.Alive),
		slog.Float64("alive_mean", s.AliveMean),
		slog.Float64("alive_std", s.AliveStd),
		slog.Float64("density", s.Density),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Float64("young", s.YoungMean),
		slog.Float64("middle", s.MiddleMean),
		slog.Float64("old", s.OldMean),
		slog.Float64("average_age", s.AverageAge),
		slog.Float64("ticks_per_sec", s.TicksPerSec),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"alive", s.Alive,
		"alive_mean", s.AliveMean,
		"alive_std", s.AliveStd,
		"alive_min", s.AliveMin,
		"alive_max", s.AliveMax,
		"density", s.Density,
		"births", s.Births,
		"deaths", s.Deaths,
		"young", s.YoungMean,
		"middle", s.MiddleMean,
		"old", s.OldMean,
		"average_age", s.AverageAge,
		"avg_tick_us", s.AvgTickUS,
		"ticks_per_sec", s.TicksPerSec,
	)
}
