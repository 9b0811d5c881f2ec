package game

import (
	"log/slog"
)

// flushWindow closes the current stats window, logs and writes it, and runs
// event detection.
func (g *Game) flushWindow() {
	stats := g.collector.Flush()
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

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

	for _, e := range g.eventDetector.Check(stats) {
		if g.logStats {
			e.LogEvent()
		}
		if err := g.outputManager.WriteEvent(e); err != nil {
			slog.Error("failed to write event", "error", err)
		}
	}
}
