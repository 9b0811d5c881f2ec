package telemetry

import (
	"time"

	"github.com/pthm-cable/agelife/sim"
)

// Collector accumulates tick results within windows and produces WindowStats.
type Collector struct {
	windowTicks int
	cells       int

	// Current window tracking
	windowStartTick uint64
	alive           []float64
	young           []float64
	middle          []float64
	old             []float64
	births          int
	deaths          int
	elapsed         time.Duration
	lastAlive       int
	lastTick        uint64
	averageAge      float64
}

// NewCollector creates a collector that flushes every windowTicks ticks
// for a grid of the given number of cells.
func NewCollector(windowTicks, cells int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		cells:       cells,
		alive:       make([]float64, 0, windowTicks),
		young:       make([]float64, 0, windowTicks),
		middle:      make([]float64, 0, windowTicks),
		old:         make([]float64, 0, windowTicks),
	}
}

// Record adds one tick to the current window.
func (c *Collector) Record(r sim.TickResult) {
	c.alive = append(c.alive, float64(r.Counts.Alive))
	c.young = append(c.young, float64(r.Fractions.Young))
	c.middle = append(c.middle, float64(r.Fractions.Middle))
	c.old = append(c.old, float64(r.Fractions.Old))
	c.births += r.Counts.Births
	c.deaths += r.Counts.Deaths
	c.elapsed += r.Elapsed
	c.lastAlive = r.Counts.Alive
	c.lastTick = r.Tick
	if r.HasAverageAge {
		c.averageAge = r.AverageAge
	}
}

// ShouldFlush returns true once the window holds windowTicks ticks.
func (c *Collector) ShouldFlush() bool {
	return len(c.alive) >= c.windowTicks
}

// Pending returns the number of ticks recorded since the last flush.
func (c *Collector) Pending() int {
	return len(c.alive)
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	n := len(c.alive)
	alive := Summarize(c.alive)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   c.lastTick,
		Ticks:           n,
		Alive:           c.lastAlive,
		AliveMean:       alive.Mean,
		AliveStd:        alive.Std,
		AliveMin:        int(alive.Min),
		AliveMax:        int(alive.Max),
		AliveP50:        alive.P50,
		Births:          c.births,
		Deaths:          c.deaths,
		YoungMean:       Summarize(c.young).Mean,
		MiddleMean:      Summarize(c.middle).Mean,
		OldMean:         Summarize(c.old).Mean,
		AverageAge:      c.averageAge,
	}
	if c.cells > 0 {
		stats.Density = float64(c.lastAlive) / float64(c.cells)
	}
	if n > 0 && c.elapsed > 0 {
		avg := c.elapsed / time.Duration(n)
		stats.AvgTickUS = avg.Microseconds()
		stats.TicksPerSec = float64(time.Second) / float64(avg)
	}

	// Reset for next window
	c.windowStartTick = c.lastTick
	c.alive = c.alive[:0]
	c.young = c.young[:0]
	c.middle = c.middle[:0]
	c.old = c.old[:0]
	c.births = 0
	c.deaths = 0
	c.elapsed = 0

	return stats
}

// Reset drops the current window, for use after the simulation is reset.
func (c *Collector) Reset(cells int) {
	c.cells = cells
	c.lastTick = 0
	c.lastAlive = 0
	c.averageAge = 0
	c.Flush()
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
