package game

import (
	"log/slog"

	"github.com/pthm-cable/agelife/entropy"
	"github.com/pthm-cable/agelife/sim"
	"github.com/pthm-cable/agelife/telemetry"
)

// step runs a single tick with perf timing and telemetry.
func (g *Game) step() {
	g.perfCollector.StartTick()
	g.last = g.sim.Tick()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(g.last)
	if g.collector.ShouldFlush() {
		g.flushWindow()
	}
	g.perfCollector.EndTick()
}

// reset restarts the grid with the current seed and rule.
func (g *Game) reset(reason string) {
	if err := g.sim.Reset(g.cfg.Grid.Side, g.seed, g.rule); err != nil {
		slog.Error("reset failed", "reason", reason, "error", err)
		return
	}
	g.collector.Reset(g.cfg.Grid.Side * g.cfg.Grid.Side)
	g.last = sim.TickResult{}
	slog.Info("reset", "reason", reason, "seed", g.seed, "variant", g.rule.Variant, "birth_threshold", g.rule.BirthThreshold)
}

// reseed picks a new seed derived from the current one and resets.
func (g *Game) reseed() {
	g.seed = entropy.Mix64(g.seed + 1)
	g.reset("reseed")
}

// toggleBirth switches the birth threshold between 3 and 4 and resets.
// A failed reset leaves the previous rule in place.
func (g *Game) toggleBirth() {
	prev := g.rule
	if g.rule.BirthThreshold == 3 {
		g.rule.BirthThreshold = 4
	} else {
		g.rule.BirthThreshold = 3
	}
	if err := g.sim.Reset(g.cfg.Grid.Side, g.seed, g.rule); err != nil {
		slog.Error("birth toggle failed", "error", err)
		g.rule = prev
		return
	}
	g.collector.Reset(g.cfg.Grid.Side * g.cfg.Grid.Side)
	g.last = sim.TickResult{}
	slog.Info("birth threshold changed", "birth_threshold", g.rule.BirthThreshold)
}

// setSteps changes the ticks run per update, bounded to [1, MaxStepsPerUpdate].
func (g *Game) setSteps(n int) {
	if n < 1 {
		n = 1
	}
	if n > MaxStepsPerUpdate {
		n = MaxStepsPerUpdate
	}
	g.stepsPerUpdate = n
}
