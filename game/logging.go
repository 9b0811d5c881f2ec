package game

import (
	"log/slog"
	"runtime"
)

// logStartup logs the effective run parameters.
func (g *Game) logStartup() {
	slog.Info("simulation ready",
		"side", g.sim.Side(),
		"seed", g.seed,
		"variant", string(g.rule.Variant),
		"birth_threshold", g.rule.BirthThreshold,
		"min_lifespan", g.rule.MinLifespan,
		"max_lifespan", g.rule.MaxLifespan,
		"bucket_policy", string(g.rule.BucketPolicy),
		"workers", g.rule.Workers,
		"gomaxprocs", runtime.GOMAXPROCS(0),
		"headless", g.headless,
		"steps_per_update", g.stepsPerUpdate,
		"output_dir", g.outputManager.Dir(),
		"population", g.sim.Population(),
	)
}
