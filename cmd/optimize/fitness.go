package main

import (
	"context"
	"math"
	"sync"

	"github.com/pthm-cable/agelife/config"
	"github.com/pthm-cable/agelife/game"
	"github.com/pthm-cable/agelife/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params        *ParamVector
	maxTicks      int
	seeds         []uint64
	baseConfig    *config.Config
	targetDensity float64

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []uint64, baseCfg *config.Config, targetDensity float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:        params,
		maxTicks:      maxTicks,
		seeds:         seeds,
		baseConfig:    baseCfg,
		targetDensity: targetDensity,
		bestFitness:   math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks before extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via the stats callback each window
	invalid       bool                    // parameters rejected by config validation
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			r := fe.runSimulation(x, s)
			quality := fe.computeQuality(r.windowStats)
			results[idx] = seedResult{
				fitness: fe.computeFitness(r, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run until extinction or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) *runResult {
	result := &runResult{}

	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		result.invalid = true
		return result
	}

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
	})
	if err != nil {
		result.invalid = true
		return result
	}
	defer g.Unload()

	g.SetStatsCallback(func(stats telemetry.WindowStats) {
		result.windowStats = append(result.windowStats, stats)
		if stats.Alive == 0 {
			g.Stop()
		}
	})

	_ = g.Run(context.Background(), fe.maxTicks)
	result.survivalTicks = int(g.Tick())
	return result
}

// copyConfig creates a copy of the base config. Presets are shared read-only.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalFraction × (1 + quality)).
func (fe *FitnessEvaluator) computeFitness(r *runResult, quality float64) float64 {
	if r.invalid || fe.maxTicks <= 0 {
		return 0
	}
	survival := float64(r.survivalTicks) / float64(fe.maxTicks)
	return -(survival * (1.0 + quality))
}

// Quality component weights.
const (
	qualityWeightDensity   = 0.40
	qualityWeightStability = 0.30
	qualityWeightActivity  = 0.30

	qualityWarmupWindows = 2    // skip first N windows (warmup)
	densityTolerance     = 0.10 // density error giving a 1/e score
	stabilityTolerance   = 0.20 // density CV giving a 1/e score
)

// computeQuality computes grid quality ∈ [0, 1] from window stats: density
// near the target, low variance over time and continued births and deaths.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	densities := make([]float64, 0, len(valid))
	active := 0
	for _, w := range valid {
		densities = append(densities, w.Density)
		if w.Births > 0 && w.Deaths > 0 {
			active++
		}
	}

	s := telemetry.Summarize(densities)
	if s.Mean == 0 {
		return 0
	}

	densityErr := (s.Mean - fe.targetDensity) / densityTolerance
	densityScore := math.Exp(-densityErr * densityErr)

	cv := s.CV() / stabilityTolerance
	stabilityScore := math.Exp(-cv * cv)

	activityScore := float64(active) / float64(len(valid))

	quality := qualityWeightDensity*densityScore +
		qualityWeightStability*stabilityScore +
		qualityWeightActivity*activityScore

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
