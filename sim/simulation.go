// Package sim ties the grid, transition engine and summarizer into one
// explicitly owned simulation state.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/pthm-cable/agelife/engine"
	"github.com/pthm-cable/agelife/entropy"
	"github.com/pthm-cable/agelife/grid"
	"github.com/pthm-cable/agelife/summary"
)

// CellView is a read-only view of the generation a tick produced, with cells
// widened to ages. Classic cells read as 0 or 1.
type CellView interface {
	Side() int
	Len() int
	Age(x, y int) uint32
	AgeAt(i int) uint32
}

// TickResult is what one tick hands to collaborators.
type TickResult struct {
	Tick          uint64
	View          CellView
	Fractions     summary.Fractions
	AverageAge    float64
	HasAverageAge bool
	Counts        engine.Counts
	Elapsed       time.Duration
}

// ageView adapts a grid view to CellView.
type ageView[C grid.Cell] struct {
	grid.View[C]
}

func (v ageView[C]) Age(x, y int) uint32 { return uint32(v.At(x, y)) }
func (v ageView[C]) AgeAt(i int) uint32  { return uint32(v.Index(i)) }

// world hides the cell type of the active variant.
type world interface {
	step() engine.Counts
	summarize(s *summary.Summarizer) summary.Fractions
	classify(s *summary.Summarizer)
	view() CellView
	population() int
	close()
}

type typedWorld[C grid.Cell] struct {
	grid   *grid.Grid[C]
	engine *engine.Engine[C]
}

func newTypedWorld[C grid.Cell](side int, seed uint64, rule engine.Rule[C], stream *entropy.Stream, workers int) (*typedWorld[C], error) {
	g, err := grid.New[C](side)
	if err != nil {
		return nil, err
	}
	g.Seed(seed)
	return &typedWorld[C]{grid: g, engine: engine.New(rule, stream, workers)}, nil
}

func (w *typedWorld[C]) step() engine.Counts {
	counts := w.engine.Step(w.grid.Current(), w.grid.WriteTarget())
	w.grid.Swap()
	return counts
}

func (w *typedWorld[C]) summarize(s *summary.Summarizer) summary.Fractions {
	return summary.Summarize(s, w.grid.Current())
}

func (w *typedWorld[C]) classify(s *summary.Summarizer) {
	summary.Classify(s, w.grid.Current())
}

func (w *typedWorld[C]) view() CellView  { return ageView[C]{w.grid.Current()} }
func (w *typedWorld[C]) population() int { return w.grid.Current().Population() }
func (w *typedWorld[C]) close()          { w.engine.Close() }

// Phase names reported to a PhaseTimer during Tick.
const (
	PhaseTransition = "transition"
	PhaseSummary    = "summary"
	PhasePublish    = "publish"
)

// PhaseTimer receives phase boundaries while a tick runs.
type PhaseTimer interface {
	StartPhase(phase string)
}

type noopTimer struct{}

func (noopTimer) StartPhase(string) {}

// Simulation owns every piece of mutable simulation state: the grid, the
// entropy stream, the summarizer and the published fractions.
type Simulation struct {
	side       int
	seed       uint64
	rule       RuleConfig
	stream     *entropy.Stream
	world      world
	summarizer *summary.Summarizer
	published  Published
	tick       uint64
	clock      func() time.Time
	phases     PhaseTimer
}

// New creates a simulation and resets it with the given parameters.
func New(side int, seed uint64, rc RuleConfig) (*Simulation, error) {
	s := &Simulation{clock: time.Now, phases: noopTimer{}}
	if err := s.Reset(side, seed, rc); err != nil {
		return nil, err
	}
	return s, nil
}

// SetClock replaces the wall clock used to time ticks.
func (s *Simulation) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetPhaseTimer installs a timer notified at each phase of Tick. nil disables it.
func (s *Simulation) SetPhaseTimer(p PhaseTimer) {
	if p == nil {
		p = noopTimer{}
	}
	s.phases = p
}

// Reset reinitializes the grid and entropy stream. On error the previous
// state is kept.
func (s *Simulation) Reset(side int, seed uint64, rc RuleConfig) error {
	if side <= 0 {
		return fmt.Errorf("%w: grid side %d must be positive", ErrInvalidConfig, side)
	}
	if err := rc.Validate(); err != nil {
		return err
	}

	stream := entropy.NewStream(seed)
	var w world
	var err error
	switch rc.Variant {
	case VariantClassic:
		w, err = newTypedWorld[uint8](side, seed, engine.Classic{BirthThreshold: rc.BirthThreshold}, stream, rc.Workers)
	case VariantAged:
		rule := engine.NewAged(rc.BirthThreshold, rc.MinLifespan, rc.MaxLifespan, rc.MaxSpread, rc.MinSpread)
		w, err = newTypedWorld[uint32](side, seed, rule, stream, rc.Workers)
	}
	if err != nil {
		return fmt.Errorf("resetting simulation: %w", err)
	}

	if s.world != nil {
		s.world.close()
	}
	s.side = side
	s.seed = seed
	s.rule = rc
	s.stream = stream
	s.world = w
	s.summarizer = summary.New(rc.BucketPolicy, rc.MinLifespan, rc.MaxLifespan, rc.EMASmoothing, side*side)
	s.tick = 0
	s.world.classify(s.summarizer)
	s.published.Store(summary.Fractions{})
	return nil
}

// Tick advances one generation: compute the write target from the current
// buffer, swap, summarize the new generation and publish its fractions.
func (s *Simulation) Tick() TickResult {
	start := s.clock()

	s.phases.StartPhase(PhaseTransition)
	counts := s.world.step()
	s.phases.StartPhase(PhaseSummary)
	fractions := s.world.summarize(s.summarizer)
	s.phases.StartPhase(PhasePublish)
	s.published.Store(fractions)
	s.tick++

	return TickResult{
		Tick:          s.tick,
		View:          s.world.view(),
		Fractions:     fractions,
		AverageAge:    s.summarizer.AverageAge(),
		HasAverageAge: s.summarizer.Tracking(),
		Counts:        counts,
		Elapsed:       s.clock().Sub(start),
	}
}

// Run ticks until ctx is done or maxTicks ticks have run (0 = unlimited).
// The context is checked once per tick boundary; a started tick always
// completes. observe, if non-nil, sees every result.
func (s *Simulation) Run(ctx context.Context, maxTicks int, observe func(TickResult)) (int, error) {
	ran := 0
	for maxTicks <= 0 || ran < maxTicks {
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		res := s.Tick()
		ran++
		if observe != nil {
			observe(res)
		}
	}
	return ran, nil
}

// Close releases worker goroutines.
func (s *Simulation) Close() {
	if s.world != nil {
		s.world.close()
	}
}

// Side returns the grid side.
func (s *Simulation) Side() int { return s.side }

// Seed returns the seed of the last reset.
func (s *Simulation) Seed() uint64 { return s.seed }

// Rule returns the active rule config.
func (s *Simulation) Rule() RuleConfig { return s.rule }

// TickCount returns the number of ticks since the last reset.
func (s *Simulation) TickCount() uint64 { return s.tick }

// Entropy returns the current entropy counter.
func (s *Simulation) Entropy() uint64 { return s.stream.Counter() }

// View returns the current generation.
func (s *Simulation) View() CellView { return s.world.view() }

// Population returns the number of live cells in the current generation.
func (s *Simulation) Population() int { return s.world.population() }

// ColorClass returns the display class of (x, y) from the last tick.
func (s *Simulation) ColorClass(x, y int) summary.ColorClass {
	return s.summarizer.Class(x + y*s.side)
}

// Classes returns all color classes from the last tick, in linear order.
// The slice is overwritten by the next tick.
func (s *Simulation) Classes() []summary.ColorClass {
	return s.summarizer.Classes()
}

// Published returns the fraction source shared with other goroutines.
func (s *Simulation) Published() FractionSource {
	return &s.published
}

// CellSize returns the pixel size of a cell in a square window.
func (s *Simulation) CellSize(window int) (int, error) {
	return CellSize(window, s.side)
}
