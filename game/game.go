// Package game drives the simulation in headless and windowed modes.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/agelife/audio"
	"github.com/pthm-cable/agelife/camera"
	"github.com/pthm-cable/agelife/config"
	"github.com/pthm-cable/agelife/renderer"
	"github.com/pthm-cable/agelife/sim"
	"github.com/pthm-cable/agelife/telemetry"
	"github.com/pthm-cable/agelife/ui"
)

// MaxStepsPerUpdate caps the ticks run per frame.
const MaxStepsPerUpdate = 20

// Options configures a game instance.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           uint64         // 0 = config grid seed
	LogStats       bool
	OutputDir      string
	Headless       bool
	Mute           bool
	StepsPerUpdate int
}

// Game holds the complete game state.
type Game struct {
	cfg  *config.Config
	sim  *sim.Simulation
	rule sim.RuleConfig
	seed uint64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	eventDetector *telemetry.EventDetector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats
	logStats      bool

	// Front end (nil when headless)
	camera   *camera.Camera
	cells    *renderer.CellRenderer
	hud      *ui.HUD
	controls *ui.ControlsPanel
	overlays *ui.OverlayRegistry
	stream   *audio.Stream

	// State
	headless       bool
	paused         bool
	stepOnce       bool
	stopped        bool
	stepsPerUpdate int
	last           sim.TickResult
}

// NewGameWithOptions creates a game from the given options.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Grid.Seed
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	if steps > MaxStepsPerUpdate {
		steps = MaxStepsPerUpdate
	}

	s, err := sim.New(cfg.Grid.Side, seed, cfg.Derived.Rule)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		s.Close()
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		sim:            s,
		rule:           cfg.Derived.Rule,
		seed:           seed,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Grid.Side*cfg.Grid.Side),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		eventDetector:  telemetry.NewEventDetector(cfg.Telemetry.EventHistorySize, eventThresholds(cfg)),
		outputManager:  om,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}
	s.SetPhaseTimer(g.perfCollector)

	if !opts.Headless {
		g.initFrontEnd(opts.Mute)
	}

	g.logStartup()
	return g, nil
}

func eventThresholds(cfg *config.Config) telemetry.EventThresholds {
	return telemetry.EventThresholds{
		CrashDrop:     cfg.Events.Crash.DropPercent,
		CrashMinPeak:  cfg.Events.Crash.MinPeak,
		BoomRise:      cfg.Events.Boom.RisePercent,
		BoomMinBase:   cfg.Events.Boom.MinBase,
		StableCV:      cfg.Events.Stable.CVThreshold,
		StableWindows: cfg.Events.Stable.StableWindows,
	}
}

// initFrontEnd creates renderers and audio. Requires an open raylib window.
func (g *Game) initFrontEnd(mute bool) {
	size := int32(g.cfg.Screen.Height)
	panelWidth := int32(g.cfg.Screen.Width-g.cfg.Screen.Height) - 20

	g.camera = camera.New(float32(size), g.sim.Side())
	g.cells = renderer.NewCellRenderer(size)
	g.cells.Init(g.sim.Side())
	g.hud = ui.NewHUD(panelWidth, bucketColors(g.cells.Palette))
	g.controls = ui.NewControlsPanel(panelWidth)
	g.overlays = ui.NewOverlayRegistry()

	if mute || !g.cfg.Audio.Enabled {
		return
	}
	ac := g.cfg.Audio
	synth := audio.NewSynth(g.sim.Published(), ac.SampleRate, ac.Volume, ac.Glide, audio.Voices{
		Young:  ac.YoungFreq,
		Middle: ac.MiddleFreq,
		Old:    ac.OldFreq,
	})
	g.stream = audio.Open(synth, ac.SampleRate, ac.BufferFrames)
}

// SetStatsCallback registers a function called with every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Update handles input and runs stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		if g.stepOnce {
			g.stepOnce = false
			g.step()
		}
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Run ticks headless until ctx is done, the game is stopped or maxTicks
// ticks have run (0 = unlimited). ctx is checked once per tick.
func (g *Game) Run(ctx context.Context, maxTicks int) error {
	start := time.Now()
	ran := 0
	for maxTicks <= 0 || ran < maxTicks {
		if g.stopped {
			break
		}
		if err := ctx.Err(); err != nil {
			slog.Info("run canceled", "tick", g.Tick(), "reason", err)
			return err
		}
		g.step()
		ran++
	}
	slog.Info("run finished", "ticks", ran, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// Stop requests the outer loop to end.
func (g *Game) Stop() {
	g.stopped = true
}

// ShouldStop reports whether Stop was requested.
func (g *Game) ShouldStop() bool {
	return g.stopped
}

// Tick returns the current simulation tick.
func (g *Game) Tick() uint64 {
	return g.sim.TickCount()
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// LastStats returns the most recently flushed telemetry window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Paused reports whether ticking is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Unload flushes pending telemetry and frees all resources.
func (g *Game) Unload() {
	if g.collector.Pending() > 0 {
		g.flushWindow()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.stream.Close()
	if g.cells != nil {
		g.cells.Unload()
	}
	g.sim.Close()
}
