// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/agelife/sim"
	"github.com/pthm-cable/agelife/summary"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig      `yaml:"screen"`
	Grid      GridConfig        `yaml:"grid"`
	Rule      RuleConfig        `yaml:"rule"`
	Audio     AudioConfig       `yaml:"audio"`
	Telemetry TelemetryConfig   `yaml:"telemetry"`
	Events    EventsConfig      `yaml:"events"`
	Presets   map[string]Preset `yaml:"presets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// The grid is drawn in a Height x Height square; any extra width holds the panel.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds lattice dimensions and the initial fill seed.
type GridConfig struct {
	Side int    `yaml:"side"`
	Seed uint64 `yaml:"seed"`
}

// RuleConfig holds transition rule and bucketing parameters.
type RuleConfig struct {
	Variant        string  `yaml:"variant"`         // classic | aged
	BirthThreshold int     `yaml:"birth_threshold"` // live neighbors needed for a birth
	MinLifespan    uint32  `yaml:"min_lifespan"`
	MaxLifespan    uint32  `yaml:"max_lifespan"`
	MaxSpread      float64 `yaml:"max_spread"`    // jitter range as fraction of max_lifespan
	MinSpread      float64 `yaml:"min_spread"`    // jitter range as fraction of min_lifespan
	BucketPolicy   string  `yaml:"bucket_policy"` // fixed | adaptive
	EMASmoothing   float64 `yaml:"ema_smoothing"`
	Workers        int     `yaml:"workers"` // 0 = GOMAXPROCS
}

// AudioConfig holds sonification parameters.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	BufferFrames int     `yaml:"buffer_frames"`
	Volume       float64 `yaml:"volume"`
	YoungFreq    float64 `yaml:"young_freq"`
	MiddleFreq   float64 `yaml:"middle_freq"`
	OldFreq      float64 `yaml:"old_freq"`
	Glide        float64 `yaml:"glide"` // per-sample amplitude smoothing factor
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	EventHistorySize    int `yaml:"event_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// EventsConfig holds population event detection thresholds.
type EventsConfig struct {
	Crash  CrashConfig  `yaml:"crash"`
	Boom   BoomConfig   `yaml:"boom"`
	Stable StableConfig `yaml:"stable"`
}

// CrashConfig holds population crash detection parameters.
type CrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinPeak     int     `yaml:"min_peak"`
}

// BoomConfig holds population boom detection parameters.
type BoomConfig struct {
	RisePercent float64 `yaml:"rise_percent"`
	MinBase     int     `yaml:"min_base"`
}

// StableConfig holds stable population detection parameters.
type StableConfig struct {
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// Preset overrides a subset of fields. Zero values leave the field as is.
type Preset struct {
	Side           int    `yaml:"side"`
	Variant        string `yaml:"variant"`
	BirthThreshold int    `yaml:"birth_threshold"`
	MinLifespan    uint32 `yaml:"min_lifespan"`
	MaxLifespan    uint32 `yaml:"max_lifespan"`
	BucketPolicy   string `yaml:"bucket_policy"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Rule     sim.RuleConfig // validated rule config
	CellSize int            // pixels per cell edge
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyPreset overlays the named preset and recomputes derived values.
func (c *Config) ApplyPreset(name string) error {
	p, ok := c.Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (have %v)", name, c.PresetNames())
	}
	if p.Side != 0 {
		c.Grid.Side = p.Side
	}
	if p.Variant != "" {
		c.Rule.Variant = p.Variant
	}
	if p.BirthThreshold != 0 {
		c.Rule.BirthThreshold = p.BirthThreshold
	}
	if p.MinLifespan != 0 {
		c.Rule.MinLifespan = p.MinLifespan
	}
	if p.MaxLifespan != 0 {
		c.Rule.MaxLifespan = p.MaxLifespan
	}
	if p.BucketPolicy != "" {
		c.Rule.BucketPolicy = p.BucketPolicy
	}
	return c.computeDerived()
}

// PresetNames returns the configured preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recompute re-validates the config after fields were changed in place.
func (c *Config) Recompute() error {
	return c.computeDerived()
}

// SimRule converts the rule section into a simulation rule config.
func (r RuleConfig) SimRule() sim.RuleConfig {
	return sim.RuleConfig{
		Variant:        sim.Variant(r.Variant),
		BirthThreshold: r.BirthThreshold,
		MinLifespan:    r.MinLifespan,
		MaxLifespan:    r.MaxLifespan,
		MaxSpread:      r.MaxSpread,
		MinSpread:      r.MinSpread,
		BucketPolicy:   summary.Policy(r.BucketPolicy),
		EMASmoothing:   r.EMASmoothing,
		Workers:        r.Workers,
	}
}

// computeDerived validates and calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	rule := c.Rule.SimRule()
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("rule config: %w", err)
	}
	if c.Grid.Side <= 0 {
		return fmt.Errorf("grid config: %w: side %d", sim.ErrInvalidConfig, c.Grid.Side)
	}
	cellSize, err := sim.CellSize(c.Screen.Height, c.Grid.Side)
	if err != nil {
		return fmt.Errorf("screen config: %w", err)
	}
	if c.Screen.Width < c.Screen.Height {
		return fmt.Errorf("screen config: %w: width %d below height %d", sim.ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	}

	if rule.Workers == 0 {
		rule.Workers = runtime.GOMAXPROCS(0)
	}
	c.Derived.Rule = rule
	c.Derived.CellSize = cellSize
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
