package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/agelife/summary"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid simulation config")

// ErrCellSize is returned when a window does not divide evenly into cells.
var ErrCellSize = errors.New("window size must be a multiple of the grid side")

// Variant selects the rule family.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantAged    Variant = "aged"
)

// RuleConfig selects and parameterizes the transition rule and summary policy.
type RuleConfig struct {
	Variant        Variant
	BirthThreshold int
	MinLifespan    uint32
	MaxLifespan    uint32
	MaxSpread      float64 // fraction of MaxLifespan used as jitter range
	MinSpread      float64 // fraction of MinLifespan used as jitter range
	BucketPolicy   summary.Policy
	EMASmoothing   float64 // weight of each new cell in the average age
	Workers        int     // transition workers; 0 or 1 runs inline
}

// DefaultRuleConfig returns the aged rule with the original jitter spreads.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Variant:        VariantAged,
		BirthThreshold: 3,
		MinLifespan:    40,
		MaxLifespan:    120,
		MaxSpread:      0.9,
		MinSpread:      0.3,
		BucketPolicy:   summary.PolicyAdaptive,
		EMASmoothing:   0.1,
	}
}

// Validate reports the first problem with the config.
func (rc RuleConfig) Validate() error {
	switch rc.Variant {
	case VariantClassic, VariantAged:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, rc.Variant)
	}
	if rc.BirthThreshold < 1 || rc.BirthThreshold > 8 {
		return fmt.Errorf("%w: birth threshold %d outside [1,8]", ErrInvalidConfig, rc.BirthThreshold)
	}
	if rc.MinLifespan >= rc.MaxLifespan {
		return fmt.Errorf("%w: min lifespan %d must be below max lifespan %d", ErrInvalidConfig, rc.MinLifespan, rc.MaxLifespan)
	}
	if !validSpread(rc.MaxSpread) || !validSpread(rc.MinSpread) {
		return fmt.Errorf("%w: spreads must be finite and non-negative (max %v, min %v)", ErrInvalidConfig, rc.MaxSpread, rc.MinSpread)
	}
	if _, err := summary.ParsePolicy(string(rc.BucketPolicy)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !(rc.EMASmoothing > 0 && rc.EMASmoothing <= 1) {
		return fmt.Errorf("%w: ema smoothing %v outside (0,1]", ErrInvalidConfig, rc.EMASmoothing)
	}
	if rc.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, rc.Workers)
	}
	return nil
}

func validSpread(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// CellSize returns the pixel size of one cell when a square window of the
// given size shows a grid of the given side.
func CellSize(window, side int) (int, error) {
	if side <= 0 {
		return 0, fmt.Errorf("%w: grid side %d", ErrInvalidConfig, side)
	}
	if window < side || window%side != 0 {
		return 0, fmt.Errorf("%w: window %d, side %d", ErrCellSize, window, side)
	}
	return window / side, nil
}
