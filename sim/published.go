package sim

import (
	"math"
	"sync/atomic"

	"github.com/pthm-cable/agelife/summary"
)

// FractionSource is read by consumers running on their own cadence, such as
// the audio callback.
type FractionSource interface {
	Load() (young, middle, old float32)
}

// Published holds the latest population fractions. Stores and loads are
// individually atomic; a reader may see fractions from two adjacent ticks.
type Published struct {
	young  atomic.Uint32
	middle atomic.Uint32
	old    atomic.Uint32
}

// Store publishes new fractions.
func (p *Published) Store(f summary.Fractions) {
	p.young.Store(math.Float32bits(float32(f.Young)))
	p.middle.Store(math.Float32bits(float32(f.Middle)))
	p.old.Store(math.Float32bits(float32(f.Old)))
}

// Load returns the latest fractions. It never blocks or allocates.
func (p *Published) Load() (young, middle, old float32) {
	return math.Float32frombits(p.young.Load()),
		math.Float32frombits(p.middle.Load()),
		math.Float32frombits(p.old.Load())
}
