// Package engine computes successive generations of a grid.
//
// Two rule families are supported: the classic binary Life rule and the aged
// lifespan rule, where cells carry an age and die of old age at a jittered
// per-cell lifespan.
package engine

import (
	"math"

	"github.com/pthm-cable/agelife/entropy"
	"github.com/pthm-cable/agelife/grid"
)

// Rule computes the next value of one cell.
type Rule[C grid.Cell] interface {
	// Next returns the next state of a cell given its current value, its live
	// neighbor count and the first of its entropy counter values.
	Next(curr C, neighbors int, counter uint64) C

	// Draws is the number of entropy counter values each cell consumes per tick.
	Draws() uint64
}

// Classic is the binary Life rule with a configurable birth count.
type Classic struct {
	BirthThreshold int
}

// Next implements Rule.
func (r Classic) Next(curr uint8, n int, _ uint64) uint8 {
	if curr != 0 {
		if n <= 1 || n >= 4 {
			return 0
		}
		return 1
	}
	if n == r.BirthThreshold {
		return 1
	}
	return 0
}

// Draws implements Rule. The classic rule uses no entropy.
func (Classic) Draws() uint64 { return 0 }

// Aged is the lifespan rule. Cells hold an age; zero is dead.
type Aged struct {
	BirthThreshold int
	MinLifespan    uint32
	MaxLifespan    uint32

	// Jitter upper bounds, already rounded from the spread fractions.
	maxSpread uint32
	minSpread uint32
}

// NewAged builds an aged rule. maxSpread and minSpread are fractions of the
// respective lifespan used as the jitter range (0.9 and 0.3 by default).
func NewAged(birthThreshold int, minLifespan, maxLifespan uint32, maxSpread, minSpread float64) Aged {
	return Aged{
		BirthThreshold: birthThreshold,
		MinLifespan:    minLifespan,
		MaxLifespan:    maxLifespan,
		maxSpread:      uint32(math.Round(maxSpread * float64(maxLifespan))),
		minSpread:      uint32(math.Round(minSpread * float64(minLifespan))),
	}
}

// Spreads returns the rounded jitter ranges for the max and min lifespans.
func (r Aged) Spreads() (maxSpread, minSpread uint32) {
	return r.maxSpread, r.minSpread
}

// EffectiveLifespans returns the jittered (min, max) lifespans a cell sees
// for the given counter.
func (r Aged) EffectiveLifespans(curr uint32, n int, counter uint64) (effMin, effMax uint32) {
	effMax = r.MaxLifespan + entropy.Jitter(counter, n, curr, r.maxSpread)
	effMin = r.MinLifespan + entropy.Jitter(counter+1, n, curr, r.minSpread)
	return effMin, effMax
}

// Next implements Rule.
func (r Aged) Next(curr uint32, n int, counter uint64) uint32 {
	if curr == 0 {
		if n == r.BirthThreshold {
			return 1
		}
		return 0
	}

	effMin, effMax := r.EffectiveLifespans(curr, n, counter)
	switch {
	case curr < effMin:
		// Too young to die.
		return curr + 1
	case n <= 1 || n >= 4:
		return 0
	case curr >= effMax:
		return 0
	default:
		return curr + 1
	}
}

// Draws implements Rule: one value for the max jitter, one for the min.
func (Aged) Draws() uint64 { return 2 }
