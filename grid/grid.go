// Package grid provides the double-buffered square lattice the simulation
// runs on. The lattice is edge-clamped: cells outside [0,side) contribute
// nothing to a neighborhood.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/agelife/entropy"
)

// MaxCells bounds the size of a single buffer.
// Two buffers of this many uint32 cells come to 2 GiB.
const MaxCells = 1 << 28

// seedThreshold is the alive cutoff for seeded fills, compared unsigned.
const seedThreshold = uint64(math.MaxInt64 / 4)

// ErrInvalidSide is returned when the grid side is not positive.
var ErrInvalidSide = errors.New("grid side must be positive")

// AllocationError reports that the cell buffers could not be obtained.
type AllocationError struct {
	Side  int
	Cells uint64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("grid: cannot allocate two buffers of %d cells (side %d, limit %d)", e.Cells, e.Side, MaxCells)
}

// Cell is the set of cell representations a grid can hold.
// Zero is dead; any other value is alive.
type Cell interface {
	~uint8 | ~uint32
}

// Grid owns two equally sized buffers. One holds the current generation,
// the other is the write target for the next.
type Grid[C Cell] struct {
	side   int
	cells  [2][]C
	active int
}

// New allocates both buffers for a side x side grid.
func New[C Cell](side int) (*Grid[C], error) {
	if side <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSide, side)
	}
	n := uint64(side) * uint64(side)
	if side > 1<<31 || n > MaxCells {
		return nil, &AllocationError{Side: side, Cells: n}
	}
	return &Grid[C]{
		side:  side,
		cells: [2][]C{make([]C, n), make([]C, n)},
	}, nil
}

// Side returns the edge length in cells.
func (g *Grid[C]) Side() int {
	return g.side
}

// Len returns the number of cells in one buffer.
func (g *Grid[C]) Len() int {
	return g.side * g.side
}

// Index maps (x, y) to a linear index.
func (g *Grid[C]) Index(x, y int) int {
	return x + y*g.side
}

// Seed fills the current buffer from the chained hash stream starting at seed.
// Cell i is alive iff r = Mix64(r ^ i) exceeds MaxInt64/4.
// The write target is left untouched.
func (g *Grid[C]) Seed(seed uint64) {
	cur := g.cells[g.active]
	r := seed
	for i := range cur {
		r = entropy.Mix64(r ^ uint64(i))
		if r > seedThreshold {
			cur[i] = 1
		} else {
			cur[i] = 0
		}
	}
}

// Set writes a single cell of the current generation.
func (g *Grid[C]) Set(x, y int, c C) {
	g.cells[g.active][x+y*g.side] = c
}

// Clear kills every cell of the current generation.
func (g *Grid[C]) Clear() {
	clear(g.cells[g.active])
}

// Current returns a read-only view of the current generation.
// The view is only valid until the next Swap.
func (g *Grid[C]) Current() View[C] {
	return View[C]{cells: g.cells[g.active], side: g.side}
}

// WriteTarget returns the buffer the next generation must be written into.
// Every cell must be overwritten before Swap.
func (g *Grid[C]) WriteTarget() []C {
	return g.cells[1-g.active]
}

// Swap makes the write target the current generation.
func (g *Grid[C]) Swap() {
	g.active = 1 - g.active
}
