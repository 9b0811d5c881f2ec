package grid

// View is a read-only window onto one buffer.
type View[C Cell] struct {
	cells []C
	side  int
}

// NewView wraps cells as a side x side view. The slice is not copied.
func NewView[C Cell](cells []C, side int) View[C] {
	return View[C]{cells: cells, side: side}
}

// Side returns the edge length in cells.
func (v View[C]) Side() int { return v.side }

// Len returns the number of cells.
func (v View[C]) Len() int { return len(v.cells) }

// At returns the cell at (x, y).
func (v View[C]) At(x, y int) C {
	return v.cells[x+y*v.side]
}

// Index returns the cell at linear index i.
func (v View[C]) Index(i int) C {
	return v.cells[i]
}

// AliveNeighbors counts live cells in the Moore neighborhood of (x, y).
// Neighbors past an edge are ignored; there is no wraparound.
func (v View[C]) AliveNeighbors(x, y int) int {
	side := v.side
	x0, x1 := x-1, x+1
	y0, y1 := y-1, y+1
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= side {
		x1 = side - 1
	}
	if y1 >= side {
		y1 = side - 1
	}

	n := 0
	for yy := y0; yy <= y1; yy++ {
		row := v.cells[yy*side : yy*side+side]
		for xx := x0; xx <= x1; xx++ {
			if row[xx] != 0 && (xx != x || yy != y) {
				n++
			}
		}
	}
	return n
}

// Population returns the number of live cells.
func (v View[C]) Population() int {
	n := 0
	for _, c := range v.cells {
		if c != 0 {
			n++
		}
	}
	return n
}

// CopyTo copies the cells into dst, which must hold at least Len cells.
func (v View[C]) CopyTo(dst []C) int {
	return copy(dst, v.cells)
}
