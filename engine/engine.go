package engine

import (
	"github.com/pthm-cable/agelife/entropy"
	"github.com/pthm-cable/agelife/grid"
)

// Counts summarizes the population change produced by one step.
type Counts struct {
	Alive  int
	Births int
	Deaths int
}

func (c *Counts) add(o Counts) {
	c.Alive += o.Alive
	c.Births += o.Births
	c.Deaths += o.Deaths
}

// Engine advances a grid one generation at a time using a Rule.
// Cell i draws its entropy from counter values base+Draws*i onward, where base
// is the stream position at the start of the step, so results do not depend
// on how rows are split across workers.
type Engine[C grid.Cell] struct {
	rule   Rule[C]
	stream *entropy.Stream
	pool   *workerPool[C]

	// Per-step state read by workers.
	cur   grid.View[C]
	next  []C
	base  uint64
	draws uint64
}

// New creates an engine. workers <= 1 runs every step on the calling goroutine.
func New[C grid.Cell](rule Rule[C], stream *entropy.Stream, workers int) *Engine[C] {
	e := &Engine[C]{
		rule:   rule,
		stream: stream,
		draws:  rule.Draws(),
	}
	if workers > 1 {
		e.pool = newWorkerPool[C](workers)
	}
	return e
}

// Rule returns the engine's rule.
func (e *Engine[C]) Rule() Rule[C] {
	return e.rule
}

// Step computes next from cur. next must not alias cur and must hold
// cur.Len() cells; every one of them is overwritten.
func (e *Engine[C]) Step(cur grid.View[C], next []C) Counts {
	n := cur.Len()
	side := cur.Side()

	e.cur = cur
	e.next = next[:n]
	e.base = e.stream.Advance(e.draws * uint64(n))

	var counts Counts
	if e.pool == nil || side < parallelRowThreshold {
		counts = e.stepRows(0, side)
	} else {
		counts = e.pool.run(e, side)
	}

	e.cur = grid.View[C]{}
	e.next = nil
	return counts
}

// stepRows computes rows [y0, y1). Reads only e.cur, writes only its own
// rows of e.next.
func (e *Engine[C]) stepRows(y0, y1 int) Counts {
	var counts Counts
	side := e.cur.Side()
	for y := y0; y < y1; y++ {
		for x := 0; x < side; x++ {
			i := x + y*side
			curr := e.cur.Index(i)
			n := e.cur.AliveNeighbors(x, y)
			v := e.rule.Next(curr, n, e.base+e.draws*uint64(i))
			e.next[i] = v

			switch {
			case v != 0 && curr == 0:
				counts.Births++
			case v == 0 && curr != 0:
				counts.Deaths++
			}
			if v != 0 {
				counts.Alive++
			}
		}
	}
	return counts
}

// Close stops any worker goroutines.
func (e *Engine[C]) Close() {
	if e.pool != nil {
		e.pool.stop()
	}
}
