package engine

import (
	"sync"

	"github.com/pthm-cable/agelife/grid"
)

// parallelRowThreshold is the minimum grid side to split a step across workers.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelRowThreshold = 64

// rowChunk is a range of rows for a worker to process.
type rowChunk struct {
	index  int
	y0, y1 int
}

// workerPool holds persistent goroutines that compute row chunks.
type workerPool[C grid.Cell] struct {
	numWorkers int
	results    []Counts

	workChan chan rowChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	engine   *Engine[C]
}

func newWorkerPool[C grid.Cell](numWorkers int) *workerPool[C] {
	return &workerPool[C]{
		numWorkers: numWorkers,
		results:    make([]Counts, numWorkers),
	}
}

// start launches the worker goroutines.
func (p *workerPool[C]) start(e *Engine[C]) {
	if p.running {
		return
	}

	p.engine = e
	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool[C]) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *workerPool[C]) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.results[chunk.index] = p.engine.stepRows(chunk.y0, chunk.y1)
			p.doneChan <- struct{}{}
		}
	}
}

// run splits side rows into chunks, waits for all of them and sums the counts.
func (p *workerPool[C]) run(e *Engine[C], side int) Counts {
	if !p.running {
		p.start(e)
	}

	chunkSize := (side + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		y0 := w * chunkSize
		y1 := min(y0+chunkSize, side)
		if y0 >= y1 {
			continue
		}
		p.results[w] = Counts{}
		p.workChan <- rowChunk{index: w, y0: y0, y1: y1}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}

	var total Counts
	for w := 0; w < dispatched; w++ {
		total.add(p.results[w])
	}
	return total
}
