package telemetry

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/agelife/engine"
	"github.com/pthm-cable/agelife/sim"
	"github.com/pthm-cable/agelife/summary"
)

func result(tick uint64, alive, births, deaths int, f summary.Fractions) sim.TickResult {
	return sim.TickResult{
		Tick:      tick,
		Fractions: f,
		Counts:    engine.Counts{Alive: alive, Births: births, Deaths: deaths},
		Elapsed:   2 * time.Millisecond,
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(4, 100)

	c.Record(result(1, 10, 5, 1, summary.Fractions{Young: 1}))
	c.Record(result(2, 20, 4, 2, summary.Fractions{Young: 0.5, Middle: 0.5}))
	c.Record(result(3, 30, 3, 3, summary.Fractions{Middle: 1}))
	if c.ShouldFlush() {
		t.Fatal("flush requested before window filled")
	}
	r := result(4, 40, 2, 4, summary.Fractions{Old: 1})
	r.AverageAge, r.HasAverageAge = 12.5, true
	c.Record(r)
	if !c.ShouldFlush() {
		t.Fatal("expected flush after 4 ticks")
	}

	s := c.Flush()
	if s.WindowStartTick != 0 || s.WindowEndTick != 4 || s.Ticks != 4 {
		t.Errorf("window = %d..%d (%d ticks)", s.WindowStartTick, s.WindowEndTick, s.Ticks)
	}
	if s.Alive != 40 || s.AliveMean != 25 || s.AliveMin != 10 || s.AliveMax != 40 {
		t.Errorf("alive stats = %+v", s)
	}
	if s.Births != 14 || s.Deaths != 10 {
		t.Errorf("births/deaths = %d/%d, want 14/10", s.Births, s.Deaths)
	}
	if math.Abs(s.YoungMean-0.375) > 1e-9 || math.Abs(s.MiddleMean-0.375) > 1e-9 || math.Abs(s.OldMean-0.25) > 1e-9 {
		t.Errorf("bucket means = %v/%v/%v", s.YoungMean, s.MiddleMean, s.OldMean)
	}
	if s.Density != 0.4 || s.AverageAge != 12.5 {
		t.Errorf("density %v average age %v", s.Density, s.AverageAge)
	}
	if s.AvgTickUS != 2000 || s.TicksPerSec != 500 {
		t.Errorf("throughput = %dus %v/s", s.AvgTickUS, s.TicksPerSec)
	}

	if c.Pending() != 0 {
		t.Errorf("pending = %d after flush", c.Pending())
	}
	c.Record(result(5, 1, 0, 0, summary.Fractions{}))
	if next := c.Flush(); next.WindowStartTick != 4 || next.Births != 0 {
		t.Errorf("next window = %+v", next)
	}
}

func TestCollector_WithSimulation(t *testing.T) {
	s, err := sim.New(32, 7, sim.DefaultRuleConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	c := NewCollector(5, 32*32)
	var flushed []WindowStats
	for i := 0; i < 10; i++ {
		c.Record(s.Tick())
		if c.ShouldFlush() {
			flushed = append(flushed, c.Flush())
		}
	}

	if len(flushed) != 2 {
		t.Fatalf("flushed %d windows, want 2", len(flushed))
	}
	last := flushed[1]
	if last.Alive != s.Population() {
		t.Errorf("alive = %d, want %d", last.Alive, s.Population())
	}
	sum := last.YoungMean + last.MiddleMean + last.OldMean
	if last.Alive > 0 && math.Abs(sum-1) > 1e-3 {
		t.Errorf("bucket means sum to %v", sum)
	}
}
