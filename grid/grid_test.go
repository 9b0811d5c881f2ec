package grid

import (
	"errors"
	"math"
	"testing"
)

func filled(t *testing.T, side int) *Grid[uint8] {
	t.Helper()
	g, err := New[uint8](side)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", side, err)
	}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			g.Set(x, y, 1)
		}
	}
	return g
}

func TestNewInvalidSide(t *testing.T) {
	for _, side := range []int{0, -1, -512} {
		if _, err := New[uint8](side); !errors.Is(err, ErrInvalidSide) {
			t.Errorf("New(%d) error = %v, want ErrInvalidSide", side, err)
		}
	}
}

func TestNewAllocationError(t *testing.T) {
	_, err := New[uint32](1 << 15)
	var allocErr *AllocationError
	if !errors.As(err, &allocErr) {
		t.Fatalf("expected AllocationError, got %v", err)
	}
	if allocErr.Side != 1<<15 {
		t.Errorf("AllocationError.Side = %d, want %d", allocErr.Side, 1<<15)
	}
}

func TestNeighborBoundsFullGrid(t *testing.T) {
	const side = 6
	v := filled(t, side).Current()

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"top-left corner", 0, 0, 3},
		{"top-right corner", side - 1, 0, 3},
		{"bottom-left corner", 0, side - 1, 3},
		{"bottom-right corner", side - 1, side - 1, 3},
		{"top edge", 2, 0, 5},
		{"left edge", 0, 3, 5},
		{"right edge", side - 1, 2, 5},
		{"bottom edge", 3, side - 1, 5},
		{"interior", 2, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.AliveNeighbors(tt.x, tt.y); got != tt.want {
				t.Errorf("AliveNeighbors(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNeighborsNoWraparound(t *testing.T) {
	g, _ := New[uint8](5)
	// Live cells on the far column and far row only.
	for i := 0; i < 5; i++ {
		g.Set(4, i, 1)
		g.Set(i, 4, 1)
	}
	v := g.Current()
	if got := v.AliveNeighbors(0, 0); got != 0 {
		t.Errorf("corner (0,0) counted %d neighbors across the edge, want 0", got)
	}
	if got := v.AliveNeighbors(0, 2); got != 0 {
		t.Errorf("edge (0,2) counted %d neighbors across the edge, want 0", got)
	}
}

func TestNeighborsExcludeSelf(t *testing.T) {
	g, _ := New[uint32](3)
	g.Set(1, 1, 42)
	if got := g.Current().AliveNeighbors(1, 1); got != 0 {
		t.Errorf("lone cell counted itself: got %d", got)
	}
}

func TestSwapRoles(t *testing.T) {
	g, _ := New[uint8](2)
	g.Set(0, 0, 1)

	next := g.WriteTarget()
	for i := range next {
		next[i] = 1
	}
	if got := g.Current().Population(); got != 1 {
		t.Fatalf("write target leaked into current: population %d", got)
	}

	g.Swap()
	if got := g.Current().Population(); got != 4 {
		t.Errorf("after swap population = %d, want 4", got)
	}
	if g.WriteTarget()[0] != 1 || g.WriteTarget()[1] != 0 {
		t.Error("expected previous generation to become the write target")
	}
}

func TestSeedLeavesWriteTargetUntouched(t *testing.T) {
	g, _ := New[uint8](64)
	g.Seed(0xcafebabe)
	for i, c := range g.WriteTarget() {
		if c != 0 {
			t.Fatalf("write target cell %d = %d after Seed", i, c)
		}
	}
}

func TestSeedDeterministic(t *testing.T) {
	a, _ := New[uint8](32)
	b, _ := New[uint8](32)
	a.Seed(7)
	b.Seed(7)
	for i := 0; i < a.Len(); i++ {
		if a.Current().Index(i) != b.Current().Index(i) {
			t.Fatalf("seeded grids differ at %d", i)
		}
	}
}

func TestSeedDensity(t *testing.T) {
	// Alive iff the hash exceeds MaxInt64/4 over the full uint64 range.
	want := 1 - float64(uint64(math.MaxInt64/4))/math.Pow(2, 64)

	for _, seed := range []uint64{0xcafebabe, 1, 42, 0xdeadbeef} {
		g, err := New[uint8](512)
		if err != nil {
			t.Fatal(err)
		}
		g.Seed(seed)
		got := float64(g.Current().Population()) / float64(g.Len())
		if math.Abs(got-want) > 0.02 {
			t.Errorf("seed %#x: alive fraction %.4f, want %.4f ± 0.02", seed, got, want)
		}
	}
}

func TestAgedSeedStartsAtOne(t *testing.T) {
	g, _ := New[uint32](16)
	g.Seed(0xcafebabe)
	v := g.Current()
	for i := 0; i < v.Len(); i++ {
		if c := v.Index(i); c > 1 {
			t.Fatalf("cell %d seeded with age %d, want 0 or 1", i, c)
		}
	}
}
