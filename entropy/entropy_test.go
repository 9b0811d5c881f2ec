package entropy

import "testing"

func TestMix64Known(t *testing.T) {
	if got := Mix64(0); got != 0 {
		t.Errorf("Mix64(0) = %#x, want 0", got)
	}

	// Avalanche: flipping one input bit should flip many output bits.
	a := Mix64(0xcafebabe)
	b := Mix64(0xcafebabe ^ 1)
	diff := a ^ b
	bits := 0
	for diff != 0 {
		bits += int(diff & 1)
		diff >>= 1
	}
	if bits < 16 {
		t.Errorf("expected strong avalanche, only %d bits differ", bits)
	}
}

func TestDrawDeterministic(t *testing.T) {
	for c := uint64(0); c < 100; c++ {
		if Draw(c, 3, 7) != Draw(c, 3, 7) {
			t.Fatalf("Draw not deterministic at counter %d", c)
		}
	}
	if Draw(10, 2, 5) == Draw(10, 3, 5) {
		t.Error("expected neighbor count to affect the draw")
	}
	if Draw(10, 2, 5) == Draw(10, 2, 6) {
		t.Error("expected age to affect the draw")
	}
}

func TestJitterRange(t *testing.T) {
	tests := []struct {
		name   string
		spread uint32
	}{
		{"zero spread", 0},
		{"unit spread", 1},
		{"small spread", 3},
		{"large spread", 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for c := uint64(0); c < 1000; c++ {
				j := Jitter(c, int(c%9), uint32(c), tt.spread)
				if tt.spread == 0 && j != 0 {
					t.Fatalf("expected 0 for zero spread, got %d", j)
				}
				if tt.spread > 0 && j >= tt.spread {
					t.Fatalf("jitter %d out of range [0,%d)", j, tt.spread)
				}
			}
		})
	}
}

func TestStreamAdvance(t *testing.T) {
	s := NewStream(5)
	if got := s.Next(); got != 5 {
		t.Errorf("Next() = %d, want 5", got)
	}
	if got := s.Counter(); got != 6 {
		t.Errorf("Counter() = %d, want 6", got)
	}
	base := s.Advance(10)
	if base != 6 {
		t.Errorf("Advance base = %d, want 6", base)
	}
	if got := s.Counter(); got != 16 {
		t.Errorf("Counter() after Advance = %d, want 16", got)
	}
}
