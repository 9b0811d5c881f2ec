package summary

import (
	"math"
	"testing"

	"github.com/pthm-cable/agelife/entropy"
	"github.com/pthm-cable/agelife/grid"
)

func viewOf(cells []uint32, side int) grid.View[uint32] {
	return grid.NewView(cells, side)
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("fixed"); err != nil || p != PolicyFixed {
		t.Errorf("ParsePolicy(fixed) = %v, %v", p, err)
	}
	if p, err := ParsePolicy("adaptive"); err != nil || p != PolicyAdaptive {
		t.Errorf("ParsePolicy(adaptive) = %v, %v", p, err)
	}
	if _, err := ParsePolicy("median"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestFixedPolicyThresholds(t *testing.T) {
	tests := []struct {
		age  uint32
		want ColorClass
	}{
		{1, ClassYoung},
		{9, ClassYoung},
		{10, ClassMiddle},
		{19, ClassMiddle},
		{20, ClassOld},
		{500, ClassOld},
	}

	s := New(PolicyFixed, 10, 30, 0.1, 1)
	for _, tt := range tests {
		Summarize(s, viewOf([]uint32{tt.age}, 1))
		if got := s.Class(0); got != tt.want {
			t.Errorf("age %d: class %v, want %v", tt.age, got, tt.want)
		}
	}
	if s.AverageAge() != 15 {
		t.Errorf("fixed policy moved the average age to %v", s.AverageAge())
	}
	if s.Tracking() {
		t.Error("fixed policy should not report tracking")
	}
}

func TestFixedFractions(t *testing.T) {
	// max 30: young < 10, middle < 20, old otherwise. Dead cells are young.
	cells := []uint32{0, 5, 12, 25}
	s := New(PolicyFixed, 10, 30, 0.1, len(cells))
	f := Summarize(s, viewOf(cells, 2))

	if f.Young != 0.5 || f.Middle != 0.25 || f.Old != 0.25 {
		t.Errorf("fractions = %+v, want 0.5/0.25/0.25", f)
	}
	if s.Class(0) != ClassDead {
		t.Errorf("dead cell class = %v, want dead", s.Class(0))
	}
}

func TestAdaptiveIncrementalAverage(t *testing.T) {
	cells := []uint32{0, 100, 3, 50}
	s := New(PolicyAdaptive, 20, 100, 0.1, len(cells))

	// Replay the fold by hand.
	avg := 50.0
	var wantClasses []ColorClass
	for _, c := range cells {
		age := float64(c)
		fifth := avg / 5
		var class ColorClass
		switch {
		case c == 0:
			class = ClassDead
		case age < fifth:
			class = ClassYoung
		case age < 4*fifth:
			class = ClassMiddle
		case age < 20:
			class = ClassOld
		default:
			class = ClassDeepOld
		}
		wantClasses = append(wantClasses, class)
		avg = 0.1*age + 0.9*avg
	}

	Summarize(s, viewOf(cells, 2))
	if math.Abs(s.AverageAge()-avg) > 1e-12 {
		t.Errorf("average age = %v, want %v", s.AverageAge(), avg)
	}
	for i, want := range wantClasses {
		if got := s.Class(i); got != want {
			t.Errorf("cell %d class = %v, want %v", i, got, want)
		}
	}
	if !s.Tracking() {
		t.Error("adaptive policy should report tracking")
	}
}

func TestAdaptiveOldSplit(t *testing.T) {
	// avg 10: young < 2, middle < 8, old >= 8; recent old below min lifespan 12.
	s := New(PolicyAdaptive, 12, 20, 0.1, 1)

	Summarize(s, viewOf([]uint32{9}, 1))
	if got := s.Class(0); got != ClassOld {
		t.Errorf("age 9 class = %v, want old", got)
	}

	s = New(PolicyAdaptive, 12, 20, 0.1, 1)
	Summarize(s, viewOf([]uint32{15}, 1))
	if got := s.Class(0); got != ClassDeepOld {
		t.Errorf("age 15 class = %v, want deep_old", got)
	}
}

func TestAverageAgePersists(t *testing.T) {
	s := New(PolicyAdaptive, 10, 40, 0.1, 4)
	cells := []uint32{0, 0, 0, 0}
	Summarize(s, viewOf(cells, 2))
	first := s.AverageAge()
	Summarize(s, viewOf(cells, 2))
	if !(s.AverageAge() < first) {
		t.Errorf("expected average to keep decaying across calls: %v then %v", first, s.AverageAge())
	}
}

func TestFractionConservation(t *testing.T) {
	const side = 50
	cells := make([]uint32, side*side)
	for _, policy := range []Policy{PolicyFixed, PolicyAdaptive} {
		s := New(policy, 30, 90, 0.1, len(cells))
		for round := uint64(0); round < 20; round++ {
			for i := range cells {
				cells[i] = uint32(entropy.Mix64(round<<32|uint64(i)) % 150)
			}
			f := Summarize(s, viewOf(cells, side))
			if math.Abs(f.Sum()-1) > 1e-6 {
				t.Fatalf("%s round %d: fractions sum to %v", policy, round, f.Sum())
			}
			for _, v := range []float64{f.Young, f.Middle, f.Old} {
				if v < 0 || v > 1 {
					t.Fatalf("%s round %d: fraction %v out of [0,1]", policy, round, v)
				}
			}
		}
	}
}

func TestClassicCellsSummarize(t *testing.T) {
	cells := []uint8{0, 1, 1, 0}
	s := New(PolicyFixed, 10, 30, 0.1, len(cells))
	f := Summarize(s, grid.NewView(cells, 2))
	if f.Young != 1 {
		t.Errorf("binary cells should all be young under fixed policy, got %+v", f)
	}
	if s.Class(1) != ClassYoung || s.Class(0) != ClassDead {
		t.Errorf("unexpected classes %v %v", s.Class(0), s.Class(1))
	}
}

func TestColorClassString(t *testing.T) {
	names := map[ColorClass]string{
		ClassDead: "dead", ClassYoung: "young", ClassMiddle: "middle",
		ClassOld: "old", ClassDeepOld: "deep_old",
	}
	for c, want := range names {
		if c.String() != want {
			t.Errorf("%d.String() = %q, want %q", c, c.String(), want)
		}
	}
}

func TestClassifyLeavesAverage(t *testing.T) {
	s := New(PolicyAdaptive, 10, 100, 0.5, 4)
	before := s.AverageAge()

	// avg 50: young < 10, middle < 40, old < min 10 never, deep old otherwise
	Classify(s, viewOf([]uint32{0, 5, 20, 45}, 2))

	if s.AverageAge() != before {
		t.Errorf("average moved from %v to %v", before, s.AverageAge())
	}
	want := []ColorClass{ClassDead, ClassYoung, ClassMiddle, ClassDeepOld}
	for i, w := range want {
		if got := s.Class(i); got != w {
			t.Errorf("class %d = %s, want %s", i, got, w)
		}
	}
}
