package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{4, 2, 8, 6}
	s := Summarize(values)

	if s.Mean != 5 {
		t.Errorf("mean = %v, want 5", s.Mean)
	}
	// Population std of {2,4,6,8} is sqrt(5).
	if math.Abs(s.Std-math.Sqrt(5)) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(5))
	}
	if s.Min != 2 || s.Max != 8 || s.P50 != 5 {
		t.Errorf("min/max/p50 = %v/%v/%v, want 2/8/5", s.Min, s.Max, s.P50)
	}
	if values[0] != 4 {
		t.Error("Summarize reordered its input")
	}
}

func TestSummarizeEmptyAndConstant(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty = %+v, want zero", s)
	}

	s := Summarize([]float64{7, 7, 7})
	if s.Std != 0 || s.CV() != 0 {
		t.Errorf("constant sample std %v cv %v, want 0", s.Std, s.CV())
	}
	if (Summary{}).CV() != 0 {
		t.Error("zero mean CV should be 0")
	}
}
