package audio

import (
	"math"
	"testing"

	"github.com/pthm-cable/agelife/sim"
	"github.com/pthm-cable/agelife/summary"
)

var testVoices = Voices{Young: 660, Middle: 440, Old: 220}

func TestSynth_SilentWhenEmpty(t *testing.T) {
	var p sim.Published
	s := NewSynth(&p, 44100, 0.5, 0.01, testVoices)

	out := make([]float32, 256)
	s.Fill(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func TestSynth_AmplitudesFollowFractions(t *testing.T) {
	var p sim.Published
	p.Store(summary.Fractions{Young: 0.5, Middle: 0.25, Old: 0.25})
	s := NewSynth(&p, 44100, 1, 0.05, testVoices)

	out := make([]float32, 4096)
	s.Fill(out)

	amps := s.Amplitudes()
	want := [3]float32{0.5, 0.25, 0.25}
	for i := range want {
		if math.Abs(float64(amps[i]-want[i])) > 1e-3 {
			t.Errorf("voice %d amplitude = %v, want %v", i, amps[i], want[i])
		}
	}
	for i, v := range out {
		if v > 1.0001 || v < -1.0001 {
			t.Fatalf("sample %d = %v outside [-1,1]", i, v)
		}
	}
}

func TestSynth_GlideSmoothsJumps(t *testing.T) {
	var p sim.Published
	p.Store(summary.Fractions{Young: 1})
	s := NewSynth(&p, 44100, 1, 0.001, testVoices)

	s.Fill(make([]float32, 1))
	if a := s.Amplitudes()[0]; a <= 0 || a > 0.01 {
		t.Errorf("amplitude after one sample = %v, want small positive step", a)
	}
}

func TestSynth_FillDoesNotAllocate(t *testing.T) {
	var p sim.Published
	p.Store(summary.Fractions{Young: 0.2, Middle: 0.3, Old: 0.5})
	s := NewSynth(&p, 48000, 0.2, 0.01, testVoices)
	out := make([]float32, 1024)

	allocs := testing.AllocsPerRun(50, func() { s.Fill(out) })
	if allocs != 0 {
		t.Errorf("Fill allocated %v times per call", allocs)
	}
}

func TestSynth_PhaseStaysBounded(t *testing.T) {
	var p sim.Published
	p.Store(summary.Fractions{Old: 1})
	s := NewSynth(&p, 8000, 1, 1, testVoices)
	s.Fill(make([]float32, 100000))

	for i, ph := range s.phase {
		if ph < 0 || ph >= 2*math.Pi {
			t.Errorf("voice %d phase = %v outside [0, 2pi)", i, ph)
		}
	}
}
