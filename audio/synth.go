// Package audio sonifies the published population fractions.
package audio

import (
	"math"

	"github.com/pthm-cable/agelife/sim"
)

const numVoices = 3

// Voice frequencies in Hz, one per age bucket.
type Voices struct {
	Young  float64
	Middle float64
	Old    float64
}

// Synth mixes three sine voices whose amplitudes follow the young, middle
// and old fractions. Fill is meant to be called from an audio callback and
// never allocates or blocks.
type Synth struct {
	source     sim.FractionSource
	sampleRate float64
	volume     float32
	glide      float32

	step  [numVoices]float64 // phase increment per sample, radians
	phase [numVoices]float64
	amp   [numVoices]float32
}

// NewSynth creates a synth reading fractions from source.
// glide is the per-sample smoothing factor applied to amplitude changes.
func NewSynth(source sim.FractionSource, sampleRate int, volume, glide float64, v Voices) *Synth {
	if glide <= 0 || glide > 1 {
		glide = 1
	}
	s := &Synth{
		source:     source,
		sampleRate: float64(sampleRate),
		volume:     float32(volume),
		glide:      float32(glide),
	}
	s.SetVoices(v)
	return s
}

// SetVoices changes the voice frequencies. Phases carry over.
func (s *Synth) SetVoices(v Voices) {
	for i, f := range [numVoices]float64{v.Young, v.Middle, v.Old} {
		s.step[i] = 2 * math.Pi * f / s.sampleRate
	}
}

// Amplitudes returns the current smoothed voice amplitudes.
func (s *Synth) Amplitudes() [numVoices]float32 {
	return s.amp
}

// Fill writes len(out) mono samples. Fractions are read once per call.
func (s *Synth) Fill(out []float32) {
	young, middle, old := s.source.Load()
	target := [numVoices]float32{young * s.volume, middle * s.volume, old * s.volume}

	for n := range out {
		var mix float32
		for i := 0; i < numVoices; i++ {
			s.amp[i] += (target[i] - s.amp[i]) * s.glide
			mix += s.amp[i] * float32(math.Sin(s.phase[i]))
			s.phase[i] += s.step[i]
			if s.phase[i] >= 2*math.Pi {
				s.phase[i] -= 2 * math.Pi
			}
		}
		out[n] = mix
	}
}
