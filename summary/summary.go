// Package summary buckets a completed generation into young, middle and old
// population fractions and assigns every cell a color class for display.
package summary

import (
	"fmt"

	"github.com/pthm-cable/agelife/grid"
)

// Policy selects how ages map to buckets.
type Policy string

const (
	// PolicyFixed buckets by thirds of the max lifespan.
	PolicyFixed Policy = "fixed"
	// PolicyAdaptive buckets relative to a running average age.
	PolicyAdaptive Policy = "adaptive"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyFixed, PolicyAdaptive:
		return p, nil
	}
	return "", fmt.Errorf("unknown bucket policy %q", s)
}

// ColorClass is the display class of one cell.
type ColorClass uint8

const (
	ClassDead ColorClass = iota
	ClassYoung
	ClassMiddle
	ClassOld     // old; under the adaptive policy, younger than the min lifespan
	ClassDeepOld // adaptive policy only: at or past the min lifespan
)

// NumClasses is the number of color classes.
const NumClasses = 5

func (c ColorClass) String() string {
	switch c {
	case ClassDead:
		return "dead"
	case ClassYoung:
		return "young"
	case ClassMiddle:
		return "middle"
	case ClassOld:
		return "old"
	case ClassDeepOld:
		return "deep_old"
	}
	return fmt.Sprintf("class(%d)", c)
}

// Fractions is the share of all cells in each bucket.
type Fractions struct {
	Young  float64
	Middle float64
	Old    float64
}

// Sum returns Young + Middle + Old.
func (f Fractions) Sum() float64 {
	return f.Young + f.Middle + f.Old
}

// Summarizer folds completed buffers into fractions and per-cell classes.
// The running average age persists across calls.
type Summarizer struct {
	policy      Policy
	minLifespan float64
	maxLifespan float64
	smoothing   float64
	averageAge  float64
	classes     []ColorClass
}

// New creates a summarizer for grids of the given cell count.
// The running average age starts at maxLifespan/2.
func New(policy Policy, minLifespan, maxLifespan uint32, smoothing float64, cells int) *Summarizer {
	return &Summarizer{
		policy:      policy,
		minLifespan: float64(minLifespan),
		maxLifespan: float64(maxLifespan),
		smoothing:   smoothing,
		averageAge:  float64(maxLifespan) / 2,
		classes:     make([]ColorClass, cells),
	}
}

// Policy returns the bucket policy.
func (s *Summarizer) Policy() Policy {
	return s.policy
}

// AverageAge returns the running average age. It only moves under the
// adaptive policy.
func (s *Summarizer) AverageAge() float64 {
	return s.averageAge
}

// Tracking reports whether the average age is maintained.
func (s *Summarizer) Tracking() bool {
	return s.policy == PolicyAdaptive
}

// Class returns the color class assigned to cell i by the last Summarize.
func (s *Summarizer) Class(i int) ColorClass {
	return s.classes[i]
}

// Classes returns the per-cell classes from the last Summarize.
// The slice is reused by the next call; callers must not retain it.
func (s *Summarizer) Classes() []ColorClass {
	return s.classes
}

// classifyFixed buckets by thirds of the max lifespan.
func (s *Summarizer) classifyFixed(age float64) (bucket int, class ColorClass) {
	switch {
	case age < s.maxLifespan/3:
		return 0, ClassYoung
	case age < 2*s.maxLifespan/3:
		return 1, ClassMiddle
	default:
		return 2, ClassOld
	}
}

// classifyAdaptive buckets relative to the running average age.
func (s *Summarizer) classifyAdaptive(age float64) (bucket int, class ColorClass) {
	fifth := s.averageAge / 5
	switch {
	case age < fifth:
		return 0, ClassYoung
	case age < 4*fifth:
		return 1, ClassMiddle
	case age < s.minLifespan:
		return 2, ClassOld
	default:
		return 2, ClassDeepOld
	}
}

// Summarize buckets every cell of v and returns the fractions.
//
// Under the adaptive policy each cell is classified against the current
// average, then folded into it: avg = s*age + (1-s)*avg, visiting cells in
// linear index order.
func Summarize[C grid.Cell](s *Summarizer, v grid.View[C]) Fractions {
	var counts [3]int
	n := v.Len()
	if len(s.classes) != n {
		s.classes = make([]ColorClass, n)
	}

	adaptive := s.policy == PolicyAdaptive
	for i := 0; i < n; i++ {
		c := v.Index(i)
		age := float64(c)

		var bucket int
		var class ColorClass
		if adaptive {
			bucket, class = s.classifyAdaptive(age)
			s.averageAge = s.smoothing*age + (1-s.smoothing)*s.averageAge
		} else {
			bucket, class = s.classifyFixed(age)
		}

		counts[bucket]++
		if c == 0 {
			class = ClassDead
		}
		s.classes[i] = class
	}

	if n == 0 {
		return Fractions{}
	}
	total := float64(n)
	return Fractions{
		Young:  float64(counts[0]) / total,
		Middle: float64(counts[1]) / total,
		Old:    float64(counts[2]) / total,
	}
}

// Classify assigns color classes to every cell of v against the current
// thresholds without touching the running average. Used to color a freshly
// seeded grid before its first tick.
func Classify[C grid.Cell](s *Summarizer, v grid.View[C]) {
	n := v.Len()
	if len(s.classes) != n {
		s.classes = make([]ColorClass, n)
	}
	adaptive := s.policy == PolicyAdaptive
	for i := 0; i < n; i++ {
		c := v.Index(i)
		if c == 0 {
			s.classes[i] = ClassDead
			continue
		}
		if adaptive {
			_, s.classes[i] = s.classifyAdaptive(float64(c))
		} else {
			_, s.classes[i] = s.classifyFixed(float64(c))
		}
	}
}
