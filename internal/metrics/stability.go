package metrics

import (
	"math"

	"github.com/san-kum/nbody/internal/dynamo"
)

// Stability is the fraction of observed states whose positions all stay
// within threshold of the origin on every axis. Only the first posDim
// entries of a state are positions.
type Stability struct {
	name       string
	threshold  float64
	posDim     int
	violations int
	samples    int
}

func NewStability(threshold float64, posDim int) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		posDim:    posDim,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++
	n := min(s.posDim, len(x))
	for _, val := range x[:n] {
		if math.IsNaN(val) || math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
