package nbody

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

// Compute advances every particle by one direct step. For each unordered
// pair it evaluates the pair force, then moves both particles and finally
// updates both velocities, so positions change once per pair visited. This
// is the reference baseline, not a consistent integrator.
func (s *System) Compute() {
	s.compute(s.dt)
	s.advance(s.dt)
}

func (s *System) compute(dt float64) {
	ps := s.particles
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			ps[i].ComputeForce(&ps[j], s.law)
			ps[i].UpdatePos(dt)
			ps[j].UpdatePos(dt)
			ps[i].UpdateVel(dt)
			ps[j].UpdateVel(dt)
		}
	}
}

// DirectAccelerations sums the law over all pairs of ps. Weightless
// particles get a zero acceleration.
func (s *System) DirectAccelerations(ps []body.Particle) []body.Acceleration {
	acc := make([]body.Acceleration, len(ps))
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			f := s.law.Force(ps[i].Pos, ps[j].Pos, ps[i].Weight, ps[j].Weight, ps[i].Radius, ps[j].Radius)
			if ps[i].Weight != 0 {
				acc[i] = r3.Add(acc[i], r3.Scale(1/ps[i].Weight, f))
			}
			if ps[j].Weight != 0 {
				acc[j] = r3.Sub(acc[j], r3.Scale(1/ps[j].Weight, f))
			}
		}
	}
	return acc
}
