package nbody

import (
	"fmt"

	"github.com/san-kum/nbody/internal/body"
)

// stepPair advances both particles with the discretizer. Each one is
// integrated against a snapshot of the other taken before the step. On
// failure neither particle changes.
func (s *System) stepPair(dt float64) error {
	if len(s.particles) != 2 {
		return fmt.Errorf("%w: have %d", ErrPairRequiresTwo, len(s.particles))
	}
	a, b := s.particles[0], s.particles[1]
	next := [2]body.Particle{a, b}
	if err := s.disc.Discretize(&next[0], a, b, s.law, dt); err != nil {
		return fmt.Errorf("particle %d: %w", a.ID, err)
	}
	if err := s.disc.Discretize(&next[1], b, a, s.law, dt); err != nil {
		return fmt.Errorf("particle %d: %w", b.ID, err)
	}
	s.particles[0], s.particles[1] = next[0], next[1]
	return nil
}
