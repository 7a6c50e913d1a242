package nbody

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/metrics"
)

// The state vector holds all positions [x0 y0 z0 x1 ...] followed by all
// velocities in the same order.

func (s *System) StateDim() int { return 6 * len(s.particles) }

// State packs the current particles into a new state vector.
func (s *System) State() dynamo.State {
	n3 := 3 * len(s.particles)
	x := make(dynamo.State, 2*n3)
	for i, p := range s.particles {
		x[3*i], x[3*i+1], x[3*i+2] = p.Pos.X, p.Pos.Y, p.Pos.Z
		x[n3+3*i], x[n3+3*i+1], x[n3+3*i+2] = p.Vel.X, p.Vel.Y, p.Vel.Z
	}
	return x
}

// SetState overwrites particle positions and velocities from x.
func (s *System) SetState(x dynamo.State) error {
	if err := s.checkDim(x); err != nil {
		return err
	}
	unpack(s.particles, x)
	return nil
}

// Unpack returns a copy of the particles carrying the positions and
// velocities of x.
func (s *System) Unpack(x dynamo.State) ([]body.Particle, error) {
	if err := s.checkDim(x); err != nil {
		return nil, err
	}
	ps := s.Particles()
	unpack(ps, x)
	return ps, nil
}

func (s *System) checkDim(x dynamo.State) error {
	if len(x) != s.StateDim() {
		return fmt.Errorf("%w: state has %d entries, system expects %d", dynamo.ErrDimensionMismatch, len(x), s.StateDim())
	}
	return nil
}

func unpack(ps []body.Particle, x dynamo.State) {
	n3 := 3 * len(ps)
	for i := range ps {
		ps[i].Pos = r3.Vec{X: x[3*i], Y: x[3*i+1], Z: x[3*i+2]}
		ps[i].Vel = r3.Vec{X: x[n3+3*i], Y: x[n3+3*i+1], Z: x[n3+3*i+2]}
	}
}

// Derive returns the time derivative of x: the velocities followed by the
// accelerations. The tree strategy evaluates accelerations through a fresh
// octree, the others sum the law directly.
func (s *System) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	if err := s.checkDim(x); err != nil {
		return nil, err
	}
	if len(s.scratch) != len(s.particles) {
		s.scratch = make([]body.Particle, len(s.particles))
	}
	copy(s.scratch, s.particles)
	unpack(s.scratch, x)

	var acc []body.Acceleration
	if s.strategy == StrategyTree {
		ctx := s.stepCtx
		if ctx == nil {
			ctx = context.Background()
		}
		var err error
		acc, err = s.treeAccelerations(ctx, s.scratch)
		if err != nil {
			return nil, fmt.Errorf("derive at t=%.4f: %w", t, err)
		}
	} else {
		acc = s.DirectAccelerations(s.scratch)
	}

	n3 := 3 * len(s.particles)
	dx := make(dynamo.State, len(x))
	copy(dx[:n3], x[n3:])
	for i, a := range acc {
		dx[n3+3*i], dx[n3+3*i+1], dx[n3+3*i+2] = a.X, a.Y, a.Z
	}
	return dx, nil
}

// Energy is the kinetic plus pair potential energy of x. Malformed states
// report zero.
func (s *System) Energy(x dynamo.State) float64 {
	ps, err := s.Unpack(x)
	if err != nil {
		return 0
	}
	return metrics.TotalEnergy(ps, s.law)
}

func (s *System) Momentum(x dynamo.State) r3.Vec {
	ps, err := s.Unpack(x)
	if err != nil {
		return r3.Vec{}
	}
	return metrics.LinearMomentum(ps)
}
