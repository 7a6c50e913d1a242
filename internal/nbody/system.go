package nbody

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/octree"
)

// boundsPad widens the per-step root box so particles on the hull do not sit
// exactly on its faces.
const boundsPad = 0.05

// System owns the particles and the step configuration. It is not safe for
// concurrent use.
type System struct {
	particles []body.Particle
	law       body.ForceLaw
	strategy  Strategy
	dt        float64
	time      float64
	steps     int

	treeCfg octree.Config
	tree    *octree.Tree
	workers int

	integrator dynamo.Integrator
	disc       *integrators.Discretizer

	scratch []body.Particle
	// stepCtx is set only while Step drives the tree integrator.
	stepCtx context.Context
}

type Option func(*System)

func WithLaw(law body.ForceLaw) Option {
	return func(s *System) { s.law = law }
}

func WithStrategy(st Strategy) Option {
	return func(s *System) { s.strategy = st }
}

// WithTreeConfig sets theta and the depth limit. The G of the tree always
// comes from the gravitational law.
func WithTreeConfig(cfg octree.Config) Option {
	return func(s *System) { s.treeCfg = cfg }
}

// WithWorkers bounds the goroutines used for tree force queries. Zero or
// less uses one per CPU.
func WithWorkers(n int) Option {
	return func(s *System) { s.workers = n }
}

// WithIntegrator selects the whole-system integrator of the tree strategy.
func WithIntegrator(integ dynamo.Integrator) Option {
	return func(s *System) { s.integrator = integ }
}

// WithDiscretizer selects the tableau used by the pair strategy.
func WithDiscretizer(d *integrators.Discretizer) Option {
	return func(s *System) { s.disc = d }
}

// New returns an empty system stepping by dt. The defaults are Newtonian
// gravity, the direct strategy, RK4 and octree.DefaultConfig.
func New(dt float64, opts ...Option) (*System, error) {
	s := &System{
		law:        body.Gravity(),
		strategy:   StrategyDirect,
		dt:         dt,
		treeCfg:    octree.DefaultConfig(),
		integrator: integrators.NewRK4(),
		disc:       integrators.NewDiscretizer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the configuration. The particle count of the pair
// strategy is checked by Step since particles are added after New.
func (s *System) Validate() error {
	if s.dt <= 0 || math.IsNaN(s.dt) || math.IsInf(s.dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", dynamo.ErrParameterBounds, s.dt)
	}
	if s.law == nil {
		return fmt.Errorf("%w: force law is nil", dynamo.ErrParameterBounds)
	}
	switch s.strategy {
	case StrategyDirect:
	case StrategyPair:
		if s.disc == nil {
			return fmt.Errorf("%w: pair strategy without a discretizer", dynamo.ErrParameterBounds)
		}
	case StrategyTree:
		if _, err := s.treeG(); err != nil {
			return err
		}
		if s.integrator == nil {
			return fmt.Errorf("%w: tree strategy without an integrator", dynamo.ErrParameterBounds)
		}
		if err := s.treeCfg.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, s.strategy)
	}
	return nil
}

func (s *System) treeG() (float64, error) {
	g, ok := s.law.(body.Gravitational)
	if !ok {
		return 0, fmt.Errorf("%w: got %T", ErrTreeRequiresGravity, s.law)
	}
	return g.G, nil
}

// AddParticle appends a copy of p.
func (s *System) AddParticle(p body.Particle) {
	s.particles = append(s.particles, p)
}

// Particle returns a copy of the i-th particle.
func (s *System) Particle(i int) (body.Particle, error) {
	if i < 0 || i >= len(s.particles) {
		return body.Particle{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.particles))
	}
	return s.particles[i], nil
}

// Particles returns a copy of the collection.
func (s *System) Particles() []body.Particle {
	out := make([]body.Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

func (s *System) Len() int                  { return len(s.particles) }
func (s *System) Dt() float64               { return s.dt }
func (s *System) Time() float64             { return s.time }
func (s *System) Steps() int                { return s.steps }
func (s *System) Law() body.ForceLaw        { return s.law }
func (s *System) Strategy() Strategy        { return s.strategy }
func (s *System) TreeConfig() octree.Config { return s.treeCfg }

func (s *System) advance(dt float64) {
	s.time += dt
	s.steps++
}

// Advance moves the clock forward by elapsed over n steps. A dynamo.Simulator
// driving Integrator() only loads states, so its caller accounts for the
// run here.
func (s *System) Advance(elapsed float64, n int) {
	s.time += elapsed
	s.steps += n
}
