package nbody_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/octree"
)

// circularPair returns two unit masses on a circular orbit of separation 1
// about the origin with G = 1.
func circularPair() []body.Particle {
	// v²/r = G·m/d² with r = 0.5 and d = 1.
	v := math.Sqrt(0.5)
	return []body.Particle{
		body.New(0, r3.Vec{X: -0.5}, r3.Vec{Y: -v}, 1, 0),
		body.New(1, r3.Vec{X: 0.5}, r3.Vec{Y: v}, 1, 0),
	}
}

func cloud(n int, seed uint64) []body.Particle {
	rng := rand.New(rand.NewSource(seed))
	ps := make([]body.Particle, n)
	for i := range ps {
		pos := r3.Vec{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		vel := r3.Vec{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5, Z: rng.Float64() - 0.5}
		ps[i] = body.New(i, pos, vel, 0.5+rng.Float64(), 0)
	}
	return ps
}

func newSystem(dt float64, ps []body.Particle, opts ...nbody.Option) *nbody.System {
	sys, err := nbody.New(dt, opts...)
	Expect(err).NotTo(HaveOccurred())
	for _, p := range ps {
		sys.AddParticle(p)
	}
	return sys
}

var _ = Describe("System", func() {
	gravity := nbody.WithLaw(body.Gravitational{G: 1})

	Describe("construction", func() {
		It("uses the direct strategy and Newtonian gravity by default", func() {
			sys, err := nbody.New(0.1)
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Strategy()).To(Equal(nbody.StrategyDirect))
			Expect(sys.Law()).To(Equal(body.Gravity()))
			Expect(sys.TreeConfig()).To(Equal(octree.DefaultConfig()))
		})

		It("rejects a non-positive timestep", func() {
			_, err := nbody.New(0)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})

		It("rejects an unknown strategy", func() {
			_, err := nbody.New(0.1, nbody.WithStrategy("sideways"))
			Expect(errors.Is(err, nbody.ErrUnknownStrategy)).To(BeTrue())
		})

		It("rejects a tree over a non-gravitational law", func() {
			_, err := nbody.New(0.1,
				nbody.WithStrategy(nbody.StrategyTree),
				nbody.WithLaw(body.Coulomb()),
			)
			Expect(errors.Is(err, nbody.ErrTreeRequiresGravity)).To(BeTrue())
		})

		It("rejects an invalid tree configuration", func() {
			_, err := nbody.New(0.1,
				nbody.WithStrategy(nbody.StrategyTree),
				nbody.WithTreeConfig(octree.Config{Theta: -1}),
			)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})
	})

	Describe("particle access", func() {
		It("returns copies and checks the index", func() {
			sys := newSystem(0.1, circularPair(), gravity)
			Expect(sys.Len()).To(Equal(2))

			p, err := sys.Particle(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(Equal(1))

			p.Pos = r3.Vec{X: 100}
			again, _ := sys.Particle(1)
			Expect(again.Pos.X).To(Equal(0.5))

			for _, i := range []int{-1, 2} {
				_, err := sys.Particle(i)
				Expect(errors.Is(err, nbody.ErrIndexOutOfRange)).To(BeTrue())
			}

			all := sys.Particles()
			all[0].Weight = 42
			first, _ := sys.Particle(0)
			Expect(first.Weight).To(Equal(1.0))
		})
	})

	Describe("state vector", func() {
		It("round-trips positions and velocities", func() {
			ps := cloud(5, 1)
			sys := newSystem(0.1, ps, gravity)

			x := sys.State()
			Expect(x).To(HaveLen(sys.StateDim()))
			Expect(x[0]).To(Equal(ps[0].Pos.X))
			Expect(x[15]).To(Equal(ps[0].Vel.X))

			x[3] = 7
			Expect(sys.SetState(x)).To(Succeed())
			p, _ := sys.Particle(1)
			Expect(p.Pos.X).To(Equal(7.0))
			Expect(sys.State()).To(Equal(x))
		})

		It("rejects a state of the wrong size", func() {
			sys := newSystem(0.1, circularPair(), gravity)
			err := sys.SetState(dynamo.State{1, 2, 3})
			Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue())

			_, err = sys.Derive(dynamo.State{1}, 0)
			Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue())
		})

		It("derives velocities and accelerations", func() {
			sys := newSystem(0.1, circularPair(), gravity)
			x := sys.State()
			dx, err := sys.Derive(x, 0)
			Expect(err).NotTo(HaveOccurred())

			// Unit masses one apart pull each other with unit acceleration.
			Expect(dx[:6]).To(Equal(x[6:]))
			Expect(dx[6]).To(BeNumerically("~", 1, 1e-12))
			Expect(dx[9]).To(BeNumerically("~", -1, 1e-12))
		})
	})

	Describe("direct and tree accelerations", func() {
		It("agree when theta is zero", func() {
			ps := cloud(60, 7)
			sys := newSystem(0.01, ps, gravity,
				nbody.WithStrategy(nbody.StrategyTree),
				nbody.WithTreeConfig(octree.Config{Theta: 0}),
			)

			tree, err := sys.TreeAccelerations(context.Background())
			Expect(err).NotTo(HaveOccurred())
			direct := sys.DirectAccelerations(sys.Particles())

			for i := range direct {
				Expect(r3.Norm(r3.Sub(tree[i], direct[i]))).To(BeNumerically("<", 1e-9*(1+r3.Norm(direct[i]))))
			}
		})

		It("stay close with the default opening angle", func() {
			ps := cloud(200, 3)
			sys := newSystem(0.01, ps, gravity, nbody.WithStrategy(nbody.StrategyTree))

			tree, err := sys.TreeAccelerations(context.Background())
			Expect(err).NotTo(HaveOccurred())
			direct := sys.DirectAccelerations(sys.Particles())

			var num, den float64
			for i := range direct {
				num += r3.Norm(r3.Sub(tree[i], direct[i]))
				den += r3.Norm(direct[i])
			}
			Expect(num / den).To(BeNumerically("<", 0.1))
		})

		It("fails on coincident particles beyond the depth limit", func() {
			p := body.New(0, r3.Vec{X: 1}, r3.Vec{}, 1, 0)
			q := p
			q.ID = 1
			sys := newSystem(0.01, []body.Particle{p, q}, gravity,
				nbody.WithStrategy(nbody.StrategyTree),
				nbody.WithTreeConfig(octree.Config{Theta: 0.5, MaxDepth: 4}),
			)

			before := sys.State()
			err := sys.Step(context.Background())
			Expect(errors.Is(err, octree.ErrMaxDepth)).To(BeTrue())

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(0))
			Expect(sys.State()).To(Equal(before))
			Expect(sys.Steps()).To(Equal(0))
		})
	})

	Describe("direct strategy", func() {
		It("moves both particles of a pair by the literal update", func() {
			sys := newSystem(0.5, circularPair(), gravity)
			before := sys.Particles()
			sys.Compute()

			after := sys.Particles()
			for i := range after {
				// Position moves with the old velocity, then the velocity
				// picks up the unit pair acceleration.
				wantPos := r3.Add(before[i].Pos, r3.Scale(0.5, before[i].Vel))
				Expect(after[i].Pos).To(Equal(wantPos))
			}
			Expect(after[0].Vel.X).To(BeNumerically("~", 0.5, 1e-12))
			Expect(after[1].Vel.X).To(BeNumerically("~", -0.5, 1e-12))
			Expect(sys.Time()).To(Equal(0.5))
			Expect(sys.Steps()).To(Equal(1))
		})

		It("conserves linear momentum", func() {
			sys := newSystem(1e-3, cloud(8, 11), gravity)
			p0 := metrics.LinearMomentum(sys.Particles())
			for range 100 {
				Expect(sys.Step(context.Background())).To(Succeed())
			}
			p1 := metrics.LinearMomentum(sys.Particles())
			Expect(r3.Norm(r3.Sub(p1, p0))).To(BeNumerically("<", 1e-9))
		})
	})

	Describe("pair strategy", func() {
		It("needs exactly two particles", func() {
			sys := newSystem(0.1, cloud(3, 1), gravity, nbody.WithStrategy(nbody.StrategyPair))
			err := sys.Step(context.Background())
			Expect(errors.Is(err, nbody.ErrPairRequiresTwo)).To(BeTrue())
		})

		It("follows the circular orbit", func() {
			d := integrators.NewDiscretizer()
			d.SetRK4()
			sys := newSystem(1e-3, circularPair(), gravity,
				nbody.WithStrategy(nbody.StrategyPair),
				nbody.WithDiscretizer(d),
			)
			for range 1000 {
				Expect(sys.Step(context.Background())).To(Succeed())
			}
			ps := sys.Particles()
			sep := r3.Norm(r3.Sub(ps[1].Pos, ps[0].Pos))
			Expect(sep).To(BeNumerically("~", 1, 1e-2))
		})

		It("leaves both particles untouched when one is weightless", func() {
			ps := circularPair()
			ps[1].Weight = 0
			sys := newSystem(1e-3, ps, gravity, nbody.WithStrategy(nbody.StrategyPair))
			before := sys.State()
			err := sys.Step(context.Background())
			Expect(errors.Is(err, integrators.ErrZeroWeight)).To(BeTrue())
			Expect(sys.State()).To(Equal(before))
		})
	})

	Describe("tree strategy", func() {
		It("keeps the energy of a circular orbit with leapfrog", func() {
			sys := newSystem(1e-3, circularPair(), gravity,
				nbody.WithStrategy(nbody.StrategyTree),
				nbody.WithIntegrator(integrators.NewLeapfrog()),
			)
			e0 := sys.Energy(sys.State())
			for range 2000 {
				Expect(sys.Step(context.Background())).To(Succeed())
			}
			e1 := sys.Energy(sys.State())
			Expect(math.Abs((e1 - e0) / e0)).To(BeNumerically("<", 1e-5))
			Expect(sys.Time()).To(BeNumerically("~", 2, 1e-9))
		})

		It("stops on a canceled context", func() {
			sys := newSystem(1e-3, circularPair(), gravity, nbody.WithStrategy(nbody.StrategyTree))
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := sys.Step(ctx)
			Expect(errors.Is(err, dynamo.ErrContextCanceled)).To(BeTrue())
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})

	Describe("simulator", func() {
		It("tracks the momentum drift of the direct strategy", func() {
			sys := newSystem(1e-2, cloud(20, 5), nbody.WithLaw(body.Softened{G: 1, Epsilon: 0.1}))
			sim := dynamo.New(sys, sys.Integrator())
			drift := metrics.NewMomentumDrift(sys)
			sim.AddMetric(drift)

			cfg := dynamo.DefaultConfig()
			cfg.Dt = 1e-3
			cfg.Duration = 0.1
			res, err := sim.Run(context.Background(), sys.State(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepsTaken).To(Equal(100))
			Expect(res.Metrics).To(HaveKey("momentum_drift"))
			Expect(res.Metrics["momentum_drift"]).To(BeNumerically("<", 1e-9))
		})

		It("drives the tree strategy through its integrator", func() {
			sys := newSystem(1e-2, circularPair(), gravity,
				nbody.WithStrategy(nbody.StrategyTree),
				nbody.WithIntegrator(integrators.NewVerlet()),
			)
			sim := dynamo.New(sys, sys.Integrator())
			drift := metrics.NewEnergyDrift(sys)
			sim.AddMetric(drift)

			cfg := dynamo.DefaultConfig()
			cfg.Dt = 1e-3
			cfg.Duration = 1
			cfg.SaveEvery = 100
			res, err := sim.Run(context.Background(), sys.State(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.States).To(HaveLen(11))
			Expect(res.EnergyDrift).To(BeNumerically("<", 1e-5))
			Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-5))
		})
	})
})
