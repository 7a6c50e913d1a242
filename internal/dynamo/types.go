package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is a flat ODE state vector.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every entry is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// AddScaled returns s + a·d as a new state. d must have the length of s.
func (s State) AddScaled(a float64, d State) State {
	out := make(State, len(s))
	floats.AddScaledTo(out, s, a, d)
	return out
}

// Dist is the Euclidean distance between two states of equal length.
func (s State) Dist(o State) float64 {
	return floats.Distance(s, o, 2)
}

// System is a first-order ODE dx/dt = f(x, t). Derive may fail when the
// right-hand side cannot be evaluated at x; the step is then aborted.
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

// Hamiltonian systems report a conserved energy for drift tracking.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) (State, error)
}

// AdaptiveIntegrator steps with error control. It returns the new state and
// the suggested next step, or ErrStepRejected with a smaller step to retry.
// When CanAdapt is false the simulator falls back to step doubling.
type AdaptiveIntegrator interface {
	Integrator
	CanAdapt() bool
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

// Metric accumulates a scalar over the states of a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer sees every state before it is stepped.
type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt        float64
	Duration  float64
	Seed      int64
	Tolerance float64
	// MaxDt caps adaptive steps. Zero leaves them uncapped.
	MaxDt float64
	// MinDt is the smallest adaptive step before ErrStepTooSmall.
	MinDt         float64
	Adaptive      bool
	ValidateState bool
	// SaveEvery records every n-th state in the result. Zero or one records
	// every state.
	SaveEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		ValidateState: true,
		SaveEvery:     1,
	}
}

// Result holds the recorded states of a run. States[0] is the initial
// state and the final state is always recorded.
type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
