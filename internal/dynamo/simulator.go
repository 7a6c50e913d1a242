package dynamo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 for cfg.Duration. On a failed step the partial
// result is returned together with a *SimulationError.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := max(cfg.SaveEvery, 1)
	result := &Result{
		States:  make([]State, 0, steps/every+2),
		Times:   make([]float64, 0, steps/every+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	for i := 0; ; i++ {
		if cfg.Adaptive {
			remaining := cfg.Duration - t
			if remaining <= 1e-12*cfg.Duration {
				break
			}
			dt = math.Min(dt, remaining)
		} else if i >= steps {
			break
		}

		select {
		case <-ctx.Done():
			return result, &SimulationError{Step: i, Time: t, Wrapped: errors.Join(ErrContextCanceled, ctx.Err())}
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		var (
			newX    State
			stepErr error
			taken   = dt
		)
		if cfg.Adaptive {
			newX, taken, dt, stepErr = s.adaptiveStep(x, t, dt, cfg)
		} else {
			newX, stepErr = s.integrator.Step(s.dyn, x, t, dt)
		}
		if stepErr != nil {
			return result, &SimulationError{Step: i, Time: t, Wrapped: stepErr}
		}
		if cfg.ValidateState && !newX.IsValid() {
			return result, &SimulationError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		x = newX
		t += taken
		result.StepsTaken++

		if result.StepsTaken%every == 0 {
			result.States = append(result.States, x.Clone())
			result.Times = append(result.Times, t)
		}
	}

	if result.StepsTaken%every != 0 {
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	if dim := s.dyn.StateDim(); dim != len(x0) {
		return fmt.Errorf("%w: state has %d entries, system expects %d", ErrDimensionMismatch, len(x0), dim)
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if h, ok := s.dyn.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// adaptiveStep returns the new state, the step size actually taken and the
// suggested size for the next step.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok && adaptive.CanAdapt() {
		for {
			xNew, next, err := adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
			if errors.Is(err, ErrStepRejected) {
				if next < cfg.MinDt {
					return nil, 0, 0, ErrStepTooSmall
				}
				dt = next
				continue
			}
			if err != nil {
				return nil, 0, 0, err
			}
			if cfg.MaxDt > 0 {
				next = math.Min(next, cfg.MaxDt)
			}
			return xNew, dt, next, nil
		}
	}

	for {
		x1, err := s.integrator.Step(s.dyn, x, t, dt)
		if err != nil {
			return nil, 0, 0, err
		}
		xHalf, err := s.integrator.Step(s.dyn, x, t, dt/2)
		if err != nil {
			return nil, 0, 0, err
		}
		x2, err := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)
		if err != nil {
			return nil, 0, 0, err
		}

		errNorm := x1.Dist(x2)
		if errNorm > cfg.Tolerance {
			if dt/2 < cfg.MinDt {
				return nil, 0, 0, ErrStepTooSmall
			}
			dt /= 2
			continue
		}

		next := dt
		if errNorm < cfg.Tolerance/10 && (cfg.MaxDt <= 0 || dt < cfg.MaxDt) {
			next = dt * 2
			if cfg.MaxDt > 0 {
				next = math.Min(next, cfg.MaxDt)
			}
		}
		return x2, dt, next, nil
	}
}
