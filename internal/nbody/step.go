package nbody

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/nbody/internal/dynamo"
)

// Step advances the system by Dt with the configured strategy. A failed
// step leaves the particles unchanged and returns a *dynamo.SimulationError.
func (s *System) Step(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "nbody.System.Step",
		trace.WithAttributes(
			attribute.String("strategy", s.strategy.String()),
			attribute.Int("particles", len(s.particles)),
			attribute.Int("step", s.steps),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "canceled")
		return &dynamo.SimulationError{Step: s.steps, Time: s.time, Wrapped: errors.Join(dynamo.ErrContextCanceled, err)}
	}

	if err := s.stepOnce(ctx, s.dt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "step failed")
		return &dynamo.SimulationError{Step: s.steps, Time: s.time, Wrapped: err}
	}
	s.advance(s.dt)
	return nil
}

func (s *System) stepOnce(ctx context.Context, dt float64) error {
	switch s.strategy {
	case StrategyDirect:
		s.compute(dt)
		return nil
	case StrategyPair:
		return s.stepPair(dt)
	case StrategyTree:
		return s.stepTree(ctx, dt)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, s.strategy)
	}
}

func (s *System) stepTree(ctx context.Context, dt float64) error {
	s.stepCtx = ctx
	defer func() { s.stepCtx = nil }()

	next, err := s.integrator.Step(s, s.State(), s.time, dt)
	if err != nil {
		return err
	}
	return s.SetState(next)
}

// Integrator returns the stepper that reproduces Step when the system is
// driven by a dynamo.Simulator. For the tree strategy it is the configured
// integrator; the other strategies are wrapped so that each Step call loads
// the state into the particles, applies the strategy and reads it back.
func (s *System) Integrator() dynamo.Integrator {
	if s.strategy == StrategyTree {
		return s.integrator
	}
	return &strategyStepper{sys: s}
}

type strategyStepper struct {
	sys *System
}

func (st *strategyStepper) Step(_ dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	if err := st.sys.SetState(x); err != nil {
		return nil, err
	}
	if err := st.sys.stepOnce(context.Background(), dt); err != nil {
		return nil, err
	}
	return st.sys.State(), nil
}
