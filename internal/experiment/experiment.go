package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/storage"
)

type Experiment struct {
	cfg       *config.Config
	sys       *nbody.System
	simulator *dynamo.Simulator
}

// New validates cfg and wires the system, its stepper and the default
// metrics into a simulator.
func New(cfg *config.Config) (*Experiment, error) {
	sys, err := BuildSystem(cfg)
	if err != nil {
		return nil, err
	}
	sim := dynamo.New(sys, sys.Integrator())
	for _, m := range DefaultMetrics(cfg, sys) {
		sim.AddMetric(m)
	}
	return &Experiment{cfg: cfg, sys: sys, simulator: sim}, nil
}

func (e *Experiment) System() *nbody.System        { return e.sys }
func (e *Experiment) Config() *config.Config       { return e.cfg }
func (e *Experiment) Simulator() *dynamo.Simulator { return e.simulator }

// Outcome is a finished run: the raw result, the recorded frames and the
// metadata to persist them with.
type Outcome struct {
	Result *dynamo.Result
	Frames []storage.Frame
	Meta   storage.RunMetadata
}

func (e *Experiment) simConfig() dynamo.Config {
	sc := dynamo.DefaultConfig()
	sc.Dt = e.cfg.Dt
	sc.Duration = e.cfg.Duration()
	sc.Seed = e.cfg.Seed
	sc.SaveEvery = max(e.cfg.SaveEvery, 1)
	sc.Adaptive = e.cfg.Adaptive
	sc.Tolerance = e.cfg.Tolerance
	sc.MaxDt = 0
	if e.cfg.Adaptive {
		sc.MinDt = e.cfg.Dt * 1e-6
	}
	return sc
}

// Run integrates the configured scenario. On failure the partial outcome
// is returned with the error. The system is left at the last state reached.
func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	sc := e.simConfig()
	res, runErr := e.simulator.Run(ctx, e.sys.State(), sc)
	if res == nil {
		return nil, fmt.Errorf("%s: %w", describe(e.cfg), runErr)
	}

	frames, err := e.frames(res, sc.SaveEvery)
	if err != nil {
		return nil, err
	}
	if n := len(res.States); n > 0 {
		if err := e.sys.SetState(res.States[n-1]); err != nil {
			return nil, err
		}
		e.sys.Advance(res.Times[n-1]-res.Times[0], res.StepsTaken)
	}

	out := &Outcome{
		Result: res,
		Frames: frames,
		Meta: storage.RunMetadata{
			Name:        e.cfg.Name,
			Seed:        e.cfg.Seed,
			Strategy:    e.cfg.Strategy,
			Method:      e.cfg.Method,
			Law:         e.cfg.Law,
			Dt:          e.cfg.Dt,
			Steps:       res.StepsTaken,
			Particles:   e.sys.Len(),
			EnergyDrift: res.EnergyDrift,
			Metrics:     res.Metrics,
		},
	}
	if runErr != nil {
		return out, fmt.Errorf("%s: %w", describe(e.cfg), runErr)
	}
	return out, nil
}

// frames turns the saved states into particle frames. Every frame but the
// last is every steps apart; the last one is the final step taken.
func (e *Experiment) frames(res *dynamo.Result, every int) ([]storage.Frame, error) {
	frames := make([]storage.Frame, len(res.States))
	for i, x := range res.States {
		ps, err := e.sys.Unpack(x)
		if err != nil {
			return nil, err
		}
		step := i * every
		if i == len(res.States)-1 && i > 0 {
			step = res.StepsTaken
		}
		frames[i] = storage.Frame{Step: step, Time: res.Times[i], Particles: ps}
	}
	return frames, nil
}
