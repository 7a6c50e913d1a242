package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/nbody/internal/config"
)

var ErrUnknownParam = errors.New("experiment: unknown sweep parameter")

// sweepParams are the scalar config fields a Sweep can vary.
var sweepParams = map[string]func(*config.Config, float64){
	"dt":        func(c *config.Config, v float64) { c.Dt = v },
	"theta":     func(c *config.Config, v float64) { c.Theta = v },
	"softening": func(c *config.Config, v float64) { c.Softening = v },
	"g":         func(c *config.Config, v float64) { c.G = v },
	"tolerance": func(c *config.Config, v float64) { c.Tolerance = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Trial is one grid point of a sweep.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// Sweep is a grid search over config parameters.
type Sweep struct {
	names  []string
	ranges [][]float64
}

func NewSweep() *Sweep { return &Sweep{} }

// Vary adds a parameter axis. The grid is the product of all axes.
func (s *Sweep) Vary(name string, values ...float64) error {
	if _, ok := sweepParams[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if len(values) == 0 {
		return fmt.Errorf("sweep %s: no values", name)
	}
	s.names = append(s.names, name)
	s.ranges = append(s.ranges, values)
	return nil
}

// Search runs base at every grid point and returns the trials in grid
// order together with the index of the one with the smallest metric value.
// Failed trials are kept with their error and never win. best is -1 when
// every trial failed.
func (s *Sweep) Search(ctx context.Context, base *config.Config, metric string) ([]Trial, int, error) {
	trials := make([]Trial, 0)
	best := -1
	bestVal := math.Inf(1)

	var walk func(depth int, current map[string]float64) error
	walk = func(depth int, current map[string]float64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if depth == len(s.names) {
			trial := s.run(ctx, base, current, metric)
			if trial.Err == nil && trial.Value < bestVal {
				bestVal = trial.Value
				best = len(trials)
			}
			trials = append(trials, trial)
			return nil
		}
		for _, v := range s.ranges[depth] {
			next := make(map[string]float64, len(current)+1)
			for k, cv := range current {
				next[k] = cv
			}
			next[s.names[depth]] = v
			if err := walk(depth+1, next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(0, map[string]float64{}); err != nil {
		return trials, best, err
	}
	return trials, best, nil
}

func (s *Sweep) run(ctx context.Context, base *config.Config, params map[string]float64, metric string) Trial {
	trial := Trial{Params: params, Value: math.NaN()}

	cfg := *base
	cfg.Particles = append([]config.ParticleConfig(nil), base.Particles...)
	for name, v := range params {
		sweepParams[name](&cfg, v)
	}

	exp, err := New(&cfg)
	if err != nil {
		trial.Err = err
		return trial
	}
	out, err := exp.Run(ctx)
	if err != nil {
		trial.Err = err
		return trial
	}
	v, ok := out.Result.Metrics[metric]
	if !ok {
		trial.Err = fmt.Errorf("metric %q not recorded", metric)
		return trial
	}
	trial.Value = v
	return trial
}
