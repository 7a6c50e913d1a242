package experiment

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/nbody/internal/config"
)

// Comparison summarizes one method of a Compare call.
type Comparison struct {
	Method        string
	Steps         int
	EnergyDrift   float64
	MomentumDrift float64
	Elapsed       time.Duration
	Err           error
}

// Compare runs cfg once per method, concurrently. A failing method is
// reported in its row and does not stop the others.
func Compare(ctx context.Context, cfg *config.Config, methods []string) ([]Comparison, error) {
	rows := make([]Comparison, len(methods))
	g, ctx := errgroup.WithContext(ctx)

	for i, method := range methods {
		c := *cfg
		c.Method = method
		c.Particles = append([]config.ParticleConfig(nil), cfg.Particles...)

		g.Go(func() error {
			rows[i] = compareOne(ctx, &c)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func compareOne(ctx context.Context, cfg *config.Config) Comparison {
	row := Comparison{Method: cfg.Method}
	exp, err := New(cfg)
	if err != nil {
		row.Err = err
		return row
	}

	start := time.Now()
	out, err := exp.Run(ctx)
	row.Elapsed = time.Since(start)
	row.Err = err
	if out != nil {
		row.Steps = out.Result.StepsTaken
		row.EnergyDrift = out.Result.Metrics["energy_drift"]
		row.MomentumDrift = out.Result.Metrics["momentum_drift"]
	}
	return row
}
