package experiment

import (
	"context"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/octree"
)

// BenchRow compares one force evaluation of the direct sum against the tree
// for a cloud of N particles.
type BenchRow struct {
	N      int
	Direct time.Duration
	Tree   time.Duration
	// RelErr is Σ|a_tree − a_direct| / Σ|a_direct|.
	RelErr float64
}

// BenchForces times DirectAccelerations and TreeAccelerations on seeded
// Plummer spheres of each size in sizes.
func BenchForces(ctx context.Context, sizes []int, theta float64, workers int, seed int64) ([]BenchRow, error) {
	rows := make([]BenchRow, 0, len(sizes))
	for _, n := range sizes {
		cfg := config.DefaultConfig()
		cfg.G = 1
		cfg.Seed = seed
		cfg.Generator = config.GeneratorConfig{Kind: "plummer", N: n, Radius: 1, Mass: 1, Velocity: 1}
		ps, err := cfg.BuildParticles()
		if err != nil {
			return nil, err
		}

		sys, err := nbody.New(cfg.Dt,
			nbody.WithLaw(body.Gravitational{G: 1}),
			nbody.WithStrategy(nbody.StrategyTree),
			nbody.WithTreeConfig(octree.Config{Theta: theta}),
			nbody.WithWorkers(workers),
		)
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			sys.AddParticle(p)
		}

		start := time.Now()
		direct := sys.DirectAccelerations(ps)
		row := BenchRow{N: n, Direct: time.Since(start)}

		start = time.Now()
		tree, err := sys.TreeAccelerations(ctx)
		if err != nil {
			return nil, err
		}
		row.Tree = time.Since(start)

		var num, den float64
		for i := range direct {
			num += r3.Norm(r3.Sub(tree[i], direct[i]))
			den += r3.Norm(direct[i])
		}
		if den > 0 {
			row.RelErr = num / den
		}
		rows = append(rows, row)
	}
	return rows, nil
}
