package octree

import (
	"context"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/dynamo"
)

const minQueryChunk = 64

// Accelerations runs ComputeForce for every particle in ps on up to workers
// goroutines. The tree must not be modified until it returns.
func (t *Tree) Accelerations(ctx context.Context, ps []body.Particle, workers int) ([]body.Acceleration, error) {
	out := make([]body.Acceleration, len(ps))
	err := dynamo.ParallelFor(ctx, len(ps), minQueryChunk, workers, func(start, end int) error {
		for i := start; i < end; i++ {
			out[i] = t.ComputeForce(ps[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
