package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFor splits [0, n) into contiguous chunks of at least minChunk
// items and runs fn on each chunk concurrently. workers <= 0 uses one
// worker per CPU. The first error cancels ctx for the remaining chunks and
// is returned.
func ParallelFor(ctx context.Context, n, minChunk, workers int, fn func(start, end int) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(0, n)
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunkSize := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(start, end)
		})
	}
	return g.Wait()
}
