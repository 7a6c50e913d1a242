package octree

import (
	"fmt"
	"math"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/dynamo"
)

const (
	DefaultTheta    = 0.9
	DefaultMaxDepth = 64
)

// Config is shared by every node of a Tree. It must not change while a tree
// is being queried.
type Config struct {
	// Theta is the opening angle of the acceptance criterion. Zero disables
	// the approximation.
	Theta float64
	// G scales every acceleration returned by ComputeForce.
	G float64
	// MaxDepth bounds subdivision. Zero means DefaultMaxDepth.
	MaxDepth int
}

func DefaultConfig() Config {
	return Config{
		Theta:    DefaultTheta,
		G:        body.DefaultG,
		MaxDepth: DefaultMaxDepth,
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.Theta) || math.IsInf(c.Theta, 0) || c.Theta < 0 {
		return fmt.Errorf("%w: theta must be a finite non-negative number, got %v", dynamo.ErrParameterBounds, c.Theta)
	}
	if math.IsNaN(c.G) || math.IsInf(c.G, 0) {
		return fmt.Errorf("%w: G must be finite, got %v", dynamo.ErrParameterBounds, c.G)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", dynamo.ErrParameterBounds, c.MaxDepth)
	}
	return nil
}

func (c Config) maxDepth() int {
	if c.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}
