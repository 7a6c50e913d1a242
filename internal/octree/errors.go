package octree

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrOutOfBounds is matched by every *BoundaryError.
	ErrOutOfBounds = errors.New("octree: particle outside node bounds")

	// ErrStructural is matched by every *StructuralError.
	ErrStructural = errors.New("octree: structural invariant violated")

	// ErrNotRoot is returned when Reset is called on an inner or leaf node.
	// The node is left untouched.
	ErrNotRoot = errors.New("octree: only the root node can be reset")

	// ErrMaxDepth is returned when separating two particles would need more
	// levels than Config.MaxDepth allows, which happens for coincident
	// positions.
	ErrMaxDepth = errors.New("octree: maximum depth exceeded")
)

// BoundaryError reports an insertion outside a node's bounding box.
type BoundaryError struct {
	Position r3.Vec
	Min, Max r3.Vec
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("octree: position (%g, %g, %g) is out of bounds min=(%g, %g, %g) max=(%g, %g, %g)",
		e.Position.X, e.Position.Y, e.Position.Z,
		e.Min.X, e.Min.Y, e.Min.Z,
		e.Max.X, e.Max.Y, e.Max.Z)
}

func (e *BoundaryError) Is(target error) bool { return target == ErrOutOfBounds }

// StructuralError reports an octant code that does not name a child slot.
type StructuralError struct {
	Octant Octant
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("octree: cannot resolve octant %d", uint8(e.Octant))
}

func (e *StructuralError) Is(target error) bool { return target == ErrStructural }
