package octree

import "gonum.org/v1/gonum/spatial/r3"

// Octant is a 3-bit child index. Bit 0 is set when x >= center.x, bit 1 for
// y and bit 2 for z.
type Octant uint8

const NumOctants = 8

const (
	highX Octant = 1 << iota
	highY
	highZ
)

var octantNames = [NumOctants]string{
	"(-x,-y,-z)", "(+x,-y,-z)", "(-x,+y,-z)", "(+x,+y,-z)",
	"(-x,-y,+z)", "(+x,-y,+z)", "(-x,+y,+z)", "(+x,+y,+z)",
}

func (o Octant) String() string {
	if o >= NumOctants {
		return "(invalid)"
	}
	return octantNames[o]
}

// octantOf classifies p against center. Ties go to the high side on every
// axis.
func octantOf(center, p r3.Vec) Octant {
	var o Octant
	if p.X >= center.X {
		o |= highX
	}
	if p.Y >= center.Y {
		o |= highY
	}
	if p.Z >= center.Z {
		o |= highZ
	}
	return o
}

// octantBounds returns the sub-box of [min, max] selected by o. Siblings
// share the faces on the center planes.
func octantBounds(min, max, center r3.Vec, o Octant) (r3.Vec, r3.Vec, error) {
	if o >= NumOctants {
		return r3.Vec{}, r3.Vec{}, &StructuralError{Octant: o}
	}
	lo, hi := min, center
	if o&highX != 0 {
		lo.X, hi.X = center.X, max.X
	}
	if o&highY != 0 {
		lo.Y, hi.Y = center.Y, max.Y
	}
	if o&highZ != 0 {
		lo.Z, hi.Z = center.Z, max.Z
	}
	return lo, hi, nil
}

func midpoint(min, max r3.Vec) r3.Vec {
	return r3.Vec{
		X: min.X + (max.X-min.X)/2,
		Y: min.Y + (max.Y-min.Y)/2,
		Z: min.Z + (max.Z-min.Z)/2,
	}
}
