package octree

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

// BoundsOf returns a cube that encloses every particle, widened by the
// fraction pad on each side. An empty set or a single point gets a half
// width of one.
func BoundsOf(ps []body.Particle, pad float64) r3.Box {
	if len(ps) == 0 {
		return r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	}

	lo, hi := ps[0].Pos, ps[0].Pos
	for _, p := range ps[1:] {
		lo.X, hi.X = math.Min(lo.X, p.Pos.X), math.Max(hi.X, p.Pos.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Pos.Y), math.Max(hi.Y, p.Pos.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Pos.Z), math.Max(hi.Z, p.Pos.Z)
	}

	half := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z)) / 2
	if half == 0 {
		half = 1
	}
	half *= 1 + math.Max(pad, 0)

	c := midpoint(lo, hi)
	h := r3.Vec{X: half, Y: half, Z: half}
	box := r3.Box{Min: r3.Sub(c, h), Max: r3.Add(c, h)}

	// Rounding in the midpoint can leave an extreme point a ulp outside.
	box.Min = r3.Vec{X: math.Min(box.Min.X, lo.X), Y: math.Min(box.Min.Y, lo.Y), Z: math.Min(box.Min.Z, lo.Z)}
	box.Max = r3.Vec{X: math.Max(box.Max.X, hi.X), Y: math.Max(box.Max.Y, hi.Y), Z: math.Max(box.Max.Z, hi.Z)}
	return box
}
