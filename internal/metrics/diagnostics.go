package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

func KineticEnergy(ps []body.Particle) float64 {
	ke := 0.0
	for _, p := range ps {
		ke += p.KineticEnergy()
	}
	return ke
}

// PotentialEnergy sums the pair potential over all unordered pairs. Laws
// that do not implement body.Potential contribute nothing.
func PotentialEnergy(ps []body.Particle, law body.ForceLaw) float64 {
	pot, ok := law.(body.Potential)
	if !ok {
		return 0
	}
	pe := 0.0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			pe += pot.Potential(ps[i].Pos, ps[j].Pos, ps[i].Weight, ps[j].Weight, ps[i].Radius, ps[j].Radius)
		}
	}
	return pe
}

func TotalEnergy(ps []body.Particle, law body.ForceLaw) float64 {
	return KineticEnergy(ps) + PotentialEnergy(ps, law)
}

func LinearMomentum(ps []body.Particle) r3.Vec {
	var p r3.Vec
	for i := range ps {
		p = r3.Add(p, ps[i].Momentum())
	}
	return p
}

// AngularMomentum is Σ m·(r × v) about the origin.
func AngularMomentum(ps []body.Particle) r3.Vec {
	var l r3.Vec
	for i := range ps {
		l = r3.Add(l, r3.Cross(ps[i].Pos, ps[i].Momentum()))
	}
	return l
}

// CenterOfMass returns the mass weighted mean position and the total mass.
// A weightless set yields the origin.
func CenterOfMass(ps []body.Particle) (r3.Vec, float64) {
	var c r3.Vec
	m := 0.0
	for i := range ps {
		c = r3.Add(c, r3.Scale(ps[i].Weight, ps[i].Pos))
		m += ps[i].Weight
	}
	if m == 0 {
		return r3.Vec{}, 0
	}
	return r3.Scale(1/m, c), m
}
