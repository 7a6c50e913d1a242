package body

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultG is the gravitational constant in SI units.
	DefaultG = 6.67408e-11
	// DefaultK is the Coulomb constant in SI units.
	DefaultK = 8.9875517923e9
)

// ForceLaw returns the force exerted on particle 1 by particle 2.
type ForceLaw interface {
	Force(p1, p2 Position, w1, w2, r1, r2 float64) Force
}

// Potential is implemented by laws that derive from a pair potential.
type Potential interface {
	Potential(p1, p2 Position, w1, w2, r1, r2 float64) float64
}

// ForceFunc adapts an ordinary function to a ForceLaw.
type ForceFunc func(p1, p2 Position, w1, w2, r1, r2 float64) Force

func (f ForceFunc) Force(p1, p2 Position, w1, w2, r1, r2 float64) Force {
	return f(p1, p2, w1, w2, r1, r2)
}

// Gravitational is Newtonian gravity, F = G·w1·w2/r³ · (p2 − p1).
// Coincident positions yield a zero force.
type Gravitational struct {
	G float64
}

func Gravity() Gravitational { return Gravitational{G: DefaultG} }

func (g Gravitational) Force(p1, p2 Position, w1, w2, _, _ float64) Force {
	d := r3.Sub(p2, p1)
	r2 := r3.Norm2(d)
	if r2 == 0 {
		return Force{}
	}
	return r3.Scale(g.G*w1*w2/(r2*math.Sqrt(r2)), d)
}

func (g Gravitational) Potential(p1, p2 Position, w1, w2, _, _ float64) float64 {
	r := r3.Norm(r3.Sub(p2, p1))
	if r == 0 {
		return 0
	}
	return -g.G * w1 * w2 / r
}

// Electrostatic is the Coulomb interaction. Weights are charges, so like
// charges repel.
type Electrostatic struct {
	K float64
}

func Coulomb() Electrostatic { return Electrostatic{K: DefaultK} }

func (e Electrostatic) Force(p1, p2 Position, w1, w2, _, _ float64) Force {
	d := r3.Sub(p2, p1)
	r2 := r3.Norm2(d)
	if r2 == 0 {
		return Force{}
	}
	return r3.Scale(-e.K*w1*w2/(r2*math.Sqrt(r2)), d)
}

func (e Electrostatic) Potential(p1, p2 Position, w1, w2, _, _ float64) float64 {
	r := r3.Norm(r3.Sub(p2, p1))
	if r == 0 {
		return 0
	}
	return e.K * w1 * w2 / r
}

// Softened is Plummer-softened gravity,
// F = G·w1·w2/(r²+ε²)^(3/2) · (p2 − p1). When Epsilon is zero the sum of the
// two radii is used as the softening length.
type Softened struct {
	G       float64
	Epsilon float64
}

func (s Softened) eps2(r1, r2 float64) float64 {
	eps := s.Epsilon
	if eps == 0 {
		eps = r1 + r2
	}
	return eps * eps
}

func (s Softened) Force(p1, p2 Position, w1, w2, r1, r2 float64) Force {
	d := r3.Sub(p2, p1)
	q := r3.Norm2(d) + s.eps2(r1, r2)
	if q == 0 {
		return Force{}
	}
	return r3.Scale(s.G*w1*w2/(q*math.Sqrt(q)), d)
}

func (s Softened) Potential(p1, p2 Position, w1, w2, r1, r2 float64) float64 {
	q := r3.Norm2(r3.Sub(p2, p1)) + s.eps2(r1, r2)
	if q == 0 {
		return 0
	}
	return -s.G * w1 * w2 / math.Sqrt(q)
}

// GravityAcceleration returns the acceleration at `at` caused by a point
// mass m located at src, a = G·m/r³ · (src − at). Coincident points give a
// zero acceleration.
func GravityAcceleration(g float64, at, src Position, m float64) Acceleration {
	d := r3.Sub(src, at)
	r2 := r3.Norm2(d)
	if r2 == 0 {
		return Acceleration{}
	}
	return r3.Scale(g*m/(r2*math.Sqrt(r2)), d)
}

var laws = map[string]func(g, eps float64) ForceLaw{
	"gravity":       func(g, _ float64) ForceLaw { return Gravitational{G: g} },
	"softened":      func(g, eps float64) ForceLaw { return Softened{G: g, Epsilon: eps} },
	"electrostatic": func(_, _ float64) ForceLaw { return Coulomb() },
}

// LawByName returns the named law. g and eps are used by the gravitational
// variants only.
func LawByName(name string, g, eps float64) (ForceLaw, error) {
	fn, ok := laws[name]
	if !ok {
		return nil, fmt.Errorf("unknown force law: %s", name)
	}
	return fn(g, eps), nil
}

func LawNames() []string {
	names := make([]string, 0, len(laws))
	for name := range laws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
