package body

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGravitationalForce(t *testing.T) {
	law := Gravitational{G: 1}
	f := law.Force(r3.Vec{}, r3.Vec{X: 2}, 3, 4, 0, 0)

	if !scalar.EqualWithinAbsOrRel(f.X, 3.0, 1e-12, 1e-12) {
		t.Errorf("expected Fx = 3, got %v", f.X)
	}
	if f.Y != 0 || f.Z != 0 {
		t.Errorf("expected force along x only, got %v", f)
	}
}

func TestLawsCoincidentPositions(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	tests := []struct {
		name string
		law  ForceLaw
	}{
		{"gravity", Gravitational{G: 1}},
		{"electrostatic", Electrostatic{K: 1}},
		{"softened no radius", Softened{G: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.law.Force(p, p, 1, 1, 0, 0)
			if f != (r3.Vec{}) {
				t.Errorf("expected zero force, got %v", f)
			}
		})
	}
}

func TestElectrostaticRepels(t *testing.T) {
	law := Electrostatic{K: 1}
	f := law.Force(r3.Vec{}, r3.Vec{X: 1}, 1, 1, 0, 0)
	if f.X >= 0 {
		t.Errorf("like charges should repel, got Fx = %v", f.X)
	}

	f = law.Force(r3.Vec{}, r3.Vec{X: 1}, 1, -1, 0, 0)
	if f.X <= 0 {
		t.Errorf("opposite charges should attract, got Fx = %v", f.X)
	}
}

func TestSoftenedUsesRadii(t *testing.T) {
	law := Softened{G: 1}
	p2 := r3.Vec{X: 1}

	f := law.Force(r3.Vec{}, p2, 1, 1, 0.5, 0.5)
	want := 1 / math.Pow(2, 1.5)
	if !scalar.EqualWithinAbsOrRel(f.X, want, 1e-12, 1e-12) {
		t.Errorf("expected Fx = %v, got %v", want, f.X)
	}

	hard := Gravitational{G: 1}.Force(r3.Vec{}, p2, 1, 1, 0, 0)
	if f.X >= hard.X {
		t.Errorf("softened force %v should be weaker than %v", f.X, hard.X)
	}
}

func TestPotentials(t *testing.T) {
	p2 := r3.Vec{Y: 2}
	tests := []struct {
		name string
		law  Potential
		want float64
	}{
		{"gravity", Gravitational{G: 1}, -1.5},
		{"electrostatic", Electrostatic{K: 1}, 1.5},
		{"softened", Softened{G: 1, Epsilon: 0}, -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.law.Potential(r3.Vec{}, p2, 1, 3, 0, 0)
			if !scalar.EqualWithinAbsOrRel(got, tt.want, 1e-12, 1e-12) {
				t.Errorf("Potential() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGravityAcceleration(t *testing.T) {
	a := GravityAcceleration(2, r3.Vec{}, r3.Vec{Z: -2}, 8)
	if !scalar.EqualWithinAbsOrRel(a.Z, -4, 1e-12, 1e-12) {
		t.Errorf("expected az = -4, got %v", a.Z)
	}

	if a := GravityAcceleration(1, r3.Vec{X: 1}, r3.Vec{X: 1}, 5); a != (r3.Vec{}) {
		t.Errorf("expected zero acceleration at coincident points, got %v", a)
	}
}

func TestForceFunc(t *testing.T) {
	constant := ForceFunc(func(_, _ Position, _, _, _, _ float64) Force {
		return Force{X: 1, Y: 2, Z: 3}
	})
	if got := constant.Force(r3.Vec{}, r3.Vec{}, 0, 0, 0, 0); got != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("ForceFunc returned %v", got)
	}
}

func TestLawByName(t *testing.T) {
	for _, name := range LawNames() {
		if _, err := LawByName(name, 1, 0.1); err != nil {
			t.Errorf("LawByName(%q) failed: %v", name, err)
		}
	}

	if _, err := LawByName("magnetic", 1, 0); err == nil {
		t.Error("expected error for unknown law")
	}

	law, _ := LawByName("softened", 2, 0.25)
	if s, ok := law.(Softened); !ok || s.G != 2 || s.Epsilon != 0.25 {
		t.Errorf("unexpected softened law %#v", law)
	}
}
