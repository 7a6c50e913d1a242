package body

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestComputeForceNewtonThirdLaw(t *testing.T) {
	a := New(0, r3.Vec{}, r3.Vec{}, 1, 0)
	b := New(1, r3.Vec{X: 1, Y: 1}, r3.Vec{}, 2, 0)

	a.ComputeForce(&b, Gravitational{G: 1})

	if r3.Add(a.NetForce, b.NetForce) != (r3.Vec{}) {
		t.Errorf("forces do not cancel: %v + %v", a.NetForce, b.NetForce)
	}
	if a.NetForce.X <= 0 || a.NetForce.Y <= 0 {
		t.Errorf("a should be pulled towards b, got %v", a.NetForce)
	}
}

func TestUpdatePosVel(t *testing.T) {
	p := New(7, r3.Vec{X: 1}, r3.Vec{Y: 2}, 2, 0)
	p.NetForce = r3.Vec{Z: 4}

	p.UpdatePos(0.5)
	if p.Pos != (r3.Vec{X: 1, Y: 1}) {
		t.Errorf("unexpected position %v", p.Pos)
	}

	p.UpdateVel(0.5)
	if p.Vel != (r3.Vec{Y: 2, Z: 1}) {
		t.Errorf("unexpected velocity %v", p.Vel)
	}
}

func TestUpdateVelWeightless(t *testing.T) {
	p := New(0, r3.Vec{}, r3.Vec{X: 1}, 0, 0)
	p.NetForce = r3.Vec{X: 10}
	p.UpdateVel(1)
	if p.Vel != (r3.Vec{X: 1}) {
		t.Errorf("weightless particle should not accelerate, got %v", p.Vel)
	}
}

func TestKineticEnergyAndMomentum(t *testing.T) {
	p := New(0, r3.Vec{}, r3.Vec{X: 3, Y: 4}, 2, 0)
	if ke := p.KineticEnergy(); ke != 25 {
		t.Errorf("KineticEnergy() = %v, want 25", ke)
	}
	if m := p.Momentum(); m != (r3.Vec{X: 6, Y: 8}) {
		t.Errorf("Momentum() = %v", m)
	}
}
