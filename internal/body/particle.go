package body

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

type (
	Position     = r3.Vec
	Velocity     = r3.Vec
	Acceleration = r3.Vec
	Force        = r3.Vec
)

// Particle is a point body. Weight is the mass for gravitational laws and
// the charge for electrostatic ones. NetForce holds the force from the last
// ComputeForce call and is consumed by UpdateVel.
type Particle struct {
	ID       int
	Pos      Position
	Vel      Velocity
	Weight   float64
	Radius   float64
	NetForce Force
}

func New(id int, pos Position, vel Velocity, weight, radius float64) Particle {
	return Particle{
		ID:     id,
		Pos:    pos,
		Vel:    vel,
		Weight: weight,
		Radius: radius,
	}
}

// ComputeForce evaluates law between p and other and stores the result on
// both particles, with opposite signs.
func (p *Particle) ComputeForce(other *Particle, law ForceLaw) {
	f := law.Force(p.Pos, other.Pos, p.Weight, other.Weight, p.Radius, other.Radius)
	p.NetForce = f
	other.NetForce = r3.Scale(-1, f)
}

func (p *Particle) UpdatePos(dt float64) {
	p.Pos = r3.Add(p.Pos, r3.Scale(dt, p.Vel))
}

// UpdateVel applies NetForce over dt. Weightless particles do not accelerate.
func (p *Particle) UpdateVel(dt float64) {
	if p.Weight == 0 {
		return
	}
	p.Vel = r3.Add(p.Vel, r3.Scale(dt/p.Weight, p.NetForce))
}

func (p Particle) KineticEnergy() float64 {
	return 0.5 * p.Weight * r3.Norm2(p.Vel)
}

func (p Particle) Momentum() r3.Vec {
	return r3.Scale(p.Weight, p.Vel)
}

func (p Particle) String() string {
	return fmt.Sprintf("particle %d pos=(%g, %g, %g) vel=(%g, %g, %g) w=%g",
		p.ID, p.Pos.X, p.Pos.Y, p.Pos.Z, p.Vel.X, p.Vel.Y, p.Vel.Z, p.Weight)
}
