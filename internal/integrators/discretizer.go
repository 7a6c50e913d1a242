package integrators

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
)

var (
	ErrNoTableau  = errors.New("integrators: discretizer has no tableau selected")
	ErrZeroWeight = errors.New("integrators: particle weight is zero")
)

// Discretizer integrates one particle under the pull of a single other
// particle. Velocity is advanced by a Runge–Kutta pass over the force law,
// and position by a second pass whose stages each replay the velocity pass,
// both using the same tableau.
//
// Only a[i][j] with j < i is read. Selecting a preset replaces a, b and c
// together; switch presets between steps only. A Discretizer keeps stage
// buffers and must not be shared between goroutines.
type Discretizer struct {
	name  string
	order int
	a     [][]float64
	b     []float64
	c     []float64

	k   []body.Velocity
	acc []body.Acceleration
}

// NewDiscretizer returns a discretizer using RK4.
func NewDiscretizer() *Discretizer {
	d := &Discretizer{}
	d.SetRK4()
	return d
}

func (d *Discretizer) ensureScratch() {
	if n := len(d.b); len(d.k) != n {
		d.k = make([]body.Velocity, n)
		d.acc = make([]body.Acceleration, n)
	}
}

func (d *Discretizer) clear() {
	d.name, d.order = "", 0
	d.a, d.b, d.c = nil, nil, nil
}

func (d *Discretizer) set(t *Tableau) {
	d.clear()
	d.name, d.order = t.Name, t.Order
	d.a, d.b, d.c = t.A, t.B, t.C
}

// SetTableau selects an arbitrary tableau after validating its shape.
func (d *Discretizer) SetTableau(t *Tableau) error {
	if err := t.Validate(); err != nil {
		return err
	}
	d.set(t.Clone())
	return nil
}

// Tableau returns a copy of the selected tableau, or nil when none is set.
func (d *Discretizer) Tableau() *Tableau {
	if len(d.b) == 0 {
		return nil
	}
	t := &Tableau{Name: d.name, Order: d.order, A: d.a, B: d.b, C: d.c}
	return t.Clone()
}

func (d *Discretizer) Name() string { return d.name }

func (d *Discretizer) SetFeuler()   { d.set(Feuler()) }
func (d *Discretizer) SetBeuler()   { d.set(Beuler()) }
func (d *Discretizer) SetImpMid()   { d.set(ImpMid()) }
func (d *Discretizer) SetCrankNic() { d.set(CrankNic()) }
func (d *Discretizer) SetExpMid()   { d.set(ExpMid()) }
func (d *Discretizer) SetHeun()     { d.set(Heun()) }
func (d *Discretizer) SetRalston()  { d.set(Ralston()) }
func (d *Discretizer) SetKutta3()   { d.set(Kutta3()) }
func (d *Discretizer) SetHeun3()    { d.set(Heun3()) }
func (d *Discretizer) SetWray3()    { d.set(Wray3()) }
func (d *Discretizer) SetRalston3() { d.set(Ralston3()) }
func (d *Discretizer) SetSSPRK3()   { d.set(SSPRK3()) }
func (d *Discretizer) SetRK4()      { d.set(RK4()) }
func (d *Discretizer) SetRK38()     { d.set(RK38()) }
func (d *Discretizer) SetRalston4() { d.set(Ralston4()) }

// Discretize advances target by dt. The stages start from one's position
// and velocity and feel the force of two, which stays fixed for the whole
// step. The resulting increments are added to target, which is usually
// the particle one was copied from.
func (d *Discretizer) Discretize(target *body.Particle, one, two body.Particle, law body.ForceLaw, dt float64) error {
	if len(d.b) == 0 {
		return ErrNoTableau
	}
	if one.Weight == 0 {
		return ErrZeroWeight
	}

	d.ensureScratch()
	x0, v0 := one.Pos, one.Vel
	k := d.k
	var dx r3.Vec

	for i := range d.b {
		var sum r3.Vec
		for j := 0; j < i; j++ {
			sum = r3.Add(sum, r3.Scale(d.a[i][j], k[j]))
		}
		xi := r3.Add(x0, r3.Scale(dt, sum))

		k[i] = r3.Add(v0, d.discretizeVel(xi, v0, one, two, law, d.c[i]*dt))
		dx = r3.Add(dx, r3.Scale(dt*d.b[i], k[i]))
	}

	dv := d.discretizeVel(x0, v0, one, two, law, dt)
	target.Vel = r3.Add(target.Vel, dv)
	target.Pos = r3.Add(target.Pos, dx)
	return nil
}

// discretizeVel returns the velocity change over h for a particle starting
// at xs with velocity vs.
func (d *Discretizer) discretizeVel(xs body.Position, vs body.Velocity, one, two body.Particle, law body.ForceLaw, h float64) body.Velocity {
	acc := d.acc
	var dv r3.Vec

	for i := range d.b {
		var sum r3.Vec
		for j := 0; j < i; j++ {
			sum = r3.Add(sum, r3.Scale(d.a[i][j], acc[j]))
		}
		v := r3.Add(vs, r3.Scale(h, sum))
		x := r3.Add(xs, r3.Scale(d.c[i]*h, v))

		f := law.Force(x, two.Pos, one.Weight, two.Weight, one.Radius, two.Radius)
		acc[i] = r3.Scale(1/one.Weight, f)
		dv = r3.Add(dv, r3.Scale(h*d.b[i], acc[i]))
	}
	return dv
}
