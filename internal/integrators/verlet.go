package integrators

import (
	"fmt"

	"github.com/san-kum/nbody/internal/dynamo"
)

// The symplectic steppers expect a state laid out as all positions followed
// by all velocities, and a system whose velocity derivative depends on
// positions only.

func splitHalf(x dynamo.State) (int, error) {
	if len(x)%2 != 0 {
		return 0, fmt.Errorf("%w: symplectic step needs an even state length, got %d", dynamo.ErrDimensionMismatch, len(x))
	}
	return len(x) / 2, nil
}

// Verlet is velocity Verlet.
type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	half, err := splitHalf(x)
	if err != nil {
		return nil, err
	}
	if len(v.scratch) != len(x) {
		v.scratch = make(dynamo.State, len(x))
	}

	result := make(dynamo.State, len(x))
	dx, err := dyn.Derive(x, t)
	if err != nil {
		return nil, err
	}

	dt2 := dt * dt
	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*dx[half+i]*dt2
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}

	dxNew, err := dyn.Derive(v.scratch, t+dt)
	if err != nil {
		return nil, err
	}

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}
	return result, nil
}

// Leapfrog is the kick-drift-kick scheme.
type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	half, err := splitHalf(x)
	if err != nil {
		return nil, err
	}
	if len(l.scratch) != len(x) {
		l.scratch = make(dynamo.State, len(x))
	}

	result := make(dynamo.State, len(x))
	dx, err := dyn.Derive(x, t)
	if err != nil {
		return nil, err
	}
	halfDt := dt * 0.5

	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}
	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	dxNew, err := dyn.Derive(l.scratch, t+dt)
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}
	return result, nil
}
