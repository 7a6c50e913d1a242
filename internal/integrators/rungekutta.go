package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/nbody/internal/dynamo"
)

// RungeKutta advances a dynamo.System with any explicit tableau. Embedded
// tableaux also support error controlled steps. A RungeKutta keeps scratch
// buffers and must not be shared between goroutines.
type RungeKutta struct {
	tab     *Tableau
	k       []dynamo.State
	scratch dynamo.State

	safety   float64
	minScale float64
	maxScale float64
}

func NewRungeKutta(tab *Tableau) (*RungeKutta, error) {
	if err := tab.Validate(); err != nil {
		return nil, err
	}
	return &RungeKutta{
		tab:      tab.Clone(),
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}, nil
}

// NewRK4 returns the classic fourth order stepper.
func NewRK4() *RungeKutta {
	r, _ := NewRungeKutta(RK4())
	return r
}

// NewRK45 returns the Dormand–Prince 5(4) stepper.
func NewRK45() *RungeKutta {
	r, _ := NewRungeKutta(DormandPrince())
	return r
}

func (r *RungeKutta) Tableau() *Tableau { return r.tab.Clone() }

func (r *RungeKutta) ensureScratch(n int) {
	s := r.tab.Stages()
	if len(r.scratch) != n || len(r.k) != s {
		r.k = make([]dynamo.State, s)
		for i := range r.k {
			r.k[i] = make(dynamo.State, n)
		}
		r.scratch = make(dynamo.State, n)
	}
}

// stages fills r.k with the stage derivatives for a step of size dt.
func (r *RungeKutta) stages(dyn dynamo.System, x dynamo.State, t, dt float64) error {
	n := len(x)
	r.ensureScratch(n)

	for i := range r.k {
		row := r.tab.A[i]
		for m := 0; m < n; m++ {
			sum := 0.0
			for j := 0; j < i; j++ {
				sum += row[j] * r.k[j][m]
			}
			r.scratch[m] = x[m] + dt*sum
		}
		k, err := dyn.Derive(r.scratch, t+r.tab.C[i]*dt)
		if err != nil {
			return err
		}
		copy(r.k[i], k)
	}
	return nil
}

func (r *RungeKutta) combine(x dynamo.State, weights []float64, dt float64) dynamo.State {
	result := make(dynamo.State, len(x))
	for m := range x {
		sum := 0.0
		for i, w := range weights {
			sum += w * r.k[i][m]
		}
		result[m] = x[m] + dt*sum
	}
	return result
}

func (r *RungeKutta) Step(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	if err := r.stages(dyn, x, t, dt); err != nil {
		return nil, err
	}
	return r.combine(x, r.tab.B, dt), nil
}

// CanAdapt reports whether the tableau carries an embedded error estimate.
func (r *RungeKutta) CanAdapt() bool { return r.tab.Embedded() }

// StepAdaptive takes one step and suggests the size of the next one. When
// the scaled error exceeds tol the step is discarded and a smaller size is
// returned with dynamo.ErrStepRejected. Tableaux without an embedded
// solution return ErrNotEmbedded.
func (r *RungeKutta) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	if !r.tab.Embedded() {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotEmbedded, r.tab.Name)
	}
	if err := r.stages(dyn, x, t, dt); err != nil {
		return nil, 0, err
	}
	xNew := r.combine(x, r.tab.B, dt)

	errMax := 0.0
	for m := range x {
		est := 0.0
		for i := range r.k {
			est += (r.tab.B[i] - r.tab.BHat[i]) * r.k[i][m]
		}
		scale := math.Abs(x[m]) + math.Abs(dt*r.k[0][m]) + 1e-10
		errMax = math.Max(errMax, math.Abs(dt*est)/scale)
	}

	errRatio := errMax / tol
	order := float64(r.tab.Order)

	if errRatio > 1 {
		lower := math.Max(order-1, 1)
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -1/lower))
		return nil, dt * scale, dynamo.ErrStepRejected
	}

	if errRatio == 0 {
		return xNew, dt * r.maxScale, nil
	}
	scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -1/order))
	return xNew, dt * scale, nil
}
