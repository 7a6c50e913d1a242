package integrators

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/dynamo"
)

type benchDynamics struct{}

func (b *benchDynamics) StateDim() int { return 2 }
func (b *benchDynamics) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	return dynamo.State{x[1], -x[0]}, nil
}

func benchStep(b *testing.B, integrator dynamo.Integrator, dyn dynamo.System, x dynamo.State) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		next, err := integrator.Step(dyn, x, 0, 0.01)
		if err != nil {
			b.Fatal(err)
		}
		x = next
	}
}

func BenchmarkFeuler(b *testing.B) {
	integ, _ := New("feuler")
	benchStep(b, integ, &benchDynamics{}, dynamo.State{1.0, 0.0})
}

func BenchmarkRK4(b *testing.B) {
	benchStep(b, NewRK4(), &benchDynamics{}, dynamo.State{1.0, 0.0})
}

func BenchmarkRK45(b *testing.B) {
	benchStep(b, NewRK45(), &benchDynamics{}, dynamo.State{1.0, 0.0})
}

func BenchmarkVerlet(b *testing.B) {
	benchStep(b, NewVerlet(), &benchDynamics{}, dynamo.State{1.0, 0.0})
}

func BenchmarkLeapfrog(b *testing.B) {
	benchStep(b, NewLeapfrog(), &benchDynamics{}, dynamo.State{1.0, 0.0})
}

type benchNBody struct{}

func (b *benchNBody) StateDim() int { return 30 }
func (b *benchNBody) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	dx := make(dynamo.State, 30)
	copy(dx[:15], x[15:])
	for i := 0; i < 15; i++ {
		dx[15+i] = -x[i] * 0.1
	}
	return dx, nil
}

func BenchmarkRK4_NBody5(b *testing.B) {
	benchStep(b, NewRK4(), &benchNBody{}, make(dynamo.State, 30))
}

func BenchmarkDiscretize(b *testing.B) {
	d := NewDiscretizer()
	law := body.Gravitational{G: 1}
	one := body.New(0, r3.Vec{X: -0.5}, r3.Vec{Y: -0.7}, 1, 0)
	two := body.New(1, r3.Vec{X: 0.5}, r3.Vec{Y: 0.7}, 1, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := one
		if err := d.Discretize(&p, one, two, law, 0.01); err != nil {
			b.Fatal(err)
		}
	}
}
