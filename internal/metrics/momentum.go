package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/dynamo"
)

// MomentumSource is implemented by systems that can report the linear
// momentum of a state.
type MomentumSource interface {
	Momentum(x dynamo.State) r3.Vec
}

// MomentumDrift reports the largest distance between the observed momentum
// and the first one. Pairwise forces conserve momentum exactly, so any
// growth comes from the integrator or the tree approximation.
type MomentumDrift struct {
	name     string
	src      MomentumSource
	initial  r3.Vec
	maxDrift float64
	samples  int
}

func NewMomentumDrift(src MomentumSource) *MomentumDrift {
	return &MomentumDrift{
		name: "momentum_drift",
		src:  src,
	}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(x dynamo.State, t float64) {
	p := m.src.Momentum(x)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, r3.Norm(r3.Sub(p, m.initial)))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = r3.Vec{}
	m.maxDrift = 0
	m.samples = 0
}
