package config

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/metrics"
)

// A generator returns gen.N particles of total mass gen.Mass. g is the
// gravitational constant used for equilibrium velocities.
type generator func(rng *rand.Rand, gen GeneratorConfig, g float64) []body.Particle

var generators = map[string]generator{
	"cube":    cube,
	"plummer": plummer,
	"disk":    disk,
}

func GeneratorKinds() []string {
	kinds := make([]string, 0, len(generators))
	for k := range generators {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(uint64(seed)))
}

func vec(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// isotropic returns a uniformly distributed direction scaled by r.
func isotropic(rng *rand.Rand, r float64) r3.Vec {
	z := uniform(rng, -1, 1)
	phi := uniform(rng, 0, 2*math.Pi)
	s := math.Sqrt(1 - z*z)
	return r3.Vec{X: r * s * math.Cos(phi), Y: r * s * math.Sin(phi), Z: r * z}
}

// cube spreads equal masses uniformly over [-R, R]³ with velocity
// components uniform in [-v, v].
func cube(rng *rand.Rand, gen GeneratorConfig, _ float64) []body.Particle {
	ps := make([]body.Particle, gen.N)
	m := gen.Mass / float64(gen.N)
	r, v := gen.Radius, gen.Velocity
	for i := range ps {
		pos := r3.Vec{X: uniform(rng, -r, r), Y: uniform(rng, -r, r), Z: uniform(rng, -r, r)}
		vel := r3.Vec{X: uniform(rng, -v, v), Y: uniform(rng, -v, v), Z: uniform(rng, -v, v)}
		ps[i] = body.New(i, pos, vel, m, 0)
	}
	return ps
}

// plummerCutoff truncates the Plummer profile at this many scale radii.
const plummerCutoff = 10

// plummer samples a Plummer sphere of scale radius R in virial equilibrium
// (Aarseth, Hénon & Wielen 1974). Velocity scales the equilibrium speeds.
// The result is shifted to the center of mass frame.
func plummer(rng *rand.Rand, gen GeneratorConfig, g float64) []body.Particle {
	ps := make([]body.Particle, gen.N)
	m := gen.Mass / float64(gen.N)
	a := gen.Radius

	for i := range ps {
		var r float64
		for {
			x := rng.Float64()
			if x == 0 {
				continue
			}
			r = a / math.Sqrt(math.Pow(x, -2.0/3.0)-1)
			if r <= plummerCutoff*a {
				break
			}
		}

		var q float64
		for {
			q = rng.Float64()
			y := 0.1 * rng.Float64()
			if y < q*q*math.Pow(1-q*q, 3.5) {
				break
			}
		}
		escape := math.Sqrt(2*g*gen.Mass) * math.Pow(r*r+a*a, -0.25)

		ps[i] = body.New(i, isotropic(rng, r), isotropic(rng, gen.Velocity*q*escape), m, 0)
	}
	recenter(ps)
	return ps
}

// diskInner is the inner edge of the disk as a fraction of its radius.
const diskInner = 0.1

// disk places a central body holding half the mass and a thin disk of
// N-1 particles on circular orbits around it.
func disk(rng *rand.Rand, gen GeneratorConfig, g float64) []body.Particle {
	ps := make([]body.Particle, gen.N)
	central := gen.Mass / 2
	ps[0] = body.New(0, r3.Vec{}, r3.Vec{}, central, 0)
	if gen.N == 1 {
		ps[0].Weight = gen.Mass
		return ps
	}

	m := (gen.Mass - central) / float64(gen.N-1)
	rmin, rmax := diskInner*gen.Radius, gen.Radius
	for i := 1; i < gen.N; i++ {
		// Uniform in area.
		r := math.Sqrt(uniform(rng, rmin*rmin, rmax*rmax))
		phi := uniform(rng, 0, 2*math.Pi)
		z := uniform(rng, -0.01, 0.01) * gen.Radius

		enclosed := central + (gen.Mass-central)*(r*r-rmin*rmin)/(rmax*rmax-rmin*rmin)
		v := gen.Velocity * math.Sqrt(g*enclosed/r)

		pos := r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
		vel := r3.Vec{X: -v * math.Sin(phi), Y: v * math.Cos(phi)}
		ps[i] = body.New(i, pos, vel, m, 0)
	}
	recenter(ps)
	return ps
}

// recenter moves ps into their center of mass frame.
func recenter(ps []body.Particle) {
	com, total := metrics.CenterOfMass(ps)
	if total == 0 {
		return
	}
	vcom := r3.Scale(1/total, metrics.LinearMomentum(ps))
	for i := range ps {
		ps[i].Pos = r3.Sub(ps[i].Pos, com)
		ps[i].Vel = r3.Sub(ps[i].Vel, vcom)
	}
}
