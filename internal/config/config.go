package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/octree"
)

const (
	DefaultDt        = 0.01
	DefaultSteps     = 1000
	DefaultSaveEvery = 10
	DefaultBodies    = 64
	DefaultMass      = 1e10
	DefaultRadius    = 1.0
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Name      string  `yaml:"name"`
	Strategy  string  `yaml:"strategy"`
	Method    string  `yaml:"method"`
	Law       string  `yaml:"law"`
	Dt        float64 `yaml:"dt"`
	Steps     int     `yaml:"steps"`
	SaveEvery int     `yaml:"save_every"`
	Seed      int64   `yaml:"seed"`
	Theta     float64 `yaml:"theta"`
	G         float64 `yaml:"g"`
	Softening float64 `yaml:"softening"`
	Workers   int     `yaml:"workers"`
	Adaptive  bool    `yaml:"adaptive"`
	Tolerance float64 `yaml:"tolerance"`

	Bounds    Bounds           `yaml:"bounds"`
	Generator GeneratorConfig  `yaml:"generator"`
	Particles []ParticleConfig `yaml:"particles,omitempty"`
}

// Bounds is the box a run is expected to stay in. A zero box disables the
// check.
type Bounds struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

func (b Bounds) IsZero() bool { return b == Bounds{} }

// Extent is the largest absolute coordinate of the box.
func (b Bounds) Extent() float64 {
	e := 0.0
	for i := range 3 {
		e = math.Max(e, math.Max(math.Abs(b.Min[i]), math.Abs(b.Max[i])))
	}
	return e
}

// GeneratorConfig describes a seeded particle cloud. It is used when no
// explicit particles are listed.
type GeneratorConfig struct {
	Kind     string  `yaml:"kind"`
	N        int     `yaml:"n"`
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Velocity float64 `yaml:"velocity"`
}

type ParticleConfig struct {
	Pos    [3]float64 `yaml:"pos"`
	Vel    [3]float64 `yaml:"vel"`
	Mass   float64    `yaml:"mass"`
	Radius float64    `yaml:"radius,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:      "default",
		Strategy:  string(nbody.StrategyTree),
		Method:    "rk4",
		Law:       "gravity",
		Dt:        DefaultDt,
		Steps:     DefaultSteps,
		SaveEvery: DefaultSaveEvery,
		Seed:      1,
		Theta:     octree.DefaultTheta,
		G:         body.DefaultG,
		Tolerance: 1e-6,
		Generator: GeneratorConfig{
			Kind:   "cube",
			N:      DefaultBodies,
			Radius: DefaultRadius,
			Mass:   DefaultMass,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Duration is the simulated time span, Dt·Steps.
func (c *Config) Duration() float64 {
	return c.Dt * float64(c.Steps)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalid, c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalid, c.Steps)
	}
	if c.SaveEvery < 0 {
		return fmt.Errorf("%w: save_every must not be negative, got %d", ErrInvalid, c.SaveEvery)
	}
	if c.Theta < 0 || math.IsNaN(c.Theta) {
		return fmt.Errorf("%w: theta must not be negative, got %v", ErrInvalid, c.Theta)
	}
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("%w: adaptive runs need a positive tolerance", ErrInvalid)
	}

	st, err := nbody.ParseStrategy(c.Strategy)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := body.LawByName(c.Law, c.G, c.Softening); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	switch st {
	case nbody.StrategyTree:
		if c.Law != "gravity" {
			return fmt.Errorf("%w: tree strategy needs the gravity law, got %q", ErrInvalid, c.Law)
		}
		if _, err := integrators.New(c.Method); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	case nbody.StrategyPair:
		if _, err := integrators.TableauByName(c.Method); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		if c.particleCount() != 2 {
			return fmt.Errorf("%w: pair strategy needs 2 particles, got %d", ErrInvalid, c.particleCount())
		}
	}

	if !c.Bounds.IsZero() {
		for i := range 3 {
			if c.Bounds.Min[i] >= c.Bounds.Max[i] {
				return fmt.Errorf("%w: bounds min must be below max on every axis", ErrInvalid)
			}
		}
	}

	if len(c.Particles) == 0 {
		if _, ok := generators[c.Generator.Kind]; !ok {
			return fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.Generator.Kind)
		}
		if c.Generator.N <= 0 {
			return fmt.Errorf("%w: generator needs at least one particle", ErrInvalid)
		}
		if c.Generator.Radius <= 0 {
			return fmt.Errorf("%w: generator radius must be positive", ErrInvalid)
		}
	}
	return nil
}

func (c *Config) particleCount() int {
	if len(c.Particles) > 0 {
		return len(c.Particles)
	}
	return c.Generator.N
}

// ForceLaw returns the configured interaction.
func (c *Config) ForceLaw() (body.ForceLaw, error) {
	return body.LawByName(c.Law, c.G, c.Softening)
}

// BuildParticles returns the listed particles or, when none are listed, a
// cloud from the generator seeded with Seed.
func (c *Config) BuildParticles() ([]body.Particle, error) {
	if len(c.Particles) > 0 {
		ps := make([]body.Particle, len(c.Particles))
		for i, pc := range c.Particles {
			ps[i] = body.New(i, vec(pc.Pos), vec(pc.Vel), pc.Mass, pc.Radius)
		}
		return ps, nil
	}

	gen, ok := generators[c.Generator.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.Generator.Kind)
	}
	return gen(newRand(c.Seed), c.Generator, c.G), nil
}
