package experiment

import (
	"fmt"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/octree"
)

// Catalog lists the names accepted by a run configuration.
type Catalog struct {
	Strategies []string
	Methods    []string
	Tableaux   []string
	Laws       []string
	Generators []string
	Presets    []string
}

func NewCatalog() Catalog {
	strategies := make([]string, 0, len(nbody.Strategies()))
	for _, s := range nbody.Strategies() {
		strategies = append(strategies, s.String())
	}
	return Catalog{
		Strategies: strategies,
		Methods:    integrators.Methods(),
		Tableaux:   integrators.Tableaux(),
		Laws:       body.LawNames(),
		Generators: config.GeneratorKinds(),
		Presets:    config.ListPresets(),
	}
}

// BuildSystem creates the system described by cfg and loads its particles.
func BuildSystem(cfg *config.Config) (*nbody.System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	law, err := cfg.ForceLaw()
	if err != nil {
		return nil, err
	}
	st, err := nbody.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	opts := []nbody.Option{
		nbody.WithLaw(law),
		nbody.WithStrategy(st),
		nbody.WithWorkers(cfg.Workers),
		nbody.WithTreeConfig(octree.Config{Theta: cfg.Theta, G: cfg.G}),
	}
	switch st {
	case nbody.StrategyTree:
		integ, err := integrators.New(cfg.Method)
		if err != nil {
			return nil, err
		}
		opts = append(opts, nbody.WithIntegrator(integ))
	case nbody.StrategyPair:
		tab, err := integrators.TableauByName(cfg.Method)
		if err != nil {
			return nil, err
		}
		d := integrators.NewDiscretizer()
		if err := d.SetTableau(tab); err != nil {
			return nil, err
		}
		opts = append(opts, nbody.WithDiscretizer(d))
	}

	sys, err := nbody.New(cfg.Dt, opts...)
	if err != nil {
		return nil, err
	}
	ps, err := cfg.BuildParticles()
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		sys.AddParticle(p)
	}
	return sys, nil
}

// DefaultMetrics returns the metrics recorded for every run. The stability
// metric is added only when cfg has bounds.
func DefaultMetrics(cfg *config.Config, sys *nbody.System) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewEnergy(sys),
		metrics.NewEnergyDrift(sys),
		metrics.NewMomentumDrift(sys),
	}
	if !cfg.Bounds.IsZero() {
		ms = append(ms, metrics.NewStability(cfg.Bounds.Extent(), 3*sys.Len()))
	}
	return ms
}

func describe(cfg *config.Config) string {
	return fmt.Sprintf("%s (%s/%s, %s)", cfg.Name, cfg.Strategy, cfg.Method, cfg.Law)
}
