package config

import "sort"

// Presets use N-body units, G = 1.
var Presets = map[string]*Config{
	"two-body": {
		Name: "two-body", Strategy: "pair", Method: "rk4", Law: "gravity",
		Dt: 1e-3, Steps: 5000, SaveEvery: 10, Seed: 1, Theta: 0.9, G: 1,
		Particles: []ParticleConfig{
			{Pos: [3]float64{-0.5, 0, 0}, Vel: [3]float64{0, -0.7071067811865476, 0}, Mass: 1},
			{Pos: [3]float64{0.5, 0, 0}, Vel: [3]float64{0, 0.7071067811865476, 0}, Mass: 1},
		},
	},
	// Chenciner–Montgomery figure eight, period ≈ 6.3259.
	"three-body": {
		Name: "three-body", Strategy: "tree", Method: "dopri5", Law: "gravity",
		Dt: 1e-3, Steps: 6326, SaveEvery: 10, Seed: 1, Theta: 0.5, G: 1,
		Particles: []ParticleConfig{
			{Pos: [3]float64{0.97000436, -0.24308753, 0}, Vel: [3]float64{0.466203685, 0.43236573, 0}, Mass: 1},
			{Pos: [3]float64{-0.97000436, 0.24308753, 0}, Vel: [3]float64{0.466203685, 0.43236573, 0}, Mass: 1},
			{Pos: [3]float64{0, 0, 0}, Vel: [3]float64{-0.93240737, -0.86473146, 0}, Mass: 1},
		},
	},
	"cube": {
		Name: "cube", Strategy: "tree", Method: "leapfrog", Law: "gravity",
		Dt: 1e-3, Steps: 2000, SaveEvery: 20, Seed: 42, Theta: 0.9, G: 1,
		Bounds:    Bounds{Min: [3]float64{-20, -20, -20}, Max: [3]float64{20, 20, 20}},
		Generator: GeneratorConfig{Kind: "cube", N: 128, Radius: 1, Mass: 1, Velocity: 0.1},
	},
	"plummer": {
		Name: "plummer", Strategy: "tree", Method: "leapfrog", Law: "gravity",
		Dt: 1e-3, Steps: 2000, SaveEvery: 20, Seed: 7, Theta: 0.7, G: 1,
		Bounds:    Bounds{Min: [3]float64{-50, -50, -50}, Max: [3]float64{50, 50, 50}},
		Generator: GeneratorConfig{Kind: "plummer", N: 256, Radius: 1, Mass: 1, Velocity: 1},
	},
	"disk": {
		Name: "disk", Strategy: "tree", Method: "verlet", Law: "gravity",
		Dt: 5e-4, Steps: 4000, SaveEvery: 40, Seed: 3, Theta: 0.6, G: 1,
		Bounds:    Bounds{Min: [3]float64{-10, -10, -10}, Max: [3]float64{10, 10, 10}},
		Generator: GeneratorConfig{Kind: "disk", N: 200, Radius: 2, Mass: 1, Velocity: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Particles = append([]ParticleConfig(nil), p.Particles...)
	if cfg.Tolerance == 0 {
		cfg.Tolerance = 1e-6
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
