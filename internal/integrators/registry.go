package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/nbody/internal/dynamo"
)

var ErrUnknownMethod = errors.New("integrators: unknown method")

var tableaux = map[string]func() *Tableau{
	"feuler":    Feuler,
	"beuler":    Beuler,
	"impmid":    ImpMid,
	"cranknic":  CrankNic,
	"expmid":    ExpMid,
	"heun":      Heun,
	"ralston":   Ralston,
	"kutta3":    Kutta3,
	"heun3":     Heun3,
	"wray3":     Wray3,
	"ralston3":  Ralston3,
	"ssprk3":    SSPRK3,
	"rk4":       RK4,
	"rk38":      RK38,
	"ralston4":  Ralston4,
	"heuneuler": HeunEuler,
	"bs32":      BogackiShampine,
	"dopri5":    DormandPrince,
}

var aliases = map[string]string{
	"euler": "feuler",
	"rk45":  "dopri5",
}

var symplectic = map[string]func() dynamo.Integrator{
	"verlet":   func() dynamo.Integrator { return NewVerlet() },
	"leapfrog": func() dynamo.Integrator { return NewLeapfrog() },
}

func canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// TableauByName returns a fresh copy of the named preset.
func TableauByName(name string) (*Tableau, error) {
	fn, ok := tableaux[canonical(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return fn(), nil
}

// New returns a stepper for a tableau preset or for one of the symplectic
// methods.
func New(name string) (dynamo.Integrator, error) {
	if fn, ok := symplectic[name]; ok {
		return fn(), nil
	}
	tab, err := TableauByName(name)
	if err != nil {
		return nil, err
	}
	return NewRungeKutta(tab)
}

// Methods lists every name accepted by New, aliases excluded.
func Methods() []string {
	names := make([]string, 0, len(tableaux)+len(symplectic))
	for name := range tableaux {
		names = append(names, name)
	}
	for name := range symplectic {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tableaux lists the tableau presets only.
func Tableaux() []string {
	names := make([]string, 0, len(tableaux))
	for name := range tableaux {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
