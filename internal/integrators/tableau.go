package integrators

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidTableau = errors.New("integrators: invalid Butcher tableau")
	ErrNotEmbedded    = errors.New("integrators: tableau has no embedded solution")
)

// TableauError describes why a tableau was rejected.
type TableauError struct {
	Name   string
	Reason string
}

func (e *TableauError) Error() string {
	return fmt.Sprintf("integrators: tableau %q: %s", e.Name, e.Reason)
}

func (e *TableauError) Is(target error) bool { return target == ErrInvalidTableau }

// Tableau is a Butcher tableau. A is square with one row per stage, B holds
// the stage weights and C the stage time fractions. BHat, when present,
// holds the weights of the embedded lower order solution.
type Tableau struct {
	Name  string
	Order int
	A     [][]float64
	B     []float64
	C     []float64
	BHat  []float64
}

func (t *Tableau) Stages() int { return len(t.B) }

func (t *Tableau) Embedded() bool { return len(t.BHat) > 0 }

// Explicit reports whether every entry on or above the diagonal of A is
// zero. Only the strictly lower part of A is ever read, so the other
// tableaux run as their lagged explicit counterpart.
func (t *Tableau) Explicit() bool {
	for i, row := range t.A {
		for j := i; j < len(row); j++ {
			if row[j] != 0 {
				return false
			}
		}
	}
	return true
}

// Validate checks that A, B, C and BHat agree on the stage count and hold
// finite values.
func (t *Tableau) Validate() error {
	s := len(t.B)
	if s == 0 {
		return &TableauError{Name: t.Name, Reason: "no stages"}
	}
	if len(t.C) != s {
		return &TableauError{Name: t.Name, Reason: fmt.Sprintf("len(c)=%d, want %d", len(t.C), s)}
	}
	if len(t.A) != s {
		return &TableauError{Name: t.Name, Reason: fmt.Sprintf("a has %d rows, want %d", len(t.A), s)}
	}
	for i, row := range t.A {
		if len(row) != s {
			return &TableauError{Name: t.Name, Reason: fmt.Sprintf("a row %d has %d entries, want %d", i, len(row), s)}
		}
		if !finite(row) {
			return &TableauError{Name: t.Name, Reason: fmt.Sprintf("a row %d is not finite", i)}
		}
	}
	if t.Embedded() && len(t.BHat) != s {
		return &TableauError{Name: t.Name, Reason: fmt.Sprintf("len(bhat)=%d, want %d", len(t.BHat), s)}
	}
	if !finite(t.B) || !finite(t.C) || !finite(t.BHat) {
		return &TableauError{Name: t.Name, Reason: "non-finite coefficient"}
	}
	if t.Order < 1 {
		return &TableauError{Name: t.Name, Reason: "order must be at least 1"}
	}
	return nil
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (t *Tableau) Clone() *Tableau {
	c := &Tableau{
		Name:  t.Name,
		Order: t.Order,
		A:     make([][]float64, len(t.A)),
		B:     append([]float64(nil), t.B...),
		C:     append([]float64(nil), t.C...),
		BHat:  append([]float64(nil), t.BHat...),
	}
	for i, row := range t.A {
		c.A[i] = append([]float64(nil), row...)
	}
	return c
}
