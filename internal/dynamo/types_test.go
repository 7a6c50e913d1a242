package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Dist(t *testing.T) {
	tests := []struct {
		a, b State
		want float64
	}{
		{State{3, 4}, State{0, 0}, 5},
		{State{1, 0}, State{1, 0}, 0},
		{State{1, 1, 1, 1}, State{0, 0, 0, 0}, 2},
		{State{-1, 2}, State{2, -2}, 5},
	}

	for _, tt := range tests {
		if got := tt.a.Dist(tt.b); math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("Dist(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestState_AddScaled(t *testing.T) {
	a := State{1, 2, 3}
	d := State{4, 5, 6}

	got := a.AddScaled(0.5, d)
	want := State{3, 4.5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AddScaled = %v, want %v", got, want)
		}
	}
	if a[0] != 1 || d[0] != 4 {
		t.Error("AddScaled modified its inputs")
	}
}

func TestState_Clone(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.Duration <= 0 {
		t.Error("DefaultConfig has invalid Duration")
	}
	if cfg.Tolerance <= 0 {
		t.Error("DefaultConfig has invalid Tolerance")
	}
	if cfg.SaveEvery != 1 {
		t.Errorf("DefaultConfig SaveEvery = %d, want 1", cfg.SaveEvery)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Time: 1.5, Step: 150, Wrapped: ErrInvalidState}
	expected := "step 150 (t=1.5000): " + ErrInvalidState.Error()
	if err.Error() != expected {
		t.Errorf("SimulationError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimulationError does not unwrap to its cause")
	}
}
