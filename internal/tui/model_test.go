package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/nbody/internal/body"
	"github.com/san-kum/nbody/internal/nbody"
)

func pairSystem(t *testing.T) *nbody.System {
	t.Helper()
	sys, err := nbody.New(1e-3, nbody.WithLaw(body.Gravitational{G: 1}))
	if err != nil {
		t.Fatal(err)
	}
	sys.AddParticle(body.New(0, r3.Vec{X: -0.5}, r3.Vec{Y: -0.7}, 1, 0))
	sys.AddParticle(body.New(1, r3.Vec{X: 0.5}, r3.Vec{Y: 0.7}, 1, 0))
	return sys
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	got := []rune(c.String())
	if len(got) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(got))
	}
	if got[0] != 0x2801 || got[1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", got[0], got[1])
	}

	c.Clear()
	if c.String() != "⠀⠀" {
		t.Error("clear did not blank the canvas")
	}
}

func TestCanvasPlot(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Plot([]body.Particle{
		{Pos: r3.Vec{}},
		{Pos: r3.Vec{X: 5}},
	}, 1)

	dots := 0
	for _, r := range c.String() {
		if r != '\n' && r != brailleBlank {
			dots++
		}
	}
	if dots != 1 {
		t.Errorf("expected one plotted cell, got %d", dots)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		values []float64
		width  int
		want   string
	}{
		{nil, 5, ""},
		{[]float64{1, 1, 1}, 5, "▁▁▁"},
		{[]float64{0, 7}, 5, "▁█"},
		{[]float64{9, 0, 1, 2, 3, 4, 5, 6, 7}, 8, "▁▂▃▄▅▆▇█"},
	}
	for _, tt := range tests {
		if got := Sparkline(tt.values, tt.width); got != tt.want {
			t.Errorf("Sparkline(%v, %d) = %q, want %q", tt.values, tt.width, got, tt.want)
		}
	}
}

func TestModelSteps(t *testing.T) {
	m := NewModel(context.Background(), "pair", pairSystem(t), 10)

	var model tea.Model = m
	model, cmd := model.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected another tick")
	}
	if got := model.(Model).sys.Steps(); got != 1 {
		t.Errorf("expected 1 step, got %d", got)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if s := model.(Model).speed; s != 4 {
		t.Errorf("expected speed 4, got %d", s)
	}

	model, _ = model.Update(tickMsg(time.Now()))
	model, _ = model.Update(tickMsg(time.Now()))
	mm := model.(Model)
	if mm.sys.Steps() != 9 {
		t.Errorf("expected 9 steps, got %d", mm.sys.Steps())
	}

	_, cmd = mm.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected quit command at the end of the run")
	}
	if mm.sys.Steps() != 10 {
		t.Errorf("expected the run to stop at 10 steps, got %d", mm.sys.Steps())
	}
}

func TestModelPause(t *testing.T) {
	var model tea.Model = NewModel(context.Background(), "pair", pairSystem(t), 10)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	model, _ = model.Update(tickMsg(time.Now()))
	if got := model.(Model).sys.Steps(); got != 0 {
		t.Errorf("paused model stepped %d times", got)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(context.Background(), "pair", pairSystem(t), 10)
	view := m.View()
	for _, want := range []string{"nbody", "pair", "0/10", "direct", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(context.Background(), "pair", pairSystem(t), 10)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
