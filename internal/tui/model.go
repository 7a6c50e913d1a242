package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/nbody/internal/nbody"
	"github.com/san-kum/nbody/internal/octree"
)

const (
	canvasWidth  = 60
	canvasHeight = 20
	historyLen   = 60
	maxSpeed     = 256
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model steps a system on every tick and shows its XY projection together
// with the energy drift.
type Model struct {
	ctx    context.Context
	sys    *nbody.System
	name   string
	total  int
	speed  int
	paused bool
	done   bool
	err    error

	e0      float64
	drift   float64
	history []float64
	extent  float64
	started time.Time
	canvas  *Canvas
}

// NewModel watches sys for total steps. The view spans the initial extent
// of the particles.
func NewModel(ctx context.Context, name string, sys *nbody.System, total int) Model {
	box := octree.BoundsOf(sys.Particles(), 0.2)
	extent := math.Max(box.Max.X-box.Min.X, box.Max.Y-box.Min.Y) / 2
	return Model{
		ctx:     ctx,
		sys:     sys,
		name:    name,
		total:   total,
		speed:   1,
		e0:      sys.Energy(sys.State()),
		extent:  extent,
		started: time.Now(),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		history: make([]float64, 0, historyLen),
	}
}

func (m Model) Init() tea.Cmd { return tick() }

// Err returns the step error that ended the run, if any.
func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-":
			m.speed = max(m.speed/2, 1)
		case "z":
			m.extent /= 1.5
		case "x":
			m.extent *= 1.5
		}
		return m, nil
	case tickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			m = m.advance()
		}
		if m.done {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) advance() Model {
	for range m.speed {
		if m.sys.Steps() >= m.total {
			m.done = true
			break
		}
		if err := m.sys.Step(m.ctx); err != nil {
			m.err = err
			m.done = true
			break
		}
	}

	if m.e0 != 0 {
		m.drift = math.Abs(m.sys.Energy(m.sys.State())-m.e0) / math.Abs(m.e0)
	}
	m.history = append(m.history, m.drift)
	if len(m.history) > historyLen {
		m.history = m.history[len(m.history)-historyLen:]
	}
	if m.sys.Steps() >= m.total {
		m.done = true
	}
	return m
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return Failed.Render("failed")
	case m.done:
		return Running.Render("done")
	case m.paused:
		return Paused.Render("paused")
	default:
		return Running.Render("running")
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.Plot(m.sys.Particles(), m.extent)

	stats := []string{
		m.status(),
		KV("step", fmt.Sprintf("%d/%d", m.sys.Steps(), m.total)),
		KV("time", fmt.Sprintf("%.4f", m.sys.Time())),
		KV("bodies", fmt.Sprintf("%d", m.sys.Len())),
		KV("strategy", m.sys.Strategy().String()),
		KV("speed", fmt.Sprintf("%dx", m.speed)),
		KV("drift", fmt.Sprintf("%.3e", m.drift)),
		Label.Render(Sparkline(m.history, 20)),
		KV("elapsed", time.Since(m.started).Round(time.Millisecond).String()),
	}
	if m.err != nil {
		stats = append(stats, Failed.Render(m.err.Error()))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		Panel.Render(m.canvas.String()),
		Panel.Render(strings.Join(stats, "\n")),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		Title.Render("nbody · "+m.name),
		body,
		Hint.Render("space pause · +/- speed · z/x zoom · q quit"),
	)
}
