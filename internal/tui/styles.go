package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Label = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	Value = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	Hint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)

	Running = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	Paused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	Failed  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the last width values scaled between their minimum and
// maximum.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	last := len(sparkBlocks) - 1
	for _, v := range values {
		i := 0
		if hi > lo {
			i = int(math.Round((v - lo) / (hi - lo) * float64(last)))
		}
		b.WriteRune(sparkBlocks[i])
	}
	return b.String()
}

// KV renders a label and a value for the status panel.
func KV(label, value string) string {
	return Label.Render(label+" ") + Value.Render(value)
}
