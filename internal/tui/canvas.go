package tui

import (
	"strings"

	"github.com/san-kum/nbody/internal/body"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dots, so it is
// 2·Width by 4·Height dots.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
		}
	}
}

// Plot draws the XY projection of ps, mapping [-extent, extent] on both
// axes onto the canvas. Particles outside that square are skipped.
func (c *Canvas) Plot(ps []body.Particle, extent float64) {
	if extent <= 0 {
		return
	}
	w, h := float64(2*c.Width), float64(4*c.Height)
	for _, p := range ps {
		x := (p.Pos.X/extent + 1) / 2 * w
		y := (1 - p.Pos.Y/extent) / 2 * h
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		c.Set(int(x), int(y))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
