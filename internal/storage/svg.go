package storage

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
)

var svgPalette = []string{"#00ff88", "#00ccff", "#ffaa00", "#ff4488", "#aa88ff", "#ffff66"}

// WriteSVG draws the XY projection of frames: one path per particle and a
// dot at its last recorded position. Particles are matched across frames by
// ID.
func WriteSVG(w io.Writer, frames []Frame, width, height int) error {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	var order []int
	paths := make(map[int][][2]float64)
	for _, f := range frames {
		for _, p := range f.Particles {
			minX, maxX = min(minX, p.Pos.X), max(maxX, p.Pos.X)
			minY, maxY = min(minY, p.Pos.Y), max(maxY, p.Pos.Y)
			if _, ok := paths[p.ID]; !ok {
				order = append(order, p.ID)
			}
			paths[p.ID] = append(paths[p.ID], [2]float64{p.Pos.X, p.Pos.Y})
		}
	}
	if len(order) == 0 {
		return fmt.Errorf("%w: no particles to draw", ErrMalformed)
	}

	// Equal scale on both axes with a 10% margin.
	span := max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	half := span * 0.6
	scale := float64(min(width, height)) / (2 * half)
	project := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-cx)*scale, float64(height)/2 - (y-cy)*scale
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, id := range order {
		color := svgPalette[i%len(svgPalette)]
		pts := paths[id]
		if len(pts) > 1 {
			fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.6" d="M`, color)
			for j, pt := range pts {
				x, y := project(pt[0], pt[1])
				if j == 0 {
					fmt.Fprintf(bw, "%.1f,%.1f", x, y)
				} else {
					fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
				}
			}
			bw.WriteString("\"/>\n")
		}
		x, y := project(pts[len(pts)-1][0], pts[len(pts)-1][1])
		fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2\" fill=\"%s\"/>\n", x, y, color)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func ExportSVG(path string, frames []Frame, width, height int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(file, frames, width, height); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
