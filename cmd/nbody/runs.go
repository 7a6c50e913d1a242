package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTRATEGY\tMETHOD\tLAW\tN\tSTEPS\tDT\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%g\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Strategy,
			run.Method,
			run.Law,
			run.Particles,
			run.Steps,
			run.Dt,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

// plotRun charts per-frame statistics of a stored trajectory. Weights are
// not stored, so the statistics are unweighted.
func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("run %s: not enough frames to plot", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("strategy: %s  method: %s  particles: %d\n", meta.Strategy, meta.Method, meta.Particles)
	fmt.Printf("frames: %d  t = %g .. %g\n\n", len(frames), frames[0].Time, frames[len(frames)-1].Time)

	radius := make([]float64, len(frames))
	speed := make([]float64, len(frames))
	for i, f := range frames {
		radius[i], speed[i] = frameSpread(f)
	}

	switch series {
	case "radius":
		printGraph(radius, "rms radius")
	case "speed":
		printGraph(speed, "rms speed")
	case "all":
		printGraph(radius, "rms radius")
		printGraph(speed, "rms speed")
	default:
		return fmt.Errorf("unknown series %q", series)
	}
	return nil
}

// frameSpread returns the rms distance from the mean position and the rms
// speed of the particles in f.
func frameSpread(f storage.Frame) (float64, float64) {
	n := float64(len(f.Particles))
	if n == 0 {
		return 0, 0
	}
	var cx, cy, cz float64
	for _, p := range f.Particles {
		cx += p.Pos.X
		cy += p.Pos.Y
		cz += p.Pos.Z
	}
	cx, cy, cz = cx/n, cy/n, cz/n

	var r2, v2 float64
	for _, p := range f.Particles {
		dx, dy, dz := p.Pos.X-cx, p.Pos.Y-cy, p.Pos.Z-cz
		r2 += dx*dx + dy*dy + dz*dz
		v2 += p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y + p.Vel.Z*p.Vel.Z
	}
	return math.Sqrt(r2 / n), math.Sqrt(v2 / n)
}

func printGraph(data []float64, caption string) {
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w, closeOut, err := output()
	if err != nil {
		return err
	}
	defer closeOut()
	return storage.WriteTrajectory(w, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if outFile != "" {
		return storage.ExportJSON(outFile, *meta, frames)
	}
	return storage.WriteJSON(os.Stdout, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return storage.ExportSVG(outFile, frames, svgSize, svgSize)
	}
	return storage.WriteSVG(os.Stdout, frames, svgSize, svgSize)
}

// output opens --out, or stdout when it is not set.
func output() (io.Writer, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTRATEGY\tMETHOD\tN\tDT\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		n := len(p.Particles)
		if n == 0 {
			n = p.Generator.N
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%d\n", name, p.Strategy, p.Method, n, p.Dt, p.Steps)
	}
	return w.Flush()
}

func listMethods(cmd *cobra.Command, args []string) error {
	cat := experiment.NewCatalog()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "strategies\t%s\n", strings.Join(cat.Strategies, ", "))
	fmt.Fprintf(w, "tree methods\t%s\n", strings.Join(cat.Methods, ", "))
	fmt.Fprintf(w, "pair tableaux\t%s\n", strings.Join(cat.Tableaux, ", "))
	fmt.Fprintf(w, "laws\t%s\n", strings.Join(cat.Laws, ", "))
	fmt.Fprintf(w, "generators\t%s\n", strings.Join(cat.Generators, ", "))
	fmt.Fprintf(w, "presets\t%s\n", strings.Join(cat.Presets, ", "))
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
