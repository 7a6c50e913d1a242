package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/storage"
	"github.com/san-kum/nbody/internal/tui"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	slog.Info("running", "name", cfg.Name, "particles", exp.System().Len(), "steps", cfg.Steps)
	exp.Simulator().AddObserver(newProgress(cfg.Duration(), 10))
	start := time.Now()
	out, runErr := exp.Run(cmd.Context())
	elapsed := time.Since(start)
	if out == nil {
		return runErr
	}
	if runErr != nil {
		slog.Warn("run stopped early, saving partial trajectory", "err", runErr, "steps", out.Result.StepsTaken)
	}

	runID, err := st.Save(out.Meta, out.Frames)
	if err != nil {
		return err
	}
	slog.Debug("saved run", "id", runID, "frames", len(out.Frames), "dir", dataDir)

	if sqlitePath != "" {
		meta := out.Meta
		meta.ID = runID
		meta.Timestamp = time.Now()
		if err := saveSQLite(cmd, meta, out.Frames); err != nil {
			return err
		}
	}

	rows := []string{
		tui.Title.Render(cfg.Name),
		tui.KV("run id", runID),
		tui.KV("elapsed", elapsed.Round(time.Millisecond).String()),
		tui.KV("steps", fmt.Sprintf("%d", out.Result.StepsTaken)),
		tui.KV("frames", fmt.Sprintf("%d", len(out.Frames))),
		tui.KV("energy drift", fmt.Sprintf("%.3e", out.Result.EnergyDrift)),
	}
	for _, name := range sortedKeys(out.Result.Metrics) {
		rows = append(rows, tui.KV(name, fmt.Sprintf("%.6g", out.Result.Metrics[name])))
	}
	fmt.Println(tui.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return runErr
}

// progress logs at debug level each time the run crosses another 1/parts
// of its duration.
type progress struct {
	duration float64
	parts    int
	next     int
	start    time.Time
}

func newProgress(duration float64, parts int) *progress {
	return &progress{duration: duration, parts: parts, next: 1, start: time.Now()}
}

func (p *progress) OnStep(x dynamo.State, t float64) {
	if p.next >= p.parts || t < p.duration*float64(p.next)/float64(p.parts) {
		return
	}
	slog.Debug("progress",
		"pct", 100*p.next/p.parts,
		"t", t,
		"elapsed", time.Since(p.start).Round(time.Millisecond))
	for p.next < p.parts && t >= p.duration*float64(p.next)/float64(p.parts) {
		p.next++
	}
}

func saveSQLite(cmd *cobra.Command, meta storage.RunMetadata, frames []storage.Frame) error {
	sink, err := storage.OpenSQLite(sqlitePath)
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := sink.SaveRun(cmd.Context(), meta, frames); err != nil {
		return err
	}
	slog.Debug("stored run in sqlite", "id", meta.ID, "db", sqlitePath)
	return nil
}

func watchSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	sys, err := experiment.BuildSystem(cfg)
	if err != nil {
		return err
	}

	m := tui.NewModel(cmd.Context(), cfg.Name, sys, cfg.Steps)
	final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(tui.Model); ok {
		return fm.Err()
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}

	slog.Info("comparing", "name", cfg.Name, "methods", strings.Join(args, ","))
	rows, err := experiment.Compare(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTEPS\tENERGY DRIFT\tMOMENTUM DRIFT\tTIME\tERROR")
	for _, r := range rows {
		errText := "-"
		if r.Err != nil {
			errText = r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.3e\t%v\t%s\n",
			r.Method,
			r.Steps,
			r.EnergyDrift,
			r.MomentumDrift,
			r.Elapsed.Round(time.Millisecond),
			errText,
		)
	}
	return w.Flush()
}

func benchForces(cmd *cobra.Command, args []string) error {
	slog.Info("benchmarking force evaluation", "sizes", benchSizes, "theta", benchTheta)
	rows, err := experiment.BenchForces(cmd.Context(), benchSizes, benchTheta, benchWorkers, benchSeed)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tDIRECT\tTREE\tSPEEDUP\tREL ERR")
	for _, r := range rows {
		speedup := 0.0
		if r.Tree > 0 {
			speedup = float64(r.Direct) / float64(r.Tree)
		}
		fmt.Fprintf(w, "%d\t%v\t%v\t%.1fx\t%.2e\n", r.N, r.Direct, r.Tree, speedup, r.RelErr)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	if len(sweepAxes) == 0 {
		return fmt.Errorf("nothing to sweep: pass --vary name=v1,v2 (parameters: %s)",
			strings.Join(experiment.SweepParams(), ", "))
	}

	s := experiment.NewSweep()
	names := make([]string, 0, len(sweepAxes))
	for _, axis := range sweepAxes {
		name, values, err := parseAxis(axis)
		if err != nil {
			return err
		}
		if err := s.Vary(name, values...); err != nil {
			return err
		}
		names = append(names, name)
	}

	slog.Info("sweeping", "name", cfg.Name, "axes", strings.Join(names, ","), "metric", sweepMetric)
	trials, best, err := s.Search(cmd.Context(), cfg, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(sweepMetric))
	for i, tr := range trials {
		cols := make([]string, len(names))
		for j, name := range names {
			cols[j] = strconv.FormatFloat(tr.Params[name], 'g', -1, 64)
		}
		result := fmt.Sprintf("%.3e", tr.Value)
		if tr.Err != nil {
			result = "error: " + tr.Err.Error()
		}
		mark := ""
		if i == best {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", strings.Join(cols, "\t"), result, mark)
	}
	return w.Flush()
}

// parseAxis splits "name=v1,v2,..." into its parameter name and values.
func parseAxis(axis string) (string, []float64, error) {
	name, list, ok := strings.Cut(axis, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad --vary %q, want name=v1,v2", axis)
	}
	fields := strings.Split(list, ",")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --vary %q: %w", axis, err)
		}
		values[i] = v
	}
	return name, values, nil
}
