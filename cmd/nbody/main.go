package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/nbody/internal/config"
)

var (
	dataDir    string
	sqlitePath string
	verbose    bool

	configFile string
	preset     string
	name       string
	strategy   string
	method     string
	law        string
	dt         float64
	steps      int
	saveEvery  int
	seed       int64
	theta      float64
	gravity    float64
	softening  float64
	workers    int
	adaptive   bool
	tolerance  float64
	numBodies  int
	generator  string

	outFile string
	series  string
	svgSize int

	benchSizes   []int
	benchTheta   float64
	benchWorkers int
	benchSeed    int64

	sweepAxes   []string
	sweepMetric string
)

// main runs the root command with a context canceled on interrupt.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("nbody failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nbody",
		Short:         "Barnes-Hut n-body simulation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbody", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "also store the run in this SQLite database")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "all", "radius, speed or all")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the XY projection of a stored trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image width and height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list strategies, integration methods, laws and generators",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time direct and tree force evaluation",
		Args:  cobra.NoArgs,
		RunE:  benchForces,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{128, 512, 2048}, "particle counts")
	benchCmd.Flags().Float64Var(&benchTheta, "theta", 0.5, "opening angle")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "force query workers (0 = one per CPU)")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "random seed")

	compareCmd := &cobra.Command{
		Use:   "compare [method1] [method2] ...",
		Short: "run one scenario with several integration methods",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	scenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over scenario parameters",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepAxes, "vary", nil, "parameter axis as name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to minimize")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run a simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  watchSimulation,
	}
	scenarioFlags(watchCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		presetsCmd, methodsCmd, benchCmd, compareCmd, sweepCmd, watchCmd)
	return rootCmd
}

// scenarioFlags registers the flags that describe a run. Defaults mirror
// config.DefaultConfig; a flag only overrides the preset or config file
// when it is set explicitly.
func scenarioFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use a preset scenario")
	f.StringVar(&name, "name", def.Name, "run name")
	f.StringVar(&strategy, "strategy", def.Strategy, "direct, tree or pair")
	f.StringVar(&method, "method", def.Method, "integration method")
	f.StringVar(&law, "law", def.Law, "force law")
	f.Float64Var(&dt, "dt", def.Dt, "timestep")
	f.IntVar(&steps, "steps", def.Steps, "number of steps")
	f.IntVar(&saveEvery, "save-every", def.SaveEvery, "record every n-th step")
	f.Int64Var(&seed, "seed", def.Seed, "random seed")
	f.Float64Var(&theta, "theta", def.Theta, "Barnes-Hut opening angle")
	f.Float64Var(&gravity, "g", def.G, "gravitational constant")
	f.Float64Var(&softening, "softening", def.Softening, "softening length")
	f.IntVar(&workers, "workers", def.Workers, "force query workers (0 = one per CPU)")
	f.BoolVar(&adaptive, "adaptive", def.Adaptive, "adaptive step size")
	f.Float64Var(&tolerance, "tol", def.Tolerance, "adaptive error tolerance")
	f.IntVar(&numBodies, "bodies", def.Generator.N, "number of generated bodies")
	f.StringVar(&generator, "generator", def.Generator.Kind, "initial condition generator")
}

// scenario resolves the run configuration: preset, then config file, then
// explicitly set flags.
func scenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("name") {
		cfg.Name = name
	}
	if f.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if f.Changed("method") {
		cfg.Method = method
	}
	if f.Changed("law") {
		cfg.Law = law
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("save-every") {
		cfg.SaveEvery = saveEvery
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("theta") {
		cfg.Theta = theta
	}
	if f.Changed("g") {
		cfg.G = gravity
	}
	if f.Changed("softening") {
		cfg.Softening = softening
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if f.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if (f.Changed("bodies") || f.Changed("generator")) && cfg.Generator.Kind == "" {
		cfg.Generator = config.DefaultConfig().Generator
	}
	if f.Changed("bodies") {
		cfg.Generator.N = numBodies
		cfg.Particles = nil
	}
	if f.Changed("generator") {
		cfg.Generator.Kind = generator
		cfg.Particles = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("scenario", "name", cfg.Name, "strategy", cfg.Strategy, "method", cfg.Method,
		"law", cfg.Law, "dt", cfg.Dt, "steps", cfg.Steps, "seed", cfg.Seed)
	return cfg, nil
}
