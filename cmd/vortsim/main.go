package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/vortsim/internal/analysis"
	"github.com/san-kum/vortsim/internal/automation"
	"github.com/san-kum/vortsim/internal/config"
	"github.com/san-kum/vortsim/internal/experiment"
	"github.com/san-kum/vortsim/internal/export"
	"github.com/san-kum/vortsim/internal/metrics"
	"github.com/san-kum/vortsim/internal/optim"
	"github.com/san-kum/vortsim/internal/render"
	"github.com/san-kum/vortsim/internal/storage"
	"github.com/san-kum/vortsim/internal/viz"
	"github.com/san-kum/vortsim/pkg/vortex"
)

var (
	dataDir string
	// solver
	resolution      int
	viscosity       float64
	dt              float64
	frames          int
	boundary        string
	poissonSweeps   int
	diffusionSweeps int
	workers         int
	noCorrection    bool
	// config file
	configFile string
	// output
	paletteName string
	scaleName   string
	pngPath     string
	svgPath     string
	gifPath     string
	cellSize    int
	arrows      int
	outPath     string
	// plot
	series []string
	// bench
	benchFrames int
	// sweep, tune, montecarlo
	param     string
	sweepMin  float64
	sweepMax  float64
	steps     int
	tuneGrid  []string
	metric    string
	jitter    float64
	trials    int
	trialSeed int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vortsim",
		Short: "2-D vorticity-streamfunction fluid lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := viz.NewApp(config.DefaultConfig(), paletteName)
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vortsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&paletteName, "palette", "viridis", "colour palette")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a headless simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	solverFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().StringVar(&pngPath, "png", "", "write the final field as png")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the vortex core paths as svg")
	runCmd.Flags().StringVar(&scaleName, "scale", "minmax", "colour scale (minmax, symmetric)")
	runCmd.Flags().IntVar(&cellSize, "cell", 4, "pixels per cell")
	runCmd.Flags().IntVar(&arrows, "arrows", 0, "draw a velocity arrow every n cells (0 disables)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	solverFlags(liveCmd)
	liveCmd.Flags().StringVar(&gifPath, "gif", viz.DefaultGIFPath, "recording output path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&series, "series", []string{"circulation", "enstrophy", "peak"}, "diagnostics to plot")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render the final field of a run as png",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <run_id>.png)")
	snapshotCmd.Flags().StringVar(&scaleName, "scale", "minmax", "colour scale (minmax, symmetric)")
	snapshotCmd.Flags().IntVar(&cellSize, "cell", 4, "pixels per cell")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-8s %s\n", name, config.Presets[name].Description)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the solver",
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 20, "frames per measurement")
	benchCmd.Flags().StringVar(&boundary, "boundary", config.DefaultBoundary, "boundary (wall, periodic)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "enstrophy spectrum of a run's final field",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and store every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep one parameter across a range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	solverFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	sweepCmd.Flags().StringVar(&param, "param", "viscosity", fmt.Sprintf("parameter to sweep %v", config.Params))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.0002, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.004, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search for the settings that minimise a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	solverFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	tuneCmd.Flags().StringArrayVar(&tuneGrid, "grid", nil, "name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "circulation_drift", "metric to minimise")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [preset]",
		Short: "rerun a preset with jittered vortex positions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	solverFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	monteCarloCmd.Flags().Float64Var(&jitter, "jitter", 0.02, "largest displacement per axis (domain fraction)")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 8, "number of trials")
	monteCarloCmd.Flags().Int64Var(&trialSeed, "seed", 0, "random seed (0 uses the clock)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, snapshotCmd, exportCmd, presetsCmd, benchCmd,
		spectrumCmd, scenarioCmd, sweepCmd, tuneCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solverFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&resolution, "n", config.DefaultResolution, "grid resolution")
	cmd.Flags().Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "kinematic viscosity")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().StringVar(&boundary, "boundary", config.DefaultBoundary, "boundary (wall, periodic)")
	cmd.Flags().IntVar(&poissonSweeps, "poisson-sweeps", vortex.DefaultPoissonSweeps, "red-black sweeps per frame")
	cmd.Flags().IntVar(&diffusionSweeps, "diffusion-sweeps", vortex.DefaultDiffusionSweeps, "jacobi sweeps per frame")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 uses GOMAXPROCS)")
	cmd.Flags().BoolVar(&noCorrection, "no-correction", false, "disable the circulation fixer")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

// resolveConfig layers a preset, an optional config file and explicit flags,
// later layers winning.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "single"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		if len(loaded.Vortices) == 0 {
			loaded.Vortices = cfg.Vortices
		}
		cfg = loaded
		if len(args) == 0 {
			name = "config"
		}
	}

	flags := cmd.Flags()
	if flags.Changed("n") || configFile == "" {
		cfg.Resolution = resolution
	}
	if flags.Changed("viscosity") || configFile == "" {
		cfg.Viscosity = viscosity
	}
	if flags.Changed("dt") || configFile == "" {
		cfg.Dt = dt
	}
	if flags.Changed("boundary") || configFile == "" {
		cfg.Boundary = boundary
	}
	if flags.Changed("poisson-sweeps") || configFile == "" {
		cfg.PoissonSweeps = poissonSweeps
	}
	if flags.Changed("diffusion-sweeps") || configFile == "" {
		cfg.DiffusionSweeps = diffusionSweeps
	}
	if flags.Changed("workers") || configFile == "" {
		cfg.Workers = workers
	}
	if flags.Changed("no-correction") {
		cfg.Correction = !noCorrection
	}
	if f := flags.Lookup("frames"); f != nil && (f.Changed || configFile == "") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	scale, err := render.ParseScale(scaleName)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ms := metrics.Standard()
	exp := experiment.New(cfg, ms...)

	fmt.Printf("running %s on a %dx%d %s grid...\n", name, cfg.Resolution, cfg.Resolution, cfg.Boundary)

	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted after %d frames\n", result.Frames)
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	runID, err := st.Save(&storage.Run{
		Preset:  name,
		Config:  exp.Config(),
		History: result.History,
		Field:   result.Field,
		Metrics: result.Metrics,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range ms {
		fmt.Fprintf(w, "  %s:\t%.6g\n", m.Name(), result.Metrics[m.Name()])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	pos, neg := result.Track.PathLength()
	fmt.Printf("\ncore paths: positive %.2f cells, negative %.2f cells\n", pos, neg)
	if art := analysis.TrackToASCII(result.Track, cfg.Resolution, 48, 24); art != "" {
		fmt.Println(art)
	}

	if svgPath != "" {
		if err := export.WriteTrackSVG(svgPath, result.Track, cfg.Resolution, 512); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	if pngPath != "" {
		p, err := render.NewPalette(paletteName)
		if err != nil {
			return err
		}
		b, err := vortex.ParseBoundary(cfg.Boundary)
		if err != nil {
			return err
		}
		g, err := vortex.NewGrid(cfg.Resolution, b)
		if err != nil {
			return err
		}
		img := render.Image(g, result.Field, p, scale, cellSize)
		if arrows > 0 {
			render.DrawArrows(img, g, result.U, result.V, arrows, cellSize)
		}
		if err := render.WritePNG(pngPath, img); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngPath)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sim, err := cfg.NewSimulation()
	if err != nil {
		return err
	}

	m, err := viz.NewModel(sim, cfg, paletteName)
	if err != nil {
		return err
	}
	m.GIFPath = gifPath

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tN\tBOUNDARY\tVISCOSITY\tDT\tFRAMES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.2g\t%.3g\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Resolution,
			run.Boundary,
			run.Viscosity,
			run.Dt,
			run.Frames,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	history, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(history) == 0 {
		return fmt.Errorf("no data to plot")
	}

	rec := metrics.NewRecorder()
	for _, d := range history {
		rec.Observe(d)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(history))

	for _, name := range series {
		data, ok := rec.Series(name)
		if !ok {
			return fmt.Errorf("unknown series: %s (available: %v)", name, metrics.Columns)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	scale, err := render.ParseScale(scaleName)
	if err != nil {
		return err
	}
	p, err := render.NewPalette(paletteName)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	field, n, err := st.LoadField(runID)
	if err != nil {
		return err
	}
	b, err := vortex.ParseBoundary(meta.Boundary)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + ".png"
	}
	g, err := vortex.NewGrid(n, b)
	if err != nil {
		return err
	}
	img := render.Image(g, field, p, scale, cellSize)
	if err := render.WritePNG(path, img); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	if outPath == "" {
		return st.Export(os.Stdout, runID)
	}
	if err := st.ExportFile(outPath, runID); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, outPath)
	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	b, err := vortex.ParseBoundary(boundary)
	if err != nil {
		return err
	}
	sizes := []int{64, 128, 256}
	workerCounts := []int{1, runtime.GOMAXPROCS(0)}

	fmt.Printf("benchmarking %s boundary, %d frames each\n\n", b, benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tWORKERS\tTIME\tFRAME\tFRAMES/SEC")

	for _, n := range sizes {
		for _, wk := range workerCounts {
			sim, err := vortex.New(n, config.DefaultViscosity,
				vortex.WithBoundary(b),
				vortex.WithWorkers(wk),
			)
			if err != nil {
				return err
			}
			sim.Inject(n/2, n/2, config.DefaultStrength)

			start := time.Now()
			for i := 0; i < benchFrames; i++ {
				sim.Step(config.DefaultDt)
			}
			elapsed := time.Since(start)

			perFrame := time.Duration(0)
			rate := 0.0
			if benchFrames > 0 {
				perFrame = elapsed / time.Duration(benchFrames)
				rate = float64(benchFrames) / elapsed.Seconds()
			}
			fmt.Fprintf(w, "%d\t%d\t%v\t%v\t%.1f\n", n, wk, elapsed.Round(time.Microsecond), perFrame.Round(time.Microsecond), rate)
		}
	}

	return w.Flush()
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	field, n, err := st.LoadField(runID)
	if err != nil {
		return err
	}
	b, err := vortex.ParseBoundary(meta.Boundary)
	if err != nil {
		return err
	}
	g, err := vortex.NewGrid(n, b)
	if err != nil {
		return err
	}

	shells := analysis.Spectrum(g, field)
	if len(shells) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("dominant wavenumber: %d\n\n", analysis.DominantWavenumber(shells))
	graph := asciigraph.Plot(shells[1:],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("enstrophy vs wavenumber (k >= 1)"),
	)
	fmt.Println(graph)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Description != "" {
		fmt.Printf("%s: %s\n", sc.Name, sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, st, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tRUN ID\tFRAMES\tTIME\tCIRC DRIFT\tENSTROPHY DECAY")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%.3g\t%.4f\n",
			r.Name,
			r.RunID,
			r.Result.Frames,
			r.Result.Elapsed.Round(time.Millisecond),
			r.Result.Metrics["circulation_drift"],
			r.Result.Metrics["enstrophy_decay"],
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:  cfg,
		Param: param,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: steps,
	}, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\n%s\tSTABLE\tCIRC DRIFT\tENSTROPHY DECAY\tPEAK DECAY\n", strings.ToUpper(param))
	decay := make([]float64, len(results))
	for i, r := range results {
		decay[i] = r.Metrics["enstrophy_decay"]
		fmt.Fprintf(w, "%.4g\t%t\t%.3g\t%.4f\t%.4f\n",
			r.Value,
			r.Stable,
			r.Metrics["circulation_drift"],
			r.Metrics["enstrophy_decay"],
			r.Metrics["peak_decay"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(decay) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(decay,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("enstrophy decay vs "+param),
		))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(tuneGrid) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	names := make([]string, 0, len(tuneGrid))
	ranges := make([][]float64, 0, len(tuneGrid))
	for _, arg := range tuneGrid {
		name, values, err := parseGrid(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	search := optim.NewGridSearch(names, ranges)
	fmt.Printf("searching %d combinations for the lowest %s...\n", search.Size(), metric)
	start := time.Now()

	best, val, err := search.Search(ctx, cfg, metric)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("best %s: %.6g\n", metric, val)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, best[name])
	}
	return nil
}

// parseGrid splits "name=v1,v2,..." into its parts.
func parseGrid(arg string) (string, []float64, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("invalid grid %q (want name=v1,v2,...)", arg)
	}
	var values []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid grid %q: %w", arg, err)
		}
		values = append(values, v)
	}
	return strings.TrimSpace(name), values, nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:   cfg,
		Jitter: jitter,
		Trials: trials,
		Seed:   trialSeed,
	}, os.Stdout)
	if err != nil {
		return err
	}

	drift := make([]float64, len(results))
	for i, r := range results {
		drift[i] = r.Metrics["circulation_drift"]
	}
	stableCount, unstableCount := automation.MonteCarloStats(results)

	fmt.Printf("stable: %d, unstable: %d\n", stableCount, unstableCount)
	if len(drift) > 0 {
		mean, std := stat.MeanStdDev(drift, nil)
		fmt.Printf("circulation drift: mean %.3g, std %.3g, max %.3g\n", mean, std, floats.Max(drift))
	}
	return nil
}
