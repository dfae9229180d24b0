package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/export"
	"github.com/san-kum/rootlab/internal/mcpserver"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/scan"
	"github.com/san-kum/rootlab/internal/storage"
	"github.com/san-kum/rootlab/internal/sweep"
	"github.com/san-kum/rootlab/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

var (
	dataDir string
	verbose bool
	// Equation coefficients, raw so decimal commas reach the parser
	paramA string
	paramB string
	// Config file
	configFile string
	// Preset name
	preset  string
	workers int
	plot    bool
	save    bool
	asJSON  bool
	// Sweep grid
	sweepFile string
	sweepA    sweep.Axis
	sweepB    sweep.Axis
	// Export
	outPath   string
	svgWidth  int
	svgHeight int

	logger = zap.NewNop()
)

// main runs the rootlab command tree. A failing command is reported once,
// as an error panel, and exits with status 1.
func main() {
	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorPanel(err, viz.DefaultStyles()))
		os.Exit(1)
	}
}

// newRootCmd registers the rootlab commands. With no subcommand it runs the
// interactive UI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rootlab",
		Short: "root finder for sqrt(a·x) - cos(b·x) = 0",
		// main renders the error panel
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rootlab", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
	addParamFlags(rootCmd)

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "find roots with the chord and Newton methods",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addParamFlags(solveCmd)
	solveCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "brackets solved concurrently")
	solveCmd.Flags().BoolVar(&plot, "plot", true, "draw charts")
	solveCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	solveCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "list sign-change brackets without refining them",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	addParamFlags(scanCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's result to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's roots to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's chart to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", export.DefaultWidth, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", export.DefaultHeight, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tA\tB\tNOTE")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.A, p.B, p.Note)
			}
			return w.Flush()
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	addParamFlags(tuiCmd)

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "serve compute_roots and scan_brackets over stdio (MCP)",
		Args:  cobra.NoArgs,
		RunE:  runMCP,
	}
	mcpCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "count roots over a grid of a and b values",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepFile, "file", "", "sweep definition (yaml)")
	sweepCmd.Flags().Float64Var(&sweepA.Min, "a-min", 0, "first a")
	sweepCmd.Flags().Float64Var(&sweepA.Max, "a-max", 2, "last a")
	sweepCmd.Flags().IntVar(&sweepA.Steps, "a-steps", 5, "number of a values")
	sweepCmd.Flags().Float64Var(&sweepB.Min, "b-min", 1, "first b")
	sweepCmd.Flags().Float64Var(&sweepB.Max, "b-max", 1, "last b")
	sweepCmd.Flags().IntVar(&sweepB.Steps, "b-steps", 1, "number of b values")
	sweepCmd.Flags().IntVar(&workers, "workers", 4, "grid points solved concurrently")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(sweepCmd, solveCmd, scanCmd, listCmd, showCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, tuiCmd, mcpCmd)

	return rootCmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&paramA, "a", "1.0", "coefficient a")
	cmd.Flags().StringVar(&paramB, "b", "1.0", "coefficient b")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named parameter preset")
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// loadConfig resolves settings with precedence flags > preset > config file
// > defaults. It returns the raw a and b to hand to the engine.
func loadConfig(cmd *cobra.Command) (*config.Config, string, string, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	a := strconv.FormatFloat(cfg.A, 'g', -1, 64)
	b := strconv.FormatFloat(cfg.B, 'g', -1, 64)

	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return nil, "", "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		a, b = p.A, p.B
	}

	flags := cmd.Flags()
	if flags.Changed("a") {
		a = paramA
	}
	if flags.Changed("b") {
		b = paramB
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Solver.Workers = workers
	}
	if flags.Lookup("plot") != nil && flags.Changed("plot") {
		cfg.Output.Plot = plot
	}
	return cfg, a, b, nil
}

func newEngine(cfg *config.Config) *roots.Engine {
	return roots.NewEngine(cfg.Solver, roots.WithLogger(logger))
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, a, b, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engine := newEngine(cfg)

	res, err := engine.Compute(a, b)
	if err != nil {
		return err
	}

	if asJSON {
		if err := export.WriteJSON(os.Stdout, res); err != nil {
			return err
		}
	} else {
		if cfg.Output.Plot {
			printCharts(engine, res, cfg.Output)
		}
		fmt.Println(viz.Summary(res, viz.DefaultStyles()))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}
	return nil
}

func printCharts(engine *roots.Engine, res *roots.Result, out config.OutputConfig) {
	caption := fmt.Sprintf("%s on [%.4f, %.4f]", res.Params.Describe(), res.Domain.Min, res.Domain.Max)
	fmt.Println(viz.Chart(res.Grid, out.PlotWidth, out.PlotHeight, caption))
	fmt.Println()

	if zoom, ok := engine.Zoom(res); ok {
		caption := fmt.Sprintf("zoom [%.4f, %.4f]", zoom.Domain.Min, zoom.Domain.Max)
		fmt.Println(viz.Chart(zoom, out.PlotWidth, out.PlotHeight, caption))
		fmt.Println()
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, a, b, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := roots.ParseParams(a, b)
	if err != nil {
		return err
	}

	dom, grid, brs := newEngine(cfg).Scan(p)
	fmt.Printf("%s\n", p.Describe())
	fmt.Printf("interval [%.4f, %.4f], %d intervals\n\n", dom.Min, dom.Max, grid.N)
	if len(brs) == 0 {
		fmt.Println("no sign changes")
		return nil
	}

	estimates := scan.Estimates(brs)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLO\tHI\tESTIMATE")
	for i, br := range brs {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.6f\n", i, br.Lo, br.Hi, estimates[i])
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tA\tB\tROOTS\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%g\t%g\t%d\t%s\n",
			run.ID,
			run.Params.A,
			run.Params.B,
			len(run.AllRoots),
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

// loadRun loads the run named by args, or the latest one.
func loadRun(args []string) (*storage.RunMetadata, *roots.Result, error) {
	st := storage.New(dataDir)
	if len(args) == 1 {
		return st.LoadResult(args[0])
	}
	latest, err := st.Latest()
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			return nil, nil, fmt.Errorf("no runs in %s, run 'rootlab solve --save' first", dataDir)
		}
		return nil, nil, err
	}
	return st.LoadResult(latest.ID)
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run %s (%s)\n\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	caption := fmt.Sprintf("%s on [%.4f, %.4f]", meta.Equation, meta.Domain.Min, meta.Domain.Max)
	if chart := viz.Chart(res.Grid, config.DefaultPlotWidth, config.DefaultPlotHeight, caption); chart != "" {
		fmt.Println(chart)
		fmt.Println()
	}
	fmt.Println(viz.Summary(res, viz.DefaultStyles()))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	_, res, err := loadRun(args)
	if err != nil {
		return err
	}
	return writeOut(outPath, func(w io.Writer) error { return export.WriteJSON(w, res) })
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, res, err := loadRun(args)
	if err != nil {
		return err
	}
	return writeOut(outPath, func(w io.Writer) error { return export.WriteRootsCSV(w, res) })
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, res, err := loadRun(args)
	if err != nil {
		return err
	}
	svg := export.CurveSVG(res, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s has no samples to draw", meta.ID)
	}

	path := outPath
	if path == "" {
		path = filepath.Clean(meta.ID + ".svg")
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func writeOut(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	if err := export.ToFile(path, write); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported to %s\n", path)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, a, b, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunInteractive(newEngine(cfg), a, b)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sw := sweep.Sweep{Name: "cli", A: sweepA, B: sweepB}
	if sweepFile != "" {
		loaded, err := sweep.Load(sweepFile)
		if err != nil {
			return fmt.Errorf("failed to load sweep: %w", err)
		}
		sw = *loaded
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// the grid is already parallel, keep each solve serial
	cfg.Solver.Workers = 1
	points, err := sweep.Run(ctx, newEngine(cfg), sw, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "A\tB\tBRACKETS\tROOTS\tNOTE")
	for _, pt := range points {
		note := pt.Err
		if note == "" && pt.Warning != "" {
			note = "a = 0, window only"
		}
		fmt.Fprintf(w, "%g\t%g\t%d\t%d\t%s\n", pt.Params.A, pt.Params.B, pt.Brackets, pt.Count(), note)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Densest(points); ok {
		fmt.Printf("\nmost roots: %d at %s\n", best.Count(), best.Params)
	}
	if len(points) > 1 {
		graph := asciigraph.Plot(sweep.Counts(points),
			asciigraph.Height(8),
			asciigraph.Width(config.DefaultPlotWidth),
			asciigraph.Caption("roots per grid point"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	srv := mcpserver.NewServer(newEngine(cfg), version, logger)
	return srv.Run(cmd.Context())
}
