package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/bisect/internal/apperrors"
	"github.com/san-kum/bisect/internal/bisect"
	"github.com/san-kum/bisect/internal/config"
	"github.com/san-kum/bisect/internal/export"
	"github.com/san-kum/bisect/internal/funcs"
	"github.com/san-kum/bisect/internal/logging"
	"github.com/san-kum/bisect/internal/metrics"
	"github.com/san-kum/bisect/internal/precise"
	"github.com/san-kum/bisect/internal/scan"
	"github.com/san-kum/bisect/internal/search"
	"github.com/san-kum/bisect/internal/storage"
	"github.com/san-kum/bisect/internal/sweep"
	"github.com/san-kum/bisect/internal/viz"
)

var (
	dataDir   string
	themeName string
	logLevel  string
	logFormat string

	exprSrc    string
	low        float64
	high       float64
	tolerance  float64
	maxIter    int
	configFile string
	preset     string
	save       bool
	trace      bool
	plot       bool
	saveConfig string

	searchList  string
	searchX     int
	searchVals  string
	interactive bool

	precision uint
	digits    int

	sweepFrom float64
	sweepTo   float64
	sweepN    int

	svgWidth  int
	svgHeight int
	braille   bool

	scanFrom  float64
	scanTo    float64
	scanCells int
)

// main registers the commands and exits with the status derived from the
// returned error: 2 for no sign change, 3 for max iterations, 4 for bad input.
func main() {
	rootCmd := &cobra.Command{
		Use:           "bisect",
		Short:         "bisection root finding and binary search lab",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runDemo,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir, "run data directory")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	solveCmd := &cobra.Command{
		Use:   "solve [function]",
		Short: "find a root of a function by bisection",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)
	addConfigFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "save the run under the data directory")
	solveCmd.Flags().BoolVar(&trace, "trace", false, "print every bisection step")
	solveCmd.Flags().BoolVar(&plot, "plot", false, "plot the function and final bracket")
	solveCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective configuration to this yaml file")

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list built-in functions",
		RunE:  listFunctions,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [function]",
		Short: "list available presets for a function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for function: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run with its convergence plot",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run steps to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and steps to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a saved run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal dot plot instead of a vector curve")

	stepCmd := &cobra.Command{
		Use:   "step [function]",
		Short: "step through a bisection interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStepper,
	}
	addSolveFlags(stepCmd)
	addConfigFlags(stepCmd)

	searchCmd := &cobra.Command{
		Use:   "search [algorithm]",
		Short: "trace a binary search over a sorted list",
		Long:  "trace a binary search over a sorted list. algorithms: " + algorithmNames(),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().StringVar(&searchList, "list", "notes", "preset list ("+strings.Join(search.PresetNames(), ", ")+")")
	searchCmd.Flags().IntVar(&searchX, "x", 12, "value to search for")
	searchCmd.Flags().StringVar(&searchVals, "values", "", "comma separated values, sorted before searching (overrides --list)")
	searchCmd.Flags().BoolVar(&interactive, "interactive", false, "step through the trace in a TUI")

	preciseCmd := &cobra.Command{
		Use:   "precise [function]",
		Short: "bisect with arbitrary precision floats",
		Long:  "bisect with arbitrary precision floats. functions: " + strings.Join(precise.List(), ", "),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPrecise,
	}
	addConfigFlags(preciseCmd)
	addPreciseFlags(preciseCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [function]",
		Short: "compare iteration counts across tolerances",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSolveFlags(sweepCmd)
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 1e-1, "loosest tolerance")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1e-12, "tightest tolerance")
	sweepCmd.Flags().IntVar(&sweepN, "n", 12, "number of tolerances")

	rootsCmd := &cobra.Command{
		Use:   "roots [function]",
		Short: "scan a range for sign changes and bisect each one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRoots,
	}
	addSolveFlags(rootsCmd)
	addConfigFlags(rootsCmd)
	rootsCmd.Flags().Float64Var(&scanFrom, "from", -10, "start of the scanned range")
	rootsCmd.Flags().Float64Var(&scanTo, "to", 10, "end of the scanned range")
	rootsCmd.Flags().IntVar(&scanCells, "cells", 200, "number of grid cells")

	rootCmd.AddCommand(solveCmd, functionsCmd, presetsCmd, runsCmd, showCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, stepCmd, searchCmd, preciseCmd, sweepCmd, rootsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(apperrors.Handle(err, os.Stderr))
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&exprSrc, "expr", "", "expression in x, e.g. \"x^3 - x - 2\"")
	cmd.Flags().Float64Var(&low, "low", 0, "lower end of the bracket")
	cmd.Flags().Float64Var(&high, "high", 0, "upper end of the bracket")
	cmd.Flags().Float64Var(&tolerance, "tol", bisect.DefaultTolerance, "tolerance on |f(mid)| and half-width")
	cmd.Flags().IntVar(&maxIter, "max-iter", bisect.DefaultMaxIterations, "maximum number of bisections")
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addPreciseFlags(cmd *cobra.Command) {
	cmd.Flags().UintVar(&precision, "prec", config.DefaultPrecision, "mantissa precision in bits")
	cmd.Flags().IntVar(&digits, "digits", precise.DefaultDigits, "decimal digits of tolerance and output")
}

func newLogger(level string) zerolog.Logger {
	if logFormat == "json" {
		return logging.NewJSON(os.Stderr, level)
	}
	return logging.New(os.Stderr, level)
}

func runDemo(cmd *cobra.Command, args []string) error {
	f, lo, hi, err := funcs.NewRegistry().Lookup(config.DefaultFunction)
	if err != nil {
		return err
	}
	res, err := bisect.Solve(f, lo, hi, bisect.DefaultConfig())
	if err != nil {
		return err
	}
	fmt.Printf("function: x^2 - 2 on [%g, %g]\n", lo, hi)
	fmt.Printf("root: %.15g\n", res.Root)
	fmt.Printf("iterations: %d\n", res.Iterations)
	return nil
}

// buildConfig layers defaults, config file, preset, environment and flags,
// in increasing priority.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Function = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Function, preset)
		if p == nil {
			return nil, apperrors.NewConfigError("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Function))
		}
		cfg.Merge(p)
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags layers the environment and then the explicitly set flags over
// cfg. Flags a command does not define are never Changed.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	config.ApplyEnv(cfg, cmd.Flags().Changed)

	flags := cmd.Flags()
	if flags.Changed("expr") {
		cfg.Expr = exprSrc
	}
	if flags.Changed("low") {
		cfg.Low = config.Float(low)
	}
	if flags.Changed("high") {
		cfg.High = config.Float(high)
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("prec") {
		cfg.Precision = precision
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
}

// resolve returns the function named by cfg and its bracket. An expression
// needs both bounds; a built-in fills a missing bound from its own bracket.
func resolve(cfg *config.Config) (string, bisect.Func, float64, float64, error) {
	if cfg.Expr != "" {
		f, err := funcs.Compile(cfg.Expr)
		if err != nil {
			return "", nil, 0, 0, apperrors.WrapConfigError(err, "compile %q", cfg.Expr)
		}
		if !cfg.HasBracket() {
			return "", nil, 0, 0, apperrors.NewValidationError("low", "an expression needs --low and --high", nil)
		}
		return "", f, *cfg.Low, *cfg.High, nil
	}

	f, lo, hi, err := funcs.NewRegistry().Lookup(cfg.Function)
	if err != nil {
		return "", nil, 0, 0, apperrors.WrapConfigError(err, "unknown function %q (available: %s)", cfg.Function, strings.Join(funcs.NewRegistry().List(), ", "))
	}
	lo, hi = cfg.Bracket(lo, hi)
	if !(lo < hi) {
		return "", nil, 0, 0, apperrors.NewValidationError("low", fmt.Sprintf("must be less than high (%g)", hi), lo)
	}
	return cfg.Function, f, lo, hi, nil
}

func displayName(name, expr string) string {
	if name == "" {
		return expr
	}
	return name
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	name, f, lo, hi, err := resolve(cfg)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return apperrors.WrapConfigError(err, "write config %s", saveConfig)
		}
		logger.Info().Str("path", saveConfig).Msg("config written")
	}

	solver := bisect.New()
	for _, m := range metrics.Default() {
		solver.AddMetric(m)
	}
	solver.AddObserver(logging.NewStepLogger(logger))

	scfg := cfg.Solver()
	scfg.KeepSteps = trace || plot || save

	logger.Info().
		Str("function", displayName(name, cfg.Expr)).
		Float64("low", lo).
		Float64("high", hi).
		Float64("tolerance", scfg.Tolerance).
		Int("max_iterations", scfg.MaxIterations).
		Msg("solving")

	res, solveErr := solver.Solve(f, lo, hi, scfg)
	logging.LogResult(logger, displayName(name, cfg.Expr), res, solveErr)

	if res != nil {
		if trace {
			if err := printSteps(res.Steps); err != nil {
				return err
			}
			fmt.Println()
		}
		printResult(displayName(name, cfg.Expr), lo, hi, res)
		if plot {
			printPlot(f, lo, hi, res)
		}
	}

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		meta := storage.NewRunMetadata(name, cfg.Expr, lo, hi, scfg, res, solveErr)
		var steps []bisect.Step
		if res != nil {
			steps = res.Steps
		}
		id, err := st.Save(meta, steps)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info().Str("run_id", id).Str("dir", cfg.DataDir).Msg("run saved")
		fmt.Printf("saved: %s\n", id)
	}

	return solveErr
}

func printResult(name string, lo, hi float64, res *bisect.Result) {
	fmt.Printf("function: %s on [%g, %g]\n", name, lo, hi)
	fmt.Printf("root: %.15g\n", res.Root)
	fmt.Printf("f(root): %.3g\n", res.FRoot)
	fmt.Printf("iterations: %d\n", res.Iterations)
	fmt.Printf("evaluations: %d\n", res.Evaluations)
	fmt.Printf("error bound: %.3g\n", res.ErrorBound())
	fmt.Printf("stop: %s\n", res.Reason)
	if len(res.Metrics) > 0 {
		names := make([]string, 0, len(res.Metrics))
		for k := range res.Metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Printf("%s: %.4g\n", k, res.Metrics[k])
		}
	}
}

func printSteps(steps []bisect.Step) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITER\tLOW\tHIGH\tMID\tF(MID)\tHALF-WIDTH")
	for _, s := range steps {
		fmt.Fprintf(w, "%d\t%.12g\t%.12g\t%.12g\t%.4e\t%.4e\n",
			s.Iteration, s.Low, s.High, s.Mid, s.FMid, s.HalfWidth())
	}
	return w.Flush()
}

func printPlot(f bisect.Func, lo, hi float64, res *bisect.Result) {
	marks := viz.NoMarks()
	if n := len(res.Steps); n > 0 {
		marks = viz.StepMarks(res.Steps[n-1])
	}
	from, to := viz.Window(lo, hi, 0.1)
	fmt.Println()
	fmt.Print(viz.PlotFunction(f, from, to, marks, 72, 16))
	if len(res.Steps) > 1 {
		fmt.Println()
		fmt.Println(viz.ConvergencePlot(res.Steps, 72, 10))
	}
}

func listFunctions(cmd *cobra.Command, args []string) error {
	reg := funcs.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXPR\tBRACKET\tDESCRIPTION")
	for _, name := range reg.List() {
		d, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%s\n", d.Name, d.Expr, d.Low, d.High, d.Description)
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
	fmt.Fprintln(w, "ID\tFUNCTION\tTIME\tBRACKET\tTOL\tITER\tROOT\tSTATUS")

	for _, run := range runs {
		status := run.Reason
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%.0e\t%d\t%.12g\t%s\n",
			run.ID,
			displayName(run.Function, run.Expr),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Low, run.High,
			run.Tolerance,
			run.Iterations,
			run.Root,
			status,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("function: %s\n", displayName(meta.Function, meta.Expr))
	fmt.Printf("bracket: [%g, %g]\n", meta.Low, meta.High)
	fmt.Printf("root: %.15g\n", meta.Root)
	fmt.Printf("iterations: %d\n", meta.Iterations)
	fmt.Printf("converged: %v (%s)\n", meta.Converged, meta.Reason)
	if meta.Error != "" {
		fmt.Printf("error: %s\n", meta.Error)
	}

	if len(steps) < 2 {
		return nil
	}
	fmt.Println()
	fmt.Println(viz.ConvergencePlot(steps, 80, 12))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	steps, err := st.LoadSteps(runID)
	if err != nil {
		return err
	}

	var f bisect.Func
	if meta.Expr != "" {
		f, err = funcs.Compile(meta.Expr)
	} else {
		f, _, _, err = funcs.NewRegistry().Lookup(meta.Function)
	}
	if err != nil {
		return err
	}

	from, to := viz.Window(meta.Low, meta.High, 0.1)
	_, err = fmt.Fprint(os.Stdout, export.RenderSVG(f, from, to, steps, svgWidth, svgHeight, braille))
	return err
}

func runStepper(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	name, f, lo, hi, err := resolve(cfg)
	if err != nil {
		return err
	}

	m := viz.NewStepper(displayName(name, cfg.Expr), f, lo, hi, cfg.Solver(), viz.GetTheme(cfg.Theme))
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if s, ok := final.(viz.Stepper); ok && s.Done() {
		res, err := s.Result()
		if res != nil {
			printResult(displayName(name, cfg.Expr), lo, hi, res)
		}
		return err
	}
	return nil
}

func algorithmNames() string {
	names := make([]string, 0, len(search.Algorithms()))
	for _, a := range search.Algorithms() {
		names = append(names, a.String())
	}
	return strings.Join(names, ", ")
}

func parseValues(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, apperrors.NewValidationError("values", "not an integer", f)
		}
		values = append(values, v)
	}
	return values, nil
}

// searchValues returns the user's values, or the named preset when raw is
// empty, as a sorted copy.
func searchValues(list, raw string) ([]int, error) {
	var values []int
	if raw != "" {
		v, err := parseValues(raw)
		if err != nil {
			return nil, err
		}
		values = v
	} else {
		v, ok := search.Presets[list]
		if !ok {
			return nil, apperrors.NewConfigError("unknown list: %s (available: %s)", list, strings.Join(search.PresetNames(), ", "))
		}
		values = append([]int(nil), v...)
	}
	sort.Ints(values)
	return values, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	algo := search.AlgoFind
	if len(args) > 0 {
		a, err := search.ParseAlgorithm(args[0])
		if err != nil {
			return apperrors.WrapConfigError(err, "available: %s", algorithmNames())
		}
		algo = a
	}

	values, err := searchValues(searchList, searchVals)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	applyFlags(cmd, cfg)

	report, err := search.Run(algo, values, searchX)
	if err != nil {
		return err
	}

	if interactive {
		m := viz.NewSearchModel(values, searchX, report, viz.GetTheme(cfg.Theme))
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return err
		}
		fmt.Println(report.Summary())
		return nil
	}

	fmt.Printf("%s: %s\n", algo, algo.Description())
	fmt.Printf("list: %v\n", values)
	fmt.Printf("x: %d\n\n", searchX)
	for _, ph := range report.Phases {
		fmt.Println(ph.Title)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tLEFT\tRIGHT\tMID\tCMP\tNOTE")
		for i, st := range ph.Steps {
			mid := "-"
			if !st.Done {
				mid = strconv.Itoa(st.Mid)
			}
			fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n", i+1, st.Left, st.Right, mid, st.Relation, st.Explanation)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}
	fmt.Println(report.Summary())
	return nil
}

// preciseSetup picks the built-in named by cfg and its bracket, and the
// solver configuration at cfg.Precision bits.
func preciseSetup(cfg *config.Config) (precise.Definition, float64, float64, precise.Config, error) {
	pcfg := precise.DefaultConfig()
	def, err := precise.Get(cfg.Function)
	if err != nil {
		return def, 0, 0, pcfg, apperrors.WrapConfigError(err, "available: %s", strings.Join(precise.List(), ", "))
	}

	pcfg.Prec = cfg.Precision
	pcfg.Digits = digits
	if err := pcfg.Validate(); err != nil {
		return def, 0, 0, pcfg, err
	}

	lo, hi := cfg.Bracket(def.Low, def.High)
	if !(lo < hi) {
		return def, 0, 0, pcfg, apperrors.NewValidationError("low", fmt.Sprintf("must be less than high (%g)", hi), lo)
	}
	return def, lo, hi, pcfg, nil
}

func runPrecise(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	def, lo, hi, pcfg, err := preciseSetup(cfg)
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" bisecting %s at %d bits...", def.Name, pcfg.Prec)
	s.Start()
	start := time.Now()
	res, err := precise.SolveFloat64(def.F, lo, hi, pcfg)
	elapsed := time.Since(start)
	s.Stop()
	if err != nil {
		return err
	}
	logger.Info().Str("function", def.Name).Uint("precision", pcfg.Prec).Int("iterations", res.Iterations).Dur("elapsed", elapsed).Msg("precise solve done")

	fmt.Printf("function: %s\n", def.Description)
	fmt.Printf("bracket: [%g, %g]\n", lo, hi)
	fmt.Printf("precision: %d bits\n", pcfg.Prec)
	fmt.Printf("root: %s\n", res.Text(pcfg.Digits))
	fmt.Printf("iterations: %d\n", res.Iterations)
	fmt.Printf("stop: %s\n", res.Reason)
	fmt.Printf("time: %v\n", elapsed.Round(time.Microsecond))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	name, f, lo, hi, err := resolve(cfg)
	if err != nil {
		return err
	}

	sw := &sweep.Sweep{From: sweepFrom, To: sweepTo, N: sweepN, MaxIterations: cfg.MaxIterations}
	res, err := sw.Run(cmd.Context(), f, lo, hi)
	if err != nil {
		return err
	}

	fmt.Printf("function: %s on [%g, %g]\n\n", displayName(name, cfg.Expr), lo, hi)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOL\tITER\tPREDICTED\tROOT\tBOUND\tSTOP")
	iters := make([]float64, 0, len(res.Points))
	for _, p := range res.Points {
		if p.Err != "" {
			logger.Warn().Float64("tolerance", p.Tolerance).Str("error", p.Err).Msg("tolerance not reached")
		}
		fmt.Fprintf(w, "%.0e\t%d\t%d\t%.15g\t%.2e\t%s\n",
			p.Tolerance, p.Iterations, p.Predicted, p.Root, p.ErrorBound, p.Reason)
		iters = append(iters, float64(p.Iterations))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := res.Iterations
	fmt.Printf("\niterations: mean %.2f, median %.1f, stddev %.2f, min %.0f, max %.0f\n",
		sum.Mean, sum.Median, sum.StdDev, sum.Min, sum.Max)

	if len(iters) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(iters,
			asciigraph.Height(10),
			asciigraph.Width(len(iters)*4),
			asciigraph.Caption("iterations per tolerance"),
		))
	}

	if tight, ok := res.Tightest(); ok {
		logger.Debug().Float64("tolerance", tight.Tolerance).Float64("root", tight.Root).Msg("tightest converged point")
	}
	return nil
}

func runRoots(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	name := cfg.Function
	var f bisect.Func
	if cfg.Expr != "" {
		name = cfg.Expr
		f, err = funcs.Compile(cfg.Expr)
		if err != nil {
			return apperrors.WrapConfigError(err, "compile %q", cfg.Expr)
		}
	} else {
		f, _, _, err = funcs.NewRegistry().Lookup(cfg.Function)
		if err != nil {
			return apperrors.WrapConfigError(err, "unknown function %q", cfg.Function)
		}
	}

	grid := scan.NewGrid(scanFrom, scanTo, scanCells)
	results, err := grid.Roots(cmd.Context(), f, cfg.Solver())
	if results == nil && err != nil {
		return err
	}

	fmt.Printf("function: %s on [%g, %g], %d cells\n\n", name, scanFrom, scanTo, scanCells)
	if len(results) == 0 {
		fmt.Println("no sign changes found")
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tROOT\tF(ROOT)\tITER\tSTOP")
	for i, res := range results {
		logger.Debug().Float64("low", res.Low).Float64("high", res.High).Float64("root", res.Root).Msg("bracket solved")
		fmt.Fprintf(w, "%d\t%.15g\t%.3g\t%d\t%s\n", i+1, res.Root, res.FRoot, res.Iterations, res.Reason)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}
