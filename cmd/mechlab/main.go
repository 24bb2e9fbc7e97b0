package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/config"
	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/logging"
	"github.com/san-kum/mechlab/internal/optim"
	"github.com/san-kum/mechlab/internal/sim"
	"github.com/san-kum/mechlab/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logJSON  bool

	configFile string
	preset     string
	dt         float64
	duration   float64
	maxDt      float64
	sets       []string
	themeName  string

	save    bool
	workers int

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	columns     []string
	plotWidth   int
	plotHeight  int
	column      string
	xAxis       string
	yAxis       string
	phaseWidth  int
	phaseHeight int

	grids        []string
	searchMetric string
	maximize     bool

	svgScale  float64
	svgWidth  int
	svgHeight int
)

// main registers the commands. With no subcommand the interactive lab opens.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mechlab",
		Short: "2D mechanics teaching lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			base := config.DefaultConfig()
			if configFile != "" {
				loaded, err := config.Load(configFile)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				base = loaded
			}
			return viz.RunLab(experiment.NewRegistry(), base)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mechlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")

	runCmd := &cobra.Command{
		Use:   "run [experiment]",
		Short: "run an experiment and save the samples",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExperiment,
	}
	addSetupFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "save the run to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live [experiment]",
		Short: "animate an experiment in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSetupFlags(liveCmd)

	reportCmd := &cobra.Command{
		Use:   "report [experiment]",
		Short: "print the data panel of an experiment's initial state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printReport,
	}
	addSetupFlags(reportCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [experiment]",
		Short: "run an experiment across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSetupFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent runs (0 = unlimited)")
	_ = sweepCmd.MarkFlagRequired("param")

	searchCmd := &cobra.Command{
		Use:   "search [experiment]",
		Short: "grid search parameters for the best value of a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
	addSetupFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&grids, "grid", nil, "parameter range as name=from:to:n (repeatable)")
	searchCmd.Flags().StringVarP(&searchMetric, "metric", "m", "energy_drift", "metric to optimise")
	searchCmd.Flags().BoolVar(&maximize, "max", false, "maximise instead of minimise")
	searchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent runs (0 = unlimited)")
	_ = searchCmd.MarkFlagRequired("grid")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&themeName, "theme", viz.ThemeChalkboard.Name, "colour theme")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [experiment]",
		Short: "write the initial scene of an experiment as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotSVG,
	}
	addSetupFlags(snapshotCmd)
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 6, "pixels per braille dot")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot columns of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to plot (default: first)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and period analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "", "column to analyse (default: first)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of two columns of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVarP(&xAxis, "x", "x", "", "column on the x axis (default: first)")
	phaseCmd.Flags().StringVarP(&yAxis, "y", "y", "", "column on the y axis (default: second)")
	phaseCmd.Flags().IntVar(&phaseWidth, "width", 60, "portrait width")
	phaseCmd.Flags().IntVar(&phaseHeight, "height", 20, "portrait height")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "write the path of a saved run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  trajectorySVG,
	}
	svgCmd.Flags().StringVarP(&xAxis, "x", "x", "", "x column (default: x)")
	svgCmd.Flags().StringVarP(&yAxis, "y", "y", "", "y column (default: y)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 360, "image height")
	svgCmd.Flags().StringVar(&themeName, "theme", viz.ThemeChalkboard.Name, "colour theme")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "animate the setup of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the samples of a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [experiment]",
		Short: "list presets for an experiment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := experiment.NewRegistry().List()
			if len(args) > 0 {
				names = args
			}
			for _, name := range names {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					return fmt.Errorf("no presets for experiment: %s", name)
				}
				fmt.Printf("%s:\n", name)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, reportCmd, sweepCmd, searchCmd, scenarioCmd, snapshotCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, svgCmd, replayCmd, exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "named preset")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
	cmd.Flags().Float64VarP(&duration, "time", "t", config.DefaultDuration, "simulated time (s)")
	cmd.Flags().Float64Var(&maxDt, "max-dt", config.DefaultMaxDt, "largest integration step; bigger steps are split")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "experiment parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&themeName, "theme", viz.ThemeChalkboard.Name, "colour theme")
}

// resolveConfig layers the setup: defaults, then preset, then config file,
// then flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := config.DefaultExperiment
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(name, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Experiment = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("max-dt") {
		cfg.MaxDt = maxDt
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	for _, kv := range sets {
		key, value, err := parseSet(kv)
		if err != nil {
			return nil, err
		}
		if err := cfg.SetParam(key, value); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseSet(kv string) (string, float64, error) {
	key, raw, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return "", 0, fmt.Errorf("bad --set %q, want name=value", kv)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad --set %q: %w", kv, err)
	}
	return key, value, nil
}

// parseGrid reads name=from:to:n.
func parseGrid(spec string) (string, []float64, error) {
	name, raw, ok := strings.Cut(spec, "=")
	parts := strings.Split(raw, ":")
	if !ok || name == "" || len(parts) != 3 {
		return "", nil, fmt.Errorf("bad --grid %q, want name=from:to:n", spec)
	}
	from, err1 := strconv.ParseFloat(parts[0], 64)
	to, err2 := strconv.ParseFloat(parts[1], 64)
	n, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || n < 1 {
		return "", nil, fmt.Errorf("bad --grid %q, want name=from:to:n", spec)
	}
	return name, optim.Linspace(from, to, n), nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.JSON)
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, MaxDt: cfg.MaxDt}
}
