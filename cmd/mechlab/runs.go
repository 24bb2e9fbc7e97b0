package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/mechlab/internal/analysis"
	"github.com/san-kum/mechlab/internal/automation"
	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/export"
	"github.com/san-kum/mechlab/internal/logging"
	"github.com/san-kum/mechlab/internal/mechanics"
	"github.com/san-kum/mechlab/internal/metrics"
	"github.com/san-kum/mechlab/internal/optim"
	"github.com/san-kum/mechlab/internal/sim"
	"github.com/san-kum/mechlab/internal/storage"
	"github.com/san-kum/mechlab/internal/viz"
)

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	exp, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}

	s := sim.New(exp, sim.WithLogger(logger))
	for _, m := range metrics.Defaults(cfg.Experiment) {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := s.Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}

	theme := viz.GetTheme(themeName)
	fmt.Println(viz.Stack(viz.Report(exp, theme), viz.RunSummary(result, theme)))

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	fp, err := storage.Fingerprint(cfg)
	if err != nil {
		return err
	}
	if same, err := st.FindByFingerprint(fp); err == nil && len(same) > 0 {
		logger.Info("setup already run", zap.String("fingerprint", fp), zap.String("latest", same[0].ID))
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	logger.Debug("run saved", zap.String("id", runID), zap.String("dir", st.Dir()))
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(exp, cfg.Dt, cfg.MaxDt)
}

func printReport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}
	fmt.Println(viz.Report(exp, viz.GetTheme(themeName)))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepFrom,
		ParamMax:  sweepTo,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(ctx, sweep, cfg, experiment.NewRegistry(), workers, logger)
	if err != nil {
		return err
	}

	names := make([]string, 0)
	for name := range results[0].Result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tFINISHED\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, sr := range results {
		r := sr.Result
		fmt.Fprintf(w, "%g\t%d\t%v", sr.ParamValue, r.StepsTaken, r.Finished)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger, err := logging.New(logLevel, logJSON)
	if err != nil {
		return err
	}
	defer logger.Sync()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), st, logger)

	theme := viz.GetTheme(themeName)
	for _, sr := range results {
		fmt.Printf("step %d: %s\n", sr.Step, viz.Title(sr.Config.Experiment))
		fmt.Println(viz.RunSummary(sr.Result, theme))
		if sr.RunID != "" {
			fmt.Printf("saved: %s\n", sr.RunID)
		}
	}
	return err
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	names := make([]string, 0, len(grids))
	ranges := make([][]float64, 0, len(grids))
	for _, spec := range grids {
		name, values, err := parseGrid(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	search.Maximize = maximize
	search.Workers = workers
	search.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, all, err := search.Search(ctx, experiment.NewRegistry(), cfg, searchMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PARAMS\t%s\n", strings.ToUpper(searchMetric))
	for _, c := range all {
		fmt.Fprintf(w, "%s\t%.6g\n", c, c.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: %s (%s = %.6g)\n", best, searchMetric, best.Value)
	return nil
}

func snapshotSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}
	fmt.Println(export.CanvasToSVG(viz.Snapshot(exp), svgScale, viz.GetTheme(themeName)))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXPERIMENT\tSTEPS\tFINISHED\tFINGERPRINT\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\t%s\n",
			r.ID, r.Experiment, r.Steps, r.Finished, r.Fingerprint,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	result, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	graph, err := viz.Plot(result, columns, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	name := column
	if name == "" {
		if len(result.Columns) == 0 {
			return fmt.Errorf("no data")
		}
		name = result.Columns[0]
	}
	series, ok := result.Column(name)
	if !ok {
		return fmt.Errorf("unknown column %q (have %s)", name, strings.Join(result.Columns, ", "))
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("experiment: %s, column: %s\n\n", meta.Experiment, name)

	ps := analysis.PowerSpectrum(series)
	if len(ps) >= 8 {
		graph := asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if period, err := analysis.DominantPeriod(series, meta.Dt); err == nil {
		fmt.Printf("spectral period: %.3f s (%.3f hz)\n", period, 1/period)
	} else {
		fmt.Printf("spectral period: %v\n", err)
	}
	if period, err := analysis.CrossingPeriod(series, meta.Dt); err == nil {
		fmt.Printf("crossing period: %.3f s\n", period)
	} else {
		fmt.Printf("crossing period: %v\n", err)
	}

	if meta.Experiment == "pendulum" {
		if length, ok := meta.Params["length"]; ok && meta.Gravity > 0 {
			fmt.Printf("small-angle:     %.3f s\n", 2*math.Pi*math.Sqrt(length/meta.Gravity))
		}
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	result, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(result.Columns) < 2 {
		return fmt.Errorf("run %s has fewer than two columns", args[0])
	}

	xName, yName := xAxis, yAxis
	if xName == "" {
		xName = result.Columns[0]
	}
	if yName == "" {
		yName = result.Columns[1]
	}
	xs, ok := result.Column(xName)
	if !ok {
		return fmt.Errorf("unknown column %q", xName)
	}
	ys, ok := result.Column(yName)
	if !ok {
		return fmt.Errorf("unknown column %q", yName)
	}

	portrait := analysis.NewPhasePortrait(xName, xs, yName, ys)
	fmt.Printf("phase portrait: %s (%d points)\n\n", args[0], len(portrait.Points))
	fmt.Println(portrait.ASCII(phaseWidth, phaseHeight))
	return nil
}

func trajectorySVG(cmd *cobra.Command, args []string) error {
	result, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}

	xName, yName := xAxis, yAxis
	if xName == "" {
		xName = "x"
	}
	if yName == "" {
		yName = "y"
	}
	xs, ok := result.Column(xName)
	if !ok {
		return fmt.Errorf("unknown column %q (have %s)", xName, strings.Join(result.Columns, ", "))
	}
	ys, ok := result.Column(yName)
	if !ok {
		return fmt.Errorf("unknown column %q (have %s)", yName, strings.Join(result.Columns, ", "))
	}

	points := make([]mechanics.Vec2, min(len(xs), len(ys)))
	for i := range points {
		points[i] = mechanics.Vec2{X: xs[i], Y: ys[i]}
	}
	svg := export.TrajectoryToSVG(points, svgWidth, svgHeight, viz.GetTheme(themeName))
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to draw", args[0])
	}
	fmt.Println(svg)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	cfg, err := storage.New(dataDir).LoadConfig(args[0])
	if err != nil {
		return err
	}
	exp, err := experiment.NewRegistry().Build(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(exp, cfg.Dt, cfg.MaxDt)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	result, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, result)
}
