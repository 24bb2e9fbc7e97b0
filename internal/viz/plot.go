package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mechlab/internal/sim"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Cyan,
	asciigraph.Magenta,
	asciigraph.Red,
	asciigraph.Blue,
}

// Plot draws the named columns of a result as a time series. With no
// columns, the first one is used.
func Plot(result *sim.Result, columns []string, width, height int) (string, error) {
	if len(result.Samples) == 0 {
		return "", fmt.Errorf("no samples to plot")
	}
	if len(columns) == 0 {
		if len(result.Columns) == 0 {
			return "", fmt.Errorf("result has no columns")
		}
		columns = result.Columns[:1]
	}

	series := make([][]float64, 0, len(columns))
	for _, name := range columns {
		s, ok := result.Column(name)
		if !ok {
			return "", fmt.Errorf("unknown column %q (have %s)", name, strings.Join(result.Columns, ", "))
		}
		series = append(series, s)
	}

	caption := fmt.Sprintf("%s: %s vs time (%.2fs)", result.Experiment, strings.Join(columns, ", "), result.Times[len(result.Times)-1])
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	}

	if len(series) == 1 {
		return asciigraph.Plot(series[0], opts...), nil
	}
	colors := make([]asciigraph.AnsiColor, len(series))
	for i := range series {
		colors[i] = seriesColors[i%len(seriesColors)]
	}
	opts = append(opts, asciigraph.SeriesColors(colors...))
	return asciigraph.PlotMany(series, opts...), nil
}
