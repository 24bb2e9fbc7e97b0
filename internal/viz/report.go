package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mechlab/internal/experiment"
	"github.com/san-kum/mechlab/internal/sim"
)

var titles = map[string]string{
	"projectile": "Projectile Motion",
	"pendulum":   "Simple Pendulum",
	"collision":  "Elastic Collision",
	"spring":     "Spring Oscillation",
	"incline":    "Inclined Plane",
}

func Title(name string) string {
	if t, ok := titles[name]; ok {
		return t
	}
	return strings.ToUpper(name)
}

func formatValue(r experiment.Reading) string {
	if r.Unit == "" && r.Value == math.Trunc(r.Value) && math.Abs(r.Value) < 1e15 {
		return fmt.Sprintf("%d", int64(r.Value))
	}
	return fmt.Sprintf("%.3f", r.Value)
}

func readingLines(st Styles, readings []experiment.Reading) string {
	var b strings.Builder
	for _, r := range readings {
		b.WriteString(st.Label.Render(r.Name))
		b.WriteString(st.Value.Render(formatValue(r)))
		if r.Unit != "" {
			b.WriteString(" " + st.Unit.Render(r.Unit))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Report renders the data panel for the current state of exp.
func Report(exp experiment.Experiment, theme Theme) string {
	st := theme.Styles()

	var b strings.Builder
	b.WriteString(st.Title.Render(Title(exp.Name())) + "\n")
	b.WriteString(readingLines(st, exp.Readings()))

	if inc, ok := exp.(*experiment.Incline); ok {
		b.WriteByte('\n')
		if inc.Incline().Slides() {
			b.WriteString(st.Warn.Render("▼ block slides down the ramp"))
		} else {
			b.WriteString(st.Good.Render("■ block stays at rest"))
		}
		b.WriteByte('\n')
	}

	return st.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// RunSummary renders the metrics of a finished run and a sparkline per
// sample column.
func RunSummary(result *sim.Result, theme Theme) string {
	st := theme.Styles()

	var b strings.Builder
	b.WriteString(st.Title.Render(Title(result.Experiment)+" run") + "\n")

	status := "duration elapsed"
	if result.Finished {
		status = "experiment finished"
	}
	b.WriteString(st.Label.Render("Steps") + st.Value.Render(fmt.Sprintf("%d", result.StepsTaken)) + " " + st.Unit.Render(status) + "\n")
	if len(result.Times) > 0 {
		b.WriteString(st.Label.Render("Time") + st.Value.Render(fmt.Sprintf("%.3f", result.Times[len(result.Times)-1])) + " " + st.Unit.Render("s") + "\n")
	}

	if len(result.Metrics) > 0 {
		names := make([]string, 0, len(result.Metrics))
		for k := range result.Metrics {
			names = append(names, k)
		}
		sort.Strings(names)
		b.WriteString("\n")
		for _, k := range names {
			b.WriteString(st.Label.Render(k) + st.Value.Render(fmt.Sprintf("%.6g", result.Metrics[k])) + "\n")
		}
	}

	if len(result.Samples) > 1 {
		b.WriteString("\n")
		for _, col := range result.Columns {
			series, _ := result.Column(col)
			b.WriteString(st.Label.Render(col) + st.Graph.Render(Sparkline(series, 40)) + "\n")
		}
	}

	return st.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// Stack joins rendered panels vertically.
func Stack(panels ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}
