package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as one row of block characters, sampled down
// to width. Output is uncoloured.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	var b strings.Builder
	for _, level := range sparkLevels(values, width) {
		b.WriteRune(sparkChars[level])
	}
	return b.String()
}

// ColorSparkline is Sparkline with low, middle and high values coloured.
func ColorSparkline(values []float64, width int) string {
	if width <= 0 || len(values) == 0 {
		return Sparkline(values, width)
	}
	var b strings.Builder
	top := len(sparkChars) - 1
	for _, level := range sparkLevels(values, width) {
		c := string(sparkChars[level])
		switch {
		case level*10 > top*7:
			b.WriteString(sparkHigh.Render(c))
		case level*10 > top*3:
			b.WriteString(sparkMid.Render(c))
		default:
			b.WriteString(sparkLow.Render(c))
		}
	}
	return b.String()
}

func sparkLevels(values []float64, width int) []int {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	levels := make([]int, 0, width)
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(sparkChars)-1))
		idx = max(0, min(idx, len(sparkChars)-1))
		levels = append(levels, idx)
	}
	return levels
}

// ProgressBar renders a fraction in [0, 1] as a bar of the given width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
