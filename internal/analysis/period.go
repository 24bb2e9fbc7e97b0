package analysis

import "errors"

// Crossings returns the interpolated times at which series rises through
// level. Sample i is taken at i*dt.
func Crossings(series []float64, dt, level float64) []float64 {
	out := make([]float64, 0)
	for i := 1; i < len(series); i++ {
		prev, curr := series[i-1], series[i]
		if prev < level && curr >= level {
			frac := (level - prev) / (curr - prev)
			out = append(out, (float64(i-1)+frac)*dt)
		}
	}
	return out
}

// CrossingPeriod averages the spacing of upward crossings of the series
// mean. It needs at least two crossings.
func CrossingPeriod(series []float64, dt float64) (float64, error) {
	if len(series) < 3 {
		return 0, ErrTooShort
	}
	times := Crossings(series, dt, Mean(series))
	if len(times) < 2 {
		return 0, errors.New("analysis: fewer than two crossings")
	}
	return (times[len(times)-1] - times[0]) / float64(len(times)-1), nil
}
