// Package analysis extracts periods and phase portraits from sampled runs.
//
//   - [PowerSpectrum]: magnitude spectrum of the zero-padded series
//   - [DominantPeriod]: period of the strongest non-DC frequency bin
//   - [CrossingPeriod]: period from interpolated upward mean crossings
//   - [NewPhasePortrait]: pairs two series for a phase-space plot
//
// # Pendulum Periods
//
// The measured period of a simulated pendulum can be compared with the
// small-angle formula:
//
//	theta, _ := result.Column("theta")
//	measured, err := analysis.CrossingPeriod(theta, dt)
//	predicted := pendulum.Period()
//
// Large release angles and damping both push the measured value away from
// the formula.
package analysis
