// Package viz renders experiments in the terminal.
//
//   - [Report]: lipgloss data panel of an experiment's readings
//   - [RunSummary]: metrics and sparklines of a finished run
//   - [Plot]: asciigraph time series of sample columns
//   - [Live]: Bubble Tea view animating one experiment at 60 Hz
//   - [Lab]: menu, parameter editor and live view in one app
//   - [Canvas]: braille dot canvas with a world-to-screen [Viewport]
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the experiment
//	T     - Cycle color themes
//	+/-   - Double/halve playback speed
//	?     - Show help overlay
package viz
