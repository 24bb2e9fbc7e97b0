package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrTooShort = errors.New("analysis: series too short")

// FFT returns the discrete Fourier transform of a real series of any
// length. An empty series is an error.
func FFT(data []float64) ([]complex128, error) {
	if len(data) == 0 {
		return nil, ErrTooShort
	}
	return fft.FFTReal(data), nil
}

// PowerSpectrum removes the mean, zero-pads to a power of two and returns
// the magnitude of the first half of the bins.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}

	n := 1
	for n < len(data) {
		n <<= 1
	}
	mean := Mean(data)
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest bin of the spectrum of
// a series sampled every dt. Resolution is limited by the series length.
func DominantPeriod(series []float64, dt float64) (float64, error) {
	if len(series) < 4 {
		return 0, ErrTooShort
	}
	ps := PowerSpectrum(series)
	n := 2 * len(ps)

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		return 0, errors.New("analysis: no oscillation found")
	}
	return float64(n) * dt / float64(best), nil
}

func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
