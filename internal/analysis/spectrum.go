// Package analysis inspects the field at a probe point: time-series
// sampling, power spectra and peak extraction. Backs the spectrum command.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/wavelab/internal/field"
)

// ProbeSeries samples the selected field quantity at a fixed point over n
// steps of dt starting at t0.
func ProbeSeries(x, y float64, sources []field.Source, speed float64, mode field.Mode, t0, dt float64, n int) []float64 {
	series := make([]float64, n)
	for i := range series {
		s := field.Eval(x, y, t0+float64(i)*dt, sources, speed, mode, false)
		series[i] = s.Value
	}
	return series
}

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// Hann-windowed FFT.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	windowed := make([]float64, n)
	for i, v := range series {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		if n == 1 {
			w = 1
		}
		windowed[i] = v * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC bin and converts it to Hz
// for the given sampling step.
func DominantFrequency(spectrum []float64, dt float64) float64 {
	if len(spectrum) < 2 || dt <= 0 {
		return 0
	}
	peak, peakVal := 1, spectrum[1]
	for i := 2; i < len(spectrum); i++ {
		if spectrum[i] > peakVal {
			peak, peakVal = i, spectrum[i]
		}
	}
	df := 1 / (dt * float64(2*len(spectrum)))
	return float64(peak) * df
}
