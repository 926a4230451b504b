package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DominantFrequency returns the strongest non-DC frequency in Hz of a
// uniformly sampled series, by FFT peak magnitude.
func DominantFrequency(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, fmt.Errorf("need at least 4 samples, got %d", len(samples))
	}
	if dt <= 0 {
		return 0, fmt.Errorf("dt must be positive, got %f", dt)
	}

	spectrum := fft.FFTReal(samples)
	n := len(samples)

	peakBin := 1
	peakMag := 0.0
	for bin := 1; bin <= n/2; bin++ {
		mag := cmplx.Abs(spectrum[bin])
		if mag > peakMag {
			peakMag = mag
			peakBin = bin
		}
	}

	return float64(peakBin) / (float64(n) * dt), nil
}

// Spectrum returns the single-sided magnitude spectrum and its
// frequency axis, for plotting.
func Spectrum(samples []float64, dt float64) (freqs, mags []float64, err error) {
	if len(samples) < 4 {
		return nil, nil, fmt.Errorf("need at least 4 samples, got %d", len(samples))
	}
	if dt <= 0 {
		return nil, nil, fmt.Errorf("dt must be positive, got %f", dt)
	}

	spectrum := fft.FFTReal(samples)
	n := len(samples)

	freqs = make([]float64, n/2)
	mags = make([]float64, n/2)
	for bin := 0; bin < n/2; bin++ {
		freqs[bin] = float64(bin) / (float64(n) * dt)
		mags[bin] = cmplx.Abs(spectrum[bin])
	}
	return freqs, mags, nil
}
