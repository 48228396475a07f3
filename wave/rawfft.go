package wave

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/coastlab/buoyspectra/logging"
)

// RawFFTCrossSpectrum builds a cross-spectral matrix from a single
// full-length FFT of each axis, scaled to a density by N*dt. This is the
// experimental low-fidelity alternative to Welch estimation: no segmenting,
// no windowing, no averaging, so the per-bin variance does not shrink with
// record length. Prefer CrossSpectrumEstimator.Compute.
func RawFFTCrossSpectrum(series *DisplacementSeries) *CrossSpectrum {
	logging.Warn("raw FFT cross spectrum is a low-fidelity diagnostic path, prefer Welch estimation")

	dt := 1.0 / series.SampleRate

	axes := [3][]float64{series.Heave, series.Surge, series.Sway}
	var spectra [3][]complex128
	for a, axis := range axes {
		full := fft.FFTReal(axis)

		// keep the non-negative half, scaled as an amplitude density
		half := full[:len(axis)/2+1]
		scaled := make([]complex128, len(half))
		for i, v := range half {
			scaled[i] = v * complex(dt, 0)
		}
		spectra[a] = scaled
	}

	bins := len(spectra[0]) - 1 // zero bin trimmed below
	norm := float64(bins) * dt

	out := &CrossSpectrum{Freqs: make([]float64, bins)}
	df := series.SampleRate / float64(series.Len())
	for i := range bins {
		out.Freqs[i] = float64(i+1) * df
	}

	for m := range 3 {
		for n := range 3 {
			out.Data[m][n] = make([]complex128, bins)
			for i := range bins {
				v := cmplx.Conj(spectra[m][i+1]) * spectra[n][i+1]
				out.Data[m][n][i] = v / complex(norm, 0)
			}
		}
	}

	return out
}
