package wave

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/integrate"

	"github.com/coastlab/buoyspectra/algorithms/linalg"
	"github.com/coastlab/buoyspectra/algorithms/spectral"
	"github.com/coastlab/buoyspectra/algorithms/windowing"
	"github.com/coastlab/buoyspectra/logging"
)

// CrossSpectrum is the 3x3 Hermitian cross power spectral density matrix of
// the (z, x, y) displacement axes, one matrix per frequency bin. Diagonal
// entries are co-spectra (real up to rounding); off-diagonal imaginary parts
// are the quadrature spectra. The zero-frequency bin is always trimmed.
// Immutable once computed.
type CrossSpectrum struct {
	Freqs []float64          `json:"freqs"`
	Data  [3][3][]complex128 `json:"-"`
}

// Bins returns the number of frequency bins.
func (g *CrossSpectrum) Bins() int {
	return len(g.Freqs)
}

// At returns the (m, n) matrix entry at frequency bin i.
func (g *CrossSpectrum) At(m, n, i int) complex128 {
	return g.Data[m][n][i]
}

// Matrix returns the full 3x3 matrix at frequency bin i.
func (g *CrossSpectrum) Matrix(i int) [][]complex128 {
	out := make([][]complex128, 3)
	for m := range 3 {
		out[m] = []complex128{g.Data[m][0][i], g.Data[m][1][i], g.Data[m][2][i]}
	}
	return out
}

// Inverse computes the per-bin Moore-Penrose pseudo-inverse of the matrix.
// Singular or ill-conditioned bins produce finite entries rather than errors;
// the per-bin pseudo-inverse absorbs them.
func (g *CrossSpectrum) Inverse() (*CrossSpectrum, error) {
	inv := &CrossSpectrum{Freqs: append([]float64(nil), g.Freqs...)}
	for m := range 3 {
		for n := range 3 {
			inv.Data[m][n] = make([]complex128, g.Bins())
		}
	}

	for i := range g.Bins() {
		p, err := linalg.PseudoInverse(g.Matrix(i))
		if err != nil {
			return nil, fmt.Errorf("pseudo-inverse at bin %d: %w", i, err)
		}
		for m := range 3 {
			for n := range 3 {
				inv.Data[m][n][i] = p[m][n]
			}
		}
	}

	return inv, nil
}

// PositiveFrequencies returns a copy restricted to bins with freq > 0.
// One-sided spectra are unchanged after the zero-bin trim; two-sided spectra
// lose their negative-frequency half.
func (g *CrossSpectrum) PositiveFrequencies() *CrossSpectrum {
	keep := make([]int, 0, g.Bins())
	for i, f := range g.Freqs {
		if f > 0 {
			keep = append(keep, i)
		}
	}

	out := &CrossSpectrum{Freqs: make([]float64, len(keep))}
	for m := range 3 {
		for n := range 3 {
			out.Data[m][n] = make([]complex128, len(keep))
		}
	}
	for j, i := range keep {
		out.Freqs[j] = g.Freqs[i]
		for m := range 3 {
			for n := range 3 {
				out.Data[m][n][j] = g.Data[m][n][i]
			}
		}
	}

	return out
}

// CrossSpectrumEstimator assembles the cross-spectral matrix from a
// displacement record using Welch cross power spectral density estimation.
type CrossSpectrumEstimator struct {
	csd    *spectral.CSDEstimator
	logger logging.Logger
}

// NewCrossSpectrumEstimator creates a new cross-spectrum estimator
func NewCrossSpectrumEstimator() *CrossSpectrumEstimator {
	return &CrossSpectrumEstimator{
		csd: spectral.NewCSDEstimator(),
		logger: logging.WithFields(logging.Fields{
			"component": "cross_spectrum_estimator",
		}),
	}
}

// Compute estimates all 9 ordered-pair cross spectra among (z, x, y) and
// drops the non-physical zero-frequency bin from every entry.
func (e *CrossSpectrumEstimator) Compute(series *DisplacementSeries, window windowing.Window, segmentLength int, onesided bool, scaling spectral.Scaling) (*CrossSpectrum, error) {
	axes := [3][]float64{series.Heave, series.Surge, series.Sway}

	out := &CrossSpectrum{}
	for m := range 3 {
		for n := range 3 {
			freqs, pxy, err := e.csd.CSD(axes[m], axes[n], series.SampleRate, window, segmentLength, onesided, scaling)
			if err != nil {
				return nil, fmt.Errorf("csd(%d,%d): %w", m, n, err)
			}

			// trim the zero-frequency bin
			out.Data[m][n] = pxy[1:]
			if out.Freqs == nil {
				out.Freqs = freqs[1:]
			}
		}
	}

	e.logger.Debug("cross spectrum computed", logging.Fields{
		"bins":     out.Bins(),
		"onesided": onesided,
		"scaling":  string(scaling),
	})

	return out, nil
}

// SynthesizeCrossSpectrum computes the cross-spectral matrix implied by a
// directional spectrum S(theta, f): each entry is the trapezoidal direction
// integral of H[m] * conj(H[n]) * S, with H the (hz, hxy, -hxy) transfer
// gains for the given wavenumbers and depth. Used by the iterative estimator
// and the post-estimate moment refinement.
//
// s is indexed [direction][frequency] and must cover the full theta grid.
func SynthesizeCrossSpectrum(s [][]complex128, k []float64, theta []float64, depth float64, freqs []float64) (*CrossSpectrum, error) {
	if len(s) != len(theta) {
		return nil, fmt.Errorf("directional spectrum has %d rows, want %d", len(s), len(theta))
	}

	bins := len(freqs)
	for j := range s {
		if len(s[j]) != bins {
			return nil, fmt.Errorf("directional spectrum row %d has %d bins, want %d", j, len(s[j]), bins)
		}
	}

	hz, hxy := TransferGains(k, depth)
	h := [3][]complex128{hz, hxy, negate(hxy)}

	out := &CrossSpectrum{Freqs: append([]float64(nil), freqs...)}

	reVals := make([]float64, len(theta))
	imVals := make([]float64, len(theta))

	for m := range 3 {
		for n := range 3 {
			out.Data[m][n] = make([]complex128, bins)
			for i := range bins {
				gain := h[m][i] * cmplx.Conj(h[n][i])
				for j := range theta {
					v := gain * s[j][i]
					reVals[j] = real(v)
					imVals[j] = imag(v)
				}
				out.Data[m][n][i] = complex(
					integrate.Trapezoidal(theta, reVals),
					integrate.Trapezoidal(theta, imVals),
				)
			}
		}
	}

	return out, nil
}

func negate(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	for i, c := range v {
		out[i] = -c
	}
	return out
}
