package spectral

import (
	"fmt"
	"math/cmplx"

	"github.com/coastlab/buoyspectra/algorithms/windowing"
	"github.com/coastlab/buoyspectra/logging"
)

// Scaling selects the normalization of the spectral estimate
type Scaling string

const (
	// ScalingDensity normalizes to a power spectral density (units^2/Hz)
	ScalingDensity Scaling = "density"

	// ScalingSpectrum normalizes to a power spectrum (units^2)
	ScalingSpectrum Scaling = "spectrum"
)

// ParseScaling validates a scaling mode name
func ParseScaling(name string) (Scaling, error) {
	switch Scaling(name) {
	case ScalingDensity, ScalingSpectrum:
		return Scaling(name), nil
	default:
		return "", fmt.Errorf("unknown scaling %q (want density or spectrum)", name)
	}
}

// CSDEstimator computes cross power spectral densities using Welch's method:
// the series are split into 50%-overlapping segments, each segment is windowed
// and transformed, and the per-segment cross spectra conj(X)*Y are averaged.
type CSDEstimator struct {
	fft    *FFT
	logger logging.Logger
}

// NewCSDEstimator creates a new Welch cross-spectral estimator
func NewCSDEstimator() *CSDEstimator {
	return &CSDEstimator{
		fft: NewFFT(),
		logger: logging.WithFields(logging.Fields{
			"component": "csd_estimator",
		}),
	}
}

// CSD estimates the cross power spectral density between x and y.
//
// fs is the sampling rate, window the segment kernel, nperseg the samples per
// segment (clamped to len(x) when the series is shorter). With onesided=true
// only non-negative frequencies are returned, with interior bins doubled to
// conserve power; otherwise the full two-sided spectrum is returned in
// standard FFT ordering. No detrending is applied.
//
// The auto-spectral case (x == y) yields a real-valued result up to rounding.
func (c *CSDEstimator) CSD(x, y []float64, fs float64, window windowing.Window, nperseg int, onesided bool, scaling Scaling) ([]float64, []complex128, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("series length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("empty series")
	}
	if fs <= 0 {
		return nil, nil, fmt.Errorf("sampling rate must be positive, got %v", fs)
	}
	if nperseg <= 0 {
		return nil, nil, fmt.Errorf("segment length must be positive, got %d", nperseg)
	}

	if nperseg > len(x) {
		c.logger.Warn("segment length exceeds series length, clamping", logging.Fields{
			"nperseg": nperseg,
			"samples": len(x),
		})
		nperseg = len(x)
	}

	if window.Size() != nperseg {
		return nil, nil, fmt.Errorf("window size (%d) doesn't match segment length (%d)", window.Size(), nperseg)
	}

	coeffs := window.Coefficients()

	// Window normalization: density scales by the window power, spectrum by
	// the squared coherent gain.
	var winSum, winSumSq float64
	for _, w := range coeffs {
		winSum += w
		winSumSq += w * w
	}

	var scale float64
	switch scaling {
	case ScalingDensity:
		scale = 1.0 / (fs * winSumSq)
	case ScalingSpectrum:
		scale = 1.0 / (winSum * winSum)
	default:
		return nil, nil, fmt.Errorf("unknown scaling %q (want density or spectrum)", scaling)
	}

	overlap := nperseg / 2
	step := nperseg - overlap
	numSegments := (len(x) - overlap) / step
	if numSegments < 1 {
		numSegments = 1
	}

	numBins := nperseg
	if onesided {
		numBins = nperseg/2 + 1
	}

	accum := make([]complex128, numBins)
	segX := make([]float64, nperseg)
	segY := make([]float64, nperseg)

	used := 0
	for s := 0; s < numSegments; s++ {
		start := s * step
		end := start + nperseg
		if end > len(x) {
			break
		}

		copy(segX, x[start:end])
		copy(segY, y[start:end])

		for i := range nperseg {
			segX[i] *= coeffs[i]
			segY[i] *= coeffs[i]
		}

		fx := c.fft.Compute(segX)
		fy := c.fft.Compute(segY)

		for i := range numBins {
			accum[i] += cmplx.Conj(fx[i]) * fy[i]
		}
		used++
	}

	if used == 0 {
		return nil, nil, fmt.Errorf("series too short for segment length %d", nperseg)
	}

	pxy := make([]complex128, numBins)
	norm := complex(scale/float64(used), 0)
	for i := range numBins {
		pxy[i] = accum[i] * norm

		// One-sided output folds negative frequencies onto positive ones;
		// DC and Nyquist have no mirror bin.
		if onesided && i > 0 && !(nperseg%2 == 0 && i == numBins-1) {
			pxy[i] *= 2
		}
	}

	freqs := make([]float64, numBins)
	df := fs / float64(nperseg)
	for i := range numBins {
		if onesided || i < (nperseg+1)/2 {
			freqs[i] = float64(i) * df
		} else {
			freqs[i] = float64(i-nperseg) * df
		}
	}

	return freqs, pxy, nil
}
