// Package windowing provides the window kernels accepted by the spectral
// estimators. Kernels are generated once per segment length; names follow the
// usual DSP conventions ("boxcar", "hann", ...).
package windowing

import (
	"fmt"
)

// Window is a fixed-size window kernel.
type Window interface {
	// Apply applies the window to a signal (creates new array)
	Apply(signal []float64) []float64

	// ApplyInPlace applies the window to a signal in-place
	ApplyInPlace(signal []float64) error

	// Coefficients returns a copy of the window coefficients
	Coefficients() []float64

	// Size returns the window size
	Size() int

	// Type returns the window type name
	Type() string
}

// ForName builds the named window kernel at the given size. Spectral
// estimation uses periodic (non-symmetric) kernels throughout. Unknown names
// are a configuration error.
func ForName(name string, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	switch name {
	case "boxcar", "rectangular":
		return NewRectangular(size), nil
	case "hann":
		return NewHann(size, false), nil
	case "hamming":
		return NewHamming(size, false), nil
	case "bartlett":
		return NewBartlett(size), nil
	case "blackman":
		return NewBlackman(size, false), nil
	default:
		return nil, fmt.Errorf("unknown window %q", name)
	}
}

func applyCopy(coefficients, signal []float64) []float64 {
	if len(signal) != len(coefficients) {
		return nil
	}

	windowed := make([]float64, len(signal))
	for i := range signal {
		windowed[i] = signal[i] * coefficients[i]
	}

	return windowed
}

func applyInPlace(coefficients, signal []float64) error {
	if len(signal) != len(coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(coefficients))
	}

	for i := range signal {
		signal[i] *= coefficients[i]
	}

	return nil
}

func copyCoefficients(coefficients []float64) []float64 {
	coeffs := make([]float64, len(coefficients))
	copy(coeffs, coefficients)
	return coeffs
}
