package windowing

import (
	"math"
)

// Hann represents a Hann window function
type Hann struct {
	size         int
	symmetric    bool
	coefficients []float64
}

// NewHann creates a new Hann window. Symmetric windows suit filter design;
// spectral estimation uses the periodic form.
func NewHann(size int, symmetric bool) *Hann {
	h := &Hann{
		size:      size,
		symmetric: symmetric,
	}
	h.generate()
	return h
}

// generate creates Hann window coefficients
func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := float64(h.size)
	if h.symmetric {
		denominator = float64(h.size - 1)
	}

	for i := range h.size {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hann) Apply(signal []float64) []float64 {
	return applyCopy(h.coefficients, signal)
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hann) ApplyInPlace(signal []float64) error {
	return applyInPlace(h.coefficients, signal)
}

// Coefficients returns a copy of the window coefficients
func (h *Hann) Coefficients() []float64 {
	return copyCoefficients(h.coefficients)
}

// Size returns the window size
func (h *Hann) Size() int {
	return h.size
}

// Type returns the window type
func (h *Hann) Type() string {
	return "hann"
}
