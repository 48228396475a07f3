package windowing

import (
	"math"
)

// Hamming represents a Hamming window function
type Hamming struct {
	size         int
	symmetric    bool
	coefficients []float64
}

// NewHamming creates a new Hamming window
func NewHamming(size int, symmetric bool) *Hamming {
	h := &Hamming{
		size:      size,
		symmetric: symmetric,
	}
	h.generate()
	return h
}

// generate creates Hamming window coefficients
func (h *Hamming) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := float64(h.size)
	if h.symmetric {
		denominator = float64(h.size - 1)
	}

	for i := range h.size {
		h.coefficients[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/denominator)
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hamming) Apply(signal []float64) []float64 {
	return applyCopy(h.coefficients, signal)
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hamming) ApplyInPlace(signal []float64) error {
	return applyInPlace(h.coefficients, signal)
}

// Coefficients returns a copy of the window coefficients
func (h *Hamming) Coefficients() []float64 {
	return copyCoefficients(h.coefficients)
}

// Size returns the window size
func (h *Hamming) Size() int {
	return h.size
}

// Type returns the window type
func (h *Hamming) Type() string {
	return "hamming"
}
