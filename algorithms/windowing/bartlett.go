package windowing

import (
	"math"
)

// Bartlett represents a Bartlett (triangular) window function
type Bartlett struct {
	size         int
	coefficients []float64
}

// NewBartlett creates a new Bartlett window
func NewBartlett(size int) *Bartlett {
	b := &Bartlett{
		size: size,
	}
	b.generate()
	return b
}

// generate creates Bartlett window coefficients
func (b *Bartlett) generate() {
	b.coefficients = make([]float64, b.size)

	half := float64(b.size) / 2.0
	for i := range b.size {
		b.coefficients[i] = 1.0 - math.Abs((float64(i)-half)/half)
	}
}

// Apply applies the window to a signal (creates new array)
func (b *Bartlett) Apply(signal []float64) []float64 {
	return applyCopy(b.coefficients, signal)
}

// ApplyInPlace applies the window to a signal in-place
func (b *Bartlett) ApplyInPlace(signal []float64) error {
	return applyInPlace(b.coefficients, signal)
}

// Coefficients returns a copy of the window coefficients
func (b *Bartlett) Coefficients() []float64 {
	return copyCoefficients(b.coefficients)
}

// Size returns the window size
func (b *Bartlett) Size() int {
	return b.size
}

// Type returns the window type
func (b *Bartlett) Type() string {
	return "bartlett"
}
