package windowing

import (
	"math"
)

// Blackman represents a Blackman window function
type Blackman struct {
	size         int
	symmetric    bool
	coefficients []float64
}

// NewBlackman creates a new Blackman window
func NewBlackman(size int, symmetric bool) *Blackman {
	b := &Blackman{
		size:      size,
		symmetric: symmetric,
	}
	b.generate()
	return b
}

// generate creates Blackman window coefficients
func (b *Blackman) generate() {
	b.coefficients = make([]float64, b.size)

	denominator := float64(b.size)
	if b.symmetric {
		denominator = float64(b.size - 1)
	}

	for i := range b.size {
		phase := 2 * math.Pi * float64(i) / denominator
		b.coefficients[i] = 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	}
}

// Apply applies the window to a signal (creates new array)
func (b *Blackman) Apply(signal []float64) []float64 {
	return applyCopy(b.coefficients, signal)
}

// ApplyInPlace applies the window to a signal in-place
func (b *Blackman) ApplyInPlace(signal []float64) error {
	return applyInPlace(b.coefficients, signal)
}

// Coefficients returns a copy of the window coefficients
func (b *Blackman) Coefficients() []float64 {
	return copyCoefficients(b.coefficients)
}

// Size returns the window size
func (b *Blackman) Size() int {
	return b.size
}

// Type returns the window type
func (b *Blackman) Type() string {
	return "blackman"
}
