// Package wave implements directional wave spectrum estimation from buoy
// displacement records: cross-spectral matrix construction, Fourier
// directional moments, the dispersion and transfer-function models, and the
// forward synthesis used for iterative refinement.
package wave

import (
	"fmt"
)

// ShapeError reports displacement series of mismatched lengths. It fails a
// run before any spectral computation happens.
type ShapeError struct {
	Heave int
	Surge int
	Sway  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("displacement series lengths differ: heave=%d surge=%d sway=%d", e.Heave, e.Surge, e.Sway)
}

// DisplacementSeries holds the three-axis displacement record of a buoy at a
// uniform sampling rate. The sway axis is negated at construction (sensor
// axis convention); the series are copies and must be treated as read-only.
type DisplacementSeries struct {
	Heave []float64 // z
	Surge []float64 // x
	Sway  []float64 // -y

	SampleRate float64
}

// NewDisplacementSeries validates and assembles a displacement record.
// heave, surge and sway are the raw z, x, y columns; the sway sign flip is
// applied here, once.
func NewDisplacementSeries(heave, surge, sway []float64, sampleRate float64) (*DisplacementSeries, error) {
	if len(heave) != len(surge) || len(heave) != len(sway) {
		return nil, &ShapeError{Heave: len(heave), Surge: len(surge), Sway: len(sway)}
	}
	if len(heave) == 0 {
		return nil, fmt.Errorf("empty displacement series")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sampling rate must be positive, got %v", sampleRate)
	}

	s := &DisplacementSeries{
		Heave:      append([]float64(nil), heave...),
		Surge:      append([]float64(nil), surge...),
		Sway:       make([]float64, len(sway)),
		SampleRate: sampleRate,
	}
	for i, v := range sway {
		s.Sway[i] = -v
	}

	return s, nil
}

// Len returns the number of samples per axis.
func (s *DisplacementSeries) Len() int {
	return len(s.Heave)
}
