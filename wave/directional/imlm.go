package directional

import (
	"fmt"
	"math"

	"github.com/coastlab/buoyspectra/wave"
)

// imlmIterations bounds the refinement loop. There is no convergence check;
// the fixed count substitutes for one.
const imlmIterations = 20

// IMLM estimates the directional spectrum with the Iterative Maximum
// Likelihood Method: an initial MLM estimate is refined by repeatedly
// re-synthesizing a cross-spectrum from the current estimate and applying a
// gradient-style correction with hyperparameters beta and gamma
// (lambda = initial - previous, correction = |lambda|^(beta+1) / (lambda*gamma)).
//
// The loop does not re-invoke MLM on the synthesized spectrum: the correction
// is always taken against the initial estimate, matching the established CDIP
// processing bin for bin. Iterations are strictly sequential.
//
// Degenerate bins where lambda reaches zero divide to non-finite values,
// which propagate to the caller unmasked.
func IMLM(g *wave.CrossSpectrum, theta []float64, depth float64, k []float64, beta, gamma float64) (Grid, error) {
	ginv, err := g.Inverse()
	if err != nil {
		return nil, fmt.Errorf("inverting cross spectrum: %w", err)
	}

	initial := MLM(ginv, theta, k, depth)
	bins := g.Bins()

	// E starts as the measured heave auto-spectrum and is refreshed from each
	// synthesis.
	e := append([]complex128(nil), g.Data[0][0]...)

	prev := newGrid(len(theta), bins)
	curr := initial

	s := make([][]complex128, len(theta))
	for j := range s {
		s[j] = make([]complex128, bins)
	}

	for iter := 0; iter < imlmIterations; iter++ {
		for j := range theta {
			for i := range bins {
				s[j][i] = e[i] * complex(curr[j][i], 0)
			}
		}

		synth, err := wave.SynthesizeCrossSpectrum(s, k, theta, depth, g.Freqs)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		e = synth.Data[0][0]

		next := newGrid(len(theta), bins)
		for j := range theta {
			for i := range bins {
				lambda := initial[j][i] - prev[j][i]
				eFactor := math.Pow(math.Abs(lambda), beta+1) / (lambda * gamma)
				next[j][i] = prev[j][i] + eFactor
			}
		}

		curr = next
		prev = curr
	}

	return curr, nil
}
