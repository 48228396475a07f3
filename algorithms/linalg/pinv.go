// Package linalg provides the small dense linear-algebra helpers the
// directional estimators need on top of gonum.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// rcond matches numpy's default relative singular value cutoff for pinv.
const rcond = 1e-15

// PseudoInverse computes the Moore-Penrose pseudo-inverse of a square complex
// matrix. Singular and ill-conditioned inputs are absorbed by the singular
// value cutoff and yield a finite result rather than an error.
//
// gonum's SVD is real-valued, so the matrix is lifted to its real embedding
// [[Re, -Im], [Im, Re]], pseudo-inverted there, and projected back; the
// embedding commutes with the pseudo-inverse.
func PseudoInverse(m [][]complex128) ([][]complex128, error) {
	n := len(m)
	if n == 0 {
		return nil, fmt.Errorf("empty matrix")
	}
	for _, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("matrix is not square: row length %d, want %d", len(row), n)
		}
	}

	embedded := mat.NewDense(2*n, 2*n, nil)
	for i := range n {
		for j := range n {
			re := real(m[i][j])
			im := imag(m[i][j])
			embedded.Set(i, j, re)
			embedded.Set(i, j+n, -im)
			embedded.Set(i+n, j, im)
			embedded.Set(i+n, j+n, re)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(embedded, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd failed to converge")
	}

	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := 0.0
	if len(values) > 0 {
		cutoff = rcond * values[0]
	}

	// pinv = V * diag(1/s) * U^T, dropping singular values at or below cutoff
	sInv := mat.NewDiagDense(len(values), nil)
	for i, s := range values {
		if s > cutoff {
			sInv.SetDiag(i, 1.0/s)
		}
	}

	var tmp, pinv mat.Dense
	tmp.Mul(&v, sInv)
	pinv.Mul(&tmp, u.T())

	out := make([][]complex128, n)
	for i := range n {
		out[i] = make([]complex128, n)
		for j := range n {
			out[i][j] = complex(pinv.At(i, j), pinv.At(i+n, j))
		}
	}

	return out, nil
}
