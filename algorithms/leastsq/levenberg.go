// Package leastsq implements a small dense Levenberg-Marquardt nonlinear
// least-squares solver. gonum's optimize package carries general gradient
// methods but no damped least-squares routine, so the damping loop lives
// here; the linear algebra sits on gonum/mat.
package leastsq

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ResidualFunc evaluates the residual vector at the given parameters.
// The residual length must be constant across calls.
type ResidualFunc func(params []float64) []float64

// Settings controls the solver. Zero values fall back to defaults.
type Settings struct {
	MaxIterations int     // default 200
	Tolerance     float64 // relative cost-decrease tolerance, default 1e-10
	InitialDamp   float64 // initial damping factor, default 1e-3
}

// Result holds the best parameters found and convergence diagnostics.
type Result struct {
	Params       []float64 `json:"params"`
	ResidualNorm float64   `json:"residual_norm"`
	Iterations   int       `json:"iterations"`
	Converged    bool      `json:"converged"`
}

func (s *Settings) withDefaults() Settings {
	out := Settings{MaxIterations: 200, Tolerance: 1e-10, InitialDamp: 1e-3}
	if s == nil {
		return out
	}
	if s.MaxIterations > 0 {
		out.MaxIterations = s.MaxIterations
	}
	if s.Tolerance > 0 {
		out.Tolerance = s.Tolerance
	}
	if s.InitialDamp > 0 {
		out.InitialDamp = s.InitialDamp
	}
	return out
}

// Solve minimizes the squared norm of fn starting from x0.
//
// Each iteration forms a forward-difference Jacobian and solves the damped
// normal equations (J'J + damp*diag(J'J)) step = -J'r. Accepted steps shrink
// the damping, rejected ones grow it. The best parameters seen are always
// returned; Converged reports whether the cost decrease fell below tolerance
// before the iteration budget ran out.
func Solve(fn ResidualFunc, x0 []float64, settings *Settings) (*Result, error) {
	if fn == nil {
		return nil, fmt.Errorf("nil residual function")
	}
	if len(x0) == 0 {
		return nil, fmt.Errorf("empty initial guess")
	}

	cfg := settings.withDefaults()

	x := make([]float64, len(x0))
	copy(x, x0)

	r := fn(x)
	if len(r) == 0 {
		return nil, fmt.Errorf("residual function returned empty vector")
	}
	for _, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite residual at initial guess")
		}
	}

	n := len(x)
	m := len(r)
	cost := sumSquares(r)
	damp := cfg.InitialDamp

	result := &Result{Params: append([]float64(nil), x...), ResidualNorm: math.Sqrt(cost)}

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		result.Iterations = iter + 1

		jac, err := jacobian(fn, x, r, m)
		if err != nil {
			return result, err
		}

		jtj := mat.NewDense(n, n, nil)
		jtj.Mul(jac.T(), jac)

		jtr := mat.NewVecDense(n, nil)
		jtr.MulVec(jac.T(), mat.NewVecDense(m, r))

		// Gradient already flat: accept the current point.
		if mat.Norm(jtr, math.Inf(1)) < cfg.Tolerance {
			result.Converged = true
			break
		}

		accepted := false
		for try := 0; try < 10; try++ {
			damped := mat.NewDense(n, n, nil)
			damped.CloneFrom(jtj)
			for i := range n {
				d := jtj.At(i, i)
				if d == 0 {
					d = 1
				}
				damped.Set(i, i, jtj.At(i, i)+damp*d)
			}

			step := mat.NewVecDense(n, nil)
			if err := step.SolveVec(damped, jtr); err != nil {
				damp *= 10
				continue
			}

			trial := make([]float64, n)
			for i := range n {
				trial[i] = x[i] - step.AtVec(i)
			}

			rTrial := fn(trial)
			if len(rTrial) != m || !allFinite(rTrial) {
				damp *= 10
				continue
			}

			costTrial := sumSquares(rTrial)
			if costTrial < cost {
				relDecrease := (cost - costTrial) / math.Max(cost, 1e-300)
				x = trial
				r = rTrial
				cost = costTrial
				damp = math.Max(damp/10, 1e-12)
				accepted = true

				result.Params = append([]float64(nil), x...)
				result.ResidualNorm = math.Sqrt(cost)

				if relDecrease < cfg.Tolerance {
					result.Converged = true
				}
				break
			}
			damp *= 10
		}

		if !accepted || result.Converged {
			if !accepted {
				// No downhill step at any damping: local minimum.
				result.Converged = true
			}
			break
		}
	}

	return result, nil
}

// jacobian builds the forward-difference Jacobian at x given residuals r.
func jacobian(fn ResidualFunc, x, r []float64, m int) (*mat.Dense, error) {
	n := len(x)
	jac := mat.NewDense(m, n, nil)

	xh := make([]float64, n)
	for j := range n {
		copy(xh, x)

		h := math.Sqrt(2.2e-16) * math.Max(math.Abs(x[j]), 1.0)
		xh[j] += h

		rh := fn(xh)
		if len(rh) != m {
			return nil, fmt.Errorf("residual length changed from %d to %d", m, len(rh))
		}

		for i := range m {
			jac.Set(i, j, (rh[i]-r[i])/h)
		}
	}

	return jac, nil
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
