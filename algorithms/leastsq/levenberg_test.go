package leastsq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_ExponentialFit(t *testing.T) {
	// recover (a, b) of a*exp(b*t) from exact samples
	const (
		a = 2.0
		b = -0.5
	)

	ts := make([]float64, 20)
	data := make([]float64, 20)
	for i := range ts {
		ts[i] = float64(i) * 0.25
		data[i] = a * math.Exp(b*ts[i])
	}

	residual := func(x []float64) []float64 {
		r := make([]float64, len(ts))
		for i := range ts {
			r[i] = x[0]*math.Exp(x[1]*ts[i]) - data[i]
		}
		return r
	}

	result, err := Solve(residual, []float64{1, 0}, nil)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.InDelta(t, a, result.Params[0], 1e-6)
	assert.InDelta(t, b, result.Params[1], 1e-6)
	assert.Less(t, result.ResidualNorm, 1e-6)
}

func TestSolve_LinearSystem(t *testing.T) {
	// linear residuals converge in very few steps
	residual := func(x []float64) []float64 {
		return []float64{
			2*x[0] + x[1] - 5,
			x[0] - 3*x[1] + 4,
		}
	}

	result, err := Solve(residual, []float64{0, 0}, nil)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.InDelta(t, 11.0/7.0, result.Params[0], 1e-6)
	assert.InDelta(t, 13.0/7.0, result.Params[1], 1e-6)
}

func TestSolve_OverdeterminedConsistency(t *testing.T) {
	// more residuals than parameters: least-squares solution of x ~= each target
	targets := []float64{1, 2, 3}
	residual := func(x []float64) []float64 {
		r := make([]float64, len(targets))
		for i, tgt := range targets {
			r[i] = x[0] - tgt
		}
		return r
	}

	result, err := Solve(residual, []float64{0}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.Params[0], 1e-6)
}

func TestSolve_NonFiniteInitialResidual(t *testing.T) {
	residual := func(x []float64) []float64 {
		return []float64{math.NaN()}
	}

	_, err := Solve(residual, []float64{1}, nil)
	require.Error(t, err)
}

func TestSolve_InputValidation(t *testing.T) {
	_, err := Solve(nil, []float64{1}, nil)
	require.Error(t, err)

	_, err = Solve(func(x []float64) []float64 { return []float64{0} }, nil, nil)
	require.Error(t, err)
}

func TestSolve_BudgetRespected(t *testing.T) {
	calls := 0
	residual := func(x []float64) []float64 {
		calls++
		// a residual that never reaches zero but keeps improving slowly
		return []float64{math.Exp(-x[0]) + 1}
	}

	result, err := Solve(residual, []float64{0}, &Settings{MaxIterations: 5})
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Iterations, 5)
}
