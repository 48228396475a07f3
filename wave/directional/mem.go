package directional

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate"

	"github.com/coastlab/buoyspectra/algorithms/leastsq"
	"github.com/coastlab/buoyspectra/logging"
	"github.com/coastlab/buoyspectra/wave"
)

// CellFitError records a failed MEM fit for a single (direction, frequency)
// cell. Cell failures are collected, never raised: the rest of the grid is
// unaffected and the failed cell is left NaN.
type CellFitError struct {
	DirectionIndex int
	FrequencyIndex int
	Err            error
}

func (e *CellFitError) Error() string {
	return fmt.Sprintf("mem fit at direction %d, frequency bin %d: %v", e.DirectionIndex, e.FrequencyIndex, e.Err)
}

func (e *CellFitError) Unwrap() error {
	return e.Err
}

// MEM estimates the directional spectrum with a moment-constrained maximum
// entropy fit: for each (direction, frequency) cell the five parameters of
//
//	density(theta) = exp(-x0 - x1*cos - x2*sin - x3*cos2 - x4*sin2)
//
// are fitted by Levenberg-Marquardt so that the model's direction-integrated
// moment vector [1, a1, b1, a2, b2] (trapezoidal over the grid) matches the
// moments in the table, starting from [1,1,1,1,1]. The cell value is the
// fitted density at that cell's direction.
//
// Cells are independent and side-effect free, so they are fanned out over a
// worker pool; per-cell failures are collected without cancelling the rest.
func MEM(table *wave.MomentsTable, theta []float64) (Grid, []*CellFitError) {
	logger := logging.WithFields(logging.Fields{
		"component": "mem_estimator",
	})

	bins := table.Bins()
	grid := newGrid(len(theta), bins)

	cosT := make([]float64, len(theta))
	sinT := make([]float64, len(theta))
	cos2T := make([]float64, len(theta))
	sin2T := make([]float64, len(theta))
	for j, t := range theta {
		cosT[j] = math.Cos(t)
		sinT[j] = math.Sin(t)
		cos2T[j] = math.Cos(2 * t)
		sin2T[j] = math.Sin(2 * t)
	}

	type cell struct{ j, i int }
	cells := make(chan cell, len(theta)*bins)

	var mu sync.Mutex
	var failures []*CellFitError

	var wg sync.WaitGroup
	for range workerCount(len(theta) * bins) {
		wg.Add(1)
		go func() {
			defer wg.Done()

			dat := make([]float64, len(theta))
			weighted := make([]float64, len(theta))

			model := func(x []float64, j int) float64 {
				return math.Exp(-x[0] - x[1]*cosT[j] - x[2]*sinT[j] - x[3]*cos2T[j] - x[4]*sin2T[j])
			}

			// moment integrates the current model density against a basis
			// function over the direction grid; dat must be up to date.
			moment := func(basis []float64) float64 {
				for j := range theta {
					weighted[j] = dat[j] * basis[j]
				}
				return integrate.Trapezoidal(theta, weighted)
			}

			for c := range cells {
				target := [5]float64{table.A0[c.i], table.A1[c.i], table.B1[c.i], table.A2[c.i], table.B2[c.i]}

				residual := func(x []float64) []float64 {
					for j := range theta {
						dat[j] = model(x, j)
					}
					coef := [5]float64{
						1,
						moment(cosT),
						moment(sinT),
						moment(cos2T),
						moment(sin2T),
					}
					r := make([]float64, 5)
					for i := range r {
						r[i] = coef[i] - target[i]
					}
					return r
				}

				result, err := leastsq.Solve(residual, []float64{1, 1, 1, 1, 1}, nil)
				if err != nil {
					grid[c.j][c.i] = math.NaN()
					mu.Lock()
					failures = append(failures, &CellFitError{DirectionIndex: c.j, FrequencyIndex: c.i, Err: err})
					mu.Unlock()
					continue
				}

				// best achieved fit is used whether or not it converged
				grid[c.j][c.i] = model(result.Params, c.j)

				if !result.Converged {
					mu.Lock()
					failures = append(failures, &CellFitError{
						DirectionIndex: c.j,
						FrequencyIndex: c.i,
						Err:            fmt.Errorf("no convergence after %d iterations, residual norm %g", result.Iterations, result.ResidualNorm),
					})
					mu.Unlock()
				}
			}
		}()
	}

	for j := range theta {
		for i := range bins {
			cells <- cell{j: j, i: i}
		}
	}
	close(cells)
	wg.Wait()

	if len(failures) > 0 {
		logger.Warn("mem fits failed for some cells", logging.Fields{
			"failed": len(failures),
			"total":  len(theta) * bins,
		})
	}

	return grid, failures
}
