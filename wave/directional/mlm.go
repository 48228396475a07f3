package directional

import (
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/coastlab/buoyspectra/wave"
)

// MLM estimates the directional spectrum with the Maximum Likelihood Method.
//
// ginv is the per-bin pseudo-inverse of the cross-spectral matrix. For each
// direction theta and frequency bin the steering vector alpha = [1, cos
// theta, -sin theta] is combined with the transfer gains H = [hz, hxy, -hxy]
// and the real bilinear form sum_{m,n} (H[m]*alpha[m]) * Ginv[m][n] *
// conj(alpha[n]*H[n]) is evaluated; the grid holds its reciprocal. The m,n
// summation order is fixed so rounding is reproducible bin for bin.
//
// Directions are independent, so rows are fanned out over a worker pool.
func MLM(ginv *wave.CrossSpectrum, theta []float64, k []float64, depth float64) Grid {
	hz, hxy := wave.TransferGains(k, depth)
	h := [3][]complex128{hz, hxy, negate(hxy)}

	bins := ginv.Bins()
	grid := newGrid(len(theta), bins)

	rows := make(chan int, len(theta))
	var wg sync.WaitGroup

	for range workerCount(len(theta)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				alpha := [3]complex128{1, complex(math.Cos(theta[j]), 0), complex(-math.Sin(theta[j]), 0)}
				for i := range bins {
					var sum float64
					for m := range 3 {
						for n := range 3 {
							v := h[m][i] * alpha[m] * ginv.Data[m][n][i] * cmplx.Conj(alpha[n]*h[n][i])
							sum += real(v)
						}
					}
					grid[j][i] = 1 / sum
				}
			}
		}()
	}

	for j := range theta {
		rows <- j
	}
	close(rows)
	wg.Wait()

	return grid
}

// workerCount sizes the pool for a row/cell workload.
func workerCount(jobs int) int {
	numCPU := runtime.NumCPU()
	if jobs < numCPU {
		if jobs < 1 {
			return 1
		}
		return jobs
	}
	return numCPU
}

func negate(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	for i, c := range v {
		out[i] = -c
	}
	return out
}
