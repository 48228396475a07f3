package directional

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coastlab/buoyspectra/wave"
)

func TestIMLM_NoisySpectrum(t *testing.T) {
	g := noisySpectrum(t, 19)
	theta := DirectionGrid()
	k := wave.Wavenumbers(g.Freqs)

	grid, err := IMLM(g, theta, 60, k, 2.5, 10)
	require.NoError(t, err)

	require.Len(t, grid, NumDirections)
	for j := range grid {
		require.Len(t, grid[j], g.Bins())
		for i := range grid[j] {
			require.False(t, math.IsNaN(grid[j][i]), "cell (%d,%d)", j, i)
			require.False(t, math.IsInf(grid[j][i], 0), "cell (%d,%d)", j, i)
		}
	}
}

func TestIMLM_DiffersFromMLM(t *testing.T) {
	g := noisySpectrum(t, 19)
	theta := DirectionGrid()
	k := wave.Wavenumbers(g.Freqs)

	ginv, err := g.Inverse()
	require.NoError(t, err)
	mlm := MLM(ginv, theta, k, 60)

	imlm, err := IMLM(g, theta, 60, k, 2.5, 10)
	require.NoError(t, err)

	changed := false
	for j := range imlm {
		for i := range imlm[j] {
			if imlm[j][i] != mlm[j][i] {
				changed = true
			}
		}
	}
	require.True(t, changed, "refinement left the initial estimate untouched")
}
