package directional

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coastlab/buoyspectra/algorithms/spectral"
	"github.com/coastlab/buoyspectra/algorithms/windowing"
	"github.com/coastlab/buoyspectra/wave"
)

// singleWaveSpectrum builds the cross spectrum of a deterministic 0.1 Hz
// wave arriving from 90 degrees, restricted to positive frequencies. The
// tone lands exactly on bin index 39 of the trimmed axis.
func singleWaveSpectrum(t *testing.T) *wave.CrossSpectrum {
	t.Helper()

	const (
		fs = 1.28
		f0 = 0.1
		n  = 4096
	)

	heave := make([]float64, n)
	surge := make([]float64, n)
	sway := make([]float64, n)
	for i := range n {
		phase := 2 * math.Pi * f0 * float64(i) / fs
		heave[i] = math.Cos(phase)
		surge[i] = 0
		sway[i] = -math.Sin(phase)
	}

	series, err := wave.NewDisplacementSeries(heave, surge, sway, fs)
	require.NoError(t, err)

	window, err := windowing.ForName("boxcar", 512)
	require.NoError(t, err)

	g, err := wave.NewCrossSpectrumEstimator().Compute(series, window, 512, true, spectral.ScalingDensity)
	require.NoError(t, err)

	return g.PositiveFrequencies()
}

func noisySpectrum(t *testing.T, seed int64) *wave.CrossSpectrum {
	t.Helper()

	// small displacement amplitudes keep the IMLM correction term, which
	// grows as |lambda|^beta, inside its contractive regime
	const (
		n   = 2048
		amp = 0.05
	)
	rng := rand.New(rand.NewSource(seed))
	heave := make([]float64, n)
	surge := make([]float64, n)
	sway := make([]float64, n)
	for i := range n {
		heave[i] = amp * rng.NormFloat64()
		surge[i] = 0.6*heave[i] + amp*0.3*rng.NormFloat64()
		sway[i] = 0.4*heave[i] + amp*0.3*rng.NormFloat64()
	}

	series, err := wave.NewDisplacementSeries(heave, surge, sway, 1.28)
	require.NoError(t, err)

	window, err := windowing.ForName("hann", 256)
	require.NoError(t, err)

	g, err := wave.NewCrossSpectrumEstimator().Compute(series, window, 256, true, spectral.ScalingDensity)
	require.NoError(t, err)

	return g.PositiveFrequencies()
}

func TestMLM_SingleWavePeakDirection(t *testing.T) {
	g := singleWaveSpectrum(t)
	ginv, err := g.Inverse()
	require.NoError(t, err)

	theta := DirectionGrid()
	k := wave.Wavenumbers(g.Freqs)

	grid := MLM(ginv, theta, k, 60)
	require.Len(t, grid, NumDirections)
	for j := range grid {
		require.Len(t, grid[j], g.Bins())
	}

	// the wave arrives from 90 degrees, direction grid index 18
	const peakBin = 39
	best := math.Inf(-1)
	bestJ := -1
	for j := range grid {
		if grid[j][peakBin] > best {
			best = grid[j][peakBin]
			bestJ = j
		}
	}
	require.Equal(t, 18, bestJ)
	require.Greater(t, grid[18][peakBin], grid[0][peakBin])
	require.Greater(t, grid[18][peakBin], grid[36][peakBin])
}

func TestMLM_NoisySpectrumFinite(t *testing.T) {
	g := noisySpectrum(t, 5)
	ginv, err := g.Inverse()
	require.NoError(t, err)

	theta := DirectionGrid()
	k := wave.Wavenumbers(g.Freqs)

	grid := MLM(ginv, theta, k, 60)
	for j := range grid {
		for i := range grid[j] {
			require.False(t, math.IsNaN(grid[j][i]), "cell (%d,%d)", j, i)
			require.False(t, math.IsInf(grid[j][i], 0), "cell (%d,%d)", j, i)
		}
	}
}
