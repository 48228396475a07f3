package spectral

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastlab/buoyspectra/algorithms/windowing"
)

func sine(n int, fs, freq, amplitude, phase float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / fs
		out[i] = amplitude * math.Cos(2*math.Pi*freq*t+phase)
	}
	return out
}

func TestParseScaling(t *testing.T) {
	for _, name := range []string{"density", "spectrum"} {
		s, err := ParseScaling(name)
		require.NoError(t, err)
		assert.Equal(t, Scaling(name), s)
	}

	_, err := ParseScaling("psd")
	require.Error(t, err)
}

func TestCSD_AutoSpectrumIsReal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := make([]float64, 2048)
	for i := range x {
		x[i] = rng.NormFloat64()
	}

	w, err := windowing.ForName("hann", 256)
	require.NoError(t, err)

	_, pxx, err := NewCSDEstimator().CSD(x, x, 4.0, w, 256, true, ScalingDensity)
	require.NoError(t, err)

	for i, v := range pxx {
		assert.InDelta(t, 0.0, imag(v), 1e-12, "bin %d", i)
		assert.GreaterOrEqual(t, real(v), 0.0, "bin %d", i)
	}
}

func TestCSD_SinePowerRecovery(t *testing.T) {
	const (
		fs        = 1.28
		n         = 4096
		nperseg   = 512
		freq      = 0.1 // exactly bin 40 of 512
		amplitude = 2.0
	)

	x := sine(n, fs, freq, amplitude, 0)
	w, err := windowing.ForName("boxcar", nperseg)
	require.NoError(t, err)

	freqs, pxx, err := NewCSDEstimator().CSD(x, x, fs, w, nperseg, true, ScalingDensity)
	require.NoError(t, err)
	require.Len(t, pxx, nperseg/2+1)

	// total power equals A^2/2 for a bin-centered sine
	df := fs / nperseg
	var total float64
	for _, v := range pxx {
		total += real(v) * df
	}
	assert.InDelta(t, amplitude*amplitude/2, total, 1e-9)

	// all of it concentrated at the sine's bin
	peak := 0
	for i := range pxx {
		if real(pxx[i]) > real(pxx[peak]) {
			peak = i
		}
	}
	assert.InDelta(t, freq, freqs[peak], 1e-12)
}

func TestCSD_TwoSidedPowerRecovery(t *testing.T) {
	const (
		fs        = 4.0
		nperseg   = 256
		amplitude = 1.5
	)

	x := sine(1024, fs, 0.5, amplitude, 0)
	w, err := windowing.ForName("boxcar", nperseg)
	require.NoError(t, err)

	freqs, pxx, err := NewCSDEstimator().CSD(x, x, fs, w, nperseg, false, ScalingDensity)
	require.NoError(t, err)
	require.Len(t, pxx, nperseg)

	// standard FFT ordering: DC first, negative frequencies in the back half
	assert.Equal(t, 0.0, freqs[0])
	assert.Negative(t, freqs[nperseg-1])

	df := fs / nperseg
	var total float64
	for _, v := range pxx {
		total += real(v) * df
	}
	assert.InDelta(t, amplitude*amplitude/2, total, 1e-9)
}

func TestCSD_CrossSpectrumPhase(t *testing.T) {
	const (
		fs      = 1.28
		nperseg = 512
	)

	// y lags x by 90 degrees: conj(X)*Y has a pure -90 degree phase at the
	// sine's bin
	x := sine(4096, fs, 0.1, 1, 0)
	y := sine(4096, fs, 0.1, 1, -math.Pi/2)

	w, err := windowing.ForName("boxcar", nperseg)
	require.NoError(t, err)

	est := NewCSDEstimator()
	_, pxy, err := est.CSD(x, y, fs, w, nperseg, true, ScalingDensity)
	require.NoError(t, err)

	bin := 40
	assert.InDelta(t, 0.0, real(pxy[bin]), 1e-9)
	assert.Negative(t, imag(pxy[bin]))

	// swapping the arguments conjugates the estimate
	_, pyx, err := est.CSD(y, x, fs, w, nperseg, true, ScalingDensity)
	require.NoError(t, err)
	assert.InDelta(t, real(pxy[bin]), real(pyx[bin]), 1e-12)
	assert.InDelta(t, -imag(pxy[bin]), imag(pyx[bin]), 1e-12)
}

func TestCSD_LengthMismatch(t *testing.T) {
	w, err := windowing.ForName("boxcar", 8)
	require.NoError(t, err)

	_, _, err = NewCSDEstimator().CSD(make([]float64, 16), make([]float64, 15), 1, w, 8, true, ScalingDensity)
	require.Error(t, err)
}

func TestCSD_WindowSegmentMismatch(t *testing.T) {
	w, err := windowing.ForName("boxcar", 16)
	require.NoError(t, err)

	_, _, err = NewCSDEstimator().CSD(make([]float64, 64), make([]float64, 64), 1, w, 8, true, ScalingDensity)
	require.Error(t, err)
}

func TestCSD_SpectrumScaling(t *testing.T) {
	const (
		fs        = 4.0
		nperseg   = 256
		amplitude = 3.0
	)

	x := sine(1024, fs, 0.5, amplitude, 0)
	w, err := windowing.ForName("boxcar", nperseg)
	require.NoError(t, err)

	_, pxx, err := NewCSDEstimator().CSD(x, x, fs, w, nperseg, true, ScalingSpectrum)
	require.NoError(t, err)

	// spectrum scaling puts the full A^2/2 into the sine's bin
	peak := 0.0
	for _, v := range pxx {
		if real(v) > peak {
			peak = real(v)
		}
	}
	assert.InDelta(t, amplitude*amplitude/2, peak, 1e-9)
}
