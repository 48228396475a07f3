package wave

import (
	"math"
)

// TransferGains returns the per-frequency complex response gains relating
// surface elevation to the (heave, surge, sway) axes for the given
// wavenumbers and water depth. The surge gain is hxy and the sway gain its
// negation, so callers use (hz, hxy, -hxy).
//
// When any wavenumber is nonzero and depth > 15 the deep-water asymptote
// hz = 1, hxy = i is used for ALL bins, sidestepping hyperbolic overflow.
// The guard is a single global reduction over the wavenumber array, not a
// per-bin k*d comparison; the established CDIP processing evaluates it this
// way and the behavior is kept for bit compatibility.
//
// A zero wavenumber in the hyperbolic branch divides by sinh(0); the zero
// frequency bin must be trimmed upstream.
func TransferGains(k []float64, depth float64) (hz, hxy []complex128) {
	hz = make([]complex128, len(k))
	hxy = make([]complex128, len(k))

	anyNonzero := false
	for _, kk := range k {
		if kk != 0 {
			anyNonzero = true
			break
		}
	}

	if anyNonzero && depth > 15 {
		for i := range k {
			hz[i] = 1
			hxy[i] = complex(0, 1)
		}
		return hz, hxy
	}

	for i, kk := range k {
		numerator := kk * (depth + 0.5)
		denom := kk * depth
		hz[i] = complex(math.Sinh(numerator)/math.Sinh(denom), 0)
		hxy[i] = complex(0, math.Cosh(numerator)/math.Sinh(denom))
	}

	return hz, hxy
}
