package wave

import (
	"math"
)

// MomentsTable is the frequency-indexed table of co/quadrature spectra,
// normalized directional Fourier moments and wavenumbers. Frequencies are
// strictly positive and increasing. The normalized moments are expected to
// satisfy |a1|,|a2| <= 1 in well-conditioned bins but this is not enforced;
// degenerate bins (zero energy) yield non-finite moments that propagate to
// the caller rather than being masked.
type MomentsTable struct {
	Freq []float64 `json:"freq"`

	Czz []float64 `json:"czz"`
	Cxx []float64 `json:"cxx"`
	Cyy []float64 `json:"cyy"`
	Cxy []float64 `json:"cxy"`
	Qzx []float64 `json:"qzx"`
	Qzy []float64 `json:"qzy"`

	A0 []float64 `json:"a0"`
	A1 []float64 `json:"a1"`
	B1 []float64 `json:"b1"`
	A2 []float64 `json:"a2"`
	B2 []float64 `json:"b2"`

	K []float64 `json:"k"`
}

// Bins returns the number of frequency rows.
func (t *MomentsTable) Bins() int {
	return len(t.Freq)
}

// FirstOrderFourier derives the normalized first-harmonic moments from the
// quadrature spectra:
//
//	a1 = Qzx / sqrt((Cxx+Cyy) * Czz)
//	b1 = Qzy / sqrt((Cxx+Cyy) * Czz)
func FirstOrderFourier(qzx, cxx, cyy, czz, qzy []float64) (a1, b1 []float64) {
	a1 = make([]float64, len(qzx))
	b1 = make([]float64, len(qzx))
	for i := range qzx {
		norm := math.Sqrt((cxx[i] + cyy[i]) * czz[i])
		a1[i] = qzx[i] / norm
		b1[i] = qzy[i] / norm
	}
	return a1, b1
}

// SecondOrderFourier derives the normalized second-harmonic moments from the
// co-spectra:
//
//	a2 = (Cxx-Cyy) / (Cxx+Cyy)
//	b2 = 2*Cxy / (Cxx+Cyy)
func SecondOrderFourier(cxx, cyy, cxy []float64) (a2, b2 []float64) {
	a2 = make([]float64, len(cxx))
	b2 = make([]float64, len(cxx))
	for i := range cxx {
		total := cxx[i] + cyy[i]
		a2[i] = (cxx[i] - cyy[i]) / total
		b2[i] = 2 * cxy[i] / total
	}
	return a2, b2
}

// BuildMomentsTable extracts the co/quadrature spectra from a cross-spectral
// matrix, restricts to strictly positive frequencies, and derives the five
// normalized moments and per-bin wavenumbers.
func BuildMomentsTable(g *CrossSpectrum) *MomentsTable {
	pos := g.PositiveFrequencies()
	bins := pos.Bins()

	t := &MomentsTable{
		Freq: append([]float64(nil), pos.Freqs...),
		Czz:  make([]float64, bins),
		Cxx:  make([]float64, bins),
		Cyy:  make([]float64, bins),
		Cxy:  make([]float64, bins),
		Qzx:  make([]float64, bins),
		Qzy:  make([]float64, bins),
	}

	for i := range bins {
		t.Czz[i] = real(pos.Data[0][0][i])
		t.Cxx[i] = real(pos.Data[1][1][i])
		t.Cyy[i] = real(pos.Data[2][2][i])
		t.Cxy[i] = real(pos.Data[1][2][i])
		t.Qzx[i] = imag(pos.Data[0][1][i])
		t.Qzy[i] = imag(pos.Data[0][2][i])
	}

	// a0 is the heave co-spectrum
	t.A0 = append([]float64(nil), t.Czz...)
	t.A1, t.B1 = FirstOrderFourier(t.Qzx, t.Cxx, t.Cyy, t.Czz, t.Qzy)
	t.A2, t.B2 = SecondOrderFourier(t.Cxx, t.Cyy, t.Cxy)
	t.K = Wavenumbers(t.Freq)

	return t
}
