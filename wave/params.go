package wave

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/integrate"
)

// BulkParameters summarizes a moments table (and optionally a directional
// estimate) into the standard scalar buoy products.
type BulkParameters struct {
	M0                    float64 `json:"m0"`                      // zeroth spectral moment, integral of Czz over freq
	SignificantWaveHeight float64 `json:"significant_wave_height"` // Hs = 4*sqrt(m0)
	PeakFrequency         float64 `json:"peak_frequency"`
	PeakPeriod            float64 `json:"peak_period"`
	MeanDirectionDeg      float64 `json:"mean_direction_deg"` // atan2(b1, a1) at the peak bin
	PeakDirectionDeg      float64 `json:"peak_direction_deg"` // estimate maximum at the peak bin, if a grid is given
}

// ComputeBulkParameters derives bulk wave parameters from a moments table.
// estimate may be nil; when given it must be a direction-by-frequency grid
// over directionsDeg and the table's frequency axis, and its energy maximum
// at the peak frequency sets PeakDirectionDeg.
func ComputeBulkParameters(table *MomentsTable, estimate [][]float64, directionsDeg []float64) (*BulkParameters, error) {
	// the spectral-moment trapezoid needs at least one frequency interval
	if table.Bins() < 2 {
		return nil, fmt.Errorf("moments table needs at least 2 frequency rows, got %d", table.Bins())
	}
	if estimate != nil && len(estimate) != len(directionsDeg) {
		return nil, fmt.Errorf("estimate has %d direction rows, want %d", len(estimate), len(directionsDeg))
	}

	peak, err := stats.Max(table.Czz)
	if err != nil {
		return nil, fmt.Errorf("peak energy: %w", err)
	}

	peakBin := 0
	for i, c := range table.Czz {
		if c == peak {
			peakBin = i
			break
		}
	}

	p := &BulkParameters{
		M0:            integrate.Trapezoidal(table.Freq, table.Czz),
		PeakFrequency: table.Freq[peakBin],
	}
	p.SignificantWaveHeight = 4 * math.Sqrt(p.M0)
	p.PeakPeriod = 1 / p.PeakFrequency

	p.MeanDirectionDeg = math.Mod(math.Atan2(table.B1[peakBin], table.A1[peakBin])*180/math.Pi+360, 360)

	if estimate != nil {
		best := math.Inf(-1)
		for j := range estimate {
			if v := estimate[j][peakBin]; v > best {
				best = v
				p.PeakDirectionDeg = directionsDeg[j]
			}
		}
	}

	return p, nil
}
