// Package directional implements the three directional wave spectrum
// estimators (MLM, IMLM, MEM) over a fixed 5-degree direction grid.
package directional

import (
	"fmt"
	"math"
)

// Method identifies a directional estimator
type Method string

const (
	MethodMLM  Method = "mlm"
	MethodIMLM Method = "imlm"
	MethodMEM  Method = "mem"
)

// ParseMethod validates an estimator name. Unknown names are a configuration
// error; there is no default.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodMLM, MethodIMLM, MethodMEM:
		return Method(name), nil
	default:
		return "", fmt.Errorf("unknown estimation method %q (want mlm, imlm or mem)", name)
	}
}

// Grid is a direction-by-frequency energy density surface, indexed
// [direction][frequency] over the 73-point direction grid.
type Grid [][]float64

// NumDirections is the size of the direction grid: 0 to 360 degrees
// inclusive in 5-degree steps.
const NumDirections = 73

// DirectionGrid returns the direction grid in radians.
func DirectionGrid() []float64 {
	theta := make([]float64, NumDirections)
	for i := range theta {
		theta[i] = float64(i*5) * math.Pi / 180
	}
	return theta
}

// DirectionDegrees returns the direction grid in degrees.
func DirectionDegrees() []float64 {
	deg := make([]float64, NumDirections)
	for i := range deg {
		deg[i] = float64(i * 5)
	}
	return deg
}

func newGrid(directions, bins int) Grid {
	g := make(Grid, directions)
	for j := range g {
		g[j] = make([]float64, bins)
	}
	return g
}
