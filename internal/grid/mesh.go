package grid

import (
	"fmt"
	"math"
)

// Mesh holds the coordinate grids X and Y, both shaped (len(ys), len(xs)).
type Mesh struct {
	X, Y *Field2D
}

// Meshgrid expands two axes into coordinate grids.
func Meshgrid(xs, ys []float64) Mesh {
	rows, cols := len(ys), len(xs)
	m := Mesh{X: NewField2D(rows, cols), Y: NewField2D(rows, cols)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k := i*cols + j
			m.X.Values[k] = xs[j]
			m.Y.Values[k] = ys[i]
		}
	}
	return m
}

// axisTol absorbs accumulated rounding so the upper bound is kept.
const axisTol = 1e-9

// Axis returns min, min+step, ... up to and including max (within a small
// fraction of step).
func Axis(lo, hi, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: bounds [%g, %g]", ErrInvalidStep, lo, hi)
	}
	if hi < lo {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}

	n := int(math.Floor((hi-lo)/step+axisTol)) + 1
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = lo + float64(i)*step
	}
	return axis, nil
}
