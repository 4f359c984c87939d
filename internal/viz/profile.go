package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gravmap/internal/grid"
)

// CentreRow returns the middle row of f, the profile through y = 0 on a
// symmetric extent.
func CentreRow(f *grid.Field2D) []float64 {
	if f.Rows == 0 {
		return nil
	}
	return f.Row(f.Rows / 2)
}

// scaleForPlot rescales values to O(1) so axis labels keep their digits.
func scaleForPlot(values []float64) ([]float64, int) {
	abs := make([]float64, len(values))
	for i, v := range values {
		abs[i] = math.Abs(v)
	}
	peak := floats.Max(abs)
	if peak == 0 || math.IsInf(peak, 0) || math.IsNaN(peak) {
		return append([]float64(nil), values...), 0
	}

	exp := int(math.Floor(math.Log10(peak)))
	scaled := make([]float64, len(values))
	floats.ScaleTo(scaled, math.Pow(10, -float64(exp)), values)
	return scaled, exp
}

// Profile plots values as an asciigraph line chart.
func Profile(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	data, exp := scaleForPlot(values)
	if exp != 0 {
		caption = fmt.Sprintf("%s [x1e%d]", caption, exp)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
