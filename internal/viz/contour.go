package viz

import (
	"math"

	"github.com/san-kum/gravmap/internal/grid"
)

// ContourLevels returns n levels evenly spaced strictly inside rng.
func ContourLevels(rng grid.Range, n int) []float64 {
	if n <= 0 || rng.Span() <= 0 {
		return nil
	}
	levels := make([]float64, n)
	for k := range levels {
		levels[k] = rng.Min + rng.Span()*float64(k+1)/float64(n+1)
	}
	return levels
}

// Contours traces iso-lines of f at the given levels onto a braille canvas of
// width x height characters using marching squares. Row 0 of the field is drawn
// at the bottom so y increases upward.
func Contours(f *grid.Field2D, levels []float64, width, height int) *Canvas {
	c := NewCanvas(width, height)
	if f.Rows < 2 || f.Cols < 2 {
		return c
	}

	pw, ph := c.PixelSize()
	toPixel := func(col, row float64) (int, int) {
		x := col / float64(f.Cols-1) * float64(pw-1)
		y := (1 - row/float64(f.Rows-1)) * float64(ph-1)
		return int(math.Round(x)), int(math.Round(y))
	}

	type pt struct{ col, row float64 }
	for i := 0; i < f.Rows-1; i++ {
		for j := 0; j < f.Cols-1; j++ {
			a := f.Values[i*f.Cols+j]
			b := f.Values[i*f.Cols+j+1]
			cc := f.Values[(i+1)*f.Cols+j+1]
			d := f.Values[(i+1)*f.Cols+j]
			fi, fj := float64(i), float64(j)

			for _, lvl := range levels {
				var pts []pt
				if t, ok := crossing(a, b, lvl); ok {
					pts = append(pts, pt{fj + t, fi})
				}
				if t, ok := crossing(b, cc, lvl); ok {
					pts = append(pts, pt{fj + 1, fi + t})
				}
				if t, ok := crossing(cc, d, lvl); ok {
					pts = append(pts, pt{fj + 1 - t, fi + 1})
				}
				if t, ok := crossing(d, a, lvl); ok {
					pts = append(pts, pt{fj, fi + 1 - t})
				}

				for k := 0; k+1 < len(pts); k += 2 {
					x0, y0 := toPixel(pts[k].col, pts[k].row)
					x1, y1 := toPixel(pts[k+1].col, pts[k+1].row)
					c.DrawLine(x0, y0, x1, y1)
				}
			}
		}
	}
	return c
}

// crossing returns where along v0->v1 the level is crossed.
func crossing(v0, v1, level float64) (float64, bool) {
	if (v0 < level) == (v1 < level) {
		return 0, false
	}
	return (level - v0) / (v1 - v0), true
}
