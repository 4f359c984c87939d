package grid

import (
	"context"
	"runtime"

	"github.com/san-kum/gravmap/internal/gravity"
	"golang.org/x/sync/errgroup"
)

// Result is one sampled layer: the coordinate mesh at height Z and the two
// fields evaluated on it. All four grids share one shape.
type Result struct {
	Mesh
	Z         float64
	Potential *Field2D
	Effect    *Field2D
}

func newResult(xs, ys []float64, z float64) *Result {
	rows, cols := len(ys), len(xs)
	return &Result{
		Mesh:      Meshgrid(xs, ys),
		Z:         z,
		Potential: NewField2D(rows, cols),
		Effect:    NewField2D(rows, cols),
	}
}

func (r *Result) Shape() (rows, cols int) {
	return r.X.Shape()
}

func (r *Result) NodeCount() int {
	return r.X.Rows * r.X.Cols
}

// Xs returns the x axis (first mesh row).
func (r *Result) Xs() []float64 {
	if r.X.Rows == 0 {
		return nil
	}
	return r.X.Row(0)
}

// Ys returns the y axis (first mesh column).
func (r *Result) Ys() []float64 {
	if r.Y.Cols == 0 {
		return nil
	}
	ys := make([]float64, r.Y.Rows)
	for i := range ys {
		ys[i] = r.Y.Values[i*r.Y.Cols]
	}
	return ys
}

// fillRow evaluates every node of row i. Each row is written by exactly one caller.
func (r *Result) fillRow(f gravity.Field, i int) error {
	cols := r.X.Cols
	for j := 0; j < cols; j++ {
		k := i*cols + j
		p := gravity.Point3{X: r.X.Values[k], Y: r.Y.Values[k], Z: r.Z}
		s, err := f.Evaluate(p)
		if err != nil {
			return &NodeError{Row: i, Col: j, Point: p, Wrapped: err}
		}
		r.Potential.Values[k] = s.Potential
		r.Effect.Values[k] = s.Effect
	}
	return nil
}

// Sample evaluates the potential and vertical effect of anomaly a at every node
// (x, y, z) of the lattice xs by ys. It fails on the first degenerate node in
// row-major order.
func Sample(xs, ys []float64, z float64, a gravity.Anomaly, g float64) (*Result, error) {
	f := gravity.Field{Anomaly: a, G: g}
	res := newResult(xs, ys, z)
	for i := 0; i < len(ys); i++ {
		if err := res.fillRow(f, i); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// SampleParallel is Sample with rows split into contiguous chunks across workers
// goroutines (GOMAXPROCS when workers <= 0). A failing chunk stops at its first bad
// node while the others finish, so the reported node is the same one Sample reports.
func SampleParallel(ctx context.Context, xs, ys []float64, z float64, a gravity.Anomaly, g float64, workers int) (*Result, error) {
	f := gravity.Field{Anomaly: a, G: g}
	res := newResult(xs, ys, z)

	rows := len(ys)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}
	if workers == 0 {
		return res, nil
	}

	chunk := (rows + workers - 1) / workers
	nodeErrs := make([]error, workers)

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, rows)
		if start >= end {
			break
		}
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := res.fillRow(f, i); err != nil {
					nodeErrs[w] = err
					return nil
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, err := range nodeErrs {
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
