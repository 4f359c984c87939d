// Package survey drives the grid sampler over every combination of grid
// spacing and observation height, and groups the layers so each spacing shares
// one colour scale across its heights.
package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/gravmap/internal/gravity"
	"github.com/san-kum/gravmap/internal/grid"
	"github.com/san-kum/gravmap/internal/metrics"
)

// ErrEmptyPlan indicates a plan with no heights or no spacings.
var ErrEmptyPlan = errors.New("survey: plan needs at least one height and one spacing")

// Extent bounds the horizontal lattice.
type Extent struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

func DefaultExtent() Extent {
	return Extent{XMin: -100, XMax: 100, YMin: -100, YMax: 100}
}

type Plan struct {
	Anomaly  gravity.Anomaly
	G        float64
	Heights  []float64
	Spacings []float64
	Extent   Extent
	Parallel bool
	Workers  int
}

func (p Plan) Validate() error {
	if len(p.Heights) == 0 || len(p.Spacings) == 0 {
		return ErrEmptyPlan
	}
	for _, dx := range p.Spacings {
		if !(dx > 0) {
			return fmt.Errorf("spacing %g: %w", dx, grid.ErrInvalidStep)
		}
	}
	if p.Extent.XMax < p.Extent.XMin || p.Extent.YMax < p.Extent.YMin {
		return fmt.Errorf("extent %+v: %w", p.Extent, grid.ErrInvalidRange)
	}
	return nil
}

// Layer is the grid sampled at one height for one spacing.
type Layer struct {
	Height  float64
	Spacing float64
	Metrics map[string]float64
	*grid.Result
}

// measure summarises both fields of a sampled layer.
func measure(res *grid.Result) map[string]float64 {
	out := metrics.Measure(res.Mesh, res.Potential, "u", metrics.DefaultSet()...)
	for k, v := range metrics.Measure(res.Mesh, res.Effect, "gz", metrics.DefaultSet()...) {
		out[k] = v
	}
	return out
}

// Sheet collects the layers of one spacing. PotentialRange and EffectRange are
// the global min/max over all its layers.
type Sheet struct {
	Spacing        float64
	Layers         []Layer
	PotentialRange grid.Range
	EffectRange    grid.Range
}

type Report struct {
	Plan    Plan
	Sheets  []Sheet
	Elapsed time.Duration
}

// Layer finds the layer for a spacing and height.
func (r *Report) Layer(spacing, height float64) (*Sheet, *Layer, bool) {
	for si := range r.Sheets {
		s := &r.Sheets[si]
		if s.Spacing != spacing {
			continue
		}
		for li := range s.Layers {
			if s.Layers[li].Height == height {
				return s, &s.Layers[li], true
			}
		}
	}
	return nil, nil, false
}

func (r *Report) LayerCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Layers)
	}
	return n
}

// Run samples every (spacing, height) layer of the plan in order. The first
// failing layer aborts the survey.
func Run(ctx context.Context, plan Plan) (*Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	report := &Report{Plan: plan, Sheets: make([]Sheet, 0, len(plan.Spacings))}

	for _, dx := range plan.Spacings {
		xs, err := grid.Axis(plan.Extent.XMin, plan.Extent.XMax, dx)
		if err != nil {
			return nil, err
		}
		ys, err := grid.Axis(plan.Extent.YMin, plan.Extent.YMax, dx)
		if err != nil {
			return nil, err
		}

		sheet := Sheet{Spacing: dx, Layers: make([]Layer, 0, len(plan.Heights))}
		for k, z := range plan.Heights {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			res, err := sampleLayer(ctx, plan, xs, ys, z)
			if err != nil {
				return nil, fmt.Errorf("survey: layer dx=%g z=%g: %w", dx, z, err)
			}

			u, _ := res.Potential.Range()
			gz, _ := res.Effect.Range()
			if k == 0 {
				sheet.PotentialRange, sheet.EffectRange = u, gz
			} else {
				sheet.PotentialRange = sheet.PotentialRange.Union(u)
				sheet.EffectRange = sheet.EffectRange.Union(gz)
			}

			slog.Debug("layer sampled",
				"spacing", dx,
				"height", z,
				"nodes", res.NodeCount(),
				"u_max", u.Max,
				"gz_max", gz.Max,
			)
			sheet.Layers = append(sheet.Layers, Layer{Height: z, Spacing: dx, Metrics: measure(res), Result: res})
		}
		report.Sheets = append(report.Sheets, sheet)
	}

	report.Elapsed = time.Since(start)
	slog.Info("survey complete",
		"layers", report.LayerCount(),
		"spacings", len(plan.Spacings),
		"heights", len(plan.Heights),
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func sampleLayer(ctx context.Context, plan Plan, xs, ys []float64, z float64) (*grid.Result, error) {
	if plan.Parallel {
		return grid.SampleParallel(ctx, xs, ys, z, plan.Anomaly, plan.G, plan.Workers)
	}
	return grid.Sample(xs, ys, z, plan.Anomaly, plan.G)
}
