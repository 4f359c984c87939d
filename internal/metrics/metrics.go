// Package metrics summarises a sampled field with scalar descriptors.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/gravmap/internal/grid"
)

// Metric accumulates field values observed at horizontal positions (x, y).
type Metric interface {
	Name() string
	Observe(x, y, v float64)
	Value() float64
	Reset()
}

// DefaultSet returns fresh instances of every metric reported for a layer.
func DefaultSet() []Metric {
	return []Metric{NewPeak(), NewMean(), NewRMS(), NewHalfPeakRadius()}
}

// Measure feeds every node of f into ms and returns their values keyed
// prefix + "_" + name.
func Measure(mesh grid.Mesh, f *grid.Field2D, prefix string, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for k, v := range f.Values {
		x, y := mesh.X.Values[k], mesh.Y.Values[k]
		for _, m := range ms {
			m.Observe(x, y, v)
		}
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[prefix+"_"+m.Name()] = m.Value()
	}
	return out
}

// Peak is the signed value with the largest magnitude.
type Peak struct {
	name    string
	value   float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x, y, v float64) {
	if p.samples == 0 || math.Abs(v) > math.Abs(p.value) {
		p.value = v
	}
	p.samples++
}

func (p *Peak) Value() float64 { return p.value }

func (p *Peak) Reset() {
	p.value = 0
	p.samples = 0
}

// Mean is the arithmetic mean of the observed values.
type Mean struct {
	name   string
	values []float64
}

func NewMean() *Mean {
	return &Mean{name: "mean"}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(x, y, v float64) {
	m.values = append(m.values, v)
}

func (m *Mean) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return stat.Mean(m.values, nil)
}

func (m *Mean) Reset() {
	m.values = m.values[:0]
}

// RMS is the root mean square of the observed values.
type RMS struct {
	name   string
	values []float64
}

func NewRMS() *RMS {
	return &RMS{name: "rms"}
}

func (r *RMS) Name() string { return r.name }

func (r *RMS) Observe(x, y, v float64) {
	r.values = append(r.values, v)
}

func (r *RMS) Value() float64 {
	if len(r.values) == 0 {
		return 0
	}
	return floats.Norm(r.values, 2) / math.Sqrt(float64(len(r.values)))
}

func (r *RMS) Reset() {
	r.values = r.values[:0]
}
