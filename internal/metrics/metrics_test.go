package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gravmap/internal/gravity"
	"github.com/san-kum/gravmap/internal/grid"
)

func TestPeakKeepsSign(t *testing.T) {
	p := NewPeak()
	for _, v := range []float64{1, -5, 3, 4.9} {
		p.Observe(0, 0, v)
	}
	if p.Value() != -5 {
		t.Errorf("expected peak -5, got %g", p.Value())
	}

	p.Reset()
	p.Observe(0, 0, 0.25)
	if p.Value() != 0.25 {
		t.Errorf("expected 0.25 after reset, got %g", p.Value())
	}
}

func TestMeanAndRMS(t *testing.T) {
	m, r := NewMean(), NewRMS()
	if m.Value() != 0 || r.Value() != 0 {
		t.Error("empty metrics should be zero")
	}

	for _, v := range []float64{3, -4, 3, -4} {
		m.Observe(0, 0, v)
		r.Observe(0, 0, v)
	}
	if m.Value() != -0.5 {
		t.Errorf("expected mean -0.5, got %g", m.Value())
	}
	if math.Abs(r.Value()-math.Sqrt(12.5)) > 1e-12 {
		t.Errorf("expected rms %g, got %g", math.Sqrt(12.5), r.Value())
	}

	m.Reset()
	r.Reset()
	if m.Value() != 0 || r.Value() != 0 {
		t.Error("metrics should be zero after reset")
	}
	// Squares near 1e-330 underflow when summed directly.
	for _, v := range []float64{1e-165, -1e-165} {
		m.Observe(0, 0, v)
		r.Observe(0, 0, v)
	}
	if m.Value() != 0 {
		t.Errorf("expected mean 0, got %g", m.Value())
	}
	if math.Abs(r.Value()-1e-165) > 1e-177 {
		t.Errorf("expected rms 1e-165, got %g", r.Value())
	}
}

func TestHalfPeakRadius(t *testing.T) {
	h := NewHalfPeakRadius()
	h.Observe(0, 0, 10)
	h.Observe(3, 4, 6)
	h.Observe(-1, 0, 5)
	h.Observe(30, 40, 4.9)

	if got := h.Value(); got != 5 {
		t.Errorf("expected radius 5, got %g", got)
	}

	h.Reset()
	if h.Value() != 0 {
		t.Error("expected 0 after reset")
	}
}

func TestMeasureLayer(t *testing.T) {
	xs, _ := grid.Axis(-100, 100, 5)
	a := gravity.Anomaly{Location: gravity.Point3{Z: -10}, Mass: 1.0e7}
	res, err := grid.Sample(xs, xs, 0, a, gravity.DefaultG)
	if err != nil {
		t.Fatal(err)
	}

	got := Measure(res.Mesh, res.Effect, "gz", DefaultSet()...)
	if len(got) != 4 {
		t.Fatalf("expected 4 metrics, got %v", got)
	}

	want := gravity.DefaultG * 1.0e7 / 100
	if math.Abs(got["gz_peak"]-want) > 1e-9*want {
		t.Errorf("gz_peak = %g, want %g", got["gz_peak"], want)
	}
	// gz falls to half its peak at r = z*sqrt(2^(2/3) - 1), about 7.66 m for z = 10.
	if r := got["gz_half_peak_radius"]; r < 5 || r > 7.66 {
		t.Errorf("gz_half_peak_radius = %g, expected between 5 and 7.66", r)
	}
	if got["gz_rms"] <= got["gz_mean"] {
		t.Errorf("rms %g should exceed mean %g for a positive field", got["gz_rms"], got["gz_mean"])
	}
}
