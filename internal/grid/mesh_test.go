package grid

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestMeshgridLayout(t *testing.T) {
	g := NewWithT(t)

	m := Meshgrid([]float64{-1, 0, 1, 2}, []float64{10, 20, 30})

	g.Expect(m.X.Rows).To(Equal(3))
	g.Expect(m.X.Cols).To(Equal(4))
	g.Expect(m.Y.Rows).To(Equal(3))
	g.Expect(m.Y.Cols).To(Equal(4))

	// x varies along columns, y along rows
	g.Expect(m.X.Row(0)).To(Equal([]float64{-1, 0, 1, 2}))
	g.Expect(m.X.Row(2)).To(Equal([]float64{-1, 0, 1, 2}))
	g.Expect(m.Y.Row(1)).To(Equal([]float64{20, 20, 20, 20}))

	v, err := m.Y.At(2, 3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v).To(Equal(30.0))
}

func TestAxis(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		step   float64
		n      int
		first  float64
		last   float64
	}{
		{"lab fine", -100, 100, 5, 41, -100, 100},
		{"lab coarse", -100, 100, 25, 9, -100, 100},
		{"non dividing", 0, 10, 3, 4, 0, 9},
		{"single", 7, 7, 1, 1, 7, 7},
		{"fractional", 0, 1, 0.1, 11, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, err := Axis(tt.lo, tt.hi, tt.step)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(axis) != tt.n {
				t.Fatalf("len = %d, want %d", len(axis), tt.n)
			}
			if axis[0] != tt.first {
				t.Errorf("first = %g, want %g", axis[0], tt.first)
			}
			if math.Abs(axis[len(axis)-1]-tt.last) > 1e-9 {
				t.Errorf("last = %g, want %g", axis[len(axis)-1], tt.last)
			}
		})
	}
}

func TestAxisErrors(t *testing.T) {
	g := NewWithT(t)

	_, err := Axis(0, 10, 0)
	g.Expect(errors.Is(err, ErrInvalidStep)).To(BeTrue())

	_, err = Axis(0, 10, -1)
	g.Expect(errors.Is(err, ErrInvalidStep)).To(BeTrue())

	_, err = Axis(0, 10, math.NaN())
	g.Expect(errors.Is(err, ErrInvalidStep)).To(BeTrue())

	_, err = Axis(0, math.Inf(1), 1)
	g.Expect(errors.Is(err, ErrInvalidStep)).To(BeTrue())

	_, err = Axis(10, 0, 1)
	g.Expect(errors.Is(err, ErrInvalidRange)).To(BeTrue())
}

func TestField2DBounds(t *testing.T) {
	g := NewWithT(t)

	f := NewField2D(2, 3)
	g.Expect(f.Set(1, 2, 4.5)).To(Succeed())

	v, err := f.At(1, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v).To(Equal(4.5))
	g.Expect(f.Values[5]).To(Equal(4.5))

	_, err = f.At(2, 0)
	g.Expect(err).To(MatchError(ErrOutOfBounds))
	_, err = f.At(0, -1)
	g.Expect(err).To(MatchError(ErrOutOfBounds))
	g.Expect(f.Set(0, 3, 1)).To(MatchError(ErrOutOfBounds))
}

func TestField2DRange(t *testing.T) {
	g := NewWithT(t)

	f := &Field2D{Rows: 2, Cols: 2, Values: []float64{3, -1, 8, 0}}
	r, ok := f.Range()
	g.Expect(ok).To(BeTrue())
	g.Expect(r).To(Equal(Range{Min: -1, Max: 8}))
	g.Expect(r.Span()).To(Equal(9.0))

	u := r.Union(Range{Min: 2, Max: 12})
	g.Expect(u).To(Equal(Range{Min: -1, Max: 12}))

	_, ok = NewField2D(0, 4).Range()
	g.Expect(ok).To(BeFalse())
}
