package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Field2D is a row-major scalar field of shape (Rows, Cols).
type Field2D struct {
	Rows, Cols int
	Values     []float64
}

func NewField2D(rows, cols int) *Field2D {
	return &Field2D{
		Rows:   rows,
		Cols:   cols,
		Values: make([]float64, rows*cols),
	}
}

func (f *Field2D) Shape() (rows, cols int) {
	return f.Rows, f.Cols
}

func (f *Field2D) inBounds(i, j int) error {
	if i < 0 || i >= f.Rows {
		return fmt.Errorf("%w: row %d, must be between 0 and %d", ErrOutOfBounds, i, f.Rows-1)
	}
	if j < 0 || j >= f.Cols {
		return fmt.Errorf("%w: col %d, must be between 0 and %d", ErrOutOfBounds, j, f.Cols-1)
	}
	return nil
}

func (f *Field2D) At(i, j int) (float64, error) {
	if err := f.inBounds(i, j); err != nil {
		return 0, err
	}
	return f.Values[i*f.Cols+j], nil
}

func (f *Field2D) Set(i, j int, v float64) error {
	if err := f.inBounds(i, j); err != nil {
		return err
	}
	f.Values[i*f.Cols+j] = v
	return nil
}

// Row returns row i without copying. Callers must not modify it.
func (f *Field2D) Row(i int) []float64 {
	return f.Values[i*f.Cols : (i+1)*f.Cols]
}

// Range is a closed interval of field values.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Union returns the smallest range covering both.
func (r Range) Union(o Range) Range {
	return Range{Min: min(r.Min, o.Min), Max: max(r.Max, o.Max)}
}

// Range returns the min and max value. ok is false for an empty field.
func (f *Field2D) Range() (r Range, ok bool) {
	if len(f.Values) == 0 {
		return Range{}, false
	}
	return Range{Min: floats.Min(f.Values), Max: floats.Max(f.Values)}, true
}
