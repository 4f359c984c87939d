package grid

import (
	"errors"
	"fmt"

	"github.com/san-kum/gravmap/internal/gravity"
)

var (
	// ErrInvalidStep indicates a non-positive or non-finite axis step.
	ErrInvalidStep = errors.New("grid: axis step must be positive and finite")

	// ErrInvalidRange indicates an axis whose upper bound lies below its lower bound.
	ErrInvalidRange = errors.New("grid: axis max below min")

	// ErrOutOfBounds indicates a field index outside its shape.
	ErrOutOfBounds = errors.New("grid: index out of range")
)

// NodeError identifies the mesh node whose evaluation failed.
type NodeError struct {
	Row     int
	Col     int
	Point   gravity.Point3
	Wrapped error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("grid: node [%d,%d] at %v: %v", e.Row, e.Col, e.Point, e.Wrapped)
}

func (e *NodeError) Unwrap() error {
	return e.Wrapped
}
