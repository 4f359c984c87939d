package gravity

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3 is a location in the shared Cartesian survey frame.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Point3) Vec() r3.Vec {
	return r3.Vec(p)
}

func (p Point3) Sub(q Point3) Point3 {
	return Point3(r3.Sub(p.Vec(), q.Vec()))
}

// Distance returns |p - q|.
func (p Point3) Distance(q Point3) float64 {
	return r3.Norm(r3.Sub(p.Vec(), q.Vec()))
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Anomaly is an idealized concentrated mass. A negative mass models a density deficit.
type Anomaly struct {
	Location Point3
	Mass     float64
}
