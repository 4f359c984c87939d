package gravity

import (
	"errors"
	"fmt"
)

// ErrDegenerateDistance indicates the survey point and the anomaly coincide (r == 0).
var ErrDegenerateDistance = errors.New("gravity: degenerate distance")

// ErrNonFinite indicates r > 0 but a result overflows float64.
var ErrNonFinite = errors.New("gravity: result not representable")

// DomainError reports an evaluation that has no finite value.
type DomainError struct {
	Survey  Point3
	Anomaly Point3
	Wrapped error
}

func (e *DomainError) Error() string {
	if errors.Is(e.Wrapped, ErrNonFinite) {
		return fmt.Sprintf("%s: survey point %v too close to anomaly location %v",
			e.Wrapped.Error(), e.Survey, e.Anomaly)
	}
	return fmt.Sprintf("%s: survey point %v coincides with anomaly location %v",
		e.Wrapped.Error(), e.Survey, e.Anomaly)
}

func (e *DomainError) Unwrap() error {
	return e.Wrapped
}
