package gravity

import "math"

// DefaultG is the constant of gravitation in SI units.
const DefaultG = 6.674e-11

// separation returns r and dz for a survey point, failing when they coincide.
func separation(x, xm Point3) (r, dz float64, err error) {
	r = x.Distance(xm)
	if r == 0 {
		return 0, 0, &DomainError{Survey: x, Anomaly: xm, Wrapped: ErrDegenerateDistance}
	}
	return r, x.Z - xm.Z, nil
}

// potential and effect keep every intermediate bounded: |dz/r| <= 1, so r^3
// never underflows on its own.
func potential(gm, r float64) float64 { return gm / r }

func effect(gm, r, dz float64) float64 { return (gm / r) * (dz / r) / r }

func checkFinite(x, xm Point3, vs ...float64) error {
	for _, v := range vs {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return &DomainError{Survey: x, Anomaly: xm, Wrapped: ErrNonFinite}
		}
	}
	return nil
}

// Potential returns U = g*m/r at survey point x for a point mass m at xm.
func Potential(x, xm Point3, m, g float64) (float64, error) {
	r, _, err := separation(x, xm)
	if err != nil {
		return 0, err
	}
	u := potential(g*m, r)
	if err := checkFinite(x, xm, u); err != nil {
		return 0, err
	}
	return u, nil
}

// EffectVertical returns gz = g*m*(x.Z - xm.Z)/r^3 at survey point x.
func EffectVertical(x, xm Point3, m, g float64) (float64, error) {
	r, dz, err := separation(x, xm)
	if err != nil {
		return 0, err
	}
	gz := effect(g*m, r, dz)
	if err := checkFinite(x, xm, gz); err != nil {
		return 0, err
	}
	return gz, nil
}

// Sample holds both quantities evaluated at one survey point.
type Sample struct {
	Potential float64
	Effect    float64
}

// Field binds an anomaly to the constant used to evaluate it.
type Field struct {
	Anomaly Anomaly
	G       float64
}

func NewField(a Anomaly) Field {
	return Field{Anomaly: a, G: DefaultG}
}

func (f Field) Potential(x Point3) (float64, error) {
	return Potential(x, f.Anomaly.Location, f.Anomaly.Mass, f.G)
}

func (f Field) EffectVertical(x Point3) (float64, error) {
	return EffectVertical(x, f.Anomaly.Location, f.Anomaly.Mass, f.G)
}

// Evaluate computes both quantities from one distance evaluation. The values are
// identical to calling Potential and EffectVertical separately.
func (f Field) Evaluate(x Point3) (Sample, error) {
	xm := f.Anomaly.Location
	r, dz, err := separation(x, xm)
	if err != nil {
		return Sample{}, err
	}
	gm := f.G * f.Anomaly.Mass
	s := Sample{Potential: potential(gm, r), Effect: effect(gm, r, dz)}
	if err := checkFinite(x, xm, s.Potential, s.Effect); err != nil {
		return Sample{}, err
	}
	return s, nil
}
