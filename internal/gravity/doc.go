// Package gravity evaluates the gravitational field of a single buried point mass.
//
// Two closed-form quantities are provided:
//
//   - [Potential]: U = G*m/r
//   - [EffectVertical]: gz = G*m*(z - zm)/r^3
//
// where r is the Euclidean distance between the survey point and the anomaly.
//
// # Sign convention
//
// The vertical effect reproduces the algebraic sign of dz = x.Z - xm.Z and never
// flips an axis. With the usual survey frame where z grows downward and the anomaly
// sits at negative z, points above it see a positive gz ("positive downward"). Callers
// using an upward z axis get the opposite sign.
//
// # Thread Safety
//
// Every function is pure. [Field] is a value type and may be shared between
// goroutines without synchronization.
package gravity
