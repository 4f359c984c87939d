// Package grid samples the gravity field over a horizontal lattice of survey points.
//
// Meshes and fields are row-major with shape (len(ys), len(xs)): row i follows the
// y axis and column j follows the x axis, the layout produced by a conventional
// meshgrid. Every node is evaluated independently, so [SampleParallel] returns the
// same values as [Sample].
package grid
