// Package geometry provides the transform algebra shared by every other
// package in the module.
//
// # Points
//
// [Point] is a plain value type with vector arithmetic. Identity between
// points is approximate: two points are the same vertex when both
// coordinates agree within [Epsilon]. [Point.Key] buckets a point for map
// lookups; callers that need tolerance across bucket boundaries probe
// [Key.Neighborhood].
//
// # Transforms
//
// [Affine] stores a 2x2 linear part and a translation. [Euclid] is a
// tagged convenience value for the Euclidean group (translate, rotate,
// flip through a line) that materializes an [Affine] on demand.
// Composition reads in application order:
//
//	a.Then(b) // apply a, then b
//
// and [Reduce] folds a list the same way, first element applied first.
//
// # Angles
//
// All angles are radians. [Rad] normalizes into [0, 2π) and every
// comparison goes through [ApproxEqual].
package geometry
