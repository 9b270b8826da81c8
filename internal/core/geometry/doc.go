// Package geometry implements convex-shape collision and containment tests
// based on the separating axis theorem: two convex shapes do not overlap iff
// there is at least one axis onto which their projections do not overlap.
//
// Every shape passed to Collide or Contain MUST be convex. Concave shapes
// silently break the algorithm; convexity is not checked at runtime.
//
// Shapes are immutable values. Tests are pure computations and may run
// concurrently against the same shapes from any number of goroutines.
package geometry
