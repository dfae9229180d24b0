// Package solver refines a single root of the equation family in
// [equation] with two independent iterative methods:
//
//   - [Chord]: regula falsi on a sign-change bracket
//   - [Newton]: Newton–Raphson from one initial guess
//
// Both are pure functions of their inputs and bounded by
// [Options.MaxIterations]. A failed run returns a [*Failure] wrapping one
// of the package sentinel errors (or [equation.ErrDomain]); the returned
// [Result] still carries the iteration count reached.
package solver
