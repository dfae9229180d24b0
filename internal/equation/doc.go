// Package equation evaluates the equation family
//
//	f(x; a, b) = √(a·x) − cos(b·x)
//
// and its hand-derived derivative. Evaluation is pure and checks the
// domain at every point:
//
//   - [F]: defined where a·x ≥ 0, everywhere when a = 0
//   - [DF]: defined where a·x > 0, everywhere when a = 0
//
// Points outside the domain, and any NaN or Inf produced on the way, are
// reported as [ErrDomain] instead of a value.
package equation
