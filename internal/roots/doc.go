// Package roots runs the full root-finding pipeline for
// f(x) = √(a·x) − cos(b·x):
//
//	scan → chord and Newton per bracket → aggregate
//
// [Engine.Compute] is the entry point for raw user input and
// [Engine.Solve] for parsed parameters. Both return either a complete
// [Result] or an error whose message is suitable for display; there is no
// partial result.
//
// # Aggregation
//
// Candidate roots from both methods are pooled, sorted and grouped by
// [Cluster]: a value joins the current group while it lies within the
// tolerance of the group's first member, not of its neighbour. A value just
// past the first member's reach opens a new group even when it sits close
// to the previous value.
// Chord and Newton results are compared per originating bracket in
// [Pair], not by numeric proximity.
//
// # Thread Safety
//
// An Engine holds only configuration and may be shared. With workers > 1
// the brackets of one call are solved concurrently; the output order is
// the same as the serial path.
package roots
