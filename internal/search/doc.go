// Package search implements binary search over sorted slices, the discrete
// counterpart of interval bisection.
//
// Every query comes in two forms. The plain form (Find, First, Last,
// BisectLeft, BisectRight) returns an index. The traced form (TraceFind,
// TraceFirst, ...) returns the sequence of Steps the search went through,
// ending with a Done step whose Payload is the answer. Both forms always
// agree.
//
// # Conventions
//
// Presence queries return -1 when the value is absent, including on an
// empty slice. Insertion points lie in [0, len(s)]; an empty slice yields 0.
//
// Slices must be sorted in ascending order; this is not checked.
package search
