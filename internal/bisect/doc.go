// Package bisect implements the bisection (dichotomy) method for locating a
// root of a continuous scalar function on a bracketing interval.
//
// The package defines the solver primitives:
//
//   - [Func]: the scalar function under test
//   - [Config]: tolerance and iteration budget
//   - [Iterator]: lazy, non-restartable sequence of [Step] values
//   - [Solver]: runs the loop and feeds [Observer] and [Metric] hooks
//   - [Result]: root estimate, bracket, counters and stop reason
//
// # Example
//
//	f := func(x float64) float64 { return x*x - 2 }
//	res, err := bisect.Solve(f, 0, 2, bisect.DefaultConfig())
//	if errors.Is(err, bisect.ErrMaxIterations) {
//	    // res holds the best midpoint found so far, res.Converged is false
//	}
//
// # Stopping
//
// A run stops when |f(mid)| <= tolerance, when the half-width of the
// bracket is <= tolerance, or when the midpoint can no longer be separated
// from the endpoints in float64. Running out of iterations is reported as
// [ErrMaxIterations], never as a converged result.
//
// # Thread Safety
//
// All solver state lives on the call stack, so concurrent calls are safe
// as long as f is pure. A [Solver] with stateful metrics attached must not
// be shared between goroutines.
package bisect
