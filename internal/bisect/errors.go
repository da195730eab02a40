package bisect

import (
	"errors"
	"fmt"
)

// Domain errors for root finding.
var (
	// ErrNoSignChange indicates f(low) and f(high) have the same sign.
	ErrNoSignChange = errors.New("bisect: interval does not bracket a sign change")

	// ErrMaxIterations indicates the iteration budget ran out before convergence.
	ErrMaxIterations = errors.New("bisect: maximum iterations exceeded without convergence")

	// ErrInvalidInterval indicates low >= high or a non-finite bound.
	ErrInvalidInterval = errors.New("bisect: invalid interval")

	// ErrInvalidTolerance indicates a tolerance that is not a positive finite number.
	ErrInvalidTolerance = errors.New("bisect: tolerance must be positive")

	// ErrInvalidMaxIterations indicates a non-positive iteration budget.
	ErrInvalidMaxIterations = errors.New("bisect: max iterations must be positive")

	// ErrNonFinite indicates f returned NaN or an infinity.
	ErrNonFinite = errors.New("bisect: function returned a non-finite value")

	// ErrNilFunc indicates a nil function was supplied.
	ErrNilFunc = errors.New("bisect: nil function")
)

// SolveError wraps an error raised after iteration started, carrying the
// last step so callers can report the best midpoint found.
type SolveError struct {
	Iteration int
	Best      Step
	Wrapped   error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%v (iteration %d, mid=%g, f(mid)=%g)", e.Wrapped, e.Iteration, e.Best.Mid, e.Best.FMid)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
