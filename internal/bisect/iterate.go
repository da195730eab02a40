package bisect

import "math"

// Iterator yields one Step per bisection. It is single use: once Next
// returns false the run is over and Result reports how it ended.
//
//	it := bisect.Iterate(f, 0, 2, cfg)
//	for it.Next() {
//	    fmt.Println(it.Step())
//	}
//	res, err := it.Result()
type Iterator struct {
	f   Func
	cfg Config

	low, high float64
	flo       float64

	step  Step
	iter  int
	evals int

	started bool
	stopped bool
	done    bool

	result *Result
	err    error
}

// Iterate prepares a lazy bisection of f on [low, high]. Nothing is
// evaluated until the first call to Next.
func Iterate(f Func, low, high float64, cfg Config) *Iterator {
	return &Iterator{f: f, cfg: cfg, low: low, high: high}
}

// Next advances by one bisection and reports whether a new Step is available.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		if !it.prepare() {
			it.done = true
			return false
		}
	}
	if it.stopped {
		it.done = true
		return false
	}
	if it.iter >= it.cfg.MaxIterations {
		it.finish(StopExhausted, it.step.Mid, it.step.FMid)
		it.err = &SolveError{Iteration: it.iter, Best: it.step, Wrapped: ErrMaxIterations}
		it.done = true
		return false
	}

	it.iter++
	mid := midpoint(it.low, it.high)
	fmid := it.f(mid)
	it.evals++
	it.step = Step{Iteration: it.iter, Low: it.low, High: it.high, Mid: mid, FMid: fmid}

	if !finite(fmid) {
		it.finish(StopFailed, mid, fmid)
		it.err = &SolveError{Iteration: it.iter, Best: it.step, Wrapped: ErrNonFinite}
		it.stopped = true
		return true
	}

	switch {
	case math.Abs(fmid) <= it.cfg.Tolerance:
		it.finish(StopResidual, mid, fmid)
	case it.step.HalfWidth() <= it.cfg.Tolerance:
		it.finish(StopWidth, mid, fmid)
	case mid <= it.low || mid >= it.high:
		// adjacent floats: the sign of f(mid) carries no more information
		it.finish(StopResolution, mid, fmid)
	case math.Signbit(it.flo) != math.Signbit(fmid):
		it.high = mid
	default:
		it.low, it.flo = mid, fmid
	}
	return true
}

// Step returns the step produced by the last successful Next.
func (it *Iterator) Step() Step {
	return it.step
}

// Result reports the outcome once Next has returned false. The result is
// nil when the run failed before the first bisection.
func (it *Iterator) Result() (*Result, error) {
	return it.result, it.err
}

func (it *Iterator) prepare() bool {
	if it.f == nil {
		it.err = ErrNilFunc
		return false
	}
	if err := it.cfg.Validate(); err != nil {
		it.err = err
		return false
	}
	if !finite(it.low) || !finite(it.high) || it.low >= it.high {
		it.err = errorf(ErrInvalidInterval, "[%g, %g]", it.low, it.high)
		return false
	}

	flo := it.f(it.low)
	it.evals++
	if !finite(flo) {
		it.err = errorf(ErrNonFinite, "f(%g) = %g", it.low, flo)
		return false
	}
	if flo == 0 {
		it.finish(StopBoundaryLow, it.low, flo)
		it.stopped = true
		return true
	}

	fhi := it.f(it.high)
	it.evals++
	if !finite(fhi) {
		it.err = errorf(ErrNonFinite, "f(%g) = %g", it.high, fhi)
		return false
	}
	if fhi == 0 {
		it.finish(StopBoundaryHigh, it.high, fhi)
		it.stopped = true
		return true
	}

	if math.Signbit(flo) == math.Signbit(fhi) {
		it.err = errorf(ErrNoSignChange, "f(%g) = %g, f(%g) = %g", it.low, flo, it.high, fhi)
		return false
	}

	it.flo = flo
	return true
}

func (it *Iterator) finish(reason StopReason, root, froot float64) {
	it.stopped = true
	low, high := it.low, it.high
	switch reason {
	case StopBoundaryLow, StopBoundaryHigh:
		low, high = root, root
	case StopResidual, StopWidth, StopResolution, StopFailed:
		low, high = it.step.Low, it.step.High
	}
	it.result = &Result{
		Root:        root,
		FRoot:       froot,
		Low:         low,
		High:        high,
		Iterations:  it.iter,
		Evaluations: it.evals,
		Converged:   reason.Converged(),
		Reason:      reason,
	}
}
