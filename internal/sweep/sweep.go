// Package sweep runs the bisection solver over a range of tolerances and
// collects how the iteration count grows as the tolerance shrinks.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/bisect/internal/bisect"
	"github.com/san-kum/bisect/internal/metrics"
)

// Sweep describes log-spaced tolerances from From down to To.
type Sweep struct {
	From          float64
	To            float64
	N             int
	MaxIterations int
}

type Point struct {
	Tolerance  float64 `json:"tolerance"`
	Root       float64 `json:"root"`
	Iterations int     `json:"iterations"`
	// Predicted is the iteration count at which the bracket half-width
	// alone would satisfy the tolerance.
	Predicted  int     `json:"predicted"`
	ErrorBound float64 `json:"error_bound"`
	Reason     string  `json:"reason"`
	Converged  bool    `json:"converged"`
	Err        string  `json:"error,omitempty"`
}

type Result struct {
	Points     []Point         `json:"points"`
	Iterations metrics.Summary `json:"iterations"`
}

// Logspace returns n values evenly spaced in log10 between from and to,
// both included.
func Logspace(from, to float64, n int) ([]float64, error) {
	if !(from > 0) || !(to > 0) || math.IsInf(from, 0) || math.IsInf(to, 0) {
		return nil, fmt.Errorf("logspace bounds must be positive and finite, got %g and %g", from, to)
	}
	if n < 1 {
		return nil, fmt.Errorf("logspace needs at least one point, got %d", n)
	}
	if n == 1 {
		return []float64{from}, nil
	}

	a, b := math.Log10(from), math.Log10(to)
	step := (b - a) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Pow(10, a+float64(i)*step)
	}
	out[0], out[n-1] = from, to
	return out, nil
}

// Predicted returns the number of halvings after which a bracket of the
// given width has half-width at most tol.
func Predicted(width, tol float64) int {
	if width/2 <= tol {
		return 1
	}
	return int(math.Ceil(math.Log2(width / tol)))
}

// Run solves f on [low, high] once per tolerance. A tolerance that fails
// to converge is recorded in its Point; only setup errors, such as an
// interval without a sign change, abort the sweep.
func (s *Sweep) Run(ctx context.Context, f bisect.Func, low, high float64) (*Result, error) {
	tols, err := Logspace(s.From, s.To, s.N)
	if err != nil {
		return nil, err
	}
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = bisect.DefaultMaxIterations
	}

	res := &Result{Points: make([]Point, 0, len(tols))}
	iterations := make([]float64, 0, len(tols))

	for _, tol := range tols {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		r, err := bisect.Solve(f, low, high, bisect.Config{Tolerance: tol, MaxIterations: maxIter})
		if r == nil {
			return nil, err
		}

		p := Point{
			Tolerance:  tol,
			Root:       r.Root,
			Iterations: r.Iterations,
			Predicted:  Predicted(high-low, tol),
			ErrorBound: r.ErrorBound(),
			Reason:     r.Reason.String(),
			Converged:  r.Converged,
		}
		if err != nil {
			p.Err = err.Error()
		}
		res.Points = append(res.Points, p)
		iterations = append(iterations, float64(r.Iterations))
	}

	if res.Iterations, err = metrics.Summarize(iterations); err != nil && !errors.Is(err, metrics.ErrNoSamples) {
		return nil, err
	}
	return res, nil
}

// Tightest returns the smallest tolerance that converged, or false when
// none did.
func (r *Result) Tightest() (Point, bool) {
	best := Point{Tolerance: math.Inf(1)}
	found := false
	for _, p := range r.Points {
		if p.Converged && p.Tolerance < best.Tolerance {
			best, found = p, true
		}
	}
	return best, found
}
