// Package scan samples a function on a uniform grid and reports the
// subintervals over which it changes sign, each a valid bisection bracket.
package scan

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/bisect/internal/bisect"
)

type Bracket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	FLow  float64 `json:"f_low"`
	FHigh float64 `json:"f_high"`
}

// Grid is N equal cells between From and To.
type Grid struct {
	From, To float64
	N        int
}

func NewGrid(from, to float64, n int) *Grid {
	return &Grid{From: from, To: to, N: n}
}

func (g *Grid) validate() error {
	if math.IsNaN(g.From) || math.IsInf(g.From, 0) || math.IsNaN(g.To) || math.IsInf(g.To, 0) || !(g.From < g.To) {
		return fmt.Errorf("%w: [%g, %g]", bisect.ErrInvalidInterval, g.From, g.To)
	}
	if g.N < 1 {
		return fmt.Errorf("scan grid needs at least one cell, got %d", g.N)
	}
	return nil
}

func (g *Grid) at(i int) float64 {
	if i == g.N {
		return g.To
	}
	return g.From + (g.To-g.From)*float64(i)/float64(g.N)
}

// Brackets evaluates f at the N+1 grid points and returns every cell whose
// ends have opposite signs or whose right end is an exact zero. A zero at
// From is reported with the first cell. Cells touching NaN or ±Inf are
// skipped.
func (g *Grid) Brackets(ctx context.Context, f bisect.Func) ([]Bracket, error) {
	if f == nil {
		return nil, bisect.ErrNilFunc
	}
	if err := g.validate(); err != nil {
		return nil, err
	}

	var out []Bracket
	a := g.From
	fa := f(a)
	for i := 1; i <= g.N; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		b := g.at(i)
		fb := f(b)

		if finite(fa) && finite(fb) {
			switch {
			case fa == 0 && i == 1, fb == 0:
				out = append(out, Bracket{Low: a, High: b, FLow: fa, FHigh: fb})
			case fa != 0 && math.Signbit(fa) != math.Signbit(fb):
				out = append(out, Bracket{Low: a, High: b, FLow: fa, FHigh: fb})
			}
		}
		a, fa = b, fb
	}
	return out, nil
}

// Roots bisects every bracket found on the grid. A bracket that fails to
// converge keeps its best estimate in the result and the first such error
// is returned after all brackets were tried.
func (g *Grid) Roots(ctx context.Context, f bisect.Func, cfg bisect.Config) ([]*bisect.Result, error) {
	brackets, err := g.Brackets(ctx, f)
	if err != nil {
		return nil, err
	}

	var firstErr error
	results := make([]*bisect.Result, 0, len(brackets))
	for _, br := range brackets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := bisect.Solve(f, br.Low, br.High, cfg)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if res != nil {
			results = append(results, res)
		}
	}
	return results, firstErr
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
