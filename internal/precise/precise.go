// Package precise bisects functions of *big.Float, for roots that need
// more digits than a float64 can hold.
//
// The algorithm and the stopping rules match package bisect, and failures
// are reported with the same sentinel errors. Precision is the mantissa
// size in bits; Digits sets the tolerance to 10^-Digits.
package precise

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/san-kum/bisect/internal/bisect"
)

const (
	DefaultPrec          = 256
	DefaultDigits        = 50
	DefaultMaxIterations = 1000
)

// Func evaluates f at x. It must not modify x. Implementations may panic
// on arguments outside their domain; the panic is reported as
// bisect.ErrNonFinite.
type Func func(x *big.Float) *big.Float

type Config struct {
	Prec          uint
	Digits        int
	MaxIterations int
}

// ErrInvalidPrecision indicates a mantissa narrower than a float64's.
var ErrInvalidPrecision = errors.New("precise: precision must be at least 53 bits")

func DefaultConfig() Config {
	return Config{
		Prec:          DefaultPrec,
		Digits:        DefaultDigits,
		MaxIterations: DefaultMaxIterations,
	}
}

func (c Config) Validate() error {
	if c.Prec < 53 {
		return fmt.Errorf("%w, got %d", ErrInvalidPrecision, c.Prec)
	}
	if c.Digits <= 0 {
		return fmt.Errorf("%w: digits must be positive, got %d", bisect.ErrInvalidTolerance, c.Digits)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: got %d", bisect.ErrInvalidMaxIterations, c.MaxIterations)
	}
	return nil
}

// Tolerance returns 10^-Digits at the configured precision.
func (c Config) Tolerance() *big.Float {
	tol, _, err := big.ParseFloat("1e-"+strconv.Itoa(c.Digits), 10, c.Prec, big.ToNearestEven)
	if err != nil {
		panic(err)
	}
	return tol
}

type Result struct {
	Root        *big.Float
	FRoot       *big.Float
	Low         *big.Float
	High        *big.Float
	Iterations  int
	Evaluations int
	Converged   bool
	Reason      bisect.StopReason
}

// Text formats the root with the requested number of decimals.
func (r *Result) Text(digits int) string {
	return r.Root.Text('f', digits)
}

// Solve bisects f on [low, high]. The bounds are copied at cfg.Prec.
func Solve(f Func, low, high *big.Float, cfg Config) (*Result, error) {
	if f == nil {
		return nil, bisect.ErrNilFunc
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if low == nil || high == nil || low.IsInf() || high.IsInf() || low.Cmp(high) >= 0 {
		return nil, fmt.Errorf("%w: [%v, %v]", bisect.ErrInvalidInterval, low, high)
	}

	prec := cfg.Prec
	lo := new(big.Float).SetPrec(prec).Set(low)
	hi := new(big.Float).SetPrec(prec).Set(high)
	tol := cfg.Tolerance()
	res := &Result{}

	flo, err := eval(f, lo)
	res.Evaluations++
	if err != nil {
		return nil, err
	}
	if flo.Sign() == 0 {
		return boundary(res, lo, flo, bisect.StopBoundaryLow), nil
	}
	fhi, err := eval(f, hi)
	res.Evaluations++
	if err != nil {
		return nil, err
	}
	if fhi.Sign() == 0 {
		return boundary(res, hi, fhi, bisect.StopBoundaryHigh), nil
	}
	if flo.Sign() == fhi.Sign() {
		return nil, fmt.Errorf("%w: f(%s) and f(%s) share a sign", bisect.ErrNoSignChange, lo.Text('g', 10), hi.Text('g', 10))
	}

	half := new(big.Float).SetPrec(prec)
	absF := new(big.Float).SetPrec(prec)
	var mid, fmid *big.Float

	for res.Iterations < cfg.MaxIterations {
		res.Iterations++
		mid = new(big.Float).SetPrec(prec).Add(lo, hi)
		mid.SetMantExp(mid, -1)

		fmid, err = eval(f, mid)
		res.Evaluations++
		if err != nil {
			fill(res, mid, new(big.Float).SetPrec(prec), lo, hi, bisect.StopFailed)
			return res, fmt.Errorf("iteration %d: %w", res.Iterations, err)
		}

		half.Sub(hi, lo)
		half.SetMantExp(half, -1)
		absF.Abs(fmid)

		switch {
		case absF.Cmp(tol) <= 0:
			return fill(res, mid, fmid, lo, hi, bisect.StopResidual), nil
		case half.Cmp(tol) <= 0:
			return fill(res, mid, fmid, lo, hi, bisect.StopWidth), nil
		case mid.Cmp(lo) <= 0 || mid.Cmp(hi) >= 0:
			return fill(res, mid, fmid, lo, hi, bisect.StopResolution), nil
		case flo.Sign() != fmid.Sign():
			hi = mid
		default:
			lo, flo = mid, fmid
		}
	}

	fill(res, mid, fmid, lo, hi, bisect.StopExhausted)
	return res, fmt.Errorf("%w: %d iterations at %d bits", bisect.ErrMaxIterations, cfg.MaxIterations, prec)
}

// SolveFloat64 is Solve with float64 bounds.
func SolveFloat64(f Func, low, high float64, cfg Config) (*Result, error) {
	return Solve(f, big.NewFloat(low), big.NewFloat(high), cfg)
}

func eval(f Func, x *big.Float) (y *big.Float, err error) {
	defer func() {
		if r := recover(); r != nil {
			y, err = nil, fmt.Errorf("%w: f(%s) panicked: %v", bisect.ErrNonFinite, x.Text('g', 10), r)
		}
	}()
	y = f(x)
	if y == nil || y.IsInf() {
		return nil, fmt.Errorf("%w: f(%s) = %v", bisect.ErrNonFinite, x.Text('g', 10), y)
	}
	return y, nil
}

func boundary(res *Result, x, fx *big.Float, reason bisect.StopReason) *Result {
	return fill(res, x, fx, x, x, reason)
}

func fill(res *Result, root, froot, lo, hi *big.Float, reason bisect.StopReason) *Result {
	res.Root = root
	res.FRoot = froot
	res.Low = lo
	res.High = hi
	res.Reason = reason
	res.Converged = reason.Converged()
	return res
}
