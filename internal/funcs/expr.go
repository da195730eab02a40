package funcs

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/san-kum/bisect/internal/bisect"
)

var ErrEmptyExpression = errors.New("funcs: empty expression")

// env is the evaluation environment of a compiled expression. abs, floor,
// ceil, min and max come from the expr builtins.
type env struct {
	X  float64 `expr:"x"`
	Pi float64 `expr:"pi"`
	E  float64 `expr:"e"`

	Sin   func(float64) float64          `expr:"sin"`
	Cos   func(float64) float64          `expr:"cos"`
	Tan   func(float64) float64          `expr:"tan"`
	Asin  func(float64) float64          `expr:"asin"`
	Acos  func(float64) float64          `expr:"acos"`
	Atan  func(float64) float64          `expr:"atan"`
	Sinh  func(float64) float64          `expr:"sinh"`
	Cosh  func(float64) float64          `expr:"cosh"`
	Tanh  func(float64) float64          `expr:"tanh"`
	Exp   func(float64) float64          `expr:"exp"`
	Log   func(float64) float64          `expr:"log"`
	Log2  func(float64) float64          `expr:"log2"`
	Log10 func(float64) float64          `expr:"log10"`
	Sqrt  func(float64) float64          `expr:"sqrt"`
	Cbrt  func(float64) float64          `expr:"cbrt"`
	Pow   func(float64, float64) float64 `expr:"pow"`
}

var baseEnv = env{
	Pi:    math.Pi,
	E:     math.E,
	Sin:   math.Sin,
	Cos:   math.Cos,
	Tan:   math.Tan,
	Asin:  math.Asin,
	Acos:  math.Acos,
	Atan:  math.Atan,
	Sinh:  math.Sinh,
	Cosh:  math.Cosh,
	Tanh:  math.Tanh,
	Exp:   math.Exp,
	Log:   math.Log,
	Log2:  math.Log2,
	Log10: math.Log10,
	Sqrt:  math.Sqrt,
	Cbrt:  math.Cbrt,
	Pow:   math.Pow,
}

// Compile turns an expression in x, such as "x^3 - x - 2", into a
// bisect.Func. Both ^ and ** denote exponentiation.
//
// A runtime failure during evaluation yields NaN, which the solver reports
// as a non-finite function value.
func Compile(src string) (bisect.Func, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(src, expr.Env(env{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}

	return func(x float64) float64 {
		return eval(program, x)
	}, nil
}

// MustCompile is Compile for expressions known to be valid.
func MustCompile(src string) bisect.Func {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return f
}

func eval(program *vm.Program, x float64) float64 {
	e := baseEnv
	e.X = x

	out, err := expr.Run(program, e)
	if err != nil {
		return math.NaN()
	}
	switch v := out.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return math.NaN()
	}
}
