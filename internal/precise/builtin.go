package precise

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/ALTree/bigfloat"
)

// Definition is a named arbitrary-precision function with a bracket that
// contains exactly one root.
type Definition struct {
	Name        string
	Description string
	F           Func
	Low, High   float64
}

var builtins = map[string]Definition{
	"sqrt2": {
		Name: "sqrt2", Description: "x^2 - 2, root sqrt(2)",
		F: func(x *big.Float) *big.Float {
			y := new(big.Float).SetPrec(x.Prec()).Mul(x, x)
			return y.Sub(y, big.NewFloat(2))
		},
		Low: 1, High: 2,
	},
	"ln2": {
		Name: "ln2", Description: "e^x - 2, root ln(2)",
		F: func(x *big.Float) *big.Float {
			y := bigfloat.Exp(x)
			return y.Sub(y, big.NewFloat(2))
		},
		Low: 0, High: 1,
	},
	"e": {
		Name: "e", Description: "ln(x) - 1, root e",
		F: func(x *big.Float) *big.Float {
			y := bigfloat.Log(x)
			return y.Sub(y, big.NewFloat(1))
		},
		Low: 2, High: 3,
	},
	"cbrt10": {
		Name: "cbrt10", Description: "x^3 - 10, root cbrt(10)",
		F: func(x *big.Float) *big.Float {
			y := bigfloat.Pow(x, big.NewFloat(3))
			return y.Sub(y, big.NewFloat(10))
		},
		Low: 2, High: 3,
	},
}

func Get(name string) (Definition, error) {
	d, ok := builtins[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown precise function: %s", name)
	}
	return d, nil
}

func List() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
