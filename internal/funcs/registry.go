package funcs

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/bisect/internal/bisect"
)

// Definition is a named function together with a default bracket.
type Definition struct {
	Name        string
	Expr        string
	Description string
	Low         float64
	High        float64
	// Root is the known root, NaN when the bracket holds none.
	Root float64
}

type Registry struct {
	defs map[string]Definition
}

func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]Definition)}

	r.Register(Definition{
		Name: "sqrt2", Expr: "x^2 - 2", Low: 0, High: 2, Root: math.Sqrt2,
		Description: "square root of two",
	})
	r.Register(Definition{
		Name: "cos", Expr: "cos(x)", Low: 0, High: 3, Root: math.Pi / 2,
		Description: "first positive zero of cosine",
	})
	r.Register(Definition{
		Name: "cubic", Expr: "x^3 - x - 2", Low: 1, High: 2, Root: 1.5213797068045676,
		Description: "real root of a depressed cubic",
	})
	r.Register(Definition{
		Name: "dottie", Expr: "cos(x) - x", Low: 0, High: 1, Root: 0.7390851332151607,
		Description: "fixed point of cosine",
	})
	r.Register(Definition{
		Name: "omega", Expr: "exp(-x) - x", Low: 0, High: 1, Root: 0.5671432904097838,
		Description: "omega constant, W(1)",
	})
	r.Register(Definition{
		Name: "kepler", Expr: "x - 0.5*sin(x) - 1", Low: 0, High: 2, Root: 1.4987011335178482,
		Description: "Kepler's equation, M=1 e=0.5",
	})
	r.Register(Definition{
		Name: "noroot", Expr: "x^2 + 1", Low: 1, High: 2, Root: math.NaN(),
		Description: "no sign change on the bracket",
	})

	return r
}

// Register adds or replaces a definition.
func (r *Registry) Register(d Definition) {
	r.defs[d.Name] = d
}

func (r *Registry) Get(name string) (Definition, error) {
	d, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown function: %s", name)
	}
	return d, nil
}

// Lookup returns the compiled function and its default bracket.
func (r *Registry) Lookup(name string) (bisect.Func, float64, float64, error) {
	d, err := r.Get(name)
	if err != nil {
		return nil, 0, 0, err
	}
	f, err := Compile(d.Expr)
	if err != nil {
		return nil, 0, 0, err
	}
	return f, d.Low, d.High, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
