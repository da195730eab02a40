package metrics

import (
	"math"

	"github.com/san-kum/bisect/internal/bisect"
)

// Residual reports |f(mid)| at the last observed step.
type Residual struct {
	name  string
	last  float64
	steps int
}

func NewResidual() *Residual {
	return &Residual{name: "residual"}
}

func (r *Residual) Name() string { return r.name }

func (r *Residual) Observe(s bisect.Step) {
	r.last = math.Abs(s.FMid)
	r.steps++
}

func (r *Residual) Value() float64 {
	if r.steps == 0 {
		return 0
	}
	return r.last
}

func (r *Residual) Reset() {
	r.last = 0
	r.steps = 0
}

// ResidualDecades counts the orders of magnitude |f(mid)| dropped between
// the first and the last step.
type ResidualDecades struct {
	name        string
	first, last float64
	samples     int
}

func NewResidualDecades() *ResidualDecades {
	return &ResidualDecades{name: "residual_decades"}
}

func (r *ResidualDecades) Name() string { return r.name }

func (r *ResidualDecades) Observe(s bisect.Step) {
	v := math.Abs(s.FMid)
	if r.samples == 0 {
		r.first = v
	}
	r.last = v
	r.samples++
}

func (r *ResidualDecades) Value() float64 {
	if r.samples < 2 || r.first == 0 {
		return 0
	}
	if r.last == 0 {
		return math.Inf(1)
	}
	return math.Log10(r.first / r.last)
}

func (r *ResidualDecades) Reset() {
	r.first = 0
	r.last = 0
	r.samples = 0
}
