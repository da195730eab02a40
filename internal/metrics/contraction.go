package metrics

import (
	"math"

	"github.com/san-kum/bisect/internal/bisect"
)

// Contraction is the geometric mean ratio between successive bracket
// widths. Exact bisection gives 0.5.
type Contraction struct {
	name        string
	first, last float64
	samples     int
}

func NewContraction() *Contraction {
	return &Contraction{name: "contraction"}
}

func (c *Contraction) Name() string {
	return c.name
}

func (c *Contraction) Observe(s bisect.Step) {
	w := s.High - s.Low
	if c.samples == 0 {
		c.first = w
	}
	c.last = w
	c.samples++
}

func (c *Contraction) Value() float64 {
	if c.samples < 2 || c.first <= 0 {
		return 0
	}
	return math.Pow(c.last/c.first, 1/float64(c.samples-1))
}

func (c *Contraction) Reset() {
	c.first = 0
	c.last = 0
	c.samples = 0
}

// Default returns the metrics attached to CLI runs.
func Default() []bisect.Metric {
	return []bisect.Metric{
		NewResidual(),
		NewResidualDecades(),
		NewContraction(),
	}
}
