package bisect

import "math"

type Solver struct {
	metrics   []Metric
	observers []Observer
}

func New() *Solver {
	return &Solver{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Solve bisects f on [low, high]. On ErrMaxIterations and ErrNonFinite the
// returned Result is non-nil, unconverged, and holds the last midpoint.
func (s *Solver) Solve(f Func, low, high float64, cfg Config) (*Result, error) {
	for _, m := range s.metrics {
		m.Reset()
	}

	var steps []Step
	if cfg.KeepSteps && cfg.MaxIterations > 0 {
		steps = make([]Step, 0, min(cfg.MaxIterations, 64))
	}

	it := Iterate(f, low, high, cfg)
	for it.Next() {
		st := it.Step()
		if cfg.KeepSteps {
			steps = append(steps, st)
		}
		for _, m := range s.metrics {
			m.Observe(st)
		}
		for _, obs := range s.observers {
			obs.OnStep(st)
		}
	}

	res, err := it.Result()
	if res == nil {
		return nil, err
	}

	res.Steps = steps
	if len(s.metrics) > 0 {
		res.Metrics = make(map[string]float64, len(s.metrics))
		for _, m := range s.metrics {
			res.Metrics[m.Name()] = m.Value()
		}
	}
	return res, err
}

// Solve runs a Solver with no hooks attached.
func Solve(f Func, low, high float64, cfg Config) (*Result, error) {
	return New().Solve(f, low, high, cfg)
}

// Root returns only the root estimate. On ErrMaxIterations it is the best
// midpoint found, on errors before the first bisection it is NaN.
func Root(f Func, low, high, tolerance float64, maxIterations int) (float64, error) {
	res, err := Solve(f, low, high, Config{Tolerance: tolerance, MaxIterations: maxIterations})
	if res == nil {
		return math.NaN(), err
	}
	return res.Root, err
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Step)

func (fn ObserverFunc) OnStep(s Step) { fn(s) }
