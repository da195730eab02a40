package bisect

import "math"

const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

// Func is a real function of one real variable. It must be continuous on
// the search interval; this is not checked.
type Func func(x float64) float64

// Step records one iteration: the bracket that was bisected, its midpoint
// and f at the midpoint.
type Step struct {
	Iteration int     `json:"iteration"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Mid       float64 `json:"mid"`
	FMid      float64 `json:"fmid"`
}

// HalfWidth is the error bound of Mid as a root estimate.
func (s Step) HalfWidth() float64 {
	return halfWidth(s.Low, s.High)
}

type StopReason int

const (
	StopNone StopReason = iota
	StopBoundaryLow
	StopBoundaryHigh
	StopResidual
	StopWidth
	StopResolution
	StopExhausted
	StopFailed
)

func (r StopReason) String() string {
	switch r {
	case StopBoundaryLow:
		return "boundary-low"
	case StopBoundaryHigh:
		return "boundary-high"
	case StopResidual:
		return "residual"
	case StopWidth:
		return "width"
	case StopResolution:
		return "resolution"
	case StopExhausted:
		return "exhausted"
	case StopFailed:
		return "failed"
	default:
		return "none"
	}
}

// Converged reports whether the reason corresponds to a satisfied stopping test.
func (r StopReason) Converged() bool {
	switch r {
	case StopBoundaryLow, StopBoundaryHigh, StopResidual, StopWidth, StopResolution:
		return true
	}
	return false
}

type Observer interface {
	OnStep(s Step)
}

type Metric interface {
	Name() string
	Observe(s Step)
	Value() float64
	Reset()
}

type Config struct {
	Tolerance     float64
	MaxIterations int
	// KeepSteps retains every Step in Result.Steps.
	KeepSteps bool
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate checks the tolerance and iteration budget.
func (c Config) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return errorf(ErrInvalidTolerance, "got %g", c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return errorf(ErrInvalidMaxIterations, "got %d", c.MaxIterations)
	}
	return nil
}

type Result struct {
	Root        float64            `json:"root"`
	FRoot       float64            `json:"froot"`
	Low         float64            `json:"low"`
	High        float64            `json:"high"`
	Iterations  int                `json:"iterations"`
	Evaluations int                `json:"evaluations"`
	Converged   bool               `json:"converged"`
	Reason      StopReason         `json:"-"`
	Steps       []Step             `json:"steps,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

// ErrorBound is the half-width of the final bracket.
func (r *Result) ErrorBound() float64 {
	return halfWidth(r.Low, r.High)
}

// halfWidth and midpoint halve each bound first when high-low overflows,
// so a bracket wider than MaxFloat64 still has a finite centre.
func halfWidth(low, high float64) float64 {
	if w := (high - low) / 2; !math.IsInf(w, 0) {
		return w
	}
	return high/2 - low/2
}

func midpoint(low, high float64) float64 {
	return low + halfWidth(low, high)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
