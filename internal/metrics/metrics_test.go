package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/bisect/internal/bisect"
)

func TestContractionOfBisection(t *testing.T) {
	s := bisect.New()
	c := NewContraction()
	s.AddMetric(c)

	res, err := s.Solve(func(x float64) float64 { return x*x - 2 }, 0, 2, bisect.DefaultConfig())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(res.Metrics["contraction"]-0.5) > 1e-12 {
		t.Errorf("expected contraction 0.5, got %f", res.Metrics["contraction"])
	}
}

func TestResidualTracksLastStep(t *testing.T) {
	r := NewResidual()
	r.Observe(bisect.Step{FMid: -0.5})
	r.Observe(bisect.Step{FMid: -0.01})
	if r.Value() != 0.01 {
		t.Errorf("expected 0.01, got %f", r.Value())
	}

	r.Reset()
	if r.Value() != 0 {
		t.Error("expected zero residual after reset")
	}
}

func TestResidualDecades(t *testing.T) {
	d := NewResidualDecades()
	d.Observe(bisect.Step{FMid: 1})
	if d.Value() != 0 {
		t.Error("expected zero with a single sample")
	}
	d.Observe(bisect.Step{FMid: 1e-3})
	if math.Abs(d.Value()-3) > 1e-12 {
		t.Errorf("expected 3 decades, got %f", d.Value())
	}
	d.Observe(bisect.Step{FMid: 0})
	if !math.IsInf(d.Value(), 1) {
		t.Errorf("expected +Inf for an exact zero, got %f", d.Value())
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{4, 8, 6, 2})
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if s.Count != 4 || s.Mean != 5 || s.Median != 5 || s.Min != 2 || s.Max != 8 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(5)) > 1e-12 {
		t.Errorf("expected population stddev sqrt(5), got %f", s.StdDev)
	}

	if _, err := Summarize(nil); !errors.Is(err, ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}
}
