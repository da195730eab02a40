package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bisect/internal/bisect"
)

// Marks are the x positions highlighted on a function plot. NaN hides a
// mark.
type Marks struct {
	Low, Mid, High float64
}

func NoMarks() Marks {
	return Marks{Low: math.NaN(), Mid: math.NaN(), High: math.NaN()}
}

// StepMarks marks the bracket and midpoint of a step.
func StepMarks(s bisect.Step) Marks {
	return Marks{Low: s.Low, Mid: s.Mid, High: s.High}
}

// PlotFunction draws f over [from, to] on a Braille canvas of w x h cells,
// with the x axis (when in range) and the marks as dotted lines.
func PlotFunction(f bisect.Func, from, to float64, marks Marks, w, h int) string {
	c, ymin, ymax := drawFunction(f, from, to, marks, w, h)
	if c == nil {
		return ""
	}
	if math.IsInf(ymin, 1) {
		return c.String()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-12.6g\n", ymax))
	b.WriteString(c.String())
	b.WriteString(fmt.Sprintf("%-12.6g\n", ymin))
	b.WriteString(axisLabels(from, to, w))
	return b.String()
}

// FunctionCanvas is PlotFunction without the labels. It returns nil when
// the interval is empty or the canvas too small.
func FunctionCanvas(f bisect.Func, from, to float64, marks Marks, w, h int) *Canvas {
	c, _, _ := drawFunction(f, from, to, marks, w, h)
	return c
}

// drawFunction returns the canvas and the plotted y range; ymin is +Inf
// when f had no finite sample.
func drawFunction(f bisect.Func, from, to float64, marks Marks, w, h int) (*Canvas, float64, float64) {
	c := NewCanvas(w, h)
	dw, dh := c.Dots()
	if !(from < to) || dw < 2 || dh < 2 {
		return nil, 0, 0
	}

	ys := make([]float64, dw)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i := range ys {
		ys[i] = f(lerp(from, to, float64(i)/float64(dw-1)))
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		ymin = math.Min(ymin, ys[i])
		ymax = math.Max(ymax, ys[i])
	}
	if math.IsInf(ymin, 1) {
		return c, ymin, ymax
	}
	if ymax == ymin {
		ymin, ymax = ymin-1, ymax+1
	}

	toRow := func(y float64) int {
		return int(math.Round(ratio(y, ymax, ymin) * float64(dh-1)))
	}
	toCol := func(x float64) int {
		return int(math.Round(ratio(x, from, to) * float64(dw-1)))
	}

	if ymin <= 0 && ymax >= 0 {
		c.DashH(toRow(0))
	}
	for _, x := range []float64{marks.Low, marks.Mid, marks.High} {
		if !math.IsNaN(x) && x >= from && x <= to {
			c.DashV(toCol(x))
		}
	}

	prev := -1
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			prev = -1
			continue
		}
		row := toRow(y)
		if prev >= 0 {
			c.DrawLine(i-1, prev, i, row)
		} else {
			c.Set(i, row)
		}
		prev = row
	}
	return c, ymin, ymax
}

// ratio is (v-a)/(b-a) computed on halves, so spans wider than
// MaxFloat64 stay finite.
func ratio(v, a, b float64) float64 {
	return (v/2 - a/2) / (b/2 - a/2)
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func axisLabels(from, to float64, w int) string {
	left := fmt.Sprintf("%.6g", from)
	right := fmt.Sprintf("%.6g", to)
	gap := max(1, w-len(left)-len(right))
	return left + strings.Repeat(" ", gap) + right + "\n"
}

// Window pads the bracket [low, high] by a fraction of its width on each
// side, so the bracket ends are visible inside the plot.
func Window(low, high, pad float64) (float64, float64) {
	d := (high/2 - low/2) * 2 * pad
	return math.Max(low-d, -math.MaxFloat64), math.Min(high+d, math.MaxFloat64)
}

// ConvergencePlot charts log10 of the bracket half-width and of |f(mid)|
// per iteration. Exact zeros are drawn at the float64 floor.
func ConvergencePlot(steps []bisect.Step, w, h int) string {
	if len(steps) == 0 {
		return ""
	}
	width := make([]float64, len(steps))
	residual := make([]float64, len(steps))
	for i, s := range steps {
		width[i] = log10Floor(s.HalfWidth())
		residual[i] = log10Floor(math.Abs(s.FMid))
	}

	opts := []asciigraph.Option{
		asciigraph.Height(h),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.DeepSkyBlue, asciigraph.Orange),
		asciigraph.SeriesLegends("log10 half-width", "log10 |f(mid)|"),
		asciigraph.Caption("convergence per iteration"),
	}
	if w > 0 && len(steps) > 1 {
		opts = append(opts, asciigraph.Width(w))
	}
	return asciigraph.PlotMany([][]float64{width, residual}, opts...)
}

func log10Floor(v float64) float64 {
	const floor = -17
	if v <= 0 || math.IsNaN(v) {
		return floor
	}
	if math.IsInf(v, 1) {
		return 17
	}
	return math.Max(floor, math.Log10(v))
}
