package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/bisect/internal/bisect"
	"github.com/san-kum/bisect/internal/viz"
)

const (
	background = "#0a0a0a"
	curveColor = "#00ffff"
	axisColor  = "#444466"
	midColor   = "#ffaa00"
	rootColor  = "#00ff88"
	samples    = 400
)

// FunctionSVG plots f over [from, to] and marks every midpoint of steps on
// the x axis; the last midpoint is drawn larger. Non-finite samples break
// the curve.
func FunctionSVG(f bisect.Func, from, to float64, steps []bisect.Step, width, height int) string {
	if !(from < to) || width <= 0 || height <= 0 {
		return ""
	}

	xs := make([]float64, samples)
	ys := make([]float64, samples)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i := range xs {
		t := float64(i) / float64(samples-1)
		xs[i] = from*(1-t) + to*t
		ys[i] = f(xs[i])
		if finite(ys[i]) {
			ymin = math.Min(ymin, ys[i])
			ymax = math.Max(ymax, ys[i])
		}
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = -1, 1
	}
	ymin, ymax = math.Min(ymin, 0), math.Max(ymax, 0)
	pad := (ymax/2 - ymin/2) * 0.2
	if pad == 0 {
		pad = 1
	}
	ymin = math.Max(ymin-pad, -math.MaxFloat64)
	ymax = math.Min(ymax+pad, math.MaxFloat64)

	w, h := float64(width), float64(height)
	px := func(x float64) float64 { return ratio(x, from, to) * w }
	py := func(y float64) float64 { return h - ratio(y, ymin, ymax)*h }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	zero := py(0)
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, zero, w, zero, axisColor))

	if n := len(steps); n > 0 {
		last := steps[n-1]
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="0" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.15"/>
`, px(last.Low), math.Max(px(last.High)-px(last.Low), 1), h, rootColor))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, curveColor))
	pen := false
	for i := range xs {
		if !finite(ys[i]) {
			pen = false
			continue
		}
		cmd := "L"
		if !pen {
			cmd = "M"
		}
		sb.WriteString(fmt.Sprintf("%s%.1f,%.1f ", cmd, px(xs[i]), py(ys[i])))
		pen = true
	}
	sb.WriteString("\"/>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, midColor))
	for i, st := range steps {
		r := 2.0
		if i == len(steps)-1 {
			r = 4
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"><title>%d: %g</title></circle>
`, px(st.Mid), zero, r, st.Iteration, st.Mid))
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	dw, dh := canvas.Dots()
	width, height := float64(dw)*scale, float64(dh)*scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, curveColor))

	bits := [4][2]rune{{0x01, 0x08}, {0x02, 0x10}, {0x04, 0x20}, {0x40, 0x80}}
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			pattern := canvas.Grid[row][col] - 0x2800
			if pattern <= 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&bits[dy][dx] == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, scale*0.4))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// ratio is (v-a)/(b-a) on halves; the span may exceed MaxFloat64.
func ratio(v, a, b float64) float64 {
	return (v/2 - a/2) / (b/2 - a/2)
}

// RenderSVG is FunctionSVG for the default export, or CanvasToSVG of the
// Braille plot when braille is set.
func RenderSVG(f bisect.Func, from, to float64, steps []bisect.Step, width, height int, braille bool) string {
	if !braille {
		return FunctionSVG(f, from, to, steps, width, height)
	}
	marks := viz.NoMarks()
	if n := len(steps); n > 0 {
		marks = viz.StepMarks(steps[n-1])
	}
	const scale = 4.0
	cols, rows := max(2, int(float64(width)/(2*scale))), max(1, int(float64(height)/(4*scale)))
	return CanvasToSVG(viz.FunctionCanvas(f, from, to, marks, cols, rows), scale)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
