package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bisect/internal/bisect"
	"github.com/san-kum/bisect/internal/search"
)

func sqrt2(x float64) float64 { return x*x - 2 }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	runA  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	back  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}}
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 10)

	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBlank|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][1])
	}

	c.Clear()
	if c.String() != string([]rune{brailleBlank, brailleBlank})+"\n" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 4; i++ {
		if c.Grid[i/2][i] == brailleBlank {
			t.Errorf("diagonal cell (%d, %d) not drawn", i/2, i)
		}
	}
}

func TestPlotFunction(t *testing.T) {
	out := PlotFunction(sqrt2, 0, 2, Marks{Low: 0, Mid: 1, High: 2}, 40, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected 13 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "2") || !strings.HasPrefix(lines[11], "-2") {
		t.Errorf("unexpected y labels %q %q", lines[0], lines[11])
	}
	if !strings.HasPrefix(lines[12], "0") || !strings.HasSuffix(lines[12], "2") {
		t.Errorf("unexpected x labels %q", lines[12])
	}

	if PlotFunction(sqrt2, 2, 0, NoMarks(), 40, 10) != "" {
		t.Error("expected empty plot for a reversed interval")
	}

	nan := PlotFunction(func(float64) float64 { return math.NaN() }, 0, 1, NoMarks(), 10, 4)
	if strings.Count(nan, "\n") != 4 {
		t.Errorf("expected a blank canvas for an undefined function, got %q", nan)
	}
}

func TestPlotFunctionHugeRange(t *testing.T) {
	f := func(x float64) float64 { return math.Exp(x) - math.Exp(-x) }
	out := PlotFunction(f, -710, 709, Marks{Low: -710, Mid: -0.5, High: 709}, 40, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected 13 lines, got %d", len(lines))
	}
	for _, row := range []string{lines[1], lines[10]} {
		if strings.Trim(row, string(rune(brailleBlank))) == "" {
			t.Errorf("expected the curve to reach the top and bottom rows, got %q", row)
		}
	}

	lo, hi := Window(-1.7e308, 1.7e308, 0.1)
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) || !(lo < hi) {
		t.Errorf("expected a finite window, got [%g, %g]", lo, hi)
	}
}

func TestFunctionCanvas(t *testing.T) {
	c := FunctionCanvas(sqrt2, 0, 2, NoMarks(), 20, 5)
	if c == nil {
		t.Fatal("expected a canvas")
	}
	if strings.Trim(strings.ReplaceAll(c.String(), "\n", ""), string(rune(brailleBlank))) == "" {
		t.Error("expected dots on the canvas")
	}
	if FunctionCanvas(sqrt2, 2, 0, NoMarks(), 20, 5) != nil {
		t.Error("expected nil canvas for a reversed interval")
	}
}

func TestConvergencePlot(t *testing.T) {
	res, err := bisect.Solve(sqrt2, 0, 2, bisect.Config{Tolerance: 1e-9, MaxIterations: 100, KeepSteps: true})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	out := ConvergencePlot(res.Steps, 60, 10)
	if !strings.Contains(out, "log10 half-width") || !strings.Contains(out, "convergence per iteration") {
		t.Errorf("missing legend or caption:\n%s", out)
	}
	if ConvergencePlot(nil, 60, 10) != "" {
		t.Error("expected empty plot without steps")
	}
}

func TestStepperAdvancesOneStepPerKey(t *testing.T) {
	m := NewStepper("sqrt2", sqrt2, 0, 2, bisect.DefaultConfig(), ThemeDefault)

	next, _ := m.Update(enter)
	m = next.(Stepper)
	if len(m.Steps()) != 1 || m.Steps()[0].Mid != 1 {
		t.Fatalf("expected first midpoint 1, got %+v", m.Steps())
	}

	earlier := m
	next, _ = m.Update(enter)
	m = next.(Stepper)
	if len(m.Steps()) != 2 || len(earlier.Steps()) != 1 {
		t.Fatalf("expected 2 steps and an untouched earlier model, got %d and %d", len(m.Steps()), len(earlier.Steps()))
	}

	next, _ = m.Update(runA)
	m = next.(Stepper)
	if !m.Done() {
		t.Fatal("expected run to finish")
	}
	res, err := m.Result()
	if err != nil || !res.Converged {
		t.Fatalf("expected convergence, got %v", err)
	}
	if !strings.Contains(m.View(), "converged") {
		t.Error("view should report convergence")
	}
}

func TestStepperReportsNoSignChange(t *testing.T) {
	m := NewStepper("noroot", func(x float64) float64 { return x*x + 1 }, 1, 2, bisect.DefaultConfig(), ThemeMono)
	next, _ := m.Update(enter)
	m = next.(Stepper)

	if !m.Done() || len(m.Steps()) != 0 {
		t.Fatal("expected the run to end before any step")
	}
	if !strings.Contains(m.View(), "failed") {
		t.Error("view should report the failure")
	}
}

func TestSearchModelNavigation(t *testing.T) {
	values := []int{3, 5, 9, 9, 10, 12, 12, 14, 17, 18}
	report, err := search.Run(search.AlgoCount, values, 9)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	m := NewSearchModel(values, 9, report, ThemeChalk)
	total := len(report.Phases[0].Steps) + len(report.Phases[1].Steps)
	for i := 0; i < total-1; i++ {
		next, _ := m.Update(enter)
		m = next.(SearchModel)
	}
	if phase, step := m.Position(); phase != 1 || step != len(report.Phases[1].Steps)-1 {
		t.Fatalf("unexpected position %d/%d", phase, step)
	}

	next, _ := m.Update(enter)
	m = next.(SearchModel)
	if !m.Finished() || !strings.Contains(m.View(), "2 occurrences") {
		t.Errorf("expected summary view, got:\n%s", m.View())
	}

	next, _ = m.Update(back)
	m = next.(SearchModel)
	if m.Finished() {
		t.Error("back should leave the summary")
	}
}

func TestRenderCellsMarkers(t *testing.T) {
	values := []int{1, 2, 3}
	out := RenderCells(values, search.Step{Left: 0, Right: 2, Mid: 1}, 80, NewStyles(ThemeMono))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "L") || !strings.Contains(lines[2], "M") || !strings.Contains(lines[2], "R") {
		t.Errorf("missing markers in %q", lines[2])
	}

	empty := RenderCells(nil, search.Step{Left: 0, Right: -1}, 80, NewStyles(ThemeMono))
	if !strings.Contains(empty, "[]") {
		t.Errorf("expected empty list marker, got %q", empty)
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if GetTheme("matrix").Name != "matrix" {
		t.Error("expected matrix theme")
	}
	if GetTheme("nope").Name != "default" {
		t.Error("expected default theme for unknown name")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestThemesAreDistinct(t *testing.T) {
	names := map[string]bool{}
	palettes := map[[3]string]string{}
	for _, th := range Themes {
		if names[th.Name] {
			t.Errorf("duplicate theme name %q", th.Name)
		}
		names[th.Name] = true
		key := [3]string{string(th.Primary), string(th.Secondary), string(th.Accent)}
		if prev, ok := palettes[key]; ok {
			t.Errorf("themes %q and %q share a palette", prev, th.Name)
		}
		palettes[key] = th.Name
		if th.Primary == th.Secondary {
			t.Errorf("theme %q does not tell the bracket ends apart", th.Name)
		}
	}
}
