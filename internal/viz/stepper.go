package viz

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bisect/internal/bisect"
)

const historyRows = 8

// Stepper is a bubbletea model that walks through a bisection one
// iteration per key press.
type Stepper struct {
	name      string
	f         bisect.Func
	low, high float64
	cfg       bisect.Config

	it    *bisect.Iterator
	steps []bisect.Step
	done  bool
	res   *bisect.Result
	err   error

	zoom          bool
	width, height int
	styles        Styles
}

func NewStepper(name string, f bisect.Func, low, high float64, cfg bisect.Config, theme Theme) Stepper {
	return Stepper{
		name:   name,
		f:      f,
		low:    low,
		high:   high,
		cfg:    cfg,
		it:     bisect.Iterate(f, low, high, cfg),
		width:  80,
		height: 24,
		styles: NewStyles(theme),
	}
}

func (m Stepper) Init() tea.Cmd { return nil }

func (m Stepper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter", " ", "n", "right", "l":
			m = m.advance()
		case "a":
			for !m.done {
				m = m.advance()
			}
		case "z":
			m.zoom = !m.zoom
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Stepper) advance() Stepper {
	if m.done {
		return m
	}
	if m.it.Next() {
		// copy on append so earlier model values keep their own history
		m.steps = append(m.steps[:len(m.steps):len(m.steps)], m.it.Step())
		return m
	}
	m.done = true
	m.res, m.err = m.it.Result()
	return m
}

// Steps returns the iterations shown so far.
func (m Stepper) Steps() []bisect.Step { return m.steps }

// Result is the final outcome once the run is over.
func (m Stepper) Result() (*bisect.Result, error) { return m.res, m.err }

func (m Stepper) Done() bool { return m.done }

func (m Stepper) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("bisect %s on [%g, %g]", m.name, m.low, m.high)))
	b.WriteString("\n")
	b.WriteString(s.KV("tolerance", fmt.Sprintf("%g", m.cfg.Tolerance)) + "   ")
	b.WriteString(s.KV("max iterations", fmt.Sprintf("%d", m.cfg.MaxIterations)))
	b.WriteString("\n\n")

	from, to := Window(m.low, m.high, 0.05)
	marks := NoMarks()
	if n := len(m.steps); n > 0 {
		last := m.steps[n-1]
		marks = StepMarks(last)
		if m.zoom {
			from, to = Window(last.Low, last.High, 0.1)
		}
	}
	plotW := max(20, min(m.width-4, 100))
	plotH := max(6, min(m.height-20, 16))
	b.WriteString(PlotFunction(m.f, from, to, marks, plotW, plotH))
	b.WriteString("\n")

	b.WriteString(m.history())
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(s.Key.Render("enter next step · a run to end · z zoom · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Stepper) history() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Label.Render(fmt.Sprintf("%4s  %-22s %-22s %-22s %s", "it", "low", "high", "mid", "f(mid)")))
	b.WriteString("\n")

	start := max(0, len(m.steps)-historyRows)
	for i, st := range m.steps[start:] {
		line := fmt.Sprintf("%4d  %-22.15g %-22.15g %-22.15g %.6e", st.Iteration, st.Low, st.High, st.Mid, st.FMid)
		if start+i == len(m.steps)-1 {
			line = s.Highlight.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Stepper) status() string {
	s := m.styles
	if !m.done {
		if len(m.steps) == 0 {
			return s.Muted.Render("press enter to evaluate the first midpoint")
		}
		last := m.steps[len(m.steps)-1]
		shrink := 1 - (last.High-last.Low)/(m.high-m.low)
		return s.KV("half-width", fmt.Sprintf("%.3e", last.HalfWidth())) + "  " + s.ProgressBar(shrink, 30)
	}

	switch {
	case m.err == nil && m.res != nil:
		return s.Good.Render(fmt.Sprintf("converged (%s): root %.15g after %d iterations",
			m.res.Reason, m.res.Root, m.res.Iterations))
	case errors.Is(m.err, bisect.ErrMaxIterations):
		return s.Warn.Render(fmt.Sprintf("not converged: %v", m.err))
	default:
		return s.Bad.Render(fmt.Sprintf("failed: %v", m.err))
	}
}
