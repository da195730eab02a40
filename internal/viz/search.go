package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bisect/internal/search"
)

// SearchModel replays a traced discrete search. Each key press reveals the
// next comparison; the live segment is marked L, M and R under the values.
type SearchModel struct {
	values []int
	x      int
	report search.Report

	phase, step   int
	finished      bool
	width, height int
	styles        Styles
}

func NewSearchModel(values []int, x int, report search.Report, theme Theme) SearchModel {
	return SearchModel{
		values: values,
		x:      x,
		report: report,
		width:  100,
		height: 28,
		styles: NewStyles(theme),
	}
}

func (m SearchModel) Init() tea.Cmd { return nil }

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter", " ", "n", "right", "l":
			m = m.next()
		case "b", "left", "h":
			m = m.prev()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m SearchModel) next() SearchModel {
	if m.finished || len(m.report.Phases) == 0 {
		m.finished = true
		return m
	}
	if m.step < len(m.report.Phases[m.phase].Steps)-1 {
		m.step++
	} else if m.phase < len(m.report.Phases)-1 {
		m.phase, m.step = m.phase+1, 0
	} else {
		m.finished = true
	}
	return m
}

func (m SearchModel) prev() SearchModel {
	switch {
	case m.finished:
		m.finished = false
	case m.step > 0:
		m.step--
	case m.phase > 0:
		m.phase--
		m.step = len(m.report.Phases[m.phase].Steps) - 1
	}
	return m
}

// Position returns the phase and step indices being shown.
func (m SearchModel) Position() (int, int) { return m.phase, m.step }

func (m SearchModel) Finished() bool { return m.finished }

func (m SearchModel) View() string {
	s := m.styles
	var b strings.Builder

	if m.finished || len(m.report.Phases) == 0 {
		b.WriteString(s.Title.Render(fmt.Sprintf("%s of %d: result", m.report.Algorithm, m.x)))
		b.WriteString("\n\n")
		if len(m.values) == 0 {
			b.WriteString(s.Muted.Render("the list is empty") + "\n")
		}
		b.WriteString(s.Good.Render("=> "+m.report.Summary()) + "\n\n")
		b.WriteString(s.Key.Render("b back · q quit") + "\n")
		return b.String()
	}

	ph := m.report.Phases[m.phase]
	st := ph.Steps[m.step]
	b.WriteString(s.Title.Render(fmt.Sprintf("%s, step %d/%d", ph.Title, m.step+1, len(ph.Steps))))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("L=left  M=mid  R=right") + "\n")
	b.WriteString(s.Separator(min(m.width, 100)) + "\n")
	b.WriteString(RenderCells(m.values, st, m.width, s))
	b.WriteString(s.Separator(min(m.width, 100)) + "\n")
	b.WriteString(st.Explanation + "\n\n")
	b.WriteString(s.Key.Render("enter next · b back · q quit") + "\n")
	return b.String()
}

// RenderCells draws the visible window of values with their indices and
// the pointer markers of st.
func RenderCells(values []int, st search.Step, cols int, s Styles) string {
	i0, i1 := search.Window(len(values), st.Left, st.Right, cols)
	if i1 < i0 {
		return s.Muted.Render("[]") + "\n"
	}

	var vals, idx, marks []string
	for i := i0; i <= i1; i++ {
		cell := fmt.Sprintf("[%d]", values[i])
		w := max(len(cell), 4)
		inSegment := i >= st.Left && i <= st.Right
		pad := fmt.Sprintf("%-*s", w, cell)
		switch {
		case i == st.Mid:
			pad = s.Highlight.Render(pad)
		case !inSegment:
			pad = s.Muted.Render(pad)
		}
		vals = append(vals, pad)
		idx = append(idx, fmt.Sprintf("%-*d", w, i))
		marks = append(marks, fmt.Sprintf("%-*s", w, search.Marker(i, st)))
	}

	var b strings.Builder
	b.WriteString(strings.Join(vals, " ") + "\n")
	b.WriteString(s.Muted.Render(strings.Join(idx, " ")) + "\n")
	b.WriteString(strings.Join(marks, " ") + "\n")
	return b.String()
}
