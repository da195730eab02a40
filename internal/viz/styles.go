package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	Highlight lipgloss.Style
	Good      lipgloss.Style
	Warn      lipgloss.Style
	Bad       lipgloss.Style
	Panel     lipgloss.Style
	Key       lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:     lipgloss.NewStyle().Foreground(t.Muted),
		Value:     lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Highlight: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Good:      lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Warn:      lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Bad:       lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Key: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
	}
}

// ProgressBar renders fraction in [0, 1] as a bar of width cells.
func (s Styles) ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case fraction > 0.8:
		return s.Good.Render(bar)
	case fraction > 0.4:
		return s.Warn.Render(bar)
	default:
		return s.Bad.Render(bar)
	}
}

func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Muted.Render(strings.Repeat("─", max(0, width)))
	}
	mid := width / 2
	return s.Muted.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// KV renders a label: value pair.
func (s Styles) KV(label, value string) string {
	return s.Label.Render(label+": ") + s.Value.Render(value)
}
