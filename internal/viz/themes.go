package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the TUI and the styled CLI output.
// Primary marks the low end of a bracket, Secondary the high end and
// Accent the midpoint being evaluated.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:      "default",
		Primary:   lipgloss.Color("#5fafd7"), // steel blue
		Secondary: lipgloss.Color("#d7875f"), // clay
		Accent:    lipgloss.Color("#ffd75f"),
		Text:      lipgloss.Color("#e4e4e4"),
		Muted:     lipgloss.Color("#6c7a89"),
		Success:   lipgloss.Color("#87d787"),
		Warning:   lipgloss.Color("#ffaf5f"),
		Error:     lipgloss.Color("#e5534b"),
	}

	ThemeMatrix = Theme{
		Name:      "matrix",
		Primary:   lipgloss.Color("#3cf281"),
		Secondary: lipgloss.Color("#1f9d55"),
		Accent:    lipgloss.Color("#d4ffe4"),
		Text:      lipgloss.Color("#9cf5bd"),
		Muted:     lipgloss.Color("#2e5e40"),
		Success:   lipgloss.Color("#b8ff5c"),
		Warning:   lipgloss.Color("#e6d85c"),
		Error:     lipgloss.Color("#f25c5c"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#d0d0d0"),
		Secondary: lipgloss.Color("#9e9e9e"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#eeeeee"),
		Muted:     lipgloss.Color("#626262"),
		Success:   lipgloss.Color("#bcbcbc"),
		Warning:   lipgloss.Color("#a8a8a8"),
		Error:     lipgloss.Color("#808080"),
	}

	// ThemeChalk looks like a lecture blackboard.
	ThemeChalk = Theme{
		Name:      "chalk",
		Primary:   lipgloss.Color("#a7d8f0"),
		Secondary: lipgloss.Color("#f4b6c2"),
		Accent:    lipgloss.Color("#fff3a8"),
		Text:      lipgloss.Color("#f2f2ea"),
		Muted:     lipgloss.Color("#7d8c83"),
		Success:   lipgloss.Color("#b5e8a0"),
		Warning:   lipgloss.Color("#f7cf8a"),
		Error:     lipgloss.Color("#f08a8a"),
	}

	ThemeContrast = Theme{
		Name:      "contrast",
		Primary:   lipgloss.Color("#0087ff"),
		Secondary: lipgloss.Color("#ff8700"),
		Accent:    lipgloss.Color("#ffff87"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#8a8a8a"),
		Success:   lipgloss.Color("#00d75f"),
		Warning:   lipgloss.Color("#ffd700"),
		Error:     lipgloss.Color("#ff005f"),
	}

	Themes = []Theme{
		ThemeDefault,
		ThemeMatrix,
		ThemeMono,
		ThemeChalk,
		ThemeContrast,
	}
)

// GetTheme returns the named theme, or ThemeDefault.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
