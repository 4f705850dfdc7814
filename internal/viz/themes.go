package viz

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Wheel     lipgloss.Color
	Pointer   lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:      "neon",
		Wheel:     lipgloss.Color("#00ffff"),
		Pointer:   lipgloss.Color("#ff00ff"),
		Highlight: lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Warning:   lipgloss.Color("#ff8800"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Wheel:     lipgloss.Color("#00ff00"),
		Pointer:   lipgloss.Color("#88ff88"),
		Highlight: lipgloss.Color("#ccffcc"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Wheel:     lipgloss.Color("#ff6b6b"),
		Pointer:   lipgloss.Color("#feca57"),
		Highlight: lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Warning:   lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{ThemeNeon, ThemeRetro, ThemeSunset}
)

// GetTheme falls back to the first theme for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after cur, cycling.
func NextTheme(cur Theme) Theme {
	for i, t := range Themes {
		if t.Name == cur.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

type styles struct {
	wheel, pointer, highlight, text, muted, warning, panel, header lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		wheel:     lipgloss.NewStyle().Foreground(t.Wheel),
		pointer:   lipgloss.NewStyle().Foreground(t.Pointer).Bold(true),
		highlight: lipgloss.NewStyle().Foreground(t.Highlight).Bold(true),
		text:      lipgloss.NewStyle().Foreground(t.Text),
		muted:     lipgloss.NewStyle().Foreground(t.Muted),
		warning:   lipgloss.NewStyle().Foreground(t.Warning).Italic(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(36),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted).
			MarginBottom(1),
	}
}
