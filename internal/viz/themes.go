package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a background for the attractor plus the panel colors that read
// well on it.
type Theme struct {
	Name       string
	Background string
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
}

// Available themes
var (
	ThemeMidnight = Theme{
		Name:       "midnight",
		Background: "#000000",
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Accent:     lipgloss.Color("#00ffff"),
	}

	ThemeInk = Theme{
		Name:       "ink",
		Background: "#0a0a12",
		Text:       lipgloss.Color("#e0e0f0"),
		Muted:      lipgloss.Color("#666688"),
		Accent:     lipgloss.Color("#ff00ff"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: "#001a33",
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: "#2d1b2e",
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Accent:     lipgloss.Color("#feca57"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Background: "#f4f1ea",
		Text:       lipgloss.Color("#222222"),
		Muted:      lipgloss.Color("#888888"),
		Accent:     lipgloss.Color("#0077be"),
	}

	Themes = []Theme{
		ThemeMidnight,
		ThemeInk,
		ThemeOcean,
		ThemeSunset,
		ThemePaper,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeMidnight, false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the index after the theme called name.
func nextTheme(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return (i + 1) % len(Themes)
		}
	}
	return 0
}
