package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the report and the live view.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeChalkboard = Theme{
		Name:      "chalkboard",
		Primary:   lipgloss.Color("#7fdbca"),
		Secondary: lipgloss.Color("#c5e478"),
		Accent:    lipgloss.Color("#f78c6c"),
		Text:      lipgloss.Color("#eeeeee"),
		Muted:     lipgloss.Color("#667788"),
		Success:   lipgloss.Color("#addb67"),
		Warning:   lipgloss.Color("#ffcb6b"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemeChalkboard,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns the named theme, falling back to chalkboard.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeChalkboard
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
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

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Unit    lipgloss.Style
	Hint    lipgloss.Style
	Panel   lipgloss.Style
	Graph   lipgloss.Style
	Good    lipgloss.Style
	Warn    lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label: lipgloss.NewStyle().Foreground(t.Muted).Width(22),
		Value: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Unit:  lipgloss.NewStyle().Foreground(t.Muted),
		Hint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2),
		Graph:   lipgloss.NewStyle().Foreground(t.Secondary),
		Good:    lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
	}
}
