package tui

import "github.com/charmbracelet/lipgloss"

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	blue    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	orange  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
)

// regionStyles is ordered by precedence: when a position is in several
// regions the first match colors it.
var regionStyles = []struct {
	name  string
	style lipgloss.Style
}{
	{"swap", red},
	{"overwrite", magenta},
	{"answer", green},
	{"compare", yellow},
	{"active", yellow},
	{"cell", yellow},
	{"dest", orange},
	{"visit", blue},
	{"deps", blue},
	{"rejected", red},
	{"edge", yellow},
	{"tree", green},
	{"settled", green},
	{"range", cyan},
	{"merge", cyan},
	{"focus", white},
}

func stateStyle(state string) lipgloss.Style {
	switch state {
	case "running":
		return green
	case "paused", "ready":
		return yellow
	case "finished":
		return cyan
	}
	return dim
}
