package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the core UI styles. The palette matches the GUI's built-in
// stylesheet: dark background, orange accent.
var Theme = struct {
	App       lipgloss.Style
	PaneTitle lipgloss.Style
	Dir       lipgloss.Style
	File      lipgloss.Style
	Cursor    lipgloss.Style
	Faint     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(0, 1),
	PaneTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFA500")),
	Dir: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#81A1C1")).
		Bold(true),
	File: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#D8DEE9")),
	Cursor: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#2A3540")).
		Bold(true),
	Faint: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#959595")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5555")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9")),
}

// TreePane frames the directory tree half of the screen.
var TreePane = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder(), false, true, false, false).
	BorderForeground(lipgloss.Color("#444444"))
