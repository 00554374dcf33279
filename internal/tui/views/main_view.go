package views

import (
	"github.com/charmbracelet/lipgloss"

	"xplor/internal/tui/common"
	"xplor/internal/tui/styles"
)

// RenderMainView lays out the explorer screen: tree and entries side by
// side, the status line underneath, key hints at the bottom.
func RenderMainView(m common.ModelReader) string {
	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.TreePane.Render(m.TreePane()),
		m.EntryPane(),
	)

	return styles.Theme.App.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		panes,
		m.StatusPane(),
		styles.Theme.Help.Render(m.HelpPane()),
	))
}
