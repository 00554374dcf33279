package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"xplor/internal/tui/styles"
)

// StatusBar is the footer line: the listed directory on the left, a
// transient notice on the right, and a spinner while a listing loads.
type StatusBar struct {
	path    string
	text    string
	spinner spinner.Model
	loading bool
	width   int
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Theme.Status

	return &StatusBar{spinner: s}
}

// SetPath sets the directory shown on the left.
func (s *StatusBar) SetPath(path string) {
	s.path = path
}

// SetText sets the notice shown on the right.
func (s *StatusBar) SetText(text string) {
	s.text = text
}

func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// Tick starts the spinner animation.
func (s *StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	left := styles.Theme.Status.Render(s.path)
	right := styles.Theme.Status.Render(s.text)
	if s.loading {
		right = styles.Theme.Status.Render(s.spinner.View() + " " + s.text)
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(
		left + lipgloss.NewStyle().Width(gap).Render("") + right)
}
