package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"xplor/internal/tui/styles"
	"xplor/pkg/types"
)

// entryItem adapts a directory entry to the bubbles list item interface.
type entryItem struct {
	entry types.Entry
}

func (i entryItem) Title() string {
	if i.entry.IsDir {
		return i.entry.Name + "/"
	}
	return i.entry.Name
}

func (i entryItem) Description() string {
	if i.entry.IsDir {
		return "directory"
	}
	return fmt.Sprintf("%s  %s",
		humanize.Bytes(uint64(i.entry.Size)),
		i.entry.ModTime.Format("2006-01-02 15:04"))
}

func (i entryItem) FilterValue() string { return i.entry.Name }

// EntryList is the entries pane: a read-only listing of the directory the
// tree cursor points into, with humanized sizes and modification times.
type EntryList struct {
	list list.Model
	dir  string
}

// NewEntryList creates an empty entries pane.
func NewEntryList() *EntryList {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.NormalTitle
	delegate.Styles.SelectedDesc = delegate.Styles.NormalDesc

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.Styles.Title = styles.Theme.PaneTitle
	l.Styles.NoItems = styles.Theme.Faint

	return &EntryList{list: l}
}

// SetEntries replaces the listing with the entries of dir.
func (el *EntryList) SetEntries(dir string, entries []types.Entry) {
	el.dir = dir
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	el.list.SetItems(items)
	el.list.Title = dir
	el.list.ResetSelected()
}

// CurrentDir returns the directory the pane is listing.
func (el *EntryList) CurrentDir() string {
	return el.dir
}

// Entries returns the listed entries in display order.
func (el *EntryList) Entries() []types.Entry {
	items := el.list.Items()
	entries := make([]types.Entry, 0, len(items))
	for _, it := range items {
		if ei, ok := it.(entryItem); ok {
			entries = append(entries, ei.entry)
		}
	}
	return entries
}

// SetSize sets the pane dimensions in cells.
func (el *EntryList) SetSize(width, height int) {
	el.list.SetWidth(width)
	el.list.SetHeight(height)
}

// Update forwards messages to the embedded list for paging state.
func (el *EntryList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	el.list, cmd = el.list.Update(msg)
	return cmd
}

// View renders the pane.
func (el *EntryList) View() string {
	return lipgloss.NewStyle().Padding(0, 1).Render(el.list.View())
}
