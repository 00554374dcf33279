// Package tui implements the terminal explorer: a directory tree pane and
// an entries pane over the same filesystem model the GUI uses, driven by a
// bubbletea update loop.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"xplor/internal/config"
	"xplor/internal/fsmodel"
	"xplor/internal/locations"
	"xplor/internal/log"
	"xplor/internal/tui/components"
	"xplor/internal/tui/messages"
	"xplor/internal/tui/views"
	"xplor/internal/watch"
	"xplor/pkg/types"
)

// Options adjust explorer startup.
type Options struct {
	// Root is the directory the model is rooted at. Empty means the
	// filesystem root.
	Root string
}

// Model is the terminal explorer. Navigation happens in the tree pane;
// the entries pane follows the tree cursor's directory.
type Model struct {
	fs       *fsmodel.Model
	resolver *locations.Resolver
	cfg      *config.Config

	keys    keyMap
	help    help.Model
	tree    *components.FileTree
	entries *components.EntryList
	status  *components.StatusBar

	width    int
	height   int
	showHelp bool
	loading  bool
}

// New creates the terminal explorer over a fresh filesystem model.
func New(cfg *config.Config, opts Options) (*Model, error) {
	fs, err := fsmodel.New(opts.Root, fsmodel.Options{
		ShowHidden:  cfg.View.ShowHidden,
		NameFilters: cfg.View.NameFilters,
	})
	if err != nil {
		return nil, err
	}

	m := &Model{
		fs:       fs,
		resolver: locations.NewResolver(cfg.Locations),
		cfg:      cfg,
		keys:     defaultKeyMap(),
		help:     help.New(),
		tree:     components.NewFileTree(fs, fs.RootIndex()),
		entries:  components.NewEntryList(),
		status:   components.NewStatusBar(),
	}
	m.tree.Rebuild()
	return m, nil
}

// Run launches the explorer and blocks until it quits. External directory
// changes reach the update loop through the watcher.
func Run(cfg *config.Config, opts Options) error {
	m, err := New(cfg, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if w, err := watch.New(); err != nil {
		log.Errorf("Failed to create filesystem watcher: %v", err)
	} else {
		m.fs.OnChange(func(dir string) {
			p.Send(messages.WatchMsg{Dir: dir})
		})
		m.fs.Watch(w)
		if err := w.Start(); err != nil {
			log.Errorf("Failed to start filesystem watcher: %v", err)
		}
		defer w.Stop()
	}

	_, err = p.Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadListing(m.tree.CurrentDir())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case messages.ListingMsg:
		return m.handleListing(msg)

	case messages.WatchMsg:
		// Re-list only when the changed directory is in view
		m.tree.Rebuild()
		if msg.Dir == m.tree.CurrentDir() {
			return m, m.loadListing(msg.Dir)
		}
		return m, nil
	}

	return m, m.status.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.tree.MoveUp()
		return m, m.loadListing(m.tree.CurrentDir())

	case key.Matches(msg, m.keys.Down):
		m.tree.MoveDown()
		return m, m.loadListing(m.tree.CurrentDir())

	case key.Matches(msg, m.keys.Top):
		m.tree.MoveTop()
		return m, m.loadListing(m.tree.CurrentDir())

	case key.Matches(msg, m.keys.Bottom):
		m.tree.MoveBottom()
		return m, m.loadListing(m.tree.CurrentDir())

	case key.Matches(msg, m.keys.Descend):
		if m.tree.Descend() {
			return m, m.loadListing(m.tree.CurrentDir())
		}
		// A file shows its details instead
		if row, ok := m.tree.Current(); ok {
			if entry, ok := m.fs.Entry(m.fs.Index(row.Path)); ok && !entry.IsDir {
				m.status.SetText(fmt.Sprintf("%s (%s)", entry.Name, humanize.Bytes(uint64(entry.Size))))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Ascend):
		m.tree.Ascend()
		return m, m.loadListing(m.tree.CurrentDir())

	case key.Matches(msg, m.keys.ToggleHidden):
		m.fs.SetShowHidden(!m.fs.ShowHidden())
		m.cfg.View.ShowHidden = m.fs.ShowHidden()
		m.tree.Rebuild()
		return m, m.loadListing(m.tree.CurrentDir())

	case key.Matches(msg, m.keys.Refresh):
		m.fs.Refresh(m.tree.Root())
		m.fs.Refresh(m.fs.Index(m.tree.CurrentDir()))
		m.tree.Rebuild()
		return m, m.loadListing(m.tree.CurrentDir())

	case key.Matches(msg, m.keys.Jump):
		return m, m.jumpTo(msg.String())
	}

	return m, nil
}

// jumpTo re-roots the tree at one of the six standard locations. A
// location that resolves to nothing leaves the current root unchanged.
func (m *Model) jumpTo(digit string) tea.Cmd {
	all := locations.All()
	i := int(digit[0] - '1')
	if i < 0 || i >= len(all) {
		return nil
	}
	loc := all[i]

	path, ok := m.resolver.First(loc)
	if !ok {
		log.LogWithFields(log.F("location", string(loc))).Warn("location did not resolve to an existing directory")
		m.status.SetText(fmt.Sprintf("%s is not available on this system", loc.Title()))
		return nil
	}

	ix := m.fs.Index(path)
	if !ix.Valid() {
		m.status.SetText(fmt.Sprintf("%s is outside the current root", loc.Title()))
		return nil
	}

	m.tree.SetRoot(ix)
	return m.loadListing(path)
}

// loadListing reads one directory asynchronously and reports the result
// as a ListingMsg.
func (m *Model) loadListing(dir string) tea.Cmd {
	m.loading = true
	m.status.SetLoading(true)

	fs := m.fs
	load := func() tea.Msg {
		ix := fs.Index(dir)
		children := fs.Children(ix)
		entries := make([]types.Entry, 0, len(children))
		for _, child := range children {
			if entry, ok := fs.Entry(child); ok {
				entries = append(entries, entry)
			}
		}
		return messages.ListingMsg{Dir: dir, Entries: entries, Err: fs.LastError(ix)}
	}
	return tea.Batch(m.status.Tick(), load)
}

func (m *Model) handleListing(msg messages.ListingMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.status.SetLoading(false)
	m.tree.Rebuild()

	// Stale results for directories the cursor has left are ignored
	if msg.Dir != m.tree.CurrentDir() {
		return m, nil
	}

	m.entries.SetEntries(msg.Dir, msg.Entries)
	m.status.SetPath(msg.Dir)
	switch {
	case msg.Err != nil:
		m.status.SetText("directory is not readable")
	case len(msg.Entries) == 1:
		m.status.SetText("1 item")
	default:
		m.status.SetText(fmt.Sprintf("%s items", humanize.Comma(int64(len(msg.Entries)))))
	}
	return m, nil
}

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	treeWidth := m.width * 2 / 5
	paneHeight := m.height - 3 // status and help lines
	m.tree.SetSize(treeWidth, paneHeight)
	m.entries.SetSize(m.width-treeWidth-2, paneHeight)
	m.status.SetWidth(m.width)
	m.help.Width = m.width
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// CurrentDir returns the directory the entries pane follows.
func (m *Model) CurrentDir() string {
	return m.tree.CurrentDir()
}

// Root returns the tree root path.
func (m *Model) Root() string {
	return m.fs.Path(m.tree.Root())
}

// Cursor returns the tree cursor position.
func (m *Model) Cursor() int {
	return m.tree.Cursor()
}

// ShowHelp reports whether the expanded help is visible.
func (m *Model) ShowHelp() bool {
	return m.showHelp
}

// ShowHidden reports whether hidden entries are listed.
func (m *Model) ShowHidden() bool {
	return m.fs.ShowHidden()
}

// Loading reports whether a listing load is in flight.
func (m *Model) Loading() bool {
	return m.loading
}

// Entries returns what the entries pane currently lists.
func (m *Model) Entries() []types.Entry {
	return m.entries.Entries()
}

// TreePane renders the directory tree half of the screen.
func (m *Model) TreePane() string {
	return m.tree.View()
}

// EntryPane renders the entries half of the screen.
func (m *Model) EntryPane() string {
	return m.entries.View()
}

// StatusPane renders the footer line.
func (m *Model) StatusPane() string {
	return m.status.View()
}

// HelpPane renders the key hints.
func (m *Model) HelpPane() string {
	return m.help.View(m.keys)
}

// Size returns the terminal dimensions.
func (m *Model) Size() (int, int) {
	return m.width, m.height
}
