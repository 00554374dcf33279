package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"xplor/internal/fsmodel"
	"xplor/internal/tui/common"
	"xplor/internal/tui/styles"
)

// FileTree is the directory tree pane. It renders the hierarchy below a
// root index of the shared filesystem model, one row per visible node,
// with a cursor and per-directory expansion state.
type FileTree struct {
	fs       *fsmodel.Model
	root     fsmodel.Index
	expanded map[string]bool
	rows     []common.Row

	cursor int
	offset int
	width  int
	height int
}

// NewFileTree creates a tree pane rooted at the given index. The root
// starts expanded so its listing is visible immediately.
func NewFileTree(fs *fsmodel.Model, root fsmodel.Index) *FileTree {
	t := &FileTree{
		fs:       fs,
		root:     root,
		expanded: make(map[string]bool),
		width:    40,
		height:   20,
	}
	t.expanded[fs.Path(root)] = true
	return t
}

// SetSize sets the pane dimensions in cells.
func (t *FileTree) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// Root returns the index the tree is rooted at.
func (t *FileTree) Root() fsmodel.Index {
	return t.root
}

// SetRoot re-roots the tree, discarding cursor and expansion state.
func (t *FileTree) SetRoot(ix fsmodel.Index) {
	if !ix.Valid() {
		return
	}
	t.root = ix
	t.expanded = map[string]bool{t.fs.Path(ix): true}
	t.cursor = 0
	t.offset = 0
	t.Rebuild()
}

// Rebuild recomputes the visible rows from the model and the expansion
// state. Call it after anything that can change a listing.
func (t *FileTree) Rebuild() {
	t.rows = t.rows[:0]
	t.addRows(t.root, 0)
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

func (t *FileTree) addRows(ix fsmodel.Index, depth int) {
	path := t.fs.Path(ix)
	isDir := t.fs.IsDir(ix)
	open := isDir && t.expanded[path]
	t.rows = append(t.rows, common.Row{
		Path:     path,
		Name:     t.fs.Name(ix),
		Depth:    depth,
		IsDir:    isDir,
		Expanded: open,
	})
	if !open {
		return
	}
	for _, child := range t.fs.Children(ix) {
		t.addRows(child, depth+1)
	}
}

// Rows returns the visible rows, top to bottom.
func (t *FileTree) Rows() []common.Row {
	return t.rows
}

// Cursor returns the cursor position within Rows.
func (t *FileTree) Cursor() int {
	return t.cursor
}

// Current returns the row under the cursor.
func (t *FileTree) Current() (common.Row, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return common.Row{}, false
	}
	return t.rows[t.cursor], true
}

// CurrentDir returns the directory the cursor points into: the row itself
// for directories, its parent for files.
func (t *FileTree) CurrentDir() string {
	row, ok := t.Current()
	if !ok {
		return t.fs.Path(t.root)
	}
	if row.IsDir {
		return row.Path
	}
	return t.fs.Path(t.fs.Parent(t.fs.Index(row.Path)))
}

// MoveUp moves the cursor up one row.
func (t *FileTree) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.ensureCursorVisible()
}

// MoveDown moves the cursor down one row.
func (t *FileTree) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
	t.ensureCursorVisible()
}

// MoveTop moves the cursor to the first row.
func (t *FileTree) MoveTop() {
	t.cursor = 0
	t.ensureCursorVisible()
}

// MoveBottom moves the cursor to the last row.
func (t *FileTree) MoveBottom() {
	if len(t.rows) > 0 {
		t.cursor = len(t.rows) - 1
	}
	t.ensureCursorVisible()
}

// Descend expands the directory under the cursor and steps onto its first
// child. It reports whether the cursor row was a directory.
func (t *FileTree) Descend() bool {
	row, ok := t.Current()
	if !ok || !row.IsDir {
		return false
	}
	if !t.expanded[row.Path] {
		t.expanded[row.Path] = true
		t.Rebuild()
	}
	if t.cursor+1 < len(t.rows) && t.rows[t.cursor+1].Depth > row.Depth {
		t.cursor++
		t.ensureCursorVisible()
	}
	return true
}

// Ascend collapses the expanded directory under the cursor, or moves the
// cursor to the parent row. The root row stays put.
func (t *FileTree) Ascend() {
	row, ok := t.Current()
	if !ok {
		return
	}
	if row.IsDir && row.Expanded && t.cursor > 0 {
		delete(t.expanded, row.Path)
		t.Rebuild()
		return
	}
	// Walk up to the nearest shallower row
	for i := t.cursor - 1; i >= 0; i-- {
		if t.rows[i].Depth < row.Depth {
			t.cursor = i
			break
		}
	}
	t.ensureCursorVisible()
}

func (t *FileTree) ensureCursorVisible() {
	if t.height <= 0 {
		return
	}
	visible := t.height - 2 // scroll indicator lines
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+visible {
		t.offset = t.cursor - visible + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
	if maxOffset := len(t.rows) - visible; t.offset > maxOffset && maxOffset >= 0 {
		t.offset = maxOffset
	}
}

// View renders the visible window of the tree.
func (t *FileTree) View() string {
	if len(t.rows) == 0 {
		return styles.Theme.Faint.Render("no entries")
	}

	var b strings.Builder
	start := t.offset
	end := start + t.height - 2
	if end > len(t.rows) {
		end = len(t.rows)
	}

	if start > 0 {
		b.WriteString(styles.Theme.Faint.Render("↑ more ↑") + "\n")
	}

	for i := start; i < end; i++ {
		row := t.rows[i]

		indent := strings.Repeat("  ", row.Depth)
		if row.Depth > 0 {
			connector := "├─ "
			if i == len(t.rows)-1 || t.rows[i+1].Depth < row.Depth {
				connector = "└─ "
			}
			indent = strings.Repeat("  ", row.Depth-1) + connector
		}

		marker := "  "
		if row.IsDir {
			marker = "▸ "
			if row.Expanded {
				marker = "▾ "
			}
		}

		line := indent + marker + row.Name
		if w := lipgloss.Width(line); w > t.width && t.width > 3 {
			line = truncateLine(line, t.width-1) + "…"
		}

		switch {
		case i == t.cursor:
			line = styles.Theme.Cursor.Render(line)
		case row.IsDir:
			line = styles.Theme.Dir.Render(line)
		default:
			line = styles.Theme.File.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if end < len(t.rows) {
		b.WriteString(styles.Theme.Faint.Render("↓ more ↓") + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
