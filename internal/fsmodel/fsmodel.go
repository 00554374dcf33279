// Package fsmodel provides the shared filesystem model the explorer views
// bind to. A Model lazily maps a rooted directory hierarchy to stable
// indexes, caches one listing per directory, and keeps listings ordered
// directories-first with natural name comparison. Listings honor a hidden
// file toggle and glob name filters, and a watcher can be attached so
// external changes invalidate the affected directory.
//
// A Model is safe for concurrent use.
package fsmodel

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gobwas/glob"

	"xplor/internal/errors"
	"xplor/internal/log"
	"xplor/internal/watch"
	"xplor/pkg/types"
)

// Index addresses one node in a Model. The zero Index is invalid, and an
// index is only meaningful to the model that produced it.
type Index struct {
	model *Model
	path  string
}

// Valid reports whether the index addresses a node.
func (ix Index) Valid() bool {
	return ix.model != nil && ix.path != ""
}

// String returns the indexed path for diagnostics.
func (ix Index) String() string {
	if !ix.Valid() {
		return "<invalid>"
	}
	return ix.path
}

// Options configure a Model.
type Options struct {
	// ShowHidden includes dotfiles in listings.
	ShowHidden bool
	// NameFilters are glob patterns applied to file names. Directories are
	// always listed. Empty means no filtering.
	NameFilters []string
	// FollowSymlinks resolves symlinked directories when listing.
	FollowSymlinks bool
}

// node is the cached state for one path. Nodes are created on first sight
// and never evicted, so indexes handed to the views stay resolvable even
// after the underlying entry disappears.
type node struct {
	entry     types.Entry
	children  []string
	populated bool
	lastErr   error
}

// Model maps filesystem paths under a fixed root to hierarchical nodes.
type Model struct {
	mu         sync.RWMutex
	root       string
	nodes      map[string]*node
	showHidden bool
	filters    []glob.Glob
	filterSrc  []string
	follow     bool
	watcher    *watch.Watcher
	onChange   func(dir string)
}

// New creates a model rooted at the given directory. An empty root means
// the filesystem root of the current volume.
func New(root string, opts Options) (*Model, error) {
	if root == "" {
		root = volumeRoot()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.NewFileError("invalid root", root, errors.InvalidPath, err)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("root not found", abs, errors.FileNotFound, err)
		}
		return nil, errors.NewFileError("cannot access root", abs, errors.FileAccessDenied, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("root is not a directory", abs, errors.NotADirectory, nil)
	}

	filters, err := compileFilters(opts.NameFilters)
	if err != nil {
		return nil, err
	}

	m := &Model{
		root:       abs,
		nodes:      make(map[string]*node),
		showHidden: opts.ShowHidden,
		filters:    filters,
		filterSrc:  append([]string(nil), opts.NameFilters...),
		follow:     opts.FollowSymlinks,
	}
	m.nodes[abs] = &node{entry: entryFromInfo(abs, info)}
	return m, nil
}

// volumeRoot is "/" on unix and the current drive root on windows.
func volumeRoot() string {
	if wd, err := os.Getwd(); err == nil {
		if vol := filepath.VolumeName(wd); vol != "" {
			return vol + string(filepath.Separator)
		}
	}
	return string(filepath.Separator)
}

func compileFilters(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid name filter %q", pattern)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func entryFromInfo(path string, info os.FileInfo) types.Entry {
	return types.Entry{
		Name:    filepath.Base(path),
		Path:    path,
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// Root returns the model's root path.
func (m *Model) Root() string {
	return m.root
}

// RootIndex returns the index of the model's root directory.
func (m *Model) RootIndex() Index {
	return Index{model: m, path: m.root}
}

// Index resolves a path to an index. Paths outside the root, and unseen
// paths that no longer exist on disk, yield the invalid Index.
func (m *Model) Index(path string) Index {
	if path == "" {
		return Index{}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Index{}
	}
	abs = filepath.Clean(abs)
	if !m.within(abs) {
		return Index{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ensureLocked(abs) == nil {
		return Index{}
	}
	return Index{model: m, path: abs}
}

// within reports whether path is the root or below it.
func (m *Model) within(path string) bool {
	if path == m.root {
		return true
	}
	prefix := m.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// ensureLocked returns the node for path, creating it from disk on first
// sight. Returns nil when the path was never seen and no longer exists.
func (m *Model) ensureLocked(path string) *node {
	if n, ok := m.nodes[path]; ok {
		return n
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	n := &node{entry: entryFromInfo(path, info)}
	m.nodes[path] = n
	return n
}

func (m *Model) owns(ix Index) bool {
	return ix.model == m && ix.path != ""
}

// Path returns the filesystem path the index addresses.
func (m *Model) Path(ix Index) string {
	if !m.owns(ix) {
		return ""
	}
	return ix.path
}

// Name returns the base name of the indexed path.
func (m *Model) Name(ix Index) string {
	if !m.owns(ix) {
		return ""
	}
	return filepath.Base(ix.path)
}

// IsDir reports whether the index addresses a directory.
func (m *Model) IsDir(ix Index) bool {
	if !m.owns(ix) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.ensureLocked(ix.path)
	return n != nil && n.entry.IsDir
}

// Entry returns the cached metadata for the index.
func (m *Model) Entry(ix Index) (types.Entry, bool) {
	if !m.owns(ix) {
		return types.Entry{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.ensureLocked(ix.path)
	if n == nil {
		return types.Entry{}, false
	}
	return n.entry, true
}

// Parent returns the parent index. The root has no parent.
func (m *Model) Parent(ix Index) Index {
	if !m.owns(ix) || ix.path == m.root {
		return Index{}
	}
	return Index{model: m, path: filepath.Dir(ix.path)}
}

// Children returns the sorted, filtered child indexes of a directory,
// reading it from disk on first access. A file index yields no children.
func (m *Model) Children(ix Index) []Index {
	if !m.owns(ix) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.ensureLocked(ix.path)
	if n == nil || !n.entry.IsDir {
		return nil
	}
	if !n.populated {
		m.populateLocked(ix.path, n)
	}
	out := make([]Index, len(n.children))
	for i, p := range n.children {
		out[i] = Index{model: m, path: p}
	}
	return out
}

// ChildCount returns the number of visible children of a directory,
// reading it from disk on first access.
func (m *Model) ChildCount(ix Index) int {
	if !m.owns(ix) {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.ensureLocked(ix.path)
	if n == nil || !n.entry.IsDir {
		return 0
	}
	if !n.populated {
		m.populateLocked(ix.path, n)
	}
	return len(n.children)
}

// LastError returns the error recorded when the directory was last read,
// or nil if the read succeeded.
func (m *Model) LastError(ix Index) error {
	if !m.owns(ix) {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n, ok := m.nodes[ix.path]; ok {
		return n.lastErr
	}
	return nil
}

// Refresh drops the cached listing of a directory so the next access
// re-reads it from disk.
func (m *Model) Refresh(ix Index) {
	if !m.owns(ix) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.nodes[ix.path]; ok {
		n.populated = false
		n.lastErr = nil
	}
}

// ShowHidden reports whether dotfiles are listed.
func (m *Model) ShowHidden() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.showHidden
}

// SetShowHidden toggles dotfile visibility and invalidates cached listings.
func (m *Model) SetShowHidden(show bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.showHidden == show {
		return
	}
	m.showHidden = show
	m.invalidateAllLocked()
}

// NameFilters returns the active glob patterns.
func (m *Model) NameFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.filterSrc...)
}

// SetNameFilters replaces the glob patterns applied to file names and
// invalidates cached listings. Directories are never filtered.
func (m *Model) SetNameFilters(patterns []string) error {
	filters, err := compileFilters(patterns)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = filters
	m.filterSrc = append([]string(nil), patterns...)
	m.invalidateAllLocked()
	return nil
}

func (m *Model) invalidateAllLocked() {
	for _, n := range m.nodes {
		if n.populated {
			n.populated = false
			n.lastErr = nil
		}
	}
}

// Watch attaches a watcher. Directories are registered as they are read,
// and events from the watcher invalidate the affected listing and fire the
// OnChange callback. The caller owns the watcher's lifecycle.
func (m *Model) Watch(w *watch.Watcher) {
	m.mu.Lock()
	m.watcher = w
	var dirs []string
	for path, n := range m.nodes {
		if n.populated {
			dirs = append(dirs, path)
		}
	}
	m.mu.Unlock()

	for _, dir := range dirs {
		if err := w.AddDirectory(dir); err != nil {
			log.Debugf("cannot watch %s: %v", dir, err)
		}
	}

	go func() {
		for ev := range w.Events() {
			m.dirChanged(ev.Dir)
		}
	}()
}

// OnChange registers the callback fired after a watched directory's cached
// listing is invalidated. The callback runs on the watcher's goroutine.
func (m *Model) OnChange(fn func(dir string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *Model) dirChanged(dir string) {
	m.mu.Lock()
	var fn func(string)
	if n, ok := m.nodes[dir]; ok && n.populated {
		n.populated = false
		n.lastErr = nil
		fn = m.onChange
	}
	m.mu.Unlock()
	if fn != nil {
		fn(dir)
	}
}

// populateLocked reads one directory level from disk, applying the hidden
// and name filters and sorting the result. The caller holds the write lock.
func (m *Model) populateLocked(dir string, n *node) {
	var (
		collectMu sync.Mutex
		found     []types.Entry
	)

	conf := &fastwalk.Config{Follow: m.follow}
	dirLen := len(dir)

	walkErr := fastwalk.Walk(conf, dir, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if fullPath == dir {
				return err
			}
			// Unreadable children are skipped, not fatal
			return nil
		}
		if fullPath == dir {
			return nil
		}

		// Only direct children; descend no further
		relStart := dirLen
		if relStart < len(fullPath) && os.IsPathSeparator(fullPath[relStart]) {
			relStart++
		}
		if strings.ContainsRune(fullPath[relStart:], filepath.Separator) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Broken symlinks still get listed with lstat metadata
			info, err = os.Lstat(fullPath)
			if err != nil {
				return nil
			}
		}

		collectMu.Lock()
		found = append(found, types.Entry{
			Name:    d.Name(),
			Path:    fullPath,
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		collectMu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})

	if walkErr != nil {
		n.children = nil
		n.populated = true
		n.lastErr = errors.NewFileError("cannot read directory", dir, errors.ReadFailed, walkErr)
		log.LogWithError(n.lastErr).Warn("directory listing failed")
		return
	}

	visible := found[:0]
	for _, e := range found {
		if !m.showHidden && e.IsHidden() {
			continue
		}
		if !e.IsDir && !m.matchesLocked(e.Name) {
			continue
		}
		visible = append(visible, e)
	}
	sortEntries(visible)

	children := make([]string, len(visible))
	for i, e := range visible {
		children[i] = e.Path
		if existing, ok := m.nodes[e.Path]; ok {
			existing.entry = e
		} else {
			m.nodes[e.Path] = &node{entry: e}
		}
	}
	n.children = children
	n.populated = true
	n.lastErr = nil

	if m.watcher != nil {
		if err := m.watcher.AddDirectory(dir); err != nil {
			log.Debugf("cannot watch %s: %v", dir, err)
		}
	}
}

// matchesLocked reports whether a file name passes the active filters.
func (m *Model) matchesLocked(name string) bool {
	if len(m.filters) == 0 {
		return true
	}
	for _, g := range m.filters {
		if g.Match(name) {
			return true
		}
	}
	return false
}
