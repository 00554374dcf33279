// Package watch monitors directories for content changes using fsnotify and
// reports them at directory granularity: every event is mapped to the
// directory whose listing it invalidates.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"xplor/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DirEvent reports that the contents of Dir changed
type DirEvent struct {
	Dir       string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors directories for file changes using fsnotify
type Watcher struct {
	// Directories being watched
	directories []string

	// Channel delivering directory change events
	events chan DirEvent

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Lock for running state and the directories list
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a new directory watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		directories: []string{},
		events:      make(chan DirEvent, 16),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory adds a directory to watch. Adding a directory twice is a no-op.
func (w *Watcher) AddDirectory(dir string) error {
	// Check if directory exists
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	for _, existing := range w.directories {
		if existing == dir {
			w.mutex.Unlock()
			return nil
		}
	}
	w.directories = append(w.directories, dir)
	w.mutex.Unlock()

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	log.LogWithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// RemoveDirectory stops watching a directory. Removing an unwatched
// directory is a no-op.
func (w *Watcher) RemoveDirectory(dir string) {
	w.mutex.Lock()
	kept := w.directories[:0]
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	w.directories = kept
	w.mutex.Unlock()

	if found {
		// The kernel watch may already be gone if the directory was deleted
		_ = w.fsWatcher.Remove(dir)
	}
}

// Events returns the channel that delivers directory change events.
// The channel is closed when the watcher stops.
func (w *Watcher) Events() <-chan DirEvent {
	return w.events
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}

func (w *Watcher) isWatched(path string) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	for _, dir := range w.directories {
		if dir == path {
			return true
		}
	}
	return false
}

// Start begins the event loop. A stopped watcher cannot be restarted.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go func() {
		log.Debug("watcher event loop started")
		defer close(w.events)

		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				// Permission-only changes don't affect listings
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
					!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
					continue
				}

				// An event naming a watched directory means that directory
				// itself changed; anything else invalidates its parent.
				dir := filepath.Dir(event.Name)
				if w.isWatched(event.Name) {
					dir = event.Name
				}

				ev := DirEvent{Dir: dir, Op: event.Op, Timestamp: time.Now()}

				// Send without blocking; a full channel drops the event
				select {
				case w.events <- ev:
				default:
					log.LogWithFields(log.F("directory", dir)).Warn("event channel is full, dropped event")
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop halts the event loop. The events channel closes once the loop exits.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}
	w.running = false

	// Signal the event processing goroutine to stop
	close(w.stopChan)

	// Close the underlying fsnotify watcher
	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("error closing fsnotify watcher")
	}
}
