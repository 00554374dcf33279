package types

import (
	"fmt"
	"os"
	"time"
)

// Entry describes one file or directory known to the explorer model.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// String returns a human-readable representation
func (e Entry) String() string {
	kind := "file"
	if e.IsDir {
		kind = "dir"
	}
	return fmt.Sprintf("%s (%s, %d bytes)", e.Path, kind, e.Size)
}

// IsSymlink checks if the entry is a symbolic link
func (e Entry) IsSymlink() bool {
	info, err := os.Lstat(e.Path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSymlink != 0
}

// IsHidden reports whether the entry is a dotfile
func (e Entry) IsHidden() bool {
	return len(e.Name) > 0 && e.Name[0] == '.'
}
