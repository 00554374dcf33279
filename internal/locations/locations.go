// Package locations maps the closed set of shortcut location names to
// platform directories. Resolution is an explicit static table per platform;
// a location resolves to zero or more existing paths and callers must treat
// an empty result as "do not navigate".
package locations

import (
	"os"
	"strings"
)

// Location identifies one standard shortcut location.
type Location string

// The closed set of locations, in toolbar order.
const (
	Home      Location = "home"
	Desktop   Location = "desktop"
	Documents Location = "documents"
	Movies    Location = "movies"
	Pictures  Location = "pictures"
	Music     Location = "music"
)

// All returns the locations in toolbar order.
func All() []Location {
	return []Location{Home, Desktop, Documents, Movies, Pictures, Music}
}

// Parse maps a name to a known Location.
func Parse(name string) (Location, bool) {
	switch loc := Location(strings.ToLower(name)); loc {
	case Home, Desktop, Documents, Movies, Pictures, Music:
		return loc, true
	}
	return "", false
}

// Title returns the display label for the location ("documents" -> "Documents").
func (l Location) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// IconName returns the bundled icon file name for the location.
func (l Location) IconName() string {
	return string(l) + ".svg"
}

// Resolver resolves locations to absolute directory paths.
type Resolver struct {
	home      string
	overrides map[Location]string
}

// NewResolver creates a resolver. Overrides map location names to explicit
// paths and short-circuit platform resolution; unknown names are ignored
// (configuration validates them before they get here).
func NewResolver(overrides map[string]string) *Resolver {
	home, _ := os.UserHomeDir()
	ovr := make(map[Location]string, len(overrides))
	for name, dir := range overrides {
		if loc, ok := Parse(name); ok {
			ovr[loc] = dir
		}
	}
	return &Resolver{home: home, overrides: ovr}
}

// Resolve returns the existing candidate paths for loc, best first. The
// result may be empty.
func (r *Resolver) Resolve(loc Location) []string {
	if dir, ok := r.overrides[loc]; ok {
		if isDir(dir) {
			return []string{dir}
		}
		return nil
	}
	if r.home == "" {
		return nil
	}
	if loc == Home {
		if isDir(r.home) {
			return []string{r.home}
		}
		return nil
	}
	var out []string
	for _, dir := range platformCandidates(r.home, loc) {
		if isDir(dir) && !containsPath(out, dir) {
			out = append(out, dir)
		}
	}
	return out
}

// First returns the first resolved path for loc, reporting whether one exists.
func (r *Resolver) First(loc Location) (string, bool) {
	paths := r.Resolve(loc)
	if len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func containsPath(list []string, path string) bool {
	for _, p := range list {
		if p == path {
			return true
		}
	}
	return false
}
