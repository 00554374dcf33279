//go:build linux

package locations

import (
	"os"
	"path/filepath"
	"strings"
)

var xdgKeys = map[Location]string{
	Desktop:   "XDG_DESKTOP_DIR",
	Documents: "XDG_DOCUMENTS_DIR",
	Movies:    "XDG_VIDEOS_DIR",
	Pictures:  "XDG_PICTURES_DIR",
	Music:     "XDG_MUSIC_DIR",
}

var conventionalNames = map[Location][]string{
	Desktop:   {"Desktop"},
	Documents: {"Documents"},
	Movies:    {"Videos", "Movies"},
	Pictures:  {"Pictures"},
	Music:     {"Music"},
}

// platformCandidates prefers the XDG user directory when one is configured,
// then falls back to conventional home-relative names.
func platformCandidates(home string, loc Location) []string {
	var out []string
	if key, ok := xdgKeys[loc]; ok {
		if dir := xdgUserDir(home, key); dir != "" {
			out = append(out, dir)
		}
	}
	for _, name := range conventionalNames[loc] {
		out = append(out, filepath.Join(home, name))
	}
	return out
}

// xdgUserDir reads one XDG_*_DIR entry from ~/.config/user-dirs.dirs.
// Relative entries are ignored, matching the xdg-user-dirs behavior.
func xdgUserDir(home, key string) string {
	data, err := os.ReadFile(filepath.Join(home, ".config", "user-dirs.dirs"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") || !strings.HasPrefix(line, key+"=") {
			continue
		}
		val := strings.Trim(strings.TrimPrefix(line, key+"="), `"`)
		val = strings.ReplaceAll(val, "$HOME", home)
		if filepath.IsAbs(val) {
			return filepath.Clean(val)
		}
		return ""
	}
	return ""
}
