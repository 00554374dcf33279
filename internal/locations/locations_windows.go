//go:build windows

package locations

import "path/filepath"

// Movies maps to the Videos known folder on Windows.
var conventionalNames = map[Location][]string{
	Desktop:   {"Desktop"},
	Documents: {"Documents"},
	Movies:    {"Videos"},
	Pictures:  {"Pictures"},
	Music:     {"Music"},
}

func platformCandidates(home string, loc Location) []string {
	var out []string
	for _, name := range conventionalNames[loc] {
		out = append(out, filepath.Join(home, name))
	}
	return out
}
