//go:build darwin

package locations

import "path/filepath"

var conventionalNames = map[Location][]string{
	Desktop:   {"Desktop"},
	Documents: {"Documents"},
	Movies:    {"Movies"},
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
