package fsmodel

import (
	"sort"
	"strings"

	"xplor/pkg/types"
)

// sortEntries orders a listing directories-first, then by natural name
// comparison, with the raw name as a final tie-break so ordering is total.
func sortEntries(entries []types.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if an != bn {
			return naturalLess(an, bn)
		}
		return a.Name < b.Name
	})
}

// naturalLess compares lowercased names with embedded digit runs compared
// by numeric value, so "file2" orders before "file10".
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			numStartA := i
			for i < len(a) && a[i] == '0' {
				i++
			}
			valStartA := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			numLenA := i - numStartA
			valA := a[valStartA:i]

			numStartB := j
			for j < len(b) && b[j] == '0' {
				j++
			}
			valStartB := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			numLenB := j - numStartB
			valB := b[valStartB:j]

			// Numeric value first: longer digit run means larger value
			if len(valA) != len(valB) {
				return len(valA) < len(valB)
			}
			if valA != valB {
				return valA < valB
			}
			// Equal values: fewer leading zeros wins
			if numLenA != numLenB {
				return numLenA < numLenB
			}
			continue
		}

		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
