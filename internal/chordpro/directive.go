package chordpro

import "strings"

// knownDirectives is the standard ChordPro directive vocabulary, long forms
// and their short aliases.
var knownDirectives = map[string]bool{
	"album":           true,
	"artist":          true,
	"c":               true,
	"capo":            true,
	"chorus":          true,
	"comment":         true,
	"define":          true,
	"end_of_bridge":   true,
	"end_of_chorus":   true,
	"end_of_tab":      true,
	"end_of_verse":    true,
	"eob":             true,
	"eoc":             true,
	"eot":             true,
	"eov":             true,
	"key":             true,
	"new_song":        true,
	"ns":              true,
	"sob":             true,
	"soc":             true,
	"sot":             true,
	"sov":             true,
	"start_of_bridge": true,
	"start_of_chorus": true,
	"start_of_tab":    true,
	"start_of_verse":  true,
	"st":              true,
	"subtitle":        true,
	"t":               true,
	"tempo":           true,
	"time":            true,
	"title":           true,
}

// IsValidDirective reports whether token is a fully brace-delimited directive
// with a non-empty interior.
func IsValidDirective(token string) bool {
	if len(token) < 3 {
		return false
	}
	if token[0] != '{' || token[len(token)-1] != '}' {
		return false
	}

	return strings.TrimSpace(token[1:len(token)-1]) != ""
}

// SplitDirective splits a directive interior into its name and optional
// value. The name is lowercased and trimmed; hasValue is true when a colon
// separator is present.
func SplitDirective(interior string) (name, value string, hasValue bool) {
	name, value, hasValue = strings.Cut(interior, ":")
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)

	return name, value, hasValue
}

// IsKnownDirective reports whether name is in the standard vocabulary.
func IsKnownDirective(name string) bool {
	return knownDirectives[name]
}

// KnownDirectives returns the standard vocabulary in no particular order.
func KnownDirectives() []string {
	names := make([]string, 0, len(knownDirectives))
	for name := range knownDirectives {
		names = append(names, name)
	}

	return names
}

// ClosestDirective returns the known directive within edit distance 2 of
// name, preferring the smallest distance, then candidates of the same
// length, then lexicographic order. Very short names are excluded: almost
// everything is within distance 2 of a two-letter alias.
func ClosestDirective(name string) (string, bool) {
	best, bestDist := "", 3
	if len(name) < 4 {
		return "", false
	}
	for known := range knownDirectives {
		if len(known) < 4 {
			continue
		}
		d := editDistance(name, known)
		switch {
		case d < bestDist:
			best, bestDist = known, d
		case d == bestDist && best != "" && betterCandidate(name, known, best):
			best = known
		}
	}
	if best == "" {
		return "", false
	}

	return best, true
}

// betterCandidate breaks distance ties: a candidate of the same length as
// the misspelled name wins, then the lexicographically smaller one.
func betterCandidate(name, candidate, current string) bool {
	candSame := len(candidate) == len(name)
	curSame := len(current) == len(name)
	if candSame != curSame {
		return candSame
	}

	return candidate < current
}

// editDistance computes the Levenshtein distance between two strings with a
// single-row dynamic program.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cur := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}

	return row[len(b)]
}
