package chordpro

import "strings"

// chordAliases maps root spellings seen in the wild to the standard letter
// the engine validates against. "H" is the German name for B natural.
var chordAliases = map[string]string{
	"H": "B",
}

// IsValidChord reports whether token is a recognizable chord symbol: one
// root letter A-G, optional accidental, optional quality/extension suffix,
// optional slash bass note. Empty strings, lowercase roots, and unrecognized
// root letters are invalid.
func IsValidChord(token string) bool {
	if token == "" {
		return false
	}

	return chordPattern.MatchString(token)
}

// CorrectChord suggests a best-effort fix for an invalid chord token using
// generic heuristics: whitespace trim, root case normalization, and known
// root aliases. It returns ok=false when no heuristic yields a valid chord.
func CorrectChord(token string) (string, bool) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", false
	}
	if IsValidChord(trimmed) {
		return trimmed, trimmed != token
	}

	// Lowercase root is the most common typo: [am] for [Am].
	cased := strings.ToUpper(trimmed[:1]) + trimmed[1:]
	if IsValidChord(cased) {
		return cased, true
	}

	// Root alias lookup, preserving any suffix after the root letter.
	if alias, ok := chordAliases[strings.ToUpper(trimmed[:1])]; ok {
		aliased := alias + cased[1:]
		if IsValidChord(aliased) {
			return aliased, true
		}
	}

	return "", false
}
