// Package chordpro defines the token grammar of the ChordPro song notation:
// inline square-bracketed chord symbols and brace-delimited directives. It
// provides the compiled patterns, single-pass token scanners, and position
// mapping used by the validation engine.
//
// All patterns are compiled once at package load. Go's regexp package is
// RE2-based and guarantees linear-time matching, so none of these patterns
// can backtrack catastrophically on adversarial input; delimiter scanning is
// done with explicit index walks rather than broad quantifier patterns so
// token positions come straight from the scan.
package chordpro

import "regexp"

// chordPattern matches a standalone chord symbol: a root letter A-G, an
// optional accidental, an optional quality suffix, optional extensions, and
// an optional slash bass note. The quality set intentionally has no bare "o"
// alternative so solfège names such as "Do" do not pass as chords.
var chordPattern = regexp.MustCompile(
	`^[A-G][#b]?` + // root and accidental
		`(?:maj|min|dim|aug|sus|add|m|M|\+|-)?[0-9]{0,2}` + // quality and extension
		`(?:(?:sus|add|maj|[#b])[0-9]{1,2})*` + // stacked alterations (7b5, sus4, add9)
		`(?:/[A-G][#b]?)?$`, // slash bass
)

// Token is a delimited token extracted from song content. Text is the token
// interior without its delimiters; Start and End are the interior's byte
// offsets in the original content.
type Token struct {
	Text  string
	Start int
	End   int
}

// ExtractTokens walks content once and returns every open/close delimited
// token in document order. An opening delimiter with no matching close is
// skipped; the bracket-balance check reports that case separately. Nested
// opens inside a token are treated as literal text, matching how ChordPro
// renderers consume the format.
func ExtractTokens(content string, open, close byte) []Token {
	var tokens []Token
	for i := 0; i < len(content); i++ {
		if content[i] != open {
			continue
		}
		end := -1
		for j := i + 1; j < len(content); j++ {
			if content[j] == close {
				end = j

				break
			}
		}
		if end < 0 {
			break
		}
		tokens = append(tokens, Token{
			Text:  content[i+1 : end],
			Start: i + 1,
			End:   end,
		})
		i = end
	}

	return tokens
}

// CountDelimiters returns the number of open and close occurrences of a
// delimiter pair in content.
func CountDelimiters(content string, open, close byte) (opens, closes int) {
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case open:
			opens++
		case close:
			closes++
		}
	}

	return opens, closes
}
