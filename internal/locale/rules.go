// Package locale wraps the core validator with alternate-language notation
// support: solfège chord names, translated directive keywords, per-language
// typo corrections, and a translated message catalog. The adapter composes
// a core validator rather than extending it, so the core stays
// independently testable.
package locale

import (
	"sort"
	"strings"

	"github.com/conneroisu/chordlint/internal/chordpro"
)

// LanguageRules holds the per-language mapping tables. All three maps are
// merge-additive: AddLanguageRules extends them at runtime without
// replacing existing entries.
type LanguageRules struct {
	// ChordNotations maps a local chord name to the standard root letter,
	// e.g. "Do" -> "C" or the German "H" -> "B".
	ChordNotations map[string]string `yaml:"chord_notations" json:"chordNotations"`
	// DirectiveAliases maps a translated directive keyword to the standard
	// vocabulary, e.g. "titulo" -> "title".
	DirectiveAliases map[string]string `yaml:"directive_aliases" json:"directiveAliases"`
	// TypoCorrections maps common misspellings to their correct form.
	TypoCorrections map[string]string `yaml:"typo_corrections" json:"typoCorrections"`
}

// Empty reports whether the table has no entries at all.
func (r *LanguageRules) Empty() bool {
	return r == nil ||
		(len(r.ChordNotations) == 0 && len(r.DirectiveAliases) == 0 && len(r.TypoCorrections) == 0)
}

// merge copies entries from other into r, allocating maps as needed.
func (r *LanguageRules) merge(other LanguageRules) {
	if len(other.ChordNotations) > 0 && r.ChordNotations == nil {
		r.ChordNotations = make(map[string]string, len(other.ChordNotations))
	}
	for k, v := range other.ChordNotations {
		r.ChordNotations[k] = v
	}
	if len(other.DirectiveAliases) > 0 && r.DirectiveAliases == nil {
		r.DirectiveAliases = make(map[string]string, len(other.DirectiveAliases))
	}
	for k, v := range other.DirectiveAliases {
		r.DirectiveAliases[k] = v
	}
	if len(other.TypoCorrections) > 0 && r.TypoCorrections == nil {
		r.TypoCorrections = make(map[string]string, len(other.TypoCorrections))
	}
	for k, v := range other.TypoCorrections {
		r.TypoCorrections[k] = v
	}
}

// builtinRules returns the shipped language tables. Spanish and French use
// solfège chord names; German maps H to B natural.
func builtinRules() map[string]*LanguageRules {
	solfege := map[string]string{
		"Do": "C", "Re": "D", "Ré": "D", "Mi": "E", "Fa": "F",
		"Sol": "G", "La": "A", "Si": "B",
	}
	solfegeTypos := map[string]string{
		"do": "C", "re": "D", "ré": "D", "mi": "E", "fa": "F",
		"sol": "G", "la": "A", "si": "B",
	}

	return map[string]*LanguageRules{
		"es": {
			ChordNotations: solfege,
			DirectiveAliases: map[string]string{
				"titulo":     "title",
				"título":     "title",
				"subtitulo":  "subtitle",
				"subtítulo":  "subtitle",
				"artista":    "artist",
				"coro":       "chorus",
				"estribillo": "chorus",
				"comentario": "comment",
				"clave":      "key",
			},
			TypoCorrections: solfegeTypos,
		},
		"fr": {
			ChordNotations: solfege,
			DirectiveAliases: map[string]string{
				"titre":       "title",
				"sous-titre":  "subtitle",
				"artiste":     "artist",
				"refrain":     "chorus",
				"commentaire": "comment",
				"tonalité":    "key",
			},
			TypoCorrections: solfegeTypos,
		},
		"de": {
			ChordNotations: map[string]string{"H": "B"},
			DirectiveAliases: map[string]string{
				"titel":      "title",
				"untertitel": "subtitle",
				"künstler":   "artist",
				"kuenstler":  "artist",
				"kommentar":  "comment",
				"tonart":     "key",
			},
			TypoCorrections: map[string]string{"h": "B"},
		},
	}
}

// edit records one substitution in both coordinate spaces: the replaced
// span in the original content and the replacement span in the rewritten
// content. Edits are kept in ascending offset order.
type edit struct {
	origStart, origEnd int
	newStart, newEnd   int
}

// replacement is a pending substitution in original coordinates.
type replacement struct {
	start, end int
	text       string
}

// Rewrite substitutes local chord notations inside bracket tokens and local
// directive keywords inside brace tokens with their standard equivalents,
// leaving everything else byte-for-byte intact. It returns the rewritten
// content plus the edit list needed to map rewritten offsets back onto the
// original input.
func (r *LanguageRules) Rewrite(content string) (string, []edit) {
	if r.Empty() {
		return content, nil
	}

	var repls []replacement

	if len(r.ChordNotations) > 0 {
		notations := notationKeysByLength(r.ChordNotations)
		for _, tok := range chordpro.ExtractTokens(content, '[', ']') {
			if rewritten, ok := rewriteChordToken(tok.Text, r.ChordNotations, notations); ok {
				repls = append(repls, replacement{start: tok.Start, end: tok.End, text: rewritten})
			}
		}
	}

	if len(r.DirectiveAliases) > 0 {
		for _, tok := range chordpro.ExtractTokens(content, '{', '}') {
			if rewritten, ok := rewriteDirectiveToken(tok.Text, r.DirectiveAliases); ok {
				repls = append(repls, replacement{start: tok.Start, end: tok.End, text: rewritten})
			}
		}
	}

	if len(repls) == 0 {
		return content, nil
	}
	sort.Slice(repls, func(i, j int) bool { return repls[i].start < repls[j].start })

	var b strings.Builder
	b.Grow(len(content))
	edits := make([]edit, 0, len(repls))
	last := 0
	for _, rep := range repls {
		b.WriteString(content[last:rep.start])
		newStart := b.Len()
		b.WriteString(rep.text)
		edits = append(edits, edit{
			origStart: rep.start,
			origEnd:   rep.end,
			newStart:  newStart,
			newEnd:    b.Len(),
		})
		last = rep.end
	}
	b.WriteString(content[last:])

	return b.String(), edits
}

// rewriteChordToken translates the root (and any slash bass root) of a
// chord token through the notation table. Tokens and slash parts that are
// already valid chords are left alone, so a standard chord whose spelling
// starts with a notation name ("Fadd9", "Faug") is never corrupted; a
// substitution is accepted only when it yields a valid chord. ok is false
// when nothing applied.
func rewriteChordToken(text string, notations map[string]string, keys []string) (string, bool) {
	if chordpro.IsValidChord(text) {
		return "", false
	}

	parts := strings.Split(text, "/")
	changed := false
	for i, part := range parts {
		if chordpro.IsValidChord(part) {
			continue
		}
		for _, key := range keys {
			if strings.HasPrefix(part, key) {
				parts[i] = notations[key] + part[len(key):]
				changed = true

				break
			}
		}
	}
	if !changed {
		return "", false
	}

	rewritten := strings.Join(parts, "/")
	if !chordpro.IsValidChord(rewritten) {
		return "", false
	}

	return rewritten, true
}

// rewriteDirectiveToken translates the directive name through the alias
// table, preserving the value.
func rewriteDirectiveToken(text string, aliases map[string]string) (string, bool) {
	name, value, hasValue := chordpro.SplitDirective(text)
	standard, ok := aliases[name]
	if !ok {
		return "", false
	}
	if hasValue {
		return standard + ": " + value, true
	}

	return standard, true
}

// notationKeysByLength returns the notation names longest first so "Sol"
// wins over any shorter prefix.
func notationKeysByLength(notations map[string]string) []string {
	keys := make([]string, 0, len(notations))
	for k := range notations {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	return keys
}

// mapOffset translates an offset in the rewritten content back to the
// original input. Offsets inside a replacement map to the start of the
// span they replaced.
func mapOffset(edits []edit, off int) int {
	delta := 0
	for _, e := range edits {
		if off < e.newStart {
			break
		}
		if off < e.newEnd {
			return e.origStart
		}
		delta = e.newEnd - e.origEnd
	}

	return off - delta
}

// overlapsEdit reports whether the original span [start, end) intersects
// any rewritten span.
func overlapsEdit(edits []edit, start, end int) bool {
	for _, e := range edits {
		if start < e.origEnd && end > e.origStart {
			return true
		}
	}

	return false
}
