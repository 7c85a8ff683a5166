package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteSolfege(t *testing.T) {
	rules := builtinRules()["es"]
	content := "[Do]la la [Sol/Si] {titulo: X}"

	rewritten, edits := rules.Rewrite(content)

	assert.Equal(t, "[C]la la [G/B] {title: X}", rewritten)
	require.Len(t, edits, 3)
	assert.Equal(t, edit{origStart: 1, origEnd: 3, newStart: 1, newEnd: 2}, edits[0])
	assert.Equal(t, edit{origStart: 11, origEnd: 17, newStart: 10, newEnd: 13}, edits[1])
	assert.Equal(t, edit{origStart: 20, origEnd: 29, newStart: 16, newEnd: 24}, edits[2])
}

func TestRewriteChordVariants(t *testing.T) {
	rules := builtinRules()["es"]

	tests := []struct {
		in   string
		want string
	}{
		{"[Do#m]", "[C#m]"},
		{"[Sib]", "[Bb]"},
		{"[Ré]", "[D]"},
		{"[Re7]", "[D7]"},
		{"[Do/Sol]", "[C/G]"},
		{"[La]m", "[A]m"},
	}
	for _, tt := range tests {
		rewritten, edits := rules.Rewrite(tt.in)
		assert.Equal(t, tt.want, rewritten, "input %q", tt.in)
		assert.Len(t, edits, 1, "input %q", tt.in)
	}
}

func TestRewriteSkipsValidChords(t *testing.T) {
	rules := builtinRules()["es"]

	// "Fadd9" and "Faug" start with the notation name "Fa" but are already
	// valid chords; the rewrite must leave them alone.
	tests := []struct {
		in   string
		want string
	}{
		{"[Fadd9]", "[Fadd9]"},
		{"[Faug]", "[Faug]"},
		{"[Dosym]", "[Dosym]"}, // substitution would not yield a valid chord
		{"[Fadd9/Sol]", "[Fadd9/G]"},
		{"[Lab]", "[Ab]"},
	}
	for _, tt := range tests {
		rewritten, _ := rules.Rewrite(tt.in)
		assert.Equal(t, tt.want, rewritten, "input %q", tt.in)
	}
}

func TestRewriteUntouchedContent(t *testing.T) {
	rules := builtinRules()["es"]
	content := "[C]Amazing {title: Grace}\nplain lyrics"

	rewritten, edits := rules.Rewrite(content)

	assert.Equal(t, content, rewritten)
	assert.Empty(t, edits)
}

func TestRewriteGermanH(t *testing.T) {
	rules := builtinRules()["de"]

	rewritten, edits := rules.Rewrite("[H]la [Hm7]la")

	assert.Equal(t, "[B]la [Bm7]la", rewritten)
	assert.Len(t, edits, 2)
}

func TestRewriteDirectiveWithoutValue(t *testing.T) {
	rules := builtinRules()["fr"]

	rewritten, _ := rules.Rewrite("{refrain}")

	assert.Equal(t, "{chorus}", rewritten)
}

func TestRewriteEmptyRules(t *testing.T) {
	var rules *LanguageRules
	content := "[Do] anything"

	rewritten, edits := rules.Rewrite(content)

	assert.Equal(t, content, rewritten)
	assert.Empty(t, edits)
}

func TestMapOffset(t *testing.T) {
	rules := builtinRules()["es"]
	content := "[Do]la la [Sol/Si] {titulo: X}"
	_, edits := rules.Rewrite(content)
	// rewritten: "[C]la la [G/B] {title: X}"

	tests := []struct {
		name string
		off  int
		want int
	}{
		{"before any edit", 0, 0},
		{"inside first replacement", 1, 1},
		{"right after first replacement", 3, 4},
		{"inside second replacement", 10, 11},
		{"after second replacement", 14, 18},
		{"inside third replacement", 16, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapOffset(edits, tt.off))
		})
	}
}

func TestOverlapsEdit(t *testing.T) {
	edits := []edit{{origStart: 1, origEnd: 3}, {origStart: 11, origEnd: 17}}

	assert.True(t, overlapsEdit(edits, 1, 3))
	assert.True(t, overlapsEdit(edits, 0, 2))
	assert.True(t, overlapsEdit(edits, 16, 20))
	assert.False(t, overlapsEdit(edits, 3, 11))
	assert.False(t, overlapsEdit(edits, 17, 25))
}

func TestLanguageRulesMerge(t *testing.T) {
	table := &LanguageRules{ChordNotations: map[string]string{"Do": "C"}}

	table.merge(LanguageRules{
		ChordNotations:   map[string]string{"Ti": "B"},
		DirectiveAliases: map[string]string{"titolo": "title"},
	})

	assert.Equal(t, "C", table.ChordNotations["Do"])
	assert.Equal(t, "B", table.ChordNotations["Ti"])
	assert.Equal(t, "title", table.DirectiveAliases["titolo"])
	assert.Empty(t, table.TypoCorrections)
}

func TestLanguageRulesEmpty(t *testing.T) {
	var nilRules *LanguageRules
	assert.True(t, nilRules.Empty())
	assert.True(t, (&LanguageRules{}).Empty())
	assert.False(t, builtinRules()["es"].Empty())
}
