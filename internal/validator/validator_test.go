package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanSong = `{title: Amazing Grace}
{artist: John Newton}
{key: C}
{start_of_verse}
[C]Amazing [C7]grace how [F]sweet the [C]sound
That [C]saved a [Am]wretch like [G]me
{end_of_verse}`

func TestValidateCleanContent(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate(cleanSong)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateEmptyContent(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("")

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidatePlainProse(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("Just some lyrics with no song syntax at all.\nSecond line.")

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestInvalidChordPosition(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("{title: Test}\n[X]bad")

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)

	issue := result.Errors[0]
	assert.Equal(t, IssueChord, issue.Type)
	assert.Equal(t, CodeInvalidChord, issue.Code)
	assert.Equal(t, "X", issue.Token())
	assert.Equal(t, 2, issue.Position.Line)
	assert.Equal(t, 2, issue.Position.Column)
}

func TestInvalidChordSuggestion(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("[am]Lyrics")

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Am", result.Errors[0].Suggestion)
}

func TestChordCorrectorInjection(t *testing.T) {
	v := New(DefaultConfig(), WithChordCorrector(staticCorrector{"Do": "C"}))

	result := v.Validate("[Do]")

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "C", result.Errors[0].Suggestion)
}

type staticCorrector map[string]string

func (s staticCorrector) ChordCorrection(token string) (string, bool) {
	fixed, ok := s[token]

	return fixed, ok
}

func TestBracketMismatch(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("[C la la {title: x}")

	assert.True(t, result.IsValid, "bracket mismatch is a warning, not an error")
	require.Len(t, result.Warnings, 1)

	issue := result.Warnings[0]
	assert.Equal(t, IssueBracket, issue.Type)
	assert.Equal(t, CodeBracketMismatch, issue.Code)
	assert.Equal(t, []string{"square", "1", "0"}, issue.Args)
	assert.Contains(t, issue.Message, "square")
}

func TestBracketMismatchDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckBrackets = false
	v := New(cfg)

	result := v.Validate("[C la la")

	assert.Empty(t, result.Warnings)
}

func TestEmptyElements(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("[] and {}")

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, IssueFormat, result.Warnings[0].Type)
	assert.Equal(t, "[]", result.Warnings[0].Token())
	assert.Equal(t, "{}", result.Warnings[1].Token())
	// Empty pairs are reported once, not additionally as invalid chords.
	assert.Empty(t, result.Errors)
}

func TestEmptyElementsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckEmptyElements = false
	v := New(cfg)

	result := v.Validate("[] and {}")

	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Errors)
}

func TestDirectiveTypoSuggestion(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("{titel: My Song}")

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 1)

	issue := result.Warnings[0]
	assert.Equal(t, IssueDirective, issue.Type)
	assert.Equal(t, CodeDirectiveTypo, issue.Code)
	assert.Equal(t, "title", issue.Suggestion)
	assert.Contains(t, issue.Message, "did you mean")
}

func TestUnknownDirectiveStrictMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictMode = true
	v := New(cfg)

	result := v.Validate("{frobnicate: on}")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, CodeUnknownDirective, result.Warnings[0].Code)
	assert.Equal(t, "frobnicate", result.Warnings[0].Token())
}

func TestUnknownDirectiveIgnoredWithoutStrict(t *testing.T) {
	v := New(DefaultConfig()) // strict off, typos on

	result := v.Validate("{frobnicate: on}")

	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Errors)
}

func TestTypoReplacesUnknownWarning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictMode = true
	v := New(cfg)

	result := v.Validate("{titel: My Song}")

	require.Len(t, result.Warnings, 1, "typo warning replaces the unknown-directive warning")
	assert.Equal(t, CodeDirectiveTypo, result.Warnings[0].Code)
}

func TestTyposDisabledFallsBackToUnknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictMode = true
	cfg.CheckTypos = false
	v := New(cfg)

	result := v.Validate("{titel: My Song}")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, CodeUnknownDirective, result.Warnings[0].Code)
}

func TestDeterminism(t *testing.T) {
	v := New(DefaultConfig())
	content := "{titel: x}\n[zz]la [C la\n<script>bad()</script>\n[] {}"

	first := v.Validate(content)
	second := v.Validate(content)

	require.Equal(t, first, second)
}

func TestWarningsDoNotAffectValidity(t *testing.T) {
	v := New(DefaultConfig())

	result := v.Validate("[C la la\n{titel: x}\n{}")

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.Warnings)
}

func TestCustomRuleMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomRules = []Rule{{
		ID:       "no-tabs",
		Pattern:  "\t",
		Severity: SeverityError,
		Category: IssueCustom,
		Message:  "tabs are not allowed in song content",
		Enabled:  true,
	}}
	v := New(cfg)

	result := v.Validate("[C]line one\n\tindented")

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, IssueCustom, result.Errors[0].Type)
	assert.Equal(t, "tabs are not allowed in song content", result.Errors[0].Message)
	assert.Equal(t, 2, result.Errors[0].Position.Line)
}

func TestCustomRuleDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomRules = []Rule{{
		ID:      "no-tabs",
		Pattern: "\t",
		Message: "tabs are not allowed",
	}}
	v := New(cfg)

	result := v.Validate("\t")

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Warnings)
}

func TestBrokenCustomRuleDoesNotAbortValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomRules = []Rule{
		{ID: "broken", Pattern: "[unclosed(", Message: "never fires", Enabled: true},
		{ID: "works", Pattern: "lyrics", Severity: SeverityInfo, Message: "found lyrics", Enabled: true},
	}
	v := New(cfg)

	result := v.Validate("{title: Test}\n[X]lyrics <script>x</script>")

	// Built-in checks still ran.
	assert.False(t, result.IsValid)
	assert.True(t, hasCode(result.Errors, CodeInvalidChord))
	assert.True(t, hasCode(result.Errors, CodeDangerousTag))
	// The healthy custom rule still ran.
	assert.True(t, hasMessage(result.Warnings, "found lyrics"))
	// The broken one produced nothing.
	assert.False(t, hasMessage(result.Findings(), "never fires"))
}

func TestPathologicalInput(t *testing.T) {
	v := New(DefaultConfig())

	for _, content := range []string{
		strings.Repeat("[", 50_000),
		strings.Repeat("]", 50_000),
		strings.Repeat("[]", 25_000),
		strings.Repeat("{x", 25_000),
		strings.Repeat("a", 100_000),
	} {
		assert.NotPanics(t, func() { v.Validate(content) })
	}
}

func TestSetConfigBetweenCalls(t *testing.T) {
	v := New(DefaultConfig())
	content := "{frobnicate: on}"

	assert.Empty(t, v.Validate(content).Warnings)

	cfg := v.Config()
	cfg.StrictMode = true
	v.SetConfig(cfg)

	assert.Len(t, v.Validate(content).Warnings, 1)
}

func TestConfigReturnsCopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CustomRules = []Rule{{ID: "r1", Pattern: "x", Message: "m", Enabled: true}}
	v := New(cfg)

	got := v.Config()
	got.CustomRules[0].ID = "mutated"

	assert.Equal(t, "r1", v.Config().CustomRules[0].ID)
}

func hasCode(issues []Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}

	return false
}

func hasMessage(issues []Issue, message string) bool {
	for _, issue := range issues {
		if issue.Message == message {
			return true
		}
	}

	return false
}
