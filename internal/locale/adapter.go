package locale

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"github.com/conneroisu/chordlint/internal/chordpro"
	"github.com/conneroisu/chordlint/internal/logging"
	"github.com/conneroisu/chordlint/internal/validator"
)

// positionTolerance is the window, in bytes, within which a finding from
// the rewritten pass is considered equivalent to one from the original pass
// when both refer to the same token. Rewrites shift later offsets by the
// length difference of each substitution, so exact equality is too strict.
const positionTolerance = 8

// Option configures an Adapter.
type Option func(*Adapter)

// WithLanguage sets the initial language. Invalid tags are ignored and the
// adapter stays on the default.
func WithLanguage(lang string) Option {
	return func(a *Adapter) { _ = a.SetLanguage(lang) }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logging.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

// Adapter is the language-aware validation entry point. It composes a core
// validator: content is validated as written, rewritten into the standard
// notation, validated again, and the two result sets are merged without
// double-reporting. Messages of surviving findings are translated through
// the catalog.
//
// The language table map is long-lived and only mutated through SetLanguage
// and AddLanguageRules between validations.
type Adapter struct {
	validator *validator.Validator
	catalog   *Catalog
	logger    logging.Logger

	mu    sync.RWMutex
	lang  string
	rules map[string]*LanguageRules
}

// NewAdapter creates an Adapter owning a core validator built from cfg. The
// default language is "en", which has no rewrite tables.
func NewAdapter(cfg validator.Config, opts ...Option) *Adapter {
	a := &Adapter{
		catalog: NewCatalog(),
		logger:  logging.NewNopLogger(),
		lang:    "en",
		rules:   builtinRules(),
	}
	a.validator = validator.New(cfg,
		validator.WithChordCorrector(a))
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// SetLanguage switches the active language. The tag is validated with BCP
// 47 parsing; the base language selects the rule table.
func (a *Adapter) SetLanguage(lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language tag %q: %w", lang, err)
	}
	base, _ := tag.Base()

	a.mu.Lock()
	a.lang = base.String()
	a.mu.Unlock()

	return nil
}

// Language returns the active language.
func (a *Adapter) Language() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.lang
}

// Languages returns every language that currently has a rule table.
func (a *Adapter) Languages() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	langs := make([]string, 0, len(a.rules))
	for lang := range a.rules {
		langs = append(langs, lang)
	}

	return langs
}

// SetConfig replaces the core validator's configuration.
func (a *Adapter) SetConfig(cfg validator.Config) {
	a.validator.SetConfig(cfg)
}

// Config returns a copy of the core validator's configuration.
func (a *Adapter) Config() validator.Config {
	return a.validator.Config()
}

// AddLanguageRules merges extra entries into the table for lang, creating
// the table when the language is new. Existing entries are kept unless the
// new table overrides them.
func (a *Adapter) AddLanguageRules(lang string, extra LanguageRules) {
	a.mu.Lock()
	defer a.mu.Unlock()

	table, ok := a.rules[lang]
	if !ok {
		table = &LanguageRules{}
		a.rules[lang] = table
	}
	table.merge(extra)
}

// ChordCorrection suggests a standard replacement for an invalid chord
// token: the active notation table first, then the typo table, then the
// generic heuristics. ok is false when nothing applies.
func (a *Adapter) ChordCorrection(token string) (string, bool) {
	rules := a.activeRules()
	if rules != nil {
		if std, ok := rules.ChordNotations[token]; ok {
			return std, true
		}
		if fixed, ok := rules.TypoCorrections[token]; ok {
			return fixed, true
		}
	}

	return chordpro.CorrectChord(token)
}

// Validate runs the dual-pass, language-aware validation of content. All
// positions in the returned result refer to the original input.
func (a *Adapter) Validate(content string) validator.Result {
	original := a.validator.Validate(content)

	rules := a.activeRules()
	lang := a.Language()
	if rules.Empty() {
		return a.translate(lang, original)
	}

	rewritten, edits := rules.Rewrite(content)
	if len(edits) == 0 {
		return a.translate(lang, original)
	}
	processed := a.validator.Validate(rewritten)

	merged := mergeFindings(content, original, processed, edits)

	return a.translate(lang, merged)
}

func (a *Adapter) activeRules() *LanguageRules {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.rules[a.lang]
}

// mergeFindings combines the original-notation and rewritten-notation
// passes. Chord and directive findings from the original pass whose span
// was rewritten are superseded by the second pass: a token that is valid
// only after translation must not stay flagged. Findings from the second
// pass are re-positioned onto the original input, equivalent findings
// already present are suppressed, and exact duplicates from merge order are
// removed.
func mergeFindings(content string, original, processed validator.Result, edits []edit) validator.Result {
	kept := make([]validator.Issue, 0, len(original.Errors)+len(original.Warnings))
	for _, issue := range original.Findings() {
		if supersededByRewrite(issue, edits) {
			continue
		}
		kept = append(kept, issue)
	}

	merged := kept
	for _, issue := range processed.Findings() {
		issue = reposition(content, issue, edits)
		if hasEquivalent(kept, issue) {
			continue
		}
		merged = append(merged, issue)
	}

	return validator.Assemble(dedupe(merged))
}

func supersededByRewrite(issue validator.Issue, edits []edit) bool {
	if issue.Type != validator.IssueChord && issue.Type != validator.IssueDirective {
		return false
	}

	return overlapsEdit(edits, issue.Position.Start, issue.Position.End)
}

// reposition maps a finding from rewritten-content offsets back onto the
// original input and recomputes its line and column there.
func reposition(content string, issue validator.Issue, edits []edit) validator.Issue {
	start := mapOffset(edits, issue.Position.Start)
	end := mapOffset(edits, issue.Position.End)
	if end < start {
		end = start
	}
	line, column := chordpro.LineColumn(content, start)
	issue.Position = validator.Position{Start: start, End: end, Line: line, Column: column}

	return issue
}

// hasEquivalent reports whether an equivalent finding already exists: same
// type, same offending token, position within the tolerance window. The
// special-character density finding is a whole-document measurement and
// compares by code alone, because its arguments are percentages that shift
// with the rewrite's length changes.
func hasEquivalent(existing []validator.Issue, issue validator.Issue) bool {
	for _, e := range existing {
		if e.Type != issue.Type {
			continue
		}
		if e.Code == validator.CodeSpecialChars && issue.Code == validator.CodeSpecialChars {
			return true
		}
		if e.Token() != issue.Token() {
			continue
		}
		delta := e.Position.Start - issue.Position.Start
		if delta < 0 {
			delta = -delta
		}
		if delta <= positionTolerance {
			return true
		}
	}

	return false
}

// dedupe removes exact duplicates: same type, same position range, same
// message. First occurrence wins, preserving order.
func dedupe(findings []validator.Issue) []validator.Issue {
	type key struct {
		t          validator.IssueType
		start, end int
		message    string
	}
	seen := make(map[key]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		k := key{t: f.Type, start: f.Position.Start, end: f.Position.End, message: f.Message}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}

	return out
}

// translate renders every finding's message in lang, falling back to the
// original message when no template applies.
func (a *Adapter) translate(lang string, result validator.Result) validator.Result {
	if lang == "" || lang == "en" {
		return result
	}
	for i, issue := range result.Errors {
		result.Errors[i] = a.catalog.Translate(lang, issue)
	}
	for i, issue := range result.Warnings {
		result.Warnings[i] = a.catalog.Translate(lang, issue)
	}

	return result
}
