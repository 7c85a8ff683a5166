package validator

import (
	"strconv"
	"sync"

	"github.com/conneroisu/chordlint/internal/chordpro"
	"github.com/conneroisu/chordlint/internal/logging"
)

// Config controls which checks run during a validation call. It is read
// once at the start of each call and only replaced wholesale via SetConfig,
// never partially mutated mid-validation.
type Config struct {
	StrictMode            bool    `yaml:"strict_mode"              json:"strictMode"            mapstructure:"strict_mode"`
	CheckSecurity         bool    `yaml:"check_security"           json:"checkSecurity"         mapstructure:"check_security"`
	CheckBrackets         bool    `yaml:"check_brackets"           json:"checkBrackets"         mapstructure:"check_brackets"`
	CheckEmptyElements    bool    `yaml:"check_empty_elements"     json:"checkEmptyElements"    mapstructure:"check_empty_elements"`
	CheckTypos            bool    `yaml:"check_typos"              json:"checkTypos"            mapstructure:"check_typos"`
	MaxSpecialCharPercent float64 `yaml:"max_special_char_percent" json:"maxSpecialCharPercent" mapstructure:"max_special_char_percent" validate:"gte=0,lte=1"`
	CustomRules           []Rule  `yaml:"custom_rules"             json:"customRules,omitempty" mapstructure:"custom_rules"             validate:"dive"`
}

// DefaultConfig returns the engine defaults: every check on, strict mode
// off, and a 10% special-character budget.
func DefaultConfig() Config {
	return Config{
		CheckSecurity:         true,
		CheckBrackets:         true,
		CheckEmptyElements:    true,
		CheckTypos:            true,
		MaxSpecialCharPercent: 0.1,
	}
}

// ChordCorrector supplies correction suggestions for invalid chord tokens.
// The localization adapter injects itself here so suggestions can consult
// the active language's notation tables.
type ChordCorrector interface {
	ChordCorrection(token string) (string, bool)
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the diagnostic logger.
func WithLogger(logger logging.Logger) Option {
	return func(v *Validator) { v.logger = logger }
}

// WithChordCorrector sets the chord correction source. Without one the
// generic heuristics in the chordpro package are used.
func WithChordCorrector(c ChordCorrector) Option {
	return func(v *Validator) { v.corrector = c }
}

// Validator runs the validation passes. It is a caller-owned value, not a
// package global, so tests and concurrent callers cannot interfere with
// each other's configuration. Validate is safe for concurrent use;
// SetConfig may be called between (not during) a caller's own validations.
type Validator struct {
	mu        sync.RWMutex
	cfg       Config
	engine    *Engine
	corrector ChordCorrector
	logger    logging.Logger
}

// New creates a Validator with the given configuration.
func New(cfg Config, opts ...Option) *Validator {
	v := &Validator{
		cfg:    cfg,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.engine = NewEngine(v.logger)

	return v
}

// Config returns a copy of the current configuration.
func (v *Validator) Config() Config {
	v.mu.RLock()
	defer v.mu.RUnlock()

	cfg := v.cfg
	cfg.CustomRules = append([]Rule(nil), v.cfg.CustomRules...)

	return cfg
}

// SetConfig replaces the configuration for subsequent calls.
func (v *Validator) SetConfig(cfg Config) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cfg = cfg
}

// Validate runs every enabled pass over content and assembles the result.
// It never fails: every detected condition becomes a typed Issue, and any
// string input, including empty or pathological input, yields a complete
// Result.
func (v *Validator) Validate(content string) Result {
	v.mu.RLock()
	cfg := v.cfg
	v.mu.RUnlock()

	var findings []Issue

	if cfg.CheckBrackets {
		findings = append(findings, checkBracketBalance(content)...)
	}
	if cfg.CheckEmptyElements {
		findings = append(findings, checkEmptyElements(content)...)
	}
	findings = append(findings, v.checkChords(content)...)
	findings = append(findings, checkDirectives(content, cfg)...)
	if cfg.CheckSecurity {
		findings = append(findings, scanSecurity(content, cfg.MaxSpecialCharPercent)...)
	}
	findings = append(findings, v.engine.Apply(content, cfg.CustomRules)...)

	return Assemble(findings)
}

// checkBracketBalance compares open and close counts for each delimiter
// pair and warns when they differ.
func checkBracketBalance(content string) []Issue {
	var findings []Issue
	pairs := []struct {
		open, close byte
		name        string
	}{
		{'[', ']', "square"},
		{'{', '}', "curly"},
	}
	for _, p := range pairs {
		opens, closes := chordpro.CountDelimiters(content, p.open, p.close)
		if opens != closes {
			findings = append(findings, newIssue(IssueBracket, CodeBracketMismatch,
				SeverityWarning, content, 0, len(content),
				p.name, strconv.Itoa(opens), strconv.Itoa(closes)))
		}
	}

	return findings
}

// checkEmptyElements flags bracket and brace pairs with no interior
// content. Empty tokens are excluded from the chord and directive passes so
// each empty pair is reported exactly once.
func checkEmptyElements(content string) []Issue {
	var findings []Issue
	pairs := []struct {
		open, close byte
		display     string
	}{
		{'[', ']', "[]"},
		{'{', '}', "{}"},
	}
	for _, p := range pairs {
		for _, tok := range chordpro.ExtractTokens(content, p.open, p.close) {
			if !isBlank(tok.Text) {
				continue
			}
			findings = append(findings, newIssue(IssueFormat, CodeEmptyElement,
				SeverityWarning, content, tok.Start-1, tok.End+1, p.display))
		}
	}

	return findings
}

// checkChords validates every bracketed token against the chord grammar and
// attaches a best-effort correction suggestion to invalid ones.
func (v *Validator) checkChords(content string) []Issue {
	var findings []Issue
	for _, tok := range chordpro.ExtractTokens(content, '[', ']') {
		if isBlank(tok.Text) || chordpro.IsValidChord(tok.Text) {
			continue
		}
		issue := newIssue(IssueChord, CodeInvalidChord, SeverityError,
			content, tok.Start, tok.End, tok.Text)
		if suggestion, ok := v.correctChord(tok.Text); ok {
			issue.Suggestion = suggestion
		}
		findings = append(findings, issue)
	}

	return findings
}

func (v *Validator) correctChord(token string) (string, bool) {
	if v.corrector != nil {
		if suggestion, ok := v.corrector.ChordCorrection(token); ok {
			return suggestion, true
		}

		return "", false
	}

	return chordpro.CorrectChord(token)
}

// checkDirectives validates every brace-delimited token's name. A likely
// typo produces a did-you-mean warning instead of, not in addition to, the
// strict-mode unknown-directive warning.
func checkDirectives(content string, cfg Config) []Issue {
	var findings []Issue
	for _, tok := range chordpro.ExtractTokens(content, '{', '}') {
		if isBlank(tok.Text) {
			continue
		}
		name, _, _ := chordpro.SplitDirective(tok.Text)
		if name == "" || chordpro.IsKnownDirective(name) {
			continue
		}
		if cfg.CheckTypos {
			if closest, ok := chordpro.ClosestDirective(name); ok {
				issue := newIssue(IssueDirective, CodeDirectiveTypo, SeverityWarning,
					content, tok.Start, tok.End, name, closest)
				issue.Suggestion = closest
				findings = append(findings, issue)

				continue
			}
		}
		if cfg.StrictMode {
			findings = append(findings, newIssue(IssueDirective, CodeUnknownDirective,
				SeverityWarning, content, tok.Start, tok.End, name))
		}
	}

	return findings
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}

	return true
}
