package validator

import (
	"context"
	"regexp"
	"sync"

	"github.com/conneroisu/chordlint/internal/logging"
)

// Rule is a user-supplied validation rule. Pattern is a regular expression
// applied to the whole content; every match becomes a finding with the
// rule's severity, category, and message.
type Rule struct {
	ID          string    `yaml:"id"          json:"id"          mapstructure:"id"`
	Name        string    `yaml:"name"        json:"name"        mapstructure:"name"`
	Description string    `yaml:"description" json:"description" mapstructure:"description"`
	Pattern     string    `yaml:"pattern"     json:"pattern"     mapstructure:"pattern"     validate:"required"`
	Severity    Severity  `yaml:"severity"    json:"severity"    mapstructure:"severity"    validate:"omitempty,oneof=error warning info"`
	Category    IssueType `yaml:"category"    json:"category"    mapstructure:"category"    validate:"omitempty,oneof=chord directive bracket format security custom"`
	Message     string    `yaml:"message"     json:"message"     mapstructure:"message"     validate:"required"`
	Enabled     bool      `yaml:"enabled"     json:"enabled"     mapstructure:"enabled"`
}

// Engine applies custom rules to content. Compiled patterns are cached per
// pattern string; a rule whose pattern does not compile, or whose
// application panics, is skipped with a logged diagnostic so one broken
// rule can never abort the rest of a validation pass.
type Engine struct {
	logger logging.Logger

	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
	broken   map[string]bool
}

// NewEngine creates a rule engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &Engine{
		logger:   logger.WithComponent("rules"),
		compiled: make(map[string]*regexp.Regexp),
		broken:   make(map[string]bool),
	}
}

// Apply runs every enabled rule against content and returns the findings in
// rule order, matches in document order.
func (e *Engine) Apply(content string, rules []Rule) []Issue {
	var findings []Issue
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		findings = append(findings, e.applyRule(content, rule)...)
	}

	return findings
}

func (e *Engine) applyRule(content string, rule Rule) (findings []Issue) {
	// Isolate the rule: a panic during matching skips this rule only.
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			e.logger.Warn(context.Background(), nil, "custom rule panicked, skipping",
				"rule", rule.ID, "panic", r)
		}
	}()

	re, ok := e.compile(rule)
	if !ok {
		return nil
	}

	severity := rule.Severity
	if severity == "" {
		severity = SeverityWarning
	}
	category := rule.Category
	if category == "" {
		category = IssueCustom
	}

	for _, loc := range re.FindAllStringIndex(content, -1) {
		issue := newIssue(category, CodeCustomRule, severity, content, loc[0], loc[1],
			content[loc[0]:loc[1]], rule.ID)
		issue.Message = rule.Message
		findings = append(findings, issue)
	}

	return findings
}

// compile returns the cached compiled pattern for a rule, compiling it on
// first use. Broken patterns are remembered so the diagnostic is logged
// once per engine, not once per call.
func (e *Engine) compile(rule Rule) (*regexp.Regexp, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.broken[rule.Pattern] {
		return nil, false
	}
	if re, ok := e.compiled[rule.Pattern]; ok {
		return re, true
	}

	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		e.broken[rule.Pattern] = true
		e.logger.Warn(context.Background(), err, "custom rule pattern does not compile, skipping",
			"rule", rule.ID, "pattern", rule.Pattern)

		return nil, false
	}
	e.compiled[rule.Pattern] = re

	return re, true
}
