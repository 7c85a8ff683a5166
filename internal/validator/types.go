// Package validator implements the ChordPro content validation engine: a
// pure function from (text, configuration) to a validation result. It runs
// independent passes over the original text for bracket balance, empty
// elements, chord and directive validation, security scanning, and custom
// rules, and assembles the findings into a Result.
package validator

import (
	"fmt"

	"github.com/conneroisu/chordlint/internal/chordpro"
)

// Severity classifies a finding as blocking (error) or advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IssueType categorizes findings by the check that produced them.
type IssueType string

const (
	IssueChord     IssueType = "chord"
	IssueDirective IssueType = "directive"
	IssueBracket   IssueType = "bracket"
	IssueFormat    IssueType = "format"
	IssueSecurity  IssueType = "security"
	IssueCustom    IssueType = "custom"
)

// Issue codes identify the specific sub-case of a finding. The localization
// catalog is keyed by these codes so messages can be re-rendered in another
// language from the Args without parsing prose.
const (
	CodeInvalidChord       = "invalid_chord"
	CodeUnknownDirective   = "unknown_directive"
	CodeDirectiveTypo      = "directive_typo"
	CodeBracketMismatch    = "bracket_mismatch"
	CodeEmptyElement       = "empty_element"
	CodeDangerousTag       = "dangerous_tag"
	CodeEventHandler       = "event_handler"
	CodeJavascriptProtocol = "javascript_protocol"
	CodeSpecialChars       = "special_chars"
	CodeCustomRule         = "custom_rule"
)

// Position locates a finding in the original, unmodified input. Start and
// End are byte offsets; Line and Column are 1-based.
type Position struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Issue is a single validation finding. Args holds the interpolation
// parameters of the message in order (offending token, counts) so that
// message catalogs can translate the finding without re-deriving them.
type Issue struct {
	Type       IssueType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
	Position   Position  `json:"position"`
	Args       []string  `json:"args,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Token returns the offending token the issue refers to, when it has one.
func (i Issue) Token() string {
	if len(i.Args) == 0 {
		return ""
	}

	return i.Args[0]
}

// Result is the outcome of one validation call. IsValid is true exactly
// when Errors is empty; warnings and info findings never affect validity.
type Result struct {
	IsValid  bool    `json:"isValid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Assemble builds a Result from findings, routing error-severity findings
// to Errors and everything else to Warnings.
func Assemble(findings []Issue) Result {
	errors := make([]Issue, 0, len(findings))
	warnings := make([]Issue, 0, len(findings))
	for _, f := range findings {
		if f.Severity == SeverityError {
			errors = append(errors, f)
		} else {
			warnings = append(warnings, f)
		}
	}

	return Result{
		IsValid:  len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// Findings returns errors and warnings as one slice, errors first.
func (r Result) Findings() []Issue {
	all := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	all = append(all, r.Errors...)
	all = append(all, r.Warnings...)

	return all
}

// newIssue builds an Issue with its position resolved against content and
// its message rendered from the English template for code.
func newIssue(t IssueType, code string, sev Severity, content string, start, end int, args ...string) Issue {
	line, column := chordpro.LineColumn(content, start)

	return Issue{
		Type:     t,
		Code:     code,
		Message:  RenderMessage(code, args),
		Severity: sev,
		Position: Position{Start: start, End: end, Line: line, Column: column},
		Args:     args,
	}
}

// RenderMessage renders the English message template for code with args.
// Unknown codes fall back to the bare arguments.
func RenderMessage(code string, args []string) string {
	tmpl, ok := messageTemplates[code]
	if !ok {
		return fmt.Sprintf("%s: %v", code, args)
	}

	return RenderTemplate(tmpl, args)
}

// RenderTemplate interpolates args into a printf-style template with %s
// verbs. Extra arguments are ignored by count matching in the templates.
func RenderTemplate(tmpl string, args []string) string {
	anyArgs := make([]interface{}, len(args))
	for i, a := range args {
		anyArgs[i] = a
	}

	return fmt.Sprintf(tmpl, anyArgs...)
}
