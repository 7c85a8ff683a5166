package validator

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// dangerousTags are markup elements that must never appear in song content.
var dangerousTags = map[string]bool{
	"script": true,
	"iframe": true,
	"object": true,
	"embed":  true,
}

// chordproSyntax are the characters that belong to the notation itself and
// do not count toward the special-character density.
const chordproSyntax = "[]{}#/:.,'\"-()!?"

// scanSecurity detects dangerous embedded markup and excessive
// special-character density. Tag detection uses the html tokenizer, a true
// single-pass scanner, with byte offsets recovered from the raw token
// slices; the javascript: protocol is found by a case-insensitive substring
// walk. All findings are error severity regardless of strict mode.
func scanSecurity(content string, maxSpecialPercent float64) []Issue {
	var findings []Issue

	findings = append(findings, scanDangerousMarkup(content)...)
	findings = append(findings, scanJavascriptProtocol(content)...)

	if issue, ok := checkSpecialCharDensity(content, maxSpecialPercent); ok {
		findings = append(findings, issue)
	}

	return findings
}

func scanDangerousMarkup(content string) []Issue {
	var findings []Issue

	z := html.NewTokenizer(strings.NewReader(content))
	offset := 0
	for {
		tt := z.Next()
		raw := z.Raw()
		start := offset
		offset += len(raw)

		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		if dangerousTags[tok.Data] {
			findings = append(findings, newIssue(IssueSecurity, CodeDangerousTag,
				SeverityError, content, start, offset, tok.Data))
		}
		for _, attr := range tok.Attr {
			if strings.HasPrefix(attr.Key, "on") && len(attr.Key) > 2 {
				findings = append(findings, newIssue(IssueSecurity, CodeEventHandler,
					SeverityError, content, start, offset, attr.Key))
			}
		}
	}

	return findings
}

func scanJavascriptProtocol(content string) []Issue {
	var findings []Issue

	lower := strings.ToLower(content)
	for from := 0; ; {
		idx := strings.Index(lower[from:], "javascript:")
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len("javascript:")
		findings = append(findings, newIssue(IssueSecurity, CodeJavascriptProtocol,
			SeverityError, content, start, end, "javascript:"))
		from = end
	}

	return findings
}

// checkSpecialCharDensity emits one finding when the proportion of
// characters outside letters, digits, whitespace, and ChordPro syntax
// exceeds the configured limit.
func checkSpecialCharDensity(content string, maxPercent float64) (Issue, bool) {
	if len(content) == 0 || maxPercent >= 1 {
		return Issue{}, false
	}

	total, special := 0, 0
	for _, r := range content {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(chordproSyntax, r) {
			continue
		}
		special++
	}
	if total == 0 {
		return Issue{}, false
	}

	ratio := float64(special) / float64(total)
	if ratio <= maxPercent {
		return Issue{}, false
	}

	pct := strconv.FormatFloat(ratio*100, 'f', 1, 64)
	limit := strconv.FormatFloat(maxPercent*100, 'f', 1, 64)

	return newIssue(IssueSecurity, CodeSpecialChars, SeverityError,
		content, 0, len(content), pct, limit), true
}
