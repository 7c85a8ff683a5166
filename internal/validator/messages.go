package validator

// messageTemplates holds the English message templates keyed by issue code.
// Every template consumes the issue's Args in order; localization catalogs
// mirror this layout so a finding can be re-rendered in another language.
var messageTemplates = map[string]string{
	CodeInvalidChord:       "invalid chord %q",
	CodeUnknownDirective:   "unknown directive %q",
	CodeDirectiveTypo:      "unknown directive %q, did you mean %q?",
	CodeBracketMismatch:    "mismatched %s brackets: %s opening, %s closing",
	CodeEmptyElement:       "empty element %s",
	CodeDangerousTag:       "dangerous <%s> tag detected",
	CodeEventHandler:       "inline event handler %q detected",
	CodeJavascriptProtocol: "%q protocol usage detected",
	CodeSpecialChars:       "special characters make up %s%% of content, above the %s%% limit",
}
