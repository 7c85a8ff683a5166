package locale

import "github.com/conneroisu/chordlint/internal/validator"

// Catalog holds per-language message templates keyed by issue code. The
// templates mirror the argument layout of the engine's English messages so
// a finding can be re-rendered from its Args alone. A missing language or
// code falls back to the original message rather than failing the call.
type Catalog struct {
	templates map[string]map[string]string
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{templates: builtinTemplates()}
}

// Translate renders the issue's message in lang, falling back to the
// untranslated message when no template exists. Suggestions are replacement
// tokens and pass through unchanged.
func (c *Catalog) Translate(lang string, issue validator.Issue) validator.Issue {
	byCode, ok := c.templates[lang]
	if !ok {
		return issue
	}
	tmpl, ok := byCode[issue.Code]
	if !ok {
		return issue
	}
	issue.Message = validator.RenderTemplate(tmpl, issue.Args)

	return issue
}

func builtinTemplates() map[string]map[string]string {
	return map[string]map[string]string{
		"es": {
			validator.CodeInvalidChord:       "acorde no válido %q",
			validator.CodeUnknownDirective:   "directiva desconocida %q",
			validator.CodeDirectiveTypo:      "directiva desconocida %q, ¿quiso decir %q?",
			validator.CodeBracketMismatch:    "delimitadores %s desbalanceados: %s de apertura, %s de cierre",
			validator.CodeEmptyElement:       "elemento vacío %s",
			validator.CodeDangerousTag:       "etiqueta <%s> peligrosa detectada",
			validator.CodeEventHandler:       "manejador de eventos en línea %q detectado",
			validator.CodeJavascriptProtocol: "uso del protocolo %q detectado",
			validator.CodeSpecialChars:       "los caracteres especiales suman %s%% del contenido, por encima del límite de %s%%",
		},
		"fr": {
			validator.CodeInvalidChord:       "accord non valide %q",
			validator.CodeUnknownDirective:   "directive inconnue %q",
			validator.CodeDirectiveTypo:      "directive inconnue %q, vouliez-vous dire %q ?",
			validator.CodeBracketMismatch:    "délimiteurs %s déséquilibrés : %s ouvrants, %s fermants",
			validator.CodeEmptyElement:       "élément vide %s",
			validator.CodeDangerousTag:       "balise <%s> dangereuse détectée",
			validator.CodeEventHandler:       "gestionnaire d'événement en ligne %q détecté",
			validator.CodeJavascriptProtocol: "utilisation du protocole %q détectée",
			validator.CodeSpecialChars:       "les caractères spéciaux représentent %s%% du contenu, au-delà de la limite de %s%%",
		},
		"de": {
			validator.CodeInvalidChord:       "ungültiger Akkord %q",
			validator.CodeUnknownDirective:   "unbekannte Direktive %q",
			validator.CodeDirectiveTypo:      "unbekannte Direktive %q, meinten Sie %q?",
			validator.CodeBracketMismatch:    "unausgeglichene %s-Klammern: %s öffnend, %s schließend",
			validator.CodeEmptyElement:       "leeres Element %s",
			validator.CodeDangerousTag:       "gefährliches <%s>-Tag erkannt",
			validator.CodeEventHandler:       "Inline-Event-Handler %q erkannt",
			validator.CodeJavascriptProtocol: "Verwendung des %q-Protokolls erkannt",
			validator.CodeSpecialChars:       "Sonderzeichen machen %s%% des Inhalts aus, über dem Limit von %s%%",
		},
	}
}
