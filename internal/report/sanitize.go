package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// typographicReplacements maps common Unicode punctuation to ASCII
// equivalents the core PDF fonts can draw.
var typographicReplacements = map[rune]string{
	'•': "-",   // bullet point
	'–': "-",   // en dash
	'—': "-",   // em dash
	'‘': "'",   // left single quote
	'’': "'",   // right single quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'…': "...", // ellipsis
}

// Sanitize rewrites text into the latin-1 repertoire: typographic punctuation
// becomes its ASCII equivalent and anything else outside latin-1 becomes "?".
// Sanitize is idempotent; its output always passes through unchanged.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if replacement, ok := typographicReplacements[r]; ok {
			sb.WriteString(replacement)
			continue
		}
		if r < 256 {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a company name in title case for headings.
func DisplayName(companyName string) string {
	return titleCaser.String(companyName)
}
