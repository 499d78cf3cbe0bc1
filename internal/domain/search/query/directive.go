package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// directivePrefix introduces an inline field directive. Matched case-insensitively.
const directivePrefix = "in:"

// Directive is an inline "in:<field>" token found in search text.
type Directive struct {
	Raw   string
	Field string
}

// HasDirectives reports whether text contains at least one field directive:
// "in:" at the start of the text or right after a whitespace character,
// followed by at least one non-whitespace character.
func HasDirectives(text string) bool {
	atBoundary := true
	for i, r := range text {
		if atBoundary && hasPrefixFold(text[i:], directivePrefix) {
			next, size := utf8.DecodeRuneInString(text[i+len(directivePrefix):])
			if size > 0 && !unicode.IsSpace(next) {
				return true
			}
		}
		atBoundary = unicode.IsSpace(r)
	}
	return false
}

// parseDirective reports whether token is a field directive and extracts its field name.
// The name runs from the first colon up to the next one, if any.
func parseDirective(token string) (Directive, bool) {
	if len(token) <= len(directivePrefix) || !hasPrefixFold(token, directivePrefix) {
		return Directive{}, false
	}
	name := token[len(directivePrefix):]
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return Directive{Raw: token, Field: name}, true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
