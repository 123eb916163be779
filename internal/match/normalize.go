package match

import (
	"strings"
	"unicode"
)

// Normalize folds case and drops separators, so "Kong_61-2007" and
// "kong612007" compare equal.
func Normalize(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// Tokens splits a filter name into its lowercase parts, e.g.
// "anderson_801_1982" -> ["anderson", "801", "1982"].
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), isSeparator)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
