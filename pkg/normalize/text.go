// Package normalize turns user-typed spreadsheet cells into comparable keys,
// dates and amounts. Nothing here returns an error: unparseable input yields
// a zero value or a false flag and callers decide what absence means.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents removes combining marks after canonical decomposition, so
// "Código" becomes "Codigo".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Key normalizes a column header or lookup alias: trimmed, lowercased,
// without whitespace, hyphens, underscores or diacritics.
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return r
	}, s)
	return FoldAccents(s)
}

// LooseCode normalizes an advisor code for comparison across inconsistent
// formatting ("c-002", "C 002" and "C002" are equal).
func LooseCode(s string) string {
	return Key(s)
}

// Fold is the case- and accent-insensitive form used for free-text search.
func Fold(s string) string {
	return FoldAccents(strings.ToLower(strings.TrimSpace(s)))
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
