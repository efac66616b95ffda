package normalize

import (
	"regexp"
	"strings"

	"salesdesk/pkg/cell"
)

// A dash with whitespace on at least one side separates "<CODE> - <name>".
// En and em dashes count too, as autocorrect produces them.
// A bare dash stays inside the code so "C-002" survives intact.
var codeSeparator = regexp.MustCompile(`\s+[-–—]\s*|\s*[-–—]\s+`)

// ExtractCode returns the uppercased advisor code from a PERSONAL-style
// field such as "C002 - JUANA PEREZ". Without a separator the whole trimmed
// value is the code.
func ExtractCode(s string) string {
	s = strings.TrimSpace(s)
	if loc := codeSeparator.FindStringIndex(s); loc != nil && loc[0] > 0 {
		s = s[:loc[0]]
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// SameCode reports whether a PERSONAL cell belongs to the target code.
// A blank cell never matches.
func SameCode(personal, target string) bool {
	got := LooseCode(ExtractCode(personal))
	if got == "" {
		return false
	}
	return got == LooseCode(ExtractCode(target))
}

// Password renders a stored password cell for comparison. Numeric cells lose
// their ".0" suffix; text is trimmed.
func Password(v cell.Value) string {
	return strings.TrimSpace(v.String())
}

// PasswordsMatch compares an entered password to the stored one, tolerating
// leading zeros dropped by the spreadsheet when the cell was typed as a number.
func PasswordsMatch(entered string, stored cell.Value) bool {
	entered = strings.TrimSpace(entered)
	want := Password(stored)
	if entered == "" || want == "" {
		return false
	}
	if entered == want {
		return true
	}
	return strings.TrimLeft(entered, "0") == strings.TrimLeft(want, "0")
}
