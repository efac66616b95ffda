package normalize

import (
	"math"
	"strconv"
	"strings"

	"salesdesk/pkg/cell"
)

var currencyStripper = strings.NewReplacer("S/.", "", "S/", "", "$", "", ",", "")

// ParseAmount reads a currency-like cell ("S/ 1,234.50", "1234.5", 300).
// Anything unparseable counts as zero.
func ParseAmount(v cell.Value) float64 {
	if n, ok := v.Float(); ok {
		return n
	}
	s := strings.TrimSpace(currencyStripper.Replace(v.String()))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseFloat is ParseAmount with an explicit flag for cells that hold no
// number at all.
func ParseFloat(v cell.Value) (float64, bool) {
	if n, ok := v.Float(); ok {
		return n, true
	}
	s := strings.TrimSpace(currencyStripper.Replace(v.String()))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt accepts "10", "10.0" and " 10 ", returning def otherwise.
func ParseInt(v cell.Value, def int) int {
	f, ok := ParseFloat(v)
	if !ok {
		return def
	}
	return int(f)
}

// ParseCommission reads a commission cell as a fraction. "10", "10%" and 0.1
// all yield 0.1; values above 1 are whole percentages.
func ParseCommission(v cell.Value) (float64, bool) {
	var f float64
	if n, ok := v.Float(); ok {
		f = n
	} else {
		s := strings.TrimSpace(strings.ReplaceAll(v.String(), "%", ""))
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		f = parsed
	}
	if f > 1 {
		f /= 100
	}
	return f, true
}
