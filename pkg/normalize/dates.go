package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"salesdesk/pkg/cell"
)

// Spreadsheet serial numbers count days from this date.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const (
	minSerial = 20000 // 1954-10-04
	maxSerial = 60000 // 2064-04-08

	minEpochSeconds = 1e8
	minEpochMillis  = 1e11
)

var nowFunc = time.Now

// Tried in order; day-first wins for ambiguous slashes.
var dateLayouts = []string{
	"2/1/2006",
	"2006-1-2",
	"2-1-2006",
	"1/2/2006",
	"2006/1/2",
}

var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var spanishDate = regexp.MustCompile(`^(\d{1,2})\s+de\s+([a-z]+)(?:\s+(?:de|del)\s+(\d{4}))?$`)

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FromSerial converts a spreadsheet serial day number to a date.
func FromSerial(n float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(math.Floor(n)))
}

// ParseDate reads a date cell in any of the encodings users leave in the
// sheets: typed dates, serial numbers, epoch numbers, the layouts above,
// Spanish long form ("5 de octubre del 2025") and ISO prefixes. The result is
// midnight UTC; ok is false when nothing matched.
func ParseDate(v cell.Value) (time.Time, bool) {
	if t, ok := v.Time(); ok {
		return Day(t), true
	}
	if n, ok := v.Float(); ok {
		return fromNumber(n)
	}
	s := strings.TrimSpace(v.String())
	if s == "" {
		return time.Time{}, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n >= minSerial && n <= maxSerial {
			return FromSerial(n), true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, ok := parseSpanish(s); ok {
		return t, true
	}
	return parseISOPrefix(s)
}

func fromNumber(n float64) (time.Time, bool) {
	switch {
	case math.IsNaN(n) || math.IsInf(n, 0):
		return time.Time{}, false
	case n >= minSerial && n <= maxSerial:
		return FromSerial(n), true
	case n >= minEpochMillis:
		return Day(time.UnixMilli(int64(n)).UTC()), true
	case n >= minEpochSeconds:
		return Day(time.Unix(int64(n), 0).UTC()), true
	}
	return time.Time{}, false
}

func parseSpanish(s string) (time.Time, bool) {
	m := spanishDate.FindStringSubmatch(Fold(strings.Join(strings.Fields(s), " ")))
	if m == nil {
		return time.Time{}, false
	}
	month, ok := spanishMonths[m[2]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	year := nowFunc().Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow ("31 de febrero"); reject it instead.
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

func parseISOPrefix(s string) (time.Time, bool) {
	head := strings.Fields(s)[0]
	if len(head) < len("2006-01-02") {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", head[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// InRange reports whether d lies in [start, end], compared by calendar day.
func InRange(d, start, end time.Time) bool {
	d, start, end = Day(d), Day(start), Day(end)
	return !d.Before(start) && !d.After(end)
}
