// Package monthkey normalizes the YYYY-MM partition keys used for all
// monthly commission lookups.
package monthkey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var keyPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})`)

// Canonicalize turns loose year-month input ("2025/3", "2025-03") into
// the zero-padded "YYYY-MM" form, so "2025-3" and "2025-03" resolve to
// the same row. Input without a YYYY-M prefix is returned unchanged
// (slash-normalized and trimmed); downstream month bounds then yield an
// empty window instead of an error.
func Canonicalize(raw string) string {
	t := strings.TrimSpace(strings.ReplaceAll(raw, "/", "-"))
	m := keyPattern.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	month, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%s-%02d", m[1], month)
}

// Bounds returns the UTC half-open interval [monthStart, nextMonthStart)
// for a canonical key. Malformed keys produce a zero interval.
func Bounds(ym string) (time.Time, time.Time) {
	m := keyPattern.FindStringSubmatch(ym)
	if m == nil {
		return time.Time{}, time.Time{}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Format renders the month containing t (in UTC) as a canonical key.
func Format(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// LastN returns n consecutive month keys ending at the month containing
// now, most-recent first. December rollover is handled by the calendar
// arithmetic: month index zero and below wraps into the previous year.
func LastN(now time.Time, n int) []string {
	if n < 1 {
		n = 1
	}
	now = now.UTC()
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		d := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		keys = append(keys, Format(d))
	}
	return keys
}
