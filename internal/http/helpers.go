package http

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"outlay/internal/core"
)

const dateLayout = "2006-01-02"

// parseDateRange extracts the start/end dates from query or form values.
// Missing values default to the current month up to today. Returns an
// error for malformed dates or an inverted range.
func parseDateRange(values url.Values) (start, end time.Time, err error) {
	now := time.Now().UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = now

	if v := strings.TrimSpace(values.Get("start")); v != "" {
		start, err = time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", v)
		}
	}
	if v := strings.TrimSpace(values.Get("end")); v != "" {
		end, err = time.Parse(dateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", v)
		}
	}
	if core.StartOfDay(end).Before(core.StartOfDay(start)) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date before start date")
	}

	return start, end, nil
}

// rangeKey builds the cache key for a day-granular date range.
func rangeKey(start, end time.Time) string {
	return core.StartOfDay(start).Format(dateLayout) + "|" + core.StartOfDay(end).Format(dateLayout)
}

// formatAmount renders cents as a plain decimal for display, e.g. "12.34".
func formatAmount(m core.Money) string {
	return m.String()
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
