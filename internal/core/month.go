package core

import (
	"strings"
	"time"
)

// Month identifies a calendar month at first-of-month granularity. The zero
// Month is the sentinel for an unparsable date cell.
type Month struct {
	t time.Time
}

// NewMonth builds a Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	return Month{t: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// MonthOf truncates a timestamp to its first-of-month identity.
func MonthOf(t time.Time) Month {
	return NewMonth(t.Year(), t.Month())
}

// monthLayouts are the string shapes a date cell can arrive in, from the
// plain "YYYY-MM" storage format up to full timestamps.
var monthLayouts = []string{
	"2006-01",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// ParseMonth normalizes a raw date cell to a Month. Accepts time.Time
// values and the known string layouts; anything else reports ok=false.
func ParseMonth(v any) (Month, bool) {
	switch x := v.(type) {
	case time.Time:
		return MonthOf(x), true
	case Month:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Month{}, false
		}
		for _, layout := range monthLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return MonthOf(t), true
			}
		}
	}
	return Month{}, false
}

// IsZero reports whether m is the null-month sentinel.
func (m Month) IsZero() bool { return m.t.IsZero() }

// Year returns the calendar year.
func (m Month) Year() int { return m.t.Year() }

// Month returns the calendar month.
func (m Month) Month() time.Month { return m.t.Month() }

// Time returns the first-of-month timestamp in UTC.
func (m Month) Time() time.Time { return m.t }

// Key returns the canonical "YYYY-MM" form.
func (m Month) Key() string {
	if m.IsZero() {
		return ""
	}
	return m.t.Format("2006-01")
}

// Label returns the "MM-YYYY" display form used for last-update captions.
func (m Month) Label() string {
	if m.IsZero() {
		return ""
	}
	return m.t.Format("01-2006")
}

// Before reports whether m is strictly earlier than o.
func (m Month) Before(o Month) bool { return m.t.Before(o.t) }

// After reports whether m is strictly later than o.
func (m Month) After(o Month) bool { return m.t.After(o.t) }

// Equal reports whether m and o name the same calendar month.
func (m Month) Equal(o Month) bool { return m.t.Equal(o.t) }

// AddMonths returns the month n calendar months away; n may be negative.
func (m Month) AddMonths(n int) Month {
	return MonthOf(m.t.AddDate(0, n, 0))
}
