package core

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	cases := []struct {
		name string
		in   any
		key  string
		ok   bool
	}{
		{"storage format", "2024-03", "2024-03", true},
		{"full date", "2024-03-15", "2024-03", true},
		{"padded", " 2024-03 ", "2024-03", true},
		{"timestamp", "2024-03-15T10:30:00Z", "2024-03", true},
		{"time value", time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC), "2024-03", true},
		{"garbage", "not a date", "", false},
		{"empty", "", "", false},
		{"number", 42.0, "", false},
		{"nil", nil, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := ParseMonth(tc.in)
			if ok != tc.ok {
				t.Fatalf("ParseMonth(%v) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if m.Key() != tc.key {
				t.Fatalf("ParseMonth(%v) key = %q, want %q", tc.in, m.Key(), tc.key)
			}
		})
	}
}

func TestMonthArithmetic(t *testing.T) {
	m := NewMonth(2024, time.March)
	if got := m.AddMonths(-11).Key(); got != "2023-04" {
		t.Fatalf("AddMonths(-11) = %s", got)
	}
	if got := m.AddMonths(1).Key(); got != "2024-04" {
		t.Fatalf("AddMonths(1) = %s", got)
	}
	if !NewMonth(2024, time.January).Before(m) {
		t.Fatal("January should sort before March")
	}
	if !m.After(NewMonth(2023, time.December)) {
		t.Fatal("March 2024 should sort after December 2023")
	}
}

func TestMonthLabel(t *testing.T) {
	if got := NewMonth(2024, time.March).Label(); got != "03-2024" {
		t.Fatalf("Label() = %q", got)
	}
	var zero Month
	if zero.Label() != "" || zero.Key() != "" {
		t.Fatal("zero month must render empty")
	}
}
