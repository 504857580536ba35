package core

import (
	"math"
	"testing"
)

func TestParseMonetaryValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		out  float64
	}{
		{"european with symbol", "€ 1.234,56", 1234.56},
		{"us with symbol", "$1,234.56", 1234.56},
		{"yen no decimals", "¥1,234", 1234.0},
		{"gbp", "£2,500.00", 2500.0},
		{"chf symbol", "Fr 1.000,50", 1000.50},
		{"chf code", "CHF 1.000,50", 1000.50},
		{"nil", nil, 0},
		{"dash placeholder", "-", 0},
		{"only symbols", "€€€", 0},
		{"empty string", "", 0},
		{"numeric passthrough", 1234.56, 1234.56},
		{"int passthrough", 42, 42.0},
		{"plain integer", "1234", 1234.0},
		{"single dot is decimal", "1234.56", 1234.56},
		{"single comma is decimal", "1234,56", 1234.56},
		{"negative", "-12.5", -12.5},
		{"mixed separators default european", "1.234,56", 1234.56},
		{"header label", "Net Worth", 0},
		{"garbage", "12a34", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseMonetaryValue(tc.in)
			if math.Abs(got-tc.out) > 1e-9 {
				t.Fatalf("ParseMonetaryValue(%v) = %v, want %v", tc.in, got, tc.out)
			}
		})
	}
}

func TestParseMonetaryValueNeverNonFinite(t *testing.T) {
	for _, in := range []any{math.NaN(), math.Inf(1), math.Inf(-1), "NaN", "Inf"} {
		got := ParseMonetaryValue(in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("ParseMonetaryValue(%v) returned non-finite %v", in, got)
		}
	}
}

func TestParseMonetaryValueWithOverride(t *testing.T) {
	// An explicit European override turns the dot into a thousands separator.
	if got := ParseMonetaryValueAs("1234.56", "EUR"); got != 123456.0 {
		t.Fatalf("EUR override: got %v, want 123456", got)
	}
	if got := ParseMonetaryValueAs("1,234.56", "USD"); got != 1234.56 {
		t.Fatalf("USD override: got %v, want 1234.56", got)
	}
}

func TestDetectCurrency(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"€ 100", "EUR"},
		{"$100", "USD"},
		{"£100", "GBP"},
		{"Fr 100", "CHF"},
		{"¥100", "JPY"},
		{"CHF 100", "CHF"},
		{"100 JPY", "JPY"},
		{"100", ""},
	}
	for _, tc := range cases {
		if got := DetectCurrency(tc.in); got != tc.out {
			t.Fatalf("DetectCurrency(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
