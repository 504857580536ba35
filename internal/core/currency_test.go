package core

import (
	"errors"
	"testing"
)

func TestCurrencyFormatFor(t *testing.T) {
	eur, err := CurrencyFormatFor("EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eur.Symbol != "€" || eur.ThousandsSep != "." || eur.DecimalSep != "," || eur.Position != SymbolAfter {
		t.Fatalf("unexpected EUR format: %+v", eur)
	}

	jpy, err := CurrencyFormatFor("JPY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jpy.HasDecimals || jpy.DecimalSep != "" {
		t.Fatalf("JPY must have no decimals: %+v", jpy)
	}

	if _, err := CurrencyFormatFor("XXX"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestCurrencySymbolFallback(t *testing.T) {
	if got := CurrencySymbol("GBP"); got != "£" {
		t.Fatalf("CurrencySymbol(GBP) = %q", got)
	}
	if got := CurrencySymbol("XXX"); got != "$" {
		t.Fatalf("unknown code should fall back to the default symbol, got %q", got)
	}
}

func TestSupportedCurrencies(t *testing.T) {
	got := SupportedCurrencies()
	want := []string{"EUR", "USD", "GBP", "CHF", "JPY"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("registry order changed: got %v, want %v", got, want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		out      string
	}{
		{1234.56, "EUR", "1.235 €"},
		{1234.56, "USD", "$ 1,235"},
		{1234.56, "GBP", "£ 1,235"},
		{1234.56, "JPY", "¥ 1,235"},
		{1234.56, "CHF", "1.235 Fr"},
		{-98000, "EUR", "-98.000 €"},
		{0, "USD", "$ 0"},
		{1234.56, "XXX", "$ 1,235"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.amount, tc.currency); got != tc.out {
			t.Fatalf("FormatAmount(%v, %s) = %q, want %q", tc.amount, tc.currency, got, tc.out)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.1234, "EUR"); got != "12,34%" {
		t.Fatalf("EUR percent = %q", got)
	}
	if got := FormatPercent(0.1234, "USD"); got != "12.34%" {
		t.Fatalf("USD percent = %q", got)
	}
}
