// Package core provides the financial domain primitives: the currency
// format registry, the monetary value parser and the Month type that keys
// canonical datasets.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SymbolPosition says where a currency symbol sits relative to the number.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// CurrencyFormat describes how a single currency is displayed and parsed.
type CurrencyFormat struct {
	Symbol       string
	Position     SymbolPosition
	ThousandsSep string
	DecimalSep   string // empty for currencies without decimals
	HasDecimals  bool
}

// ErrUnknownCurrency is returned by CurrencyFormatFor for codes outside the
// registry.
var ErrUnknownCurrency = errors.New("unknown currency")

// DefaultCurrency is the fallback for symbol lookups on unknown codes.
const DefaultCurrency = "USD"

// currencyCodes fixes the registry iteration order; symbol detection scans
// codes in this order.
var currencyCodes = []string{"EUR", "USD", "GBP", "CHF", "JPY"}

var currencyFormats = map[string]CurrencyFormat{
	"EUR": {Symbol: "€", Position: SymbolAfter, ThousandsSep: ".", DecimalSep: ",", HasDecimals: true},
	"USD": {Symbol: "$", Position: SymbolBefore, ThousandsSep: ",", DecimalSep: ".", HasDecimals: true},
	"GBP": {Symbol: "£", Position: SymbolBefore, ThousandsSep: ",", DecimalSep: ".", HasDecimals: true},
	"CHF": {Symbol: "Fr", Position: SymbolAfter, ThousandsSep: ".", DecimalSep: ",", HasDecimals: true},
	"JPY": {Symbol: "¥", Position: SymbolBefore, ThousandsSep: ",", DecimalSep: "", HasDecimals: false},
}

// CurrencyFormatFor returns the format rule for a currency code.
func CurrencyFormatFor(code string) (CurrencyFormat, error) {
	f, ok := currencyFormats[code]
	if !ok {
		return CurrencyFormat{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return f, nil
}

// CurrencySymbol returns the display symbol for a currency code, falling
// back to the default currency's symbol for unknown codes.
func CurrencySymbol(code string) string {
	if f, ok := currencyFormats[code]; ok {
		return f.Symbol
	}
	return currencyFormats[DefaultCurrency].Symbol
}

// SupportedCurrencies returns all registered currency codes in registry
// order.
func SupportedCurrencies() []string {
	out := make([]string, len(currencyCodes))
	copy(out, currencyCodes)
	return out
}

// FormatAmount renders a reporting-currency amount for display, rounded to
// the nearest whole unit: "1.235 €", "$ 1,235". Unknown codes use the
// default currency's rule.
func FormatAmount(amount float64, code string) string {
	f, ok := currencyFormats[code]
	if !ok {
		f = currencyFormats[DefaultCurrency]
	}
	whole := decimal.NewFromFloat(amount).Round(0)
	formatted := groupThousands(whole.String(), f.ThousandsSep)
	if f.Position == SymbolBefore {
		return f.Symbol + " " + formatted
	}
	return formatted + " " + f.Symbol
}

// FormatPercent renders a ratio as a percentage with two decimals
// (0.1234 -> "12.34%"), using the currency's decimal separator.
func FormatPercent(ratio float64, code string) string {
	f, ok := currencyFormats[code]
	if !ok {
		f = currencyFormats[DefaultCurrency]
	}
	s := fmt.Sprintf("%.2f%%", ratio*100)
	if f.DecimalSep == "," {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

func groupThousands(digits, sep string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	n := len(digits)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteByte(digits[i])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}
