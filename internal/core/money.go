package core

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// currencyTokens are the symbols and textual codes stripped from a cell
// before numeric interpretation.
var currencyTokens = []string{"€", "$", "£", "¥", "Fr", "CHF", "JPY", "USD", "EUR", "GBP"}

// fallbackParseCurrency is the rule applied to text whose separators do not
// identify a format on their own (European convention).
const fallbackParseCurrency = "EUR"

// DetectCurrency returns the code of the first registry currency whose
// symbol appears in s, then checks the textual codes CHF and JPY. Returns
// "" when nothing matches.
func DetectCurrency(s string) string {
	for _, code := range currencyCodes {
		if strings.Contains(s, currencyFormats[code].Symbol) {
			return code
		}
	}
	if strings.Contains(s, "CHF") {
		return "CHF"
	}
	if strings.Contains(s, "JPY") {
		return "JPY"
	}
	return ""
}

// ParseMonetaryValue converts a raw spreadsheet cell to a float, detecting
// the currency from symbols in the text. It never fails and never returns
// a non-finite value: nil, empty strings, lone dashes and unparseable cells
// all become 0.
//
//	ParseMonetaryValue("€ 1.234,56") == 1234.56
//	ParseMonetaryValue("$1,234.56")  == 1234.56
//	ParseMonetaryValue("¥1,234")     == 1234.0
func ParseMonetaryValue(v any) float64 {
	return ParseMonetaryValueAs(v, "")
}

// ParseMonetaryValueAs is ParseMonetaryValue with an explicit currency
// override; pass "" to auto-detect.
func ParseMonetaryValueAs(v any, currency string) float64 {
	var text string
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		text = x
	case float64:
		return finiteOrZero(x)
	case float32:
		return finiteOrZero(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return 0
	}

	detected := currency
	if detected == "" {
		detected = DetectCurrency(text)
	}

	cleaned := stripCurrencyTokens(text)

	// Sheets render zero cells with monetary formatting as a lone dash.
	if cleaned == "" || cleaned == "-" {
		return 0
	}

	if detected == "" {
		dots := strings.Count(cleaned, ".")
		commas := strings.Count(cleaned, ",")
		switch {
		case dots == 1 && commas == 0:
			return parseCleaned(text, cleaned)
		case commas == 1 && dots == 0:
			return parseCleaned(text, strings.ReplaceAll(cleaned, ",", "."))
		case dots == 0 && commas == 0:
			return parseCleaned(text, cleaned)
		}
		// Several separators of mixed kind: fall through to the default rule.
	}

	rule, ok := currencyFormats[detected]
	if !ok {
		rule = currencyFormats[fallbackParseCurrency]
	}

	if !strings.Contains(cleaned, rule.ThousandsSep) &&
		(rule.DecimalSep == "" || !strings.Contains(cleaned, rule.DecimalSep)) {
		return parseCleaned(text, cleaned)
	}

	if rule.ThousandsSep != "" {
		cleaned = strings.ReplaceAll(cleaned, rule.ThousandsSep, "")
	}
	if rule.DecimalSep != "" && rule.DecimalSep != "." {
		cleaned = strings.ReplaceAll(cleaned, rule.DecimalSep, ".")
	}
	return parseCleaned(text, cleaned)
}

func parseCleaned(original, cleaned string) float64 {
	f, err := strconv.ParseFloat(cleaned, 64)
	if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	if isAlphabetic(cleaned) {
		// Header rows and label columns routinely reach the parser when a
		// whole row is summed; not a data-quality problem.
		slog.Debug("skipping text value during monetary parsing", "value", original)
	} else {
		slog.Warn("failed to parse monetary value", "value", original, "cleaned", cleaned)
	}
	return 0
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isAlphabetic(s string) bool {
	s = strings.NewReplacer("_", "", " ", "").Replace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func stripCurrencyTokens(s string) string {
	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "")
}
