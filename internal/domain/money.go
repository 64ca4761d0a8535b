package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency applies to plans stored without a currency field.
const DefaultCurrency = "KRW"

// CurrencyInfo describes how amounts in one currency are displayed.
type CurrencyInfo struct {
	Code           string `json:"code"`
	Suffix         string `json:"suffix"`
	FractionDigits int    `json:"fractionDigits"`
}

var currencyOrder = []string{"KRW", "JPY", "CNY", "USD", "EUR"}

var currencies = map[string]CurrencyInfo{
	"KRW": {Code: "KRW", Suffix: " 원", FractionDigits: 0},
	"JPY": {Code: "JPY", Suffix: " 엔", FractionDigits: 0},
	"CNY": {Code: "CNY", Suffix: " 위안", FractionDigits: 0},
	"USD": {Code: "USD", Suffix: " 달러", FractionDigits: 2},
	"EUR": {Code: "EUR", Suffix: " 유로", FractionDigits: 2},
}

// Currencies returns the selectable currencies in display order.
func Currencies() []CurrencyInfo {
	out := make([]CurrencyInfo, 0, len(currencyOrder))
	for _, code := range currencyOrder {
		out = append(out, currencies[code])
	}
	return out
}

// LookupCurrency returns display info for an ISO code (case-insensitive).
func LookupCurrency(code string) (CurrencyInfo, bool) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// amountPrinter groups digits the way the Korean locale does ("1,234,567").
var amountPrinter = message.NewPrinter(language.Korean)

// FormatCurrency renders amount with digit grouping, the currency's fraction
// digits and suffix, e.g. FormatCurrency(1500000, "KRW") == "1,500,000 원".
// Unknown codes are rendered with zero fraction digits and the code as suffix.
func FormatCurrency(amount float64, code string) string {
	info, ok := LookupCurrency(code)
	if !ok {
		info = CurrencyInfo{Code: code, Suffix: " " + code}
	}
	verb := fmt.Sprintf("%%.%df", info.FractionDigits)
	return amountPrinter.Sprintf(verb, amount) + info.Suffix
}
