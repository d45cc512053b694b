package domain

import "strings"

// Currency is one of the supported ISO currency codes.
type Currency string

const (
	CNY Currency = "CNY"
	USD Currency = "USD"
	JPY Currency = "JPY"
)

// CanonicalCurrency is the currency all reports and sums are expressed in.
const CanonicalCurrency = CNY

// SupportedCurrencies lists every currency transactions may be posted in.
var SupportedCurrencies = []Currency{CNY, USD, JPY}

// CurrencySymbols maps a currency to its display symbol.
var CurrencySymbols = map[Currency]string{
	USD: "$",
	JPY: "¥",
	CNY: "¥",
}

// ParseCurrency converts a currency code string (case-insensitive) into a
// Currency, reporting whether the code is supported.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	switch c {
	case CNY, USD, JPY:
		return c, true
	}
	return "", false
}

// IsCanonical reports whether c is the canonical reporting currency.
func (c Currency) IsCanonical() bool {
	return c == CanonicalCurrency
}

func (c Currency) String() string {
	return string(c)
}
