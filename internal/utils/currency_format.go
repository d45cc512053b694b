package utils

import (
	"github.com/shopspring/decimal"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// FormatAmount formats an amount rounded to 2 fractional digits with the
// currency's display symbol, e.g. 1234.5 USD -> "$1234.50".
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	return domain.CurrencySymbols[currency] + amount.Round(2).StringFixed(2)
}

// FormatRate formats an exchange rate with up to 6 fractional digits,
// trailing zeros trimmed.
func FormatRate(rate decimal.Decimal) string {
	return rate.Round(6).String()
}
