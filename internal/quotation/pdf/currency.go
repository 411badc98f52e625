package pdf

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders a monetary value with Indian digit grouping and
// exactly two decimals. Line totals and the grand total go through
// this one formatter so they round identically.
func FormatAmount(v float64) string {
	return currencyPrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
