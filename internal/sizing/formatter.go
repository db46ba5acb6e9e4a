package sizing

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// RoundTo rounds f to the given number of decimal places.
func RoundTo(f float64, places int) float64 {
	const base = 10
	m := math.Pow(base, float64(places))
	return math.Round(f*m) / m
}

// FormatKwh formats an energy value rounded to whole kWh with separators.
// Example: FormatKwh(13714.2857) returns "13,714 kWh".
func FormatKwh(kwh float64) string {
	return printer.Sprintf("%d kWh", int64(math.Round(kwh)))
}

// FormatNumber formats f with the given precision and thousand separators.
// Example: FormatNumber(1234.567, 2) returns "1,234.57".
func FormatNumber(f float64, precision int) string {
	if precision <= 0 {
		return printer.Sprintf("%d", int64(math.Round(f)))
	}
	format := fmt.Sprintf("%%.%df", precision)
	return printer.Sprintf(format, RoundTo(f, precision))
}

// FormatPercent formats a percentage with one decimal place.
// Example: FormatPercent(100.654) returns "100.7%".
func FormatPercent(p float64) string {
	return printer.Sprintf("%.1f%%", RoundTo(p, 1))
}

// FormatCurrency formats a bill amount with two decimals.
// Example: FormatCurrency(160) returns "$160.00".
func FormatCurrency(amount float64) string {
	return printer.Sprintf("$%.2f", amount)
}
