package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatKg formats an emissions amount, switching to metric tons at 10 t.
// Example: FormatKg(5148.9) returns "5,149 kg"; FormatKg(25000) returns "25.0 t".
func FormatKg(kg float64) string {
	const tonneKg, tonneDisplayKg = 1000, 10_000
	if kg >= tonneDisplayKg {
		return printer.Sprintf("%.1f t", kg/tonneKg)
	}
	return FormatNumber(int64(math.Round(kg))) + " kg"
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
