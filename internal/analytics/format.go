package analytics

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// usPrinter renders grouped decimals in the en-US convention
// ("1,234.56"). A single formatting convention is deliberate; currency
// internationalization is out of scope.
var usPrinter = message.NewPrinter(language.AmericanEnglish)

// noData is the sentinel rendered for undefined aggregates (mean of an
// empty set, correlation of a constant series).
const noData = "N/A"

// Currency formats a monetary amount with a dollar sign, thousands
// separators, and exactly two decimals: 1234.5 → "$1,234.50",
// -12 → "-$12.00". NaN renders as "N/A".
func Currency(v float64) string {
	if math.IsNaN(v) {
		return noData
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + usPrinter.Sprintf("%v",
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Percent formats a ratio as a percentage with two decimals:
// 0.1561 → "15.61%". NaN renders as "N/A".
func Percent(v float64) string {
	if math.IsNaN(v) {
		return noData
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// Days formats a day count with two decimals: 3.9751 → "3.98".
// NaN renders as "N/A".
func Days(v float64) string {
	if math.IsNaN(v) {
		return noData
	}
	return fmt.Sprintf("%.2f", v)
}

// Correlation formats a correlation coefficient with four decimals.
// NaN renders as "N/A".
func Correlation(v float64) string {
	if math.IsNaN(v) {
		return noData
	}
	return fmt.Sprintf("%.4f", v)
}
