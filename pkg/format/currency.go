// Package format renders amounts and rates for human-readable output.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/rent-or-buy/pkg/mathutil"
)

// DefaultCurrencySymbol is used when no symbol is configured.
const DefaultCurrencySymbol = "€"

// Currency returns a currency string with the given symbol and thousands
// separators (e.g., "-€1,234.56"). An empty symbol selects the default.
func Currency(amount float64, symbol string) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// Percent renders a rate fraction as a percentage with two decimals (e.g., 0.035 -> "3.50%").
func Percent(rate float64) string {
	return fmt.Sprintf("%.2f%%", mathutil.ToPercent(rate))
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
