package quote

import (
	"fmt"
	"strings"
)

// FormatBolivares formats a quote-currency value for display,
// with a thousands separator and 4 decimal places.
// Example: 1234.5 -> "1.234,5000 Bs"
func FormatBolivares(value float64) string {
	formatted := fmt.Sprintf("%.4f", value)

	parts := strings.SplitN(formatted, ".", 2)

	intPart := parts[0]

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var sb strings.Builder

	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}

		sb.WriteRune(digit)
	}

	out := sb.String() + "," + parts[1] + " Bs"
	if negative {
		out = "-" + out
	}

	return out
}

// Gap returns the percentage spread of the crypto rate
// over the official fiat rate
func Gap(fiatRate, cryptoRate float64) float64 {
	if fiatRate == 0 {
		return 0
	}

	return (cryptoRate - fiatRate) / fiatRate * 100
}
